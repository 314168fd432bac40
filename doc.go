package framegate

// Package framegate provides:
//
// - Compiled, immutable table schemas (column dtypes, nullability,
//   uniqueness, bounds, membership sets, custom checks, index shape)
// - A validation engine that checks a frame against a schema and aggregates
//   every problem found into one Issues error (path, code, message)
// - Recursive call-site inspection: Wrap brackets a callable so that
//   schema-bound frames anywhere inside its arguments and return value are
//   validated before and after the call
//
// Design policy:
// - Keep only public APIs in the root package; put traversal internals under internal/.
// - Place the schema builder under dsl/, the table under frame/, YAML schema
//   documents under yamlschema/, and the CLI under cmd/framegate.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := dsl.Schema().
//      Field("col1", frame.Int).
//      Field("col3", frame.Float, dsl.Gt(0)).
//      MustBuild()
//
//  out, err := s.Validate(df)
//
//  guarded := framegate.Wrap1(process, "df", s, s)
//  res, err := guarded(ctx, df)
//
