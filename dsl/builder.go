// Package dsl provides the fluent schema builder. Definitions are validated
// once at Build time; the result is an immutable framegate.Schema safe for
// concurrent use.
package dsl

import (
	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
)

type schemaBuilder struct {
	fields []framegate.Field
	index  []framegate.Field
	cfg    framegate.Config
	checks []framegate.FrameCheck
}

// Schema creates a new schema builder with safe defaults: no coercion, no
// strict/filter handling of undeclared columns, no index constraints.
func Schema() *schemaBuilder { return &schemaBuilder{} }

// FieldOpt configures one declared column or index level.
type FieldOpt func(*framegate.Field)

// Field declares a column with its dtype and constraints. Declaration order
// is the expected column order under Strict.
func (b *schemaBuilder) Field(name string, dt frame.DType, opts ...FieldOpt) *schemaBuilder {
	f := framegate.Field{Name: name, Type: dt}
	for _, o := range opts {
		o(&f)
	}
	b.fields = append(b.fields, f)
	return b
}

// Level declares an index level, outermost first.
func (b *schemaBuilder) Level(name string, dt frame.DType, opts ...FieldOpt) *schemaBuilder {
	f := framegate.Field{Name: name, Type: dt}
	for _, o := range opts {
		o(&f)
	}
	b.index = append(b.index, f)
	return b
}

// Strict marks undeclared columns as an error and pins declaration order.
func (b *schemaBuilder) Strict() *schemaBuilder {
	b.cfg.Strict = true
	return b
}

// Filter silently drops undeclared columns from the validated output.
func (b *schemaBuilder) Filter() *schemaBuilder {
	b.cfg.Filter = true
	return b
}

// Coerce enables coercion for every field that does not opt out.
func (b *schemaBuilder) Coerce() *schemaBuilder {
	b.cfg.Coerce = true
	return b
}

// CheckIndexName requires declared index level names to match the data.
func (b *schemaBuilder) CheckIndexName() *schemaBuilder {
	b.cfg.CheckIndexName = true
	return b
}

// IndexSorted requires a monotonic index.
func (b *schemaBuilder) IndexSorted() *schemaBuilder {
	b.cfg.IndexSorted = true
	return b
}

// IndexUnique requires unique composite index labels.
func (b *schemaBuilder) IndexUnique() *schemaBuilder {
	b.cfg.IndexUnique = true
	return b
}

// Check registers a whole-frame custom check, run after the per-field passes
// on the validated working frame.
func (b *schemaBuilder) Check(name string, fn framegate.FrameCheckFn) *schemaBuilder {
	b.checks = append(b.checks, framegate.FrameCheck{Name: name, Fn: fn})
	return b
}

// Build compiles the definition. Malformed definitions fail here with a
// *framegate.DefinitionError, never at validation time.
func (b *schemaBuilder) Build() (*framegate.Schema, error) {
	return framegate.NewSchema(b.fields, b.index, b.cfg, b.checks...)
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *framegate.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ---- field options ----

// Alias matches the column by this name instead of the field name.
func Alias(name string) FieldOpt { return func(f *framegate.Field) { f.Alias = name } }

// Regex treats the field's alias (or name) as a prefix-anchored pattern; the
// field claims every matching column.
func Regex() FieldOpt { return func(f *framegate.Field) { f.Regex = true } }

// Nullable allows missing values in the column.
func Nullable() FieldOpt { return func(f *framegate.Field) { f.Nullable = true } }

// Optional allows the column to be absent entirely.
func Optional() FieldOpt { return func(f *framegate.Field) { f.Optional = true } }

// Unique rejects repeated values; all but the first occurrence are reported.
func Unique() FieldOpt { return func(f *framegate.Field) { f.Unique = true } }

// Coerce casts the column to the declared dtype before content checks.
func Coerce() FieldOpt { return func(f *framegate.Field) { f.Coerce = true } }

// Gt requires values strictly greater than v; numeric dtypes only.
func Gt(v float64) FieldOpt { return func(f *framegate.Field) { f.Gt = &v } }

// Ge requires values greater than or equal to v; numeric dtypes only.
func Ge(v float64) FieldOpt { return func(f *framegate.Field) { f.Ge = &v } }

// Lt requires values strictly less than v; numeric dtypes only.
func Lt(v float64) FieldOpt { return func(f *framegate.Field) { f.Lt = &v } }

// Le requires values less than or equal to v; numeric dtypes only.
func Le(v float64) FieldOpt { return func(f *framegate.Field) { f.Le = &v } }

// IsIn requires every value to be a member of the given set.
func IsIn(vals ...any) FieldOpt {
	return func(f *framegate.Field) { f.IsIn = append(f.IsIn, vals...) }
}

// NotIn rejects values belonging to the given set.
func NotIn(vals ...any) FieldOpt {
	return func(f *framegate.Field) { f.NotIn = append(f.NotIn, vals...) }
}

// StartsWith requires string values to begin with s.
func StartsWith(s string) FieldOpt { return func(f *framegate.Field) { f.StrStartsWith = &s } }

// EndsWith requires string values to end with s.
func EndsWith(s string) FieldOpt { return func(f *framegate.Field) { f.StrEndsWith = &s } }

// Contains requires string values to contain s.
func Contains(s string) FieldOpt { return func(f *framegate.Field) { f.StrContains = &s } }

// Check attaches a named custom predicate to the column.
func Check(name string, fn framegate.CheckFn) FieldOpt {
	return func(f *framegate.Field) { f.Check = &framegate.Check{Name: name, Fn: fn} }
}
