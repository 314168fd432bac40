package framegate

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/reoring/framegate/codec"
	"github.com/reoring/framegate/frame"
)

// Schema is the compiled, immutable description of one table shape: ordered
// column fields, index level fields, schema-level config, and whole-frame
// checks. A Schema is built once (NewSchema or the dsl package) and is safe
// to share across arbitrarily many concurrent validations.
type Schema struct {
	fields      []Field
	byName      map[string]int
	index       []Field
	frameChecks []FrameCheck
	cfg         Config
}

// NewSchema compiles a schema definition: ordered column fields, index level
// fields (outermost first, empty for "no index constraints"), and config.
// The definition itself is validated here, never at call time; a malformed
// definition yields a *DefinitionError listing every problem found.
func NewSchema(fields []Field, index []Field, cfg Config, checks ...FrameCheck) (*Schema, error) {
	var iss Issues
	def := func(path PathRef, msg string, kv ...any) {
		iss = AppendIssues(iss, path.Issue(CodeDefinition, msg, kv...))
	}

	if cfg.Strict && cfg.Filter {
		def(Root(), "strict and filter are contradictory; declare at most one")
	}
	if len(fields) == 0 {
		def(Root(), "schema declares no columns")
	}

	s := &Schema{byName: make(map[string]int, len(fields)), cfg: cfg}
	for i, f := range fields {
		ref := Root().Field(f.Name)
		if f.Name == "" {
			def(Root(), "column name must not be empty", "position", i)
			continue
		}
		if _, dup := s.byName[f.Name]; dup {
			def(ref, "duplicate column name")
			continue
		}
		nf, fi := compileField(ref, f)
		iss = AppendIssues(iss, fi...)
		s.byName[f.Name] = len(s.fields)
		s.fields = append(s.fields, nf)
	}

	seenLevels := map[string]struct{}{}
	for i, f := range index {
		ref := Root().Field("index").Field(f.Name)
		if f.Name == "" {
			if cfg.CheckIndexName {
				def(Root().Field("index"), "check_index_name requires named index levels", "level", i)
			}
			ref = Root().Field("index").Index(i)
		} else if _, dup := seenLevels[f.Name]; dup {
			def(ref, "duplicate index level name")
			continue
		} else {
			seenLevels[f.Name] = struct{}{}
		}
		if f.Optional {
			def(ref, "index level cannot be optional")
		}
		if f.Coerce {
			def(ref, "index level cannot be coerced")
		}
		if f.Regex {
			def(ref, "index level cannot match by pattern")
		}
		nf, fi := compileField(ref, f)
		iss = AppendIssues(iss, fi...)
		s.index = append(s.index, nf)
	}

	for _, c := range checks {
		if c.Fn == nil {
			def(Root(), "frame check has no function", "check", c.Name)
			continue
		}
		s.frameChecks = append(s.frameChecks, c)
	}

	if len(iss) > 0 {
		return nil, &DefinitionError{Issues: iss}
	}
	return s, nil
}

// MustSchema is NewSchema panicking on error; intended for package-level
// schema declarations.
func MustSchema(fields []Field, index []Field, cfg Config, checks ...FrameCheck) *Schema {
	s, err := NewSchema(fields, index, cfg, checks...)
	if err != nil {
		panic(err)
	}
	return s
}

// compileField checks constraint/dtype compatibility, normalizes membership
// sets to the declared dtype, and detaches the compiled field from the
// caller's definition (pointer targets are copied, so mutating the original
// Field after NewSchema cannot change the schema).
func compileField(ref PathRef, f Field) (Field, Issues) {
	var iss Issues
	def := func(msg string, kv ...any) {
		iss = AppendIssues(iss, ref.Issue(CodeDefinition, msg, kv...))
	}

	f.Gt = cloneFloat(f.Gt)
	f.Ge = cloneFloat(f.Ge)
	f.Lt = cloneFloat(f.Lt)
	f.Le = cloneFloat(f.Le)
	f.StrStartsWith = cloneString(f.StrStartsWith)
	f.StrEndsWith = cloneString(f.StrEndsWith)
	f.StrContains = cloneString(f.StrContains)
	if f.Check != nil {
		c := *f.Check
		f.Check = &c
	}

	if f.Regex {
		// prefix-anchored, the way column patterns conventionally match
		re, err := regexp.Compile("^(?:" + f.matchName() + ")")
		if err != nil {
			def("invalid column pattern", "pattern", f.matchName())
		} else {
			f.pattern = re
		}
	}

	if (f.Gt != nil || f.Ge != nil || f.Lt != nil || f.Le != nil) && !f.Type.Numeric() {
		def("ordering bounds require a numeric dtype", "dtype", f.Type.String())
	}
	if f.Gt != nil && f.Ge != nil {
		def("gt and ge are mutually exclusive")
	}
	if f.Lt != nil && f.Le != nil {
		def("lt and le are mutually exclusive")
	}
	if (f.StrStartsWith != nil || f.StrEndsWith != nil || f.StrContains != nil) && !f.Type.Stringy() {
		def("string constraints require a string or categorical dtype", "dtype", f.Type.String())
	}
	if f.Check != nil && f.Check.Fn == nil {
		def("custom check has no function", "check", f.Check.Name)
	}

	norm := func(which string, vals []any) []any {
		if len(vals) == 0 {
			return nil
		}
		out := make([]any, 0, len(vals))
		for _, v := range vals {
			nv, ok := normalizeConstraintValue(f.Type, v)
			if !ok {
				def(fmt.Sprintf("%s value is not a %s", which, f.Type), "value", v)
				continue
			}
			out = append(out, nv)
		}
		return out
	}
	f.IsIn = norm("isin", f.IsIn)
	f.NotIn = norm("notin", f.NotIn)

	return f, iss
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// normalizeConstraintValue converts a declared constraint value into the
// canonical runtime representation for the dtype.
func normalizeConstraintValue(d frame.DType, v any) (any, bool) {
	switch d {
	case frame.Int:
		switch n := v.(type) {
		case int:
			return int64(n), true
		case int32:
			return int64(n), true
		case int64:
			return n, true
		case uint:
			return int64(n), true
		case float64:
			if math.Trunc(n) == n && !math.IsInf(n, 0) {
				return int64(n), true
			}
		}
	case frame.Float:
		switch n := v.(type) {
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case float32:
			return float64(n), true
		case float64:
			return n, true
		}
	case frame.String, frame.Categorical:
		if s, ok := v.(string); ok {
			return s, true
		}
	case frame.Bool:
		if b, ok := v.(bool); ok {
			return b, true
		}
	case frame.Datetime:
		switch t := v.(type) {
		case time.Time:
			return t, true
		case string:
			if tv, err := (codec.RFC3339{}).Decode(t); err == nil {
				return tv, true
			}
		}
	}
	return nil, false
}

// Fields returns the declared column fields in declaration order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// IndexLevels returns the declared index level fields, outermost first.
func (s *Schema) IndexLevels() []Field { return append([]Field(nil), s.index...) }

// Config returns the schema-level configuration.
func (s *Schema) Config() Config { return s.cfg }

// Field looks a declared column up by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}
