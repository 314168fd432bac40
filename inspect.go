package framegate

import (
	"errors"

	"github.com/reoring/framegate/frame"
	"github.com/reoring/framegate/i18n"
	"github.com/reoring/framegate/internal/walk"
)

// Bound annotates a frame with the schema it must satisfy, so the inspector
// can find it at any nesting depth inside an argument or return value.
type Bound struct {
	Schema *Schema
	Frame  *frame.Frame
}

// Bind associates a frame with a schema for recursive inspection.
func Bind(s *Schema, f *frame.Frame) Bound { return Bound{Schema: s, Frame: f} }

// inspect walks one argument (or the return value) rooted at ref. A schema
// bound to the slot itself applies to a bare frame at the top level; Bound
// values are picked up at any depth. Values with no schema anywhere are
// passed through unexamined. The returned value carries validated working
// frames substituted where the enclosing container allows writing back.
func inspect(ref PathRef, v any, slot *Schema, opt GuardOpt) (any, Issues) {
	var iss Issues

	// Top-level slot binding.
	switch tv := v.(type) {
	case Bound:
		if tv.Schema == nil {
			return v, Issues{ref.Issue(CodeDefinition, "bound value has no schema")}
		}
		out, vi := tv.Schema.validateAt(ref, tv.Frame)
		iss = AppendIssues(iss, vi...)
		return Bound{Schema: tv.Schema, Frame: out}, iss
	case *frame.Frame:
		if slot == nil {
			return v, nil
		}
		out, vi := slot.validateAt(ref, tv)
		iss = AppendIssues(iss, vi...)
		return out, iss
	}
	if slot != nil {
		return v, Issues{ref.Issue(CodeInvalidDType, "expected a frame for schema-bound slot")}
	}

	maxDepth := opt.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	err := walk.Walk(v, walk.Options{MaxDepth: maxDepth}, func(path []string, node any, set walk.Setter) (bool, error) {
		switch nv := node.(type) {
		case Bound:
			if nv.Schema == nil {
				iss = AppendIssues(iss, refAt(ref, path).Issue(CodeDefinition, "bound value has no schema"))
				return false, nil
			}
			out, vi := nv.Schema.validateAt(refAt(ref, path), nv.Frame)
			iss = AppendIssues(iss, vi...)
			if set != nil {
				set(Bound{Schema: nv.Schema, Frame: out})
			}
			return false, nil
		case *frame.Frame:
			// unannotated frame: a leaf, passed through unexamined
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		// the visitor itself never fails, so this is always a limit breach
		var le *walk.LimitError
		if errors.As(err, &le) {
			code := CodeMaxDepth
			if le.Cycle {
				code = CodeCycle
			}
			iss = AppendIssues(iss, refAt(ref, le.Path).Issue(code, i18n.T(code, nil)))
		}
	}
	return v, iss
}

// refAt extends a base ref with walker path segments.
func refAt(base PathRef, segs []string) PathRef {
	out := base
	for _, s := range segs {
		out = out.Field(s)
	}
	return out
}
