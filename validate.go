package framegate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reoring/framegate/frame"
	"github.com/reoring/framegate/i18n"
)

// Validate checks a frame against the compiled schema. It returns the
// validated working frame (coerced columns substituted; undeclared columns
// dropped and declaration order restored when Filter is set) together with
// the aggregated error. The engine never stops at the first failure: the
// returned Issues list every problem found in this pass, in declaration
// order. The input frame is never mutated.
func (s *Schema) Validate(f *frame.Frame) (*frame.Frame, error) {
	out, iss := s.validateAt(Root(), f)
	if len(iss) > 0 {
		return out, iss
	}
	return out, nil
}

// ValidateSeries checks a single column against one field specification.
// The field is compiled first, so a malformed constraint surfaces as a
// *DefinitionError rather than a validation issue.
func ValidateSeries(fld Field, se *frame.Series) (*frame.Series, error) {
	name := fld.Name
	if name == "" {
		name = se.Name()
	}
	ref := Root().Field(name)
	cf, di := compileField(ref, fld)
	if len(di) > 0 {
		return nil, &DefinitionError{Issues: di}
	}
	out, iss := validateColumn(ref, cf, se, cf.Coerce)
	if len(iss) > 0 {
		return out, iss
	}
	return out, nil
}

func (s *Schema) validateAt(ref PathRef, f *frame.Frame) (*frame.Frame, Issues) {
	if f == nil {
		return nil, Issues{ref.Issue(CodeInvalidDType, "expected a frame, found nil")}
	}
	var iss Issues

	// Structural pass: resolve each field to the columns it claims. A plain
	// field claims the column named by its name or alias; a pattern field
	// claims every column its pattern matches, in frame order.
	matched := make(map[string][]string, len(s.fields))
	claimed := make(map[string]bool, f.NumCols())
	allMatched := true
	for _, fld := range s.fields {
		var cols []string
		if fld.pattern != nil {
			for _, name := range f.Columns() {
				if fld.pattern.MatchString(name) {
					cols = append(cols, name)
				}
			}
		} else if _, ok := f.Column(fld.matchName()); ok {
			cols = []string{fld.matchName()}
		}
		matched[fld.Name] = cols
		for _, c := range cols {
			claimed[c] = true
		}
		if len(cols) == 0 {
			allMatched = false
			if !fld.Optional {
				if fld.pattern != nil {
					iss = AppendIssues(iss, ref.Field(fld.Name).Issue(CodeMissingColumn, i18n.T(CodeMissingColumn, nil),
						"pattern", fld.matchName()))
				} else {
					iss = AppendIssues(iss, ref.Field(fld.matchName()).Issue(CodeMissingColumn, i18n.T(CodeMissingColumn, nil)))
				}
			}
		}
	}
	var undeclared []string
	for _, name := range f.Columns() {
		if !claimed[name] {
			undeclared = append(undeclared, name)
		}
	}
	if s.cfg.Strict {
		for _, name := range undeclared {
			iss = AppendIssues(iss, ref.Field(name).Issue(CodeUnknownColumn, i18n.T(CodeUnknownColumn, nil)))
		}
		// With matching column sets, strict also pins declaration order.
		if len(undeclared) == 0 && allMatched {
			want := make([]string, 0, f.NumCols())
			for _, fld := range s.fields {
				want = append(want, matched[fld.Name]...)
			}
			if len(want) == f.NumCols() && !sliceEq(want, f.Columns()) {
				iss = AppendIssues(iss, ref.Issue(CodeColumnOrder, i18n.T(CodeColumnOrder, nil),
					"want", want, "got", f.Columns()))
			}
		}
	}

	// Index pass.
	iss = AppendIssues(iss, s.validateIndex(ref, f)...)

	// Per-field pass, in declaration order; a pattern field's matched columns
	// each run the full per-column sequence independently.
	work := f
	for _, fld := range s.fields {
		for _, colName := range matched[fld.Name] {
			col, _ := work.Column(colName)
			out, fi := validateColumn(ref.Field(colName), fld, col, fld.Coerce || s.cfg.Coerce)
			iss = AppendIssues(iss, fi...)
			if out != col {
				work = work.WithColumn(out)
			}
		}
	}

	// Filter drops unclaimed columns and restores declaration order.
	if s.cfg.Filter {
		keep := make([]string, 0, len(s.fields))
		for _, fld := range s.fields {
			keep = append(keep, matched[fld.Name]...)
		}
		if sel, err := work.Select(keep...); err == nil {
			work = sel
		}
	}

	// Whole-frame checks run on the working copy the caller will receive.
	for _, c := range s.frameChecks {
		res := c.Fn(work)
		if res.Rowwise() {
			rows := failingRows(res.Rows())
			if len(res.Rows()) != work.NumRows() {
				it := ref.Issue(CodeCustomCheck, fmt.Sprintf("frame check returned %d verdicts for %d rows", len(res.Rows()), work.NumRows()))
				it.Rule = c.Name
				iss = AppendIssues(iss, it)
			} else if len(rows) > 0 {
				it := ref.Issue(CodeCustomCheck, i18n.T(CodeCustomCheck, nil), "count", len(rows), "rows", sampleInts(rows))
				it.Rule = c.Name
				iss = AppendIssues(iss, it)
			}
		} else if !res.Pass() {
			it := ref.Issue(CodeCustomCheck, i18n.T(CodeCustomCheck, nil))
			it.Rule = c.Name
			iss = AppendIssues(iss, it)
		}
	}

	return work, iss
}

func (s *Schema) validateIndex(ref PathRef, f *frame.Frame) Issues {
	if len(s.index) == 0 && !s.cfg.IndexSorted && !s.cfg.IndexUnique {
		return nil
	}
	var iss Issues
	iref := ref.Field("index")
	idx := f.Index()

	if len(s.index) > 0 {
		if idx.NLevels() != len(s.index) {
			return Issues{iref.Issue(CodeIndexMismatch, i18n.T(CodeIndexMismatch, nil),
				"want", len(s.index), "got", idx.NLevels())}
		}
		for i, lf := range s.index {
			lv := idx.Level(i)
			lref := iref.Field(lf.Name)
			if lf.Name == "" {
				lref = iref.Index(i)
			}
			if s.cfg.CheckIndexName && lv.Name() != lf.matchName() {
				iss = AppendIssues(iss, lref.Issue(CodeIndexMismatch, i18n.T(CodeIndexMismatch, nil),
					"want", lf.matchName(), "got", lv.Name()))
			}
			// Index levels are never coerced; a dtype mismatch is always an error.
			_, li := validateColumn(lref, lf, lv, false)
			iss = AppendIssues(iss, li...)
		}
	}

	if idx.NLevels() == 0 {
		// IndexSorted/IndexUnique presuppose an index; its absence is a
		// structural failure, not a vacuous pass.
		if s.cfg.IndexSorted || s.cfg.IndexUnique {
			iss = AppendIssues(iss, iref.Issue(CodeIndexMismatch, i18n.T(CodeIndexMismatch, nil),
				"want", "index", "got", "none"))
		}
		return iss
	}
	if s.cfg.IndexSorted && !idx.IsMonotonic() {
		iss = AppendIssues(iss, iref.Issue(CodeIndexUnsorted, i18n.T(CodeIndexUnsorted, nil)))
	}
	if s.cfg.IndexUnique && !idx.IsUnique() {
		iss = AppendIssues(iss, iref.Issue(CodeUniqueness, i18n.T(CodeUniqueness, nil)))
	}
	return iss
}

// validateColumn runs the fixed per-field order: coercion -> dtype ->
// nullability -> bounds -> membership -> string constraints -> uniqueness ->
// custom check. A coercion or dtype failure short-circuits the remaining
// checks for this column only; other columns still run.
func validateColumn(ref PathRef, fld Field, col *frame.Series, coerce bool) (*frame.Series, Issues) {
	var iss Issues
	work := col

	if coerce {
		cast, err := col.Cast(fld.Type)
		if err != nil {
			var ce *frame.CastError
			it := ref.Issue(CodeCoercion, i18n.T(CodeCoercion, nil), "want", fld.Type.String(), "got", col.DType().String())
			if errors.As(err, &ce) && ce.Row >= 0 {
				it.Params["row"] = ce.Row
				it.Params["value"] = ce.Value
			}
			it.Cause = err
			return col, Issues{it}
		}
		work = cast
	} else if col.DType() != fld.Type {
		return col, Issues{ref.Issue(CodeInvalidDType, i18n.T(CodeInvalidDType, nil),
			"want", fld.Type.String(), "got", col.DType().String())}
	}

	if !fld.Nullable {
		if rows := work.NullRows(); len(rows) > 0 {
			iss = AppendIssues(iss, ref.Issue(CodeNotNull, i18n.T(CodeNotNull, nil),
				"count", len(rows), "rows", sampleInts(rows)))
		}
	}

	iss = appendBoundIssue(iss, ref, work, "gt", fld.Gt, CodeTooSmall, func(v, b float64) bool { return v > b })
	iss = appendBoundIssue(iss, ref, work, "ge", fld.Ge, CodeTooSmall, func(v, b float64) bool { return v >= b })
	iss = appendBoundIssue(iss, ref, work, "lt", fld.Lt, CodeTooBig, func(v, b float64) bool { return v < b })
	iss = appendBoundIssue(iss, ref, work, "le", fld.Le, CodeTooBig, func(v, b float64) bool { return v <= b })

	if len(fld.IsIn) > 0 {
		rows, vals := membershipViolations(work, fld.IsIn, false)
		if len(rows) > 0 {
			iss = AppendIssues(iss, ref.Issue(CodeInvalidEnum, i18n.T(CodeInvalidEnum, nil),
				"count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals)))
		}
	}
	if len(fld.NotIn) > 0 {
		rows, vals := membershipViolations(work, fld.NotIn, true)
		if len(rows) > 0 {
			iss = AppendIssues(iss, ref.Issue(CodeInvalidEnum, i18n.T(CodeInvalidEnum, nil),
				"count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals), "excluded", true))
		}
	}
	if fld.Type == frame.Categorical {
		if rows, vals := categoryViolations(work); len(rows) > 0 {
			iss = AppendIssues(iss, ref.Issue(CodeInvalidEnum, i18n.T(CodeInvalidEnum, nil),
				"count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals), "categories", work.Categories()))
		}
	}

	iss = appendStrIssue(iss, ref, work, "starts_with", fld.StrStartsWith, hasPrefix)
	iss = appendStrIssue(iss, ref, work, "ends_with", fld.StrEndsWith, hasSuffix)
	iss = appendStrIssue(iss, ref, work, "contains", fld.StrContains, containsStr)

	if fld.Unique {
		if rows, vals := duplicateRows(work); len(rows) > 0 {
			iss = AppendIssues(iss, ref.Issue(CodeUniqueness, i18n.T(CodeUniqueness, nil),
				"count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals)))
		}
	}

	if fld.Check != nil && fld.Check.Fn != nil {
		res := fld.Check.Fn(work)
		if res.Rowwise() {
			if len(res.Rows()) != work.Len() {
				it := ref.Issue(CodeCustomCheck, fmt.Sprintf("check returned %d verdicts for %d rows", len(res.Rows()), work.Len()))
				it.Rule = fld.Check.Name
				iss = AppendIssues(iss, it)
			} else if rows := failingRows(res.Rows()); len(rows) > 0 {
				it := ref.Issue(CodeCustomCheck, i18n.T(CodeCustomCheck, nil), "count", len(rows), "rows", sampleInts(rows))
				it.Rule = fld.Check.Name
				iss = AppendIssues(iss, it)
			}
		} else if !res.Pass() {
			it := ref.Issue(CodeCustomCheck, i18n.T(CodeCustomCheck, nil))
			it.Rule = fld.Check.Name
			iss = AppendIssues(iss, it)
		}
	}

	return work, iss
}

// ---- per-constraint helpers ----

func appendBoundIssue(iss Issues, ref PathRef, se *frame.Series, name string, bound *float64, code string, ok func(v, b float64) bool) Issues {
	if bound == nil {
		return iss
	}
	var rows []int
	var vals []any
	for i := 0; i < se.Len(); i++ {
		v, valid := se.Float64At(i)
		if !valid {
			continue
		}
		if !ok(v, *bound) {
			rows = append(rows, i)
			vals = append(vals, se.At(i))
		}
	}
	if len(rows) == 0 {
		return iss
	}
	return AppendIssues(iss, ref.Issue(code, i18n.T(code, nil),
		name, *bound, "count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals)))
}

func appendStrIssue(iss Issues, ref PathRef, se *frame.Series, name string, want *string, ok func(v, w string) bool) Issues {
	if want == nil {
		return iss
	}
	var rows []int
	var vals []any
	for i := 0; i < se.Len(); i++ {
		v, valid := se.StringAt(i)
		if !valid {
			continue
		}
		if !ok(v, *want) {
			rows = append(rows, i)
			vals = append(vals, v)
		}
	}
	if len(rows) == 0 {
		return iss
	}
	return AppendIssues(iss, ref.Issue(CodePattern, i18n.T(CodePattern, nil),
		name, *want, "count", len(rows), "rows", sampleInts(rows), "values", sampleVals(vals)))
}

func membershipViolations(se *frame.Series, set []any, excluded bool) ([]int, []any) {
	var rows []int
	var vals []any
	for i := 0; i < se.Len(); i++ {
		if se.IsNull(i) {
			continue
		}
		v := se.At(i)
		if memberOf(set, v) == excluded {
			rows = append(rows, i)
			vals = append(vals, v)
		}
	}
	return rows, vals
}

func categoryViolations(se *frame.Series) ([]int, []any) {
	cats := se.Categories()
	allowed := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		allowed[c] = struct{}{}
	}
	var rows []int
	var vals []any
	for i := 0; i < se.Len(); i++ {
		v, ok := se.StringAt(i)
		if !ok {
			continue
		}
		if _, in := allowed[v]; !in {
			rows = append(rows, i)
			vals = append(vals, v)
		}
	}
	return rows, vals
}

// duplicateRows reports every occurrence after the first of a repeated value.
// Keys stringify the value, the same tradeoff UniqueBy-style checks make.
func duplicateRows(se *frame.Series) ([]int, []any) {
	seen := make(map[string]int, se.Len())
	var rows []int
	var vals []any
	for i := 0; i < se.Len(); i++ {
		if se.IsNull(i) {
			continue
		}
		v := se.At(i)
		k := fmt.Sprint(v)
		if _, dup := seen[k]; dup {
			rows = append(rows, i)
			vals = append(vals, v)
		} else {
			seen[k] = i
		}
	}
	return rows, vals
}

func memberOf(set []any, v any) bool {
	for _, m := range set {
		if equalValue(m, v) {
			return true
		}
	}
	return false
}

func equalValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok2 := b.(time.Time)
		return ok2 && ta.Equal(tb)
	}
	return a == b
}

func failingRows(mask []bool) []int {
	var rows []int
	for i, ok := range mask {
		if !ok {
			rows = append(rows, i)
		}
	}
	return rows
}

func sampleInts(rows []int) []int {
	if len(rows) > maxSample {
		rows = rows[:maxSample]
	}
	return append([]int(nil), rows...)
}

func sampleVals(vals []any) []any {
	if len(vals) > maxSample {
		vals = vals[:maxSample]
	}
	return append([]any(nil), vals...)
}

func sliceEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefix(v, w string) bool   { return strings.HasPrefix(v, w) }
func hasSuffix(v, w string) bool   { return strings.HasSuffix(v, w) }
func containsStr(v, w string) bool { return strings.Contains(v, w) }
