package framegate

import (
	"regexp"

	"github.com/reoring/framegate/frame"
)

// CheckFn is a custom predicate over one column. It may judge the whole
// column at once or return a per-row verdict; see CheckResult.
type CheckFn func(*frame.Series) CheckResult

// FrameCheckFn is a custom predicate over the whole (validated, working)
// frame.
type FrameCheckFn func(*frame.Frame) CheckResult

// CheckResult is the tagged outcome of a custom check: either one verdict
// for the whole column/frame or a per-row verdict mask.
type CheckResult struct {
	rowwise bool
	pass    bool
	rows    []bool
}

// CheckBool builds a whole-column verdict.
func CheckBool(ok bool) CheckResult { return CheckResult{pass: ok} }

// CheckRows builds a per-row verdict; false entries mark failing rows.
func CheckRows(mask []bool) CheckResult {
	return CheckResult{rowwise: true, rows: append([]bool(nil), mask...)}
}

// Rowwise reports whether the result carries per-row verdicts.
func (r CheckResult) Rowwise() bool { return r.rowwise }

// Pass reports the whole-column verdict; meaningless when Rowwise.
func (r CheckResult) Pass() bool { return r.pass }

// Rows returns the per-row verdicts; nil unless Rowwise.
func (r CheckResult) Rows() []bool { return r.rows }

// Check names a custom column predicate.
type Check struct {
	Name string
	Fn   CheckFn
}

// FrameCheck names a custom whole-frame predicate.
type FrameCheck struct {
	Name string
	Fn   FrameCheckFn
}

// Field is the immutable declared specification of one column or index
// level: dtype plus constraints. Zero value semantics: required, not
// nullable, not unique, no coercion, no bounds.
type Field struct {
	Name string
	Type frame.DType

	// Alias matches a column by this name instead of Name. With Regex set,
	// the alias (or Name when Alias is empty) is a pattern matched against
	// column names from the start of the name, and the field may claim any
	// number of columns; each matched column is validated independently.
	Alias string
	Regex bool

	Nullable bool
	Optional bool
	Unique   bool
	Coerce   bool

	// Ordering bounds; numeric dtypes only (enforced at compile time).
	Gt *float64
	Ge *float64
	Lt *float64
	Le *float64

	// Membership sets; values are normalized to the declared dtype at
	// compile time.
	IsIn  []any
	NotIn []any

	// String content constraints; string/categorical dtypes only.
	StrStartsWith *string
	StrEndsWith   *string
	StrContains   *string

	Check *Check

	// compiled at NewSchema time when Regex is set
	pattern *regexp.Regexp
}

// matchName is the name (or pattern source) a column must match.
func (f Field) matchName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}
