// Package rules provides ready-made frame-level checks for common
// cross-column relations, so callers can attach "a < b" style constraints
// without writing the row loop themselves.
package rules

import (
	"fmt"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
)

// Op is a comparison operator for column relations.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (o Op) String() string {
	switch o {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

func (o Op) holds(a, b float64) bool {
	switch o {
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	default:
		return false
	}
}

// Compare relates two numeric columns row by row: each row must satisfy
// "left op right". Rows where either side is null pass; nullability is a
// field concern, not a relation concern. A missing or non-numeric column
// fails the whole frame.
func Compare(left string, op Op, right string) framegate.FrameCheck {
	name := fmt.Sprintf("%s %s %s", left, op, right)
	return framegate.FrameCheck{Name: name, Fn: func(f *frame.Frame) framegate.CheckResult {
		lc, lok := f.Column(left)
		rc, rok := f.Column(right)
		if !lok || !rok {
			return framegate.CheckBool(false)
		}
		mask := make([]bool, f.NumRows())
		for i := range mask {
			lv, lvok := lc.Float64At(i)
			rv, rvok := rc.Float64At(i)
			if !lvok || !rvok {
				mask[i] = true
				continue
			}
			mask[i] = op.holds(lv, rv)
		}
		return framegate.CheckRows(mask)
	}}
}

// CompareConst relates a numeric column to a constant row by row.
func CompareConst(col string, op Op, bound float64) framegate.FrameCheck {
	name := fmt.Sprintf("%s %s %v", col, op, bound)
	return framegate.FrameCheck{Name: name, Fn: func(f *frame.Frame) framegate.CheckResult {
		c, ok := f.Column(col)
		if !ok {
			return framegate.CheckBool(false)
		}
		mask := make([]bool, f.NumRows())
		for i := range mask {
			v, vok := c.Float64At(i)
			if !vok {
				mask[i] = true
				continue
			}
			mask[i] = op.holds(v, bound)
		}
		return framegate.CheckRows(mask)
	}}
}
