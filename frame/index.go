package frame

import (
	"fmt"
	"strings"
)

// Index is the row-labeling structure of a Frame: one or more ordered,
// named, typed levels. Levels share the same length.
type Index struct {
	levels []*Series
}

// NewIndex builds an index from its levels, outermost first.
func NewIndex(levels ...*Series) *Index {
	return &Index{levels: append([]*Series(nil), levels...)}
}

// NLevels returns the number of index levels.
func (ix *Index) NLevels() int {
	if ix == nil {
		return 0
	}
	return len(ix.levels)
}

// Level returns the i-th level.
func (ix *Index) Level(i int) *Series { return ix.levels[i] }

// Names returns the level names in order.
func (ix *Index) Names() []string {
	names := make([]string, 0, ix.NLevels())
	for _, lv := range ix.levels {
		names = append(names, lv.Name())
	}
	return names
}

// Len returns the number of index entries (rows).
func (ix *Index) Len() int {
	if ix == nil || len(ix.levels) == 0 {
		return 0
	}
	return ix.levels[0].Len()
}

// key renders the composite label of row i; used for uniqueness checks.
func (ix *Index) key(i int) string {
	parts := make([]string, 0, len(ix.levels))
	for _, lv := range ix.levels {
		parts = append(parts, fmt.Sprint(lv.At(i)))
	}
	return strings.Join(parts, "\x1f")
}

// IsUnique reports whether no composite index label repeats.
func (ix *Index) IsUnique() bool {
	seen := make(map[string]struct{}, ix.Len())
	for i := 0; i < ix.Len(); i++ {
		k := ix.key(i)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

// IsMonotonic reports whether the index is sorted ascending or descending.
// Only single-level numeric or string indexes have a defined order; other
// shapes report false unless they have at most one entry.
func (ix *Index) IsMonotonic() bool {
	if ix.Len() <= 1 {
		return true
	}
	if len(ix.levels) != 1 {
		return false
	}
	lv := ix.levels[0]
	asc, desc := true, true
	switch {
	case lv.DType().Numeric():
		prev, _ := lv.Float64At(0)
		for i := 1; i < lv.Len(); i++ {
			cur, ok := lv.Float64At(i)
			if !ok {
				return false
			}
			if cur < prev {
				asc = false
			}
			if cur > prev {
				desc = false
			}
			prev = cur
		}
	case lv.DType().Stringy():
		prev, _ := lv.StringAt(0)
		for i := 1; i < lv.Len(); i++ {
			cur, ok := lv.StringAt(i)
			if !ok {
				return false
			}
			if cur < prev {
				asc = false
			}
			if cur > prev {
				desc = false
			}
			prev = cur
		}
	default:
		return false
	}
	return asc || desc
}
