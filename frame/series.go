package frame

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/reoring/framegate/codec"
)

// Series is an immutable, typed column of values with an optional validity
// mask. A nil mask means every row is valid; valid[i] == false marks row i as
// null. Mutating helpers return copies so a Series can be shared freely.
type Series struct {
	name  string
	dtype DType

	ints   []int64
	floats []float64
	strs   []string
	bools  []bool
	times  []time.Time

	valid []bool
	cats  []string // Categorical only
}

// CastError reports the first value that could not be converted losslessly.
// Row is -1 when the conversion pair itself is unsupported.
type CastError struct {
	Column string
	From   DType
	To     DType
	Row    int
	Value  any
}

func (e *CastError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("cannot cast column %q from %s to %s", e.Column, e.From, e.To)
	}
	return fmt.Sprintf("cannot cast column %q from %s to %s: row %d value %v", e.Column, e.From, e.To, e.Row, e.Value)
}

// NewInt builds an int64 Series.
func NewInt(name string, vals []int64) *Series {
	return &Series{name: name, dtype: Int, ints: append([]int64(nil), vals...)}
}

// NewFloat builds a float64 Series.
func NewFloat(name string, vals []float64) *Series {
	return &Series{name: name, dtype: Float, floats: append([]float64(nil), vals...)}
}

// NewString builds a string Series.
func NewString(name string, vals []string) *Series {
	return &Series{name: name, dtype: String, strs: append([]string(nil), vals...)}
}

// NewBool builds a bool Series.
func NewBool(name string, vals []bool) *Series {
	return &Series{name: name, dtype: Bool, bools: append([]bool(nil), vals...)}
}

// NewDatetime builds a time.Time Series.
func NewDatetime(name string, vals []time.Time) *Series {
	return &Series{name: name, dtype: Datetime, times: append([]time.Time(nil), vals...)}
}

// NewCategorical builds a categorical Series. When categories is empty the
// category set is derived from the distinct values in first-seen order.
// Values outside an explicit category set are kept; content validation
// reports them rather than the constructor.
func NewCategorical(name string, vals []string, categories ...string) *Series {
	cats := append([]string(nil), categories...)
	if len(cats) == 0 {
		seen := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			cats = append(cats, v)
		}
	}
	return &Series{name: name, dtype: Categorical, strs: append([]string(nil), vals...), cats: cats}
}

// WithNulls returns a copy with the given rows marked null.
func (s *Series) WithNulls(rows ...int) *Series {
	out := s.clone()
	if out.valid == nil {
		out.valid = make([]bool, s.Len())
		for i := range out.valid {
			out.valid[i] = true
		}
	}
	for _, r := range rows {
		if r >= 0 && r < len(out.valid) {
			out.valid[r] = false
		}
	}
	return out
}

// Rename returns a copy carrying the new name.
func (s *Series) Rename(name string) *Series {
	out := s.clone()
	out.name = name
	return out
}

func (s *Series) clone() *Series {
	out := *s
	out.valid = append([]bool(nil), s.valid...)
	if s.valid == nil {
		out.valid = nil
	}
	return &out
}

func (s *Series) Name() string { return s.name }

func (s *Series) DType() DType { return s.dtype }

// Categories returns the category set of a Categorical series, nil otherwise.
func (s *Series) Categories() []string { return s.cats }

func (s *Series) Len() int {
	switch s.dtype {
	case Int:
		return len(s.ints)
	case Float:
		return len(s.floats)
	case String, Categorical:
		return len(s.strs)
	case Bool:
		return len(s.bools)
	case Datetime:
		return len(s.times)
	default:
		return 0
	}
}

// IsNull reports whether row i is null.
func (s *Series) IsNull(i int) bool {
	return s.valid != nil && i >= 0 && i < len(s.valid) && !s.valid[i]
}

// NullRows returns the positions of all null rows.
func (s *Series) NullRows() []int {
	if s.valid == nil {
		return nil
	}
	var rows []int
	for i, ok := range s.valid {
		if !ok {
			rows = append(rows, i)
		}
	}
	return rows
}

// At returns the value at row i as any, or nil when the row is null.
func (s *Series) At(i int) any {
	if s.IsNull(i) {
		return nil
	}
	switch s.dtype {
	case Int:
		return s.ints[i]
	case Float:
		return s.floats[i]
	case String, Categorical:
		return s.strs[i]
	case Bool:
		return s.bools[i]
	case Datetime:
		return s.times[i]
	default:
		return nil
	}
}

// Float64At returns the numeric value at row i. ok is false for null rows and
// non-numeric dtypes.
func (s *Series) Float64At(i int) (float64, bool) {
	if s.IsNull(i) {
		return 0, false
	}
	switch s.dtype {
	case Int:
		return float64(s.ints[i]), true
	case Float:
		return s.floats[i], true
	default:
		return 0, false
	}
}

// StringAt returns the string value at row i for String/Categorical series.
func (s *Series) StringAt(i int) (string, bool) {
	if s.IsNull(i) || !s.dtype.Stringy() {
		return "", false
	}
	return s.strs[i], true
}

// Cast converts the series to the target dtype. Conversions are lossless or
// fail: a cast never truncates values or drops rows. Null rows are carried
// through untouched. Casting to the current dtype returns the receiver.
func (s *Series) Cast(to DType) (*Series, error) {
	if s.dtype == to {
		return s, nil
	}
	n := s.Len()
	fail := func(row int, val any) error {
		return &CastError{Column: s.name, From: s.dtype, To: to, Row: row, Value: val}
	}

	out := &Series{name: s.name, dtype: to, valid: append([]bool(nil), s.valid...)}
	if s.valid == nil {
		out.valid = nil
	}

	switch {
	case s.dtype == Int && to == Float:
		out.floats = make([]float64, n)
		for i, v := range s.ints {
			out.floats[i] = float64(v)
		}
	case s.dtype == Float && to == Int:
		out.ints = make([]int64, n)
		for i, v := range s.floats {
			if s.IsNull(i) {
				continue
			}
			if math.Trunc(v) != v || math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, fail(i, v)
			}
			out.ints[i] = int64(v)
		}
	case s.dtype == Int && to == String:
		out.strs = make([]string, n)
		for i, v := range s.ints {
			out.strs[i] = strconv.FormatInt(v, 10)
		}
	case s.dtype == Float && to == String:
		out.strs = make([]string, n)
		for i, v := range s.floats {
			out.strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	case s.dtype == Bool && to == String:
		out.strs = make([]string, n)
		for i, v := range s.bools {
			out.strs[i] = strconv.FormatBool(v)
		}
	case s.dtype == Datetime && to == String:
		out.strs = make([]string, n)
		for i, v := range s.times {
			out.strs[i] = codec.RFC3339{}.Encode(v)
		}
	case s.dtype == String && to == Int:
		out.ints = make([]int64, n)
		for i, v := range s.strs {
			if s.IsNull(i) {
				continue
			}
			iv, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fail(i, v)
			}
			out.ints[i] = iv
		}
	case s.dtype == String && to == Float:
		out.floats = make([]float64, n)
		for i, v := range s.strs {
			if s.IsNull(i) {
				continue
			}
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fail(i, v)
			}
			out.floats[i] = fv
		}
	case s.dtype == String && to == Bool:
		out.bools = make([]bool, n)
		for i, v := range s.strs {
			if s.IsNull(i) {
				continue
			}
			bv, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fail(i, v)
			}
			out.bools[i] = bv
		}
	case s.dtype == String && to == Datetime:
		out.times = make([]time.Time, n)
		for i, v := range s.strs {
			if s.IsNull(i) {
				continue
			}
			tv, err := codec.RFC3339{}.Decode(v)
			if err != nil {
				return nil, fail(i, v)
			}
			out.times[i] = tv
		}
	case s.dtype == String && to == Categorical:
		// derive categories from valid values only
		seen := make(map[string]struct{}, len(s.strs))
		for i, v := range s.strs {
			if s.IsNull(i) {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out.cats = append(out.cats, v)
		}
		out.strs = append([]string(nil), s.strs...)
	case s.dtype == Categorical && to == String:
		out.strs = append([]string(nil), s.strs...)
	default:
		return nil, fail(-1, nil)
	}
	return out, nil
}
