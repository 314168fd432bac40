package frame

import (
	"bytes"
	"fmt"
	"io"
	"math"

	j "github.com/goccy/go-json"
)

// FromJSONRecords decodes a JSON array of flat records into a Frame. Column
// order is the first-seen key order across records; a key missing from a
// record (or explicitly null) becomes a null row. Column dtypes are
// inferred: integral numbers yield Int, any fractional number promotes the
// column to Float, strings yield String, booleans Bool. Mixed-type columns
// and nested values are rejected.
func FromJSONRecords(data []byte) (*Frame, error) {
	order, rows, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	cols := make([]*Series, 0, len(order))
	for _, name := range order {
		col, err := buildColumn(name, rows, 0, false)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// FromJSONRecordsTyped is FromJSONRecords with declared dtypes: each listed
// column is cast to its dtype after decoding (so "2024-01-01T00:00:00Z"
// becomes Datetime when declared). Unlisted columns are inferred.
func FromJSONRecordsTyped(data []byte, dtypes map[string]DType) (*Frame, error) {
	order, rows, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	cols := make([]*Series, 0, len(order))
	for _, name := range order {
		dt, declared := dtypes[name]
		col, err := buildColumn(name, rows, dt, declared)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// decodeRecords walks the token stream (number-preserving) so first-seen key
// order survives; map decoding would lose it.
func decodeRecords(data []byte) ([]string, []map[string]any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, nil, err
	}
	var order []string
	seen := map[string]struct{}{}
	var rows []map[string]any
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, err
		}
		row := map[string]any{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, nil, fmt.Errorf("jsontable: expected object key, found %v", kt)
			}
			vt, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			if _, nested := vt.(j.Delim); nested {
				return nil, nil, fmt.Errorf("jsontable: nested value for key %q; records must be flat", key)
			}
			row[key] = vt
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				order = append(order, key)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, nil, err
	}
	return order, rows, nil
}

func expectDelim(dec *j.Decoder, want rune) error {
	t, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("jsontable: unexpected end of input, want %q", want)
		}
		return err
	}
	if d, ok := t.(j.Delim); !ok || rune(d) != want {
		return fmt.Errorf("jsontable: expected %q, found %v", want, t)
	}
	return nil
}

func buildColumn(name string, rows []map[string]any, declared DType, hasDecl bool) (*Series, error) {
	n := len(rows)
	vals := make([]any, n)
	var nulls []int
	for i, row := range rows {
		v, ok := row[name]
		if !ok || v == nil {
			nulls = append(nulls, i)
			continue
		}
		vals[i] = v
	}

	col, err := inferSeries(name, vals, nulls)
	if err != nil {
		return nil, err
	}
	// mask nulls before casting so Cast skips them
	if len(nulls) > 0 {
		col = col.WithNulls(nulls...)
	}
	if hasDecl && col.DType() != declared {
		cast, err := col.Cast(declared)
		if err != nil {
			return nil, fmt.Errorf("jsontable: column %q: %w", name, err)
		}
		col = cast
	}
	return col, nil
}

func inferSeries(name string, vals []any, nulls []int) (*Series, error) {
	isNull := make(map[int]struct{}, len(nulls))
	for _, r := range nulls {
		isNull[r] = struct{}{}
	}

	kind := 0 // 0 unknown, 1 int, 2 float, 3 string, 4 bool
	for i, v := range vals {
		if _, skip := isNull[i]; skip {
			continue
		}
		var k int
		switch t := v.(type) {
		case j.Number:
			k = 1
			if f, err := t.Float64(); err == nil && math.Trunc(f) != f {
				k = 2
			}
		case string:
			k = 3
		case bool:
			k = 4
		default:
			return nil, fmt.Errorf("jsontable: column %q row %d: unsupported value %v", name, i, v)
		}
		switch {
		case kind == 0:
			kind = k
		case kind == k:
		case kind == 1 && k == 2, kind == 2 && k == 1:
			kind = 2
		default:
			return nil, fmt.Errorf("jsontable: column %q mixes value types", name)
		}
	}
	if kind == 0 {
		return nil, fmt.Errorf("jsontable: column %q has no values to infer a dtype from", name)
	}

	switch kind {
	case 1:
		out := make([]int64, len(vals))
		for i, v := range vals {
			if _, skip := isNull[i]; skip {
				continue
			}
			iv, err := v.(j.Number).Int64()
			if err != nil {
				return nil, fmt.Errorf("jsontable: column %q row %d: %w", name, i, err)
			}
			out[i] = iv
		}
		return NewInt(name, out), nil
	case 2:
		out := make([]float64, len(vals))
		for i, v := range vals {
			if _, skip := isNull[i]; skip {
				continue
			}
			fv, err := v.(j.Number).Float64()
			if err != nil {
				return nil, fmt.Errorf("jsontable: column %q row %d: %w", name, i, err)
			}
			out[i] = fv
		}
		return NewFloat(name, out), nil
	case 3:
		out := make([]string, len(vals))
		for i, v := range vals {
			if _, skip := isNull[i]; skip {
				continue
			}
			out[i] = v.(string)
		}
		return NewString(name, out), nil
	default:
		out := make([]bool, len(vals))
		for i, v := range vals {
			if _, skip := isNull[i]; skip {
				continue
			}
			out[i] = v.(bool)
		}
		return NewBool(name, out), nil
	}
}
