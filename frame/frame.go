// Package frame provides the minimal columnar table the validator operates
// on: named typed Series, an optional multi-level Index, and a Frame tying
// them together. The package knows nothing about schemas; it only stores and
// projects data.
package frame

import "fmt"

// Frame is an ordered collection of equally long columns plus an optional
// row index.
type Frame struct {
	cols   []*Series
	byName map[string]int
	index  *Index
}

// New builds a Frame from columns in the given order. Duplicate column names
// or ragged column lengths are rejected.
func New(cols ...*Series) (*Frame, error) {
	f := &Frame{byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := f.byName[c.Name()]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c.Name())
		}
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.Name(), c.Len(), cols[0].Len())
		}
		f.byName[c.Name()] = i
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// MustNew is New panicking on error; intended for tests and fixtures.
func MustNew(cols ...*Series) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// WithIndex returns a copy of the frame carrying the given index.
func (f *Frame) WithIndex(ix *Index) *Frame {
	out := f.shallow()
	out.index = ix
	return out
}

// Index returns the frame's index, nil when none is attached.
func (f *Frame) Index() *Index { return f.index }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string {
	names := make([]string, 0, len(f.cols))
	for _, c := range f.cols {
		names = append(names, c.Name())
	}
	return names
}

// Column looks a column up by name.
func (f *Frame) Column(name string) (*Series, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return f.index.Len()
	}
	return f.cols[0].Len()
}

// Select projects the frame onto the named columns, in the order given,
// keeping the index. Unknown names are an error.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Series, 0, len(names))
	for _, n := range names {
		c, ok := f.Column(n)
		if !ok {
			return nil, fmt.Errorf("frame: no column %q", n)
		}
		cols = append(cols, c)
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.index = f.index
	return out, nil
}

// WithColumn returns a copy with the column replaced in place (matched by
// name) or appended when no column of that name exists.
func (f *Frame) WithColumn(s *Series) *Frame {
	out := f.shallow()
	if i, ok := out.byName[s.Name()]; ok {
		out.cols[i] = s
		return out
	}
	out.byName[s.Name()] = len(out.cols)
	out.cols = append(out.cols, s)
	return out
}

func (f *Frame) shallow() *Frame {
	out := &Frame{
		cols:   append([]*Series(nil), f.cols...),
		byName: make(map[string]int, len(f.byName)),
		index:  f.index,
	}
	for k, v := range f.byName {
		out.byName[k] = v
	}
	return out
}
