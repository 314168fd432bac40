// Package walk implements the generic container traversal behind argument
// inspection: a depth-first visitor over slices, arrays, and maps with an
// explicit depth counter and a visited-pointer guard, so cycle handling and
// depth limits are explicit rather than relying on the call stack.
package walk

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Options controls traversal limits.
type Options struct {
	// MaxDepth bounds container nesting. Walk fails with a LimitError when a
	// node sits deeper than this.
	MaxDepth int
}

// LimitError reports a traversal that hit the depth limit or a
// self-referential container.
type LimitError struct {
	Path  []string
	Cycle bool
}

func (e *LimitError) Error() string {
	if e.Cycle {
		return "walk: cyclic container"
	}
	return "walk: max depth exceeded"
}

// Setter writes a replacement back into the current container position; nil
// when the position is not writable (array elements, the root itself).
type Setter func(v any)

// VisitFunc observes every node. Returning descend=false treats the node as
// a leaf even when it is a container; returning an error aborts the walk.
type VisitFunc func(path []string, v any, set Setter) (descend bool, err error)

// Walk traverses root depth-first. Container kinds traversed element-wise
// are slices, arrays, maps, and non-nil pointers to them; map keys are
// visited in sorted rendered order so traversal is deterministic.
func Walk(root any, opt Options, fn VisitFunc) error {
	w := &walker{opt: opt, fn: fn, seen: map[uintptr]struct{}{}}
	return w.visit(reflect.ValueOf(root), nil, 0, nil)
}

type walker struct {
	opt  Options
	fn   VisitFunc
	seen map[uintptr]struct{}
}

func (w *walker) visit(rv reflect.Value, path []string, depth int, set Setter) error {
	if depth > w.opt.MaxDepth {
		return &LimitError{Path: append([]string(nil), path...)}
	}

	var v any
	if rv.IsValid() {
		v = rv.Interface()
	}
	descend, err := w.fn(path, v, set)
	if err != nil || !descend {
		return err
	}

	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if err := w.enter(rv.Pointer(), path); err != nil {
			return err
		}
		defer w.leave(rv.Pointer())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			var es Setter
			if elem.CanSet() {
				es = assignSetter(elem)
			}
			if err := w.visit(elem, append(path, strconv.Itoa(i)), depth+1, es); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := w.visit(rv.Index(i), append(path, strconv.Itoa(i)), depth+1, nil); err != nil {
				return err
			}
		}
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if err := w.enter(rv.Pointer(), path); err != nil {
			return err
		}
		defer w.leave(rv.Pointer())
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			k := k
			ms := func(nv any) {
				val := reflect.ValueOf(nv)
				if val.IsValid() && val.Type().AssignableTo(rv.Type().Elem()) {
					rv.SetMapIndex(k, val)
				}
			}
			if err := w.visit(rv.MapIndex(k), append(path, fmt.Sprint(k.Interface())), depth+1, ms); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if err := w.enter(rv.Pointer(), path); err != nil {
			return err
		}
		defer w.leave(rv.Pointer())
		elem := rv.Elem()
		var es Setter
		if elem.CanSet() {
			es = assignSetter(elem)
		}
		if err := w.visit(elem, path, depth+1, es); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) enter(ptr uintptr, path []string) error {
	if _, dup := w.seen[ptr]; dup {
		return &LimitError{Path: append([]string(nil), path...), Cycle: true}
	}
	w.seen[ptr] = struct{}{}
	return nil
}

func (w *walker) leave(ptr uintptr) { delete(w.seen, ptr) }

func assignSetter(dst reflect.Value) Setter {
	return func(nv any) {
		val := reflect.ValueOf(nv)
		if val.IsValid() && val.Type().AssignableTo(dst.Type()) {
			dst.Set(val)
		}
	}
}
