package framegate

import "context"

// Arg is one named, already-bound argument of a guarded call.
type Arg struct {
	Name  string
	Value any
}

// Args is the ordered argument list handed to a guarded callable.
type Args []Arg

// Binding maps parameter names (and a reserved return slot) to compiled
// schemas. Parameters and returns absent from the binding are still walked
// for Bound values nested inside containers.
type Binding struct {
	In  map[string]*Schema
	Out *Schema
}

// TargetFunc is the callable shape the generic wrapper brackets. Typed
// front-ends (Wrap1, Wrap2) adapt ordinary functions onto it.
type TargetFunc func(ctx context.Context, args Args) (any, error)

// Wrap returns a callable that validates schema-bound frames in the
// arguments before fn runs and in the result after it returns. If any input
// validation fails, fn never executes and the aggregated Issues are returned
// as the error. An output validation failure is returned even though fn
// already ran; side effects of fn are not rolled back. Validated working
// frames (coerced/filtered copies) replace the originals in the argument
// list and, where containers allow writing back, inside nested slices and
// maps.
func Wrap(fn TargetFunc, b Binding, opts ...GuardOpt) TargetFunc {
	var opt GuardOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return func(ctx context.Context, args Args) (any, error) {
		var iss Issues
		bound := make(Args, len(args))
		for i, a := range args {
			nv, ai := inspect(Root().Field(a.Name), a.Value, b.In[a.Name], opt)
			iss = AppendIssues(iss, ai...)
			bound[i] = Arg{Name: a.Name, Value: nv}
		}
		if len(iss) > 0 {
			return nil, iss
		}

		res, err := fn(ctx, bound)
		if err != nil {
			return res, err
		}

		nres, ri := inspect(Root().Field("return"), res, b.Out, opt)
		if len(ri) > 0 {
			return nres, ri
		}
		return nres, nil
	}
}

// Wrap1 brackets a unary function: the named argument is validated against
// in (nil to skip), the result against out.
func Wrap1[A, R any](fn func(context.Context, A) (R, error), argName string, in, out *Schema, opts ...GuardOpt) func(context.Context, A) (R, error) {
	inner := func(ctx context.Context, args Args) (any, error) {
		a, _ := args[0].Value.(A)
		return fn(ctx, a)
	}
	bind := Binding{Out: out}
	if in != nil {
		bind.In = map[string]*Schema{argName: in}
	}
	wrapped := Wrap(inner, bind, opts...)
	return func(ctx context.Context, a A) (R, error) {
		res, err := wrapped(ctx, Args{{Name: argName, Value: a}})
		r, _ := res.(R)
		return r, err
	}
}

// Wrap2 brackets a binary function; either input schema may be nil.
func Wrap2[A, B, R any](fn func(context.Context, A, B) (R, error), nameA, nameB string, inA, inB, out *Schema, opts ...GuardOpt) func(context.Context, A, B) (R, error) {
	inner := func(ctx context.Context, args Args) (any, error) {
		a, _ := args[0].Value.(A)
		b, _ := args[1].Value.(B)
		return fn(ctx, a, b)
	}
	bind := Binding{Out: out, In: map[string]*Schema{}}
	if inA != nil {
		bind.In[nameA] = inA
	}
	if inB != nil {
		bind.In[nameB] = inB
	}
	wrapped := Wrap(inner, bind, opts...)
	return func(ctx context.Context, a A, b B) (R, error) {
		res, err := wrapped(ctx, Args{{Name: nameA, Value: a}, {Name: nameB, Value: b}})
		r, _ := res.(R)
		return r, err
	}
}
