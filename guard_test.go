package framegate_test

import (
	"context"
	"testing"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/dsl"
	"github.com/reoring/framegate/frame"
)

func goodFrame() *frame.Frame {
	return frame.MustNew(
		frame.NewInt("col1", []int64{1, 2}),
		frame.NewFloat("col3", []float64{1.0, 2.0}),
	)
}

func badFrame() *frame.Frame {
	return frame.MustNew(
		frame.NewInt("col1", []int64{1, 2}),
		frame.NewFloat("col3", []float64{-1.0, 2.0}),
	)
}

func TestWrap1_ValidInputReachesBody(t *testing.T) {
	s := numSchema(t)
	called := false
	fn := framegate.Wrap1(func(ctx context.Context, df *frame.Frame) (int, error) {
		called = true
		return df.NumRows(), nil
	}, "df", s, nil)

	n, err := fn(context.Background(), goodFrame())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || n != 2 {
		t.Fatalf("body did not run with the validated frame: called=%v n=%d", called, n)
	}
}

func TestWrap1_InvalidInputSkipsBody(t *testing.T) {
	s := numSchema(t)
	called := false
	fn := framegate.Wrap1(func(ctx context.Context, df *frame.Frame) (int, error) {
		called = true
		return 0, nil
	}, "df", s, nil)

	_, err := fn(context.Background(), badFrame())
	if called {
		t.Fatal("body must not run when input validation fails")
	}
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeTooSmall || iss[0].Path != "/df/col3" {
		t.Fatalf("expected too_small at /df/col3, got %v", iss)
	}
}

func TestWrap1_CoercedFrameFlowsToBody(t *testing.T) {
	s := dsl.Schema().Field("v", frame.Int, dsl.Coerce()).MustBuild()
	fn := framegate.Wrap1(func(ctx context.Context, df *frame.Frame) (frame.DType, error) {
		col, _ := df.Column("v")
		return col.DType(), nil
	}, "df", s, nil)

	dt, err := fn(context.Background(), frame.MustNew(frame.NewString("v", []string{"3"})))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dt != frame.Int {
		t.Fatalf("body must see the coerced working frame, got dtype %v", dt)
	}
}

func TestWrap1_OutputValidatedAfterBodyRan(t *testing.T) {
	s := numSchema(t)
	ran := false
	fn := framegate.Wrap1(func(ctx context.Context, n int) (*frame.Frame, error) {
		ran = true
		return badFrame(), nil
	}, "n", nil, s)

	_, err := fn(context.Background(), 0)
	if !ran {
		t.Fatal("body should have run before output validation")
	}
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/return/col3" {
		t.Fatalf("expected too_small at /return/col3, got %v", iss)
	}
}

func TestWrap_NestedBoundMatchesTopLevelShape(t *testing.T) {
	s := numSchema(t)

	// top-level error for comparison
	_, topErr := s.Validate(badFrame())
	top, _ := framegate.AsIssues(topErr)

	fn := framegate.Wrap1(func(ctx context.Context, batch []any) (int, error) {
		return len(batch), nil
	}, "batch", nil, nil)

	batch := []any{framegate.Bind(s, badFrame())}
	_, err := fn(context.Background(), batch)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != len(top) {
		t.Fatalf("nested and top-level validation disagree: %v vs %v", iss, top)
	}
	got, want := iss[0], top[0]
	if got.Code != want.Code || got.Rule != want.Rule {
		t.Fatalf("nested issue differs from top-level: %+v vs %+v", got, want)
	}
	if got.Path != "/batch/0/col3" {
		t.Fatalf("nested path must include container position, got %q", got.Path)
	}
}

func TestWrap_NestedBoundReplacedWithWorkingFrame(t *testing.T) {
	s := dsl.Schema().Field("v", frame.Int, dsl.Coerce()).MustBuild()
	var seen frame.DType
	fn := framegate.Wrap1(func(ctx context.Context, batch []any) (int, error) {
		b := batch[0].(framegate.Bound)
		col, _ := b.Frame.Column("v")
		seen = col.DType()
		return 0, nil
	}, "batch", nil, nil)

	batch := []any{framegate.Bind(s, frame.MustNew(frame.NewString("v", []string{"5"})))}
	if _, err := fn(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != frame.Int {
		t.Fatalf("coerced frame was not written back into the slice, dtype %v", seen)
	}
}

func TestWrap_MapValuesInspected(t *testing.T) {
	s := numSchema(t)
	fn := framegate.Wrap1(func(ctx context.Context, m map[string]any) (int, error) {
		return len(m), nil
	}, "tables", nil, nil)

	m := map[string]any{
		"good": framegate.Bind(s, goodFrame()),
		"bad":  framegate.Bind(s, badFrame()),
	}
	_, err := fn(context.Background(), m)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/tables/bad/col3" {
		t.Fatalf("expected one issue at /tables/bad/col3, got %v", iss)
	}
}

func TestWrap_UnannotatedValuesPassThrough(t *testing.T) {
	fn := framegate.Wrap1(func(ctx context.Context, v []any) (int, error) {
		return len(v), nil
	}, "v", nil, nil)

	n, err := fn(context.Background(), []any{1, "two", goodFrame(), nil})
	if err != nil || n != 4 {
		t.Fatalf("values without schemas must pass through: n=%d err=%v", n, err)
	}
}

func TestWrap_SchemaBoundSlotRequiresFrame(t *testing.T) {
	s := numSchema(t)
	fn := framegate.Wrap1(func(ctx context.Context, v string) (int, error) {
		return 0, nil
	}, "v", s, nil)

	_, err := fn(context.Background(), "not a frame")
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeInvalidDType || iss[0].Path != "/v" {
		t.Fatalf("expected invalid_dtype at /v, got %v", iss)
	}
}

func TestWrap_DepthLimit(t *testing.T) {
	s := numSchema(t)
	deep := []any{[]any{[]any{[]any{framegate.Bind(s, goodFrame())}}}}

	fn := framegate.Wrap1(func(ctx context.Context, v []any) (int, error) {
		return 0, nil
	}, "v", nil, nil, framegate.GuardOpt{MaxDepth: 2})

	_, err := fn(context.Background(), deep)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeMaxDepth {
		t.Fatalf("expected max_depth, got %v", iss)
	}
}

func TestWrap_BoundWithoutSchemaReportsIssue(t *testing.T) {
	fn := framegate.Wrap1(func(ctx context.Context, v []any) (int, error) {
		return len(v), nil
	}, "v", nil, nil)

	// zero-value Bound nested in a container
	_, err := fn(context.Background(), []any{framegate.Bound{Frame: goodFrame()}})
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeDefinition || iss[0].Path != "/v/0" {
		t.Fatalf("expected definition issue at /v/0, got %v", iss)
	}

	// and at the top level of an argument
	top := framegate.Wrap1(func(ctx context.Context, b framegate.Bound) (int, error) {
		return 0, nil
	}, "b", nil, nil)
	_, err = top(context.Background(), framegate.Bound{})
	iss, _ = framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeDefinition || iss[0].Path != "/b" {
		t.Fatalf("expected definition issue at /b, got %v", iss)
	}
}

func TestWrap_CyclicContainer(t *testing.T) {
	cyc := make([]any, 1)
	cyc[0] = cyc

	fn := framegate.Wrap1(func(ctx context.Context, v []any) (int, error) {
		return 0, nil
	}, "v", nil, nil)

	_, err := fn(context.Background(), cyc)
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != framegate.CodeCycle {
		t.Fatalf("expected cycle issue, got %v", iss)
	}
}

func TestWrap2_BothArgumentsValidated(t *testing.T) {
	s := numSchema(t)
	fn := framegate.Wrap2(func(ctx context.Context, a, b *frame.Frame) (int, error) {
		return a.NumRows() + b.NumRows(), nil
	}, "left", "right", s, s, nil)

	_, err := fn(context.Background(), badFrame(), badFrame())
	iss, _ := framegate.AsIssues(err)
	if len(iss) != 2 {
		t.Fatalf("both arguments must be reported in one pass, got %v", iss)
	}
	if iss[0].Path != "/left/col3" || iss[1].Path != "/right/col3" {
		t.Fatalf("unexpected paths: %v", iss)
	}
}
