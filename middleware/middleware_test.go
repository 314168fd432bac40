package middleware_test

import (
	"context"
	"testing"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/dsl"
	"github.com/reoring/framegate/frame"
	"github.com/reoring/framegate/middleware"
)

func TestFrameRoundTrip(t *testing.T) {
	f := frame.MustNew(frame.NewInt("a", []int64{1}))
	ctx := middleware.ContextWithFrame(context.Background(), "orders", f)

	got, ok := middleware.FrameFromContext(ctx, "orders")
	if !ok || got != f {
		t.Fatalf("frame not round-tripped: %v %v", got, ok)
	}
	if _, ok := middleware.FrameFromContext(ctx, "other"); ok {
		t.Fatal("unrelated name must not resolve")
	}
}

func TestContextWithValidated(t *testing.T) {
	s := dsl.Schema().Field("v", frame.Int, dsl.Coerce()).Filter().MustBuild()
	raw := frame.MustNew(
		frame.NewString("v", []string{"3"}),
		frame.NewInt("extra", []int64{0}),
	)

	ctx, err := middleware.ContextWithValidated(context.Background(), "t", s, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := middleware.FrameFromContext(ctx, "t")
	if !ok {
		t.Fatal("validated frame missing from context")
	}
	if got.NumCols() != 1 {
		t.Fatalf("expected filtered working frame, got columns %v", got.Columns())
	}
	col, _ := got.Column("v")
	if col.DType() != frame.Int {
		t.Fatalf("expected coerced column, got %v", col.DType())
	}

	bad := frame.MustNew(frame.NewString("v", []string{"x"}))
	_, err = middleware.ContextWithValidated(context.Background(), "t", s, bad)
	if _, ok := framegate.AsIssues(err); !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
}
