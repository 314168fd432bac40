// Package middleware carries validated frames through a context.Context, so
// HTTP handlers or pipeline stages behind a guarded entry point can pick up
// the working frame without re-validating.
package middleware

import (
	"context"

	framegate "github.com/reoring/framegate"
	"github.com/reoring/framegate/frame"
)

type frameKey struct{ name string }

// ContextWithFrame attaches a frame under a name.
func ContextWithFrame(ctx context.Context, name string, f *frame.Frame) context.Context {
	return context.WithValue(ctx, frameKey{name}, f)
}

// FrameFromContext retrieves a frame stored under a name.
func FrameFromContext(ctx context.Context, name string) (*frame.Frame, bool) {
	f, ok := ctx.Value(frameKey{name}).(*frame.Frame)
	return f, ok
}

// ContextWithValidated validates f against s and, on success, attaches the
// working frame (coerced and filtered per the schema config) under the name.
// On failure the original context is returned with the aggregated error.
func ContextWithValidated(ctx context.Context, name string, s *framegate.Schema, f *frame.Frame) (context.Context, error) {
	out, err := s.Validate(f)
	if err != nil {
		return ctx, err
	}
	return ContextWithFrame(ctx, name, out), nil
}
