package pipeline

import (
	"context"
)

// Counter is a minimal state for exercising the engine.
type Counter struct {
	Value int
}

// increment bumps the counter.
func increment(ctx Context, s Counter) (Counter, error) {
	s.Value++
	return s, nil
}

// passthrough returns the state unchanged.
func passthrough[S any](ctx Context, s S) (S, error) {
	return s, nil
}

// testCtx builds an execution context for tests.
func testCtx() Context {
	return NewContext(context.Background())
}
