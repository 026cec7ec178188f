package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_LinearFlow verifies basic linear execution.
func TestRun_LinearFlow(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("inc1", increment).
		AddNode("inc2", increment).
		AddNode("inc3", increment).
		AddEdge("inc1", "inc2").
		AddEdge("inc2", "inc3").
		AddEdge("inc3", END).
		SetEntry("inc1").
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Counter{})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Value)
}

// TestRun_NilContext verifies a nil context is rejected.
func TestRun_NilContext(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(nil, Counter{})
	assert.ErrorIs(t, err, ErrNilContext)
}

// TestRun_ConditionalLoop verifies router-driven looping until a condition.
func TestRun_ConditionalLoop(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("inc", increment).
		AddConditionalEdge("inc", func(ctx Context, s Counter) string {
			if s.Value >= 5 {
				return END
			}
			return "inc"
		}).
		SetEntry("inc").
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Counter{})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Value)
}

// TestRun_MaxIterations verifies runaway loops are cut off.
func TestRun_MaxIterations(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("inc", increment).
		AddConditionalEdge("inc", func(ctx Context, s Counter) string {
			return "inc"
		}).
		SetEntry("inc").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{}, WithMaxIterations(7))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxIterations)

	var maxErr *MaxIterationsError
	require.ErrorAs(t, err, &maxErr)
	assert.Equal(t, 7, maxErr.Max)
	assert.Equal(t, 7, maxErr.State.(Counter).Value)
}

// TestRun_NodeError verifies node failures are wrapped with the node ID.
func TestRun_NodeError(t *testing.T) {
	boom := errors.New("boom")
	compiled, err := NewGraph[Counter]().
		AddNode("bad", func(ctx Context, s Counter) (Counter, error) {
			return s, boom
		}).
		AddEdge("bad", END).
		SetEntry("bad").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{})

	var nodeErr *NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "bad", nodeErr.NodeID)
	assert.ErrorIs(t, err, boom)
}

// TestRun_NodePanic verifies node panics are recovered into PanicError.
func TestRun_NodePanic(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("explode", func(ctx Context, s Counter) (Counter, error) {
			panic("kaboom")
		}).
		AddEdge("explode", END).
		SetEntry("explode").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{})

	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "explode", panicErr.NodeID)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

// TestRun_Cancellation verifies context cancellation stops the run and
// preserves the latest state.
func TestRun_Cancellation(t *testing.T) {
	cancelCtx, cancel := context.WithCancel(context.Background())

	compiled, err := NewGraph[Counter]().
		AddNode("inc", func(ctx Context, s Counter) (Counter, error) {
			s.Value++
			if s.Value == 3 {
				cancel()
			}
			return s, nil
		}).
		AddConditionalEdge("inc", func(ctx Context, s Counter) string {
			return "inc"
		}).
		SetEntry("inc").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(NewContext(cancelCtx), Counter{})

	var cancelErr *CancellationError
	require.ErrorAs(t, err, &cancelErr)
	assert.Equal(t, 3, cancelErr.State.(Counter).Value)
}

// TestRun_RouterEmptyResult verifies routers returning "" are an error.
func TestRun_RouterEmptyResult(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddConditionalEdge("a", func(ctx Context, s Counter) string {
			return ""
		}).
		SetEntry("a").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{})

	var routerErr *RouterError
	require.ErrorAs(t, err, &routerErr)
	assert.Equal(t, "a", routerErr.FromNode)
	assert.ErrorIs(t, err, ErrInvalidRouterResult)
}

// TestRun_RouterUnknownTarget verifies routing to an unknown node is an error.
func TestRun_RouterUnknownTarget(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("a", increment).
		AddConditionalEdge("a", func(ctx Context, s Counter) string {
			return "ghost"
		}).
		SetEntry("a").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{})

	assert.ErrorIs(t, err, ErrRouterTargetNotFound)
}

// TestRun_Concurrent verifies a compiled graph is safe for concurrent runs.
func TestRun_Concurrent(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddNode("inc", increment).
		AddEdge("inc", END).
		SetEntry("inc").
		Compile()
	require.NoError(t, err)

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func() {
			_, err := compiled.Run(testCtx(), Counter{})
			done <- err
		}()
	}
	for i := 0; i < 20; i++ {
		assert.NoError(t, <-done)
	}
}
