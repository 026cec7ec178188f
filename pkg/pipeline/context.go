package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context provides execution context to nodes. It extends context.Context
// with per-run metadata and a structured logger enriched as execution
// progresses.
//
// Context is immutable after creation; the executor derives a fresh context
// per node with the node ID set.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and node
	// context. Never nil: defaults to slog.Default().
	Logger() *slog.Logger

	// RunID returns the unique identifier for this run.
	// Auto-generated if not configured.
	RunID() string

	// NodeID returns the node currently executing, or "" before execution
	// starts.
	NodeID() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger *slog.Logger
	runID  string
	nodeID string
}

func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

func (c *executionContext) RunID() string {
	return c.runID
}

func (c *executionContext) NodeID() string {
	return c.nodeID
}

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context. The executor enriches it with
// run_id and node_id fields during execution.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		c.logger = logger
	}
}

// WithContextRunID sets the run identifier. A UUID is generated when not
// set. For checkpointing, pass WithRunID() to Run() as well.
func WithContextRunID(id string) ContextOption {
	return func(c *executionContext) {
		c.runID = id
	}
}

// NewContext wraps a standard context with pipeline metadata.
//
// Example:
//
//	ctx := pipeline.NewContext(context.Background(),
//	    pipeline.WithLogger(logger),
//	    pipeline.WithContextRunID("job-123"))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}

	for _, opt := range opts {
		opt(ec)
	}

	return ec
}

// withNodeID derives a per-node context with an enriched logger.
func (c *executionContext) withNodeID(nodeID string) *executionContext {
	return &executionContext{
		Context: c.Context,
		logger:  c.logger.With("run_id", c.runID, "node_id", nodeID),
		runID:   c.runID,
		nodeID:  nodeID,
	}
}
