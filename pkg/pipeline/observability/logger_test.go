package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capturingLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// TestEnrichLogger verifies run and node attributes are attached.
func TestEnrichLogger(t *testing.T) {
	logger, buf := capturingLogger()

	enriched := EnrichLogger(logger, "run-1", "generate", 2)
	enriched.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "node_id=generate")
	assert.Contains(t, out, "attempt=2")
}

// TestLogHelpers verifies the helpers emit their context and tolerate a
// nil logger.
func TestLogHelpers(t *testing.T) {
	logger, buf := capturingLogger()

	LogRunStart(logger, "run-1")
	LogNodeStart(logger, "describe")
	LogNodeComplete(logger, "describe", 12.5)
	LogNodeError(logger, "generate", errors.New("boom"))
	LogCheckpoint(logger, "generate", 128)
	LogCheckpointError(logger, "generate", "save", errors.New("disk full"))
	LogRunComplete(logger, "run-1", 99.0, 3)
	LogRunError(logger, "run-1", errors.New("fatal"), 99.0, "validate")

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "describe")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "fatal")

	// Nil loggers are ignored rather than panicking.
	assert.NotPanics(t, func() {
		LogRunStart(nil, "run-1")
		LogNodeError(nil, "x", errors.New("y"))
	})
}

// TestTimedOperation verifies elapsed time is non-negative milliseconds.
func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	assert.GreaterOrEqual(t, done(), 0.0)
}
