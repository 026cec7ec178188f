package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// TestNewMetricsRecorder verifies construction against a real SDK meter
// provider, and that recording does not panic.
func TestNewMetricsRecorder(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()
	otel.SetMeterProvider(provider)

	recorder := NewMetricsRecorder()
	assert.NotNil(t, recorder)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		recorder.RecordNodeExecution(ctx, "generate", 50*time.Millisecond, nil)
		recorder.RecordNodeExecution(ctx, "validate", 10*time.Millisecond, errors.New("boom"))
		recorder.RecordGraphRun(ctx, true, time.Second)
		recorder.RecordCheckpoint(ctx, "generate", 2048)
	})
}

// TestNoopMetrics verifies the no-op recorder is safe to call.
func TestNoopMetrics(t *testing.T) {
	var m NoopMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordNodeExecution(ctx, "x", time.Millisecond, nil)
		m.RecordGraphRun(ctx, false, time.Millisecond)
		m.RecordCheckpoint(ctx, "x", 1)
	})
}

// TestNoopSpanManager verifies the no-op span manager round-trips contexts.
func TestNoopSpanManager(t *testing.T) {
	var sm NoopSpanManager
	ctx := context.Background()

	spanCtx, span := sm.StartRunSpan(ctx, "pipeline", "run-1")
	assert.Equal(t, ctx, spanCtx)

	nodeCtx, nodeSpan := sm.StartNodeSpan(ctx, "generate")
	assert.Equal(t, ctx, nodeCtx)

	assert.NotPanics(t, func() {
		sm.EndSpanWithError(span, nil)
		sm.EndSpanWithError(nodeSpan, errors.New("boom"))
		sm.AddSpanEvent(ctx, "event")
	})
}
