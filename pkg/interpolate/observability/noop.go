package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordSubstitution does nothing.
func (NoopMetrics) RecordSubstitution(_ context.Context, _ time.Duration, _ int, _ error) {}

// RecordLookup does nothing.
func (NoopMetrics) RecordLookup(_ context.Context, _ bool) {}

// RecordCycle does nothing.
func (NoopMetrics) RecordCycle(_ context.Context) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
var noopSpan = noop.Span{}

// StartSubstituteSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartSubstituteSpan(ctx context.Context, _ string, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
