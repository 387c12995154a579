package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records substitution metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSubstitution records a finished top-level substitution.
	RecordSubstitution(ctx context.Context, duration time.Duration, lookups int, err error)

	// RecordLookup records a single resolver call and whether it found a value.
	RecordLookup(ctx context.Context, found bool)

	// RecordCycle records a detected cycle. The key is left to spans and
	// logs to keep series cardinality bounded.
	RecordCycle(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	substitutions metric.Int64Counter
	latency       metric.Float64Histogram
	errors        metric.Int64Counter
	lookups       metric.Int64Counter
	lookupsPerRun metric.Int64Histogram
	cycles        metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("interpolate")

	substitutions, err := meter.Int64Counter("interpolate.substitutions",
		metric.WithDescription("Number of top-level substitutions"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("interpolate.substitution.latency_ms",
		metric.WithDescription("Substitution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("interpolate.errors",
		metric.WithDescription("Number of failed substitutions"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("interpolate.lookups",
		metric.WithDescription("Number of resolver lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupsPerRun, err := meter.Int64Histogram("interpolate.substitution.lookups",
		metric.WithDescription("Resolver lookups per substitution"),
	)
	if err != nil {
		return nil, err
	}

	cycles, err := meter.Int64Counter("interpolate.cycles",
		metric.WithDescription("Number of detected substitution cycles"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		substitutions: substitutions,
		latency:       latency,
		errors:        errs,
		lookups:       lookups,
		lookupsPerRun: lookupsPerRun,
		cycles:        cycles,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSubstitution records a substitution.
func (m *otelMetrics) RecordSubstitution(ctx context.Context, duration time.Duration, lookups int, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))

	m.substitutions.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.lookupsPerRun.Record(ctx, int64(lookups), attrs)

	if err != nil {
		m.errors.Add(ctx, 1)
	}
}

// RecordLookup records a resolver lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, found bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("found", found)))
}

// RecordCycle records a cycle.
func (m *otelMetrics) RecordCycle(ctx context.Context) {
	m.cycles.Add(ctx, 1)
}
