// Package observability provides structured logging, metrics, and tracing
// for template substitution.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// EnrichLogger adds the substitution ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "5f0c...")
//	enriched.Info("resolving") // includes substitution_id
func EnrichLogger(logger *slog.Logger, substitutionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("substitution_id", substitutionID))
}

// LogSubstituteStart logs the start of a top-level substitution.
func LogSubstituteStart(logger *slog.Logger, templateLen int) {
	if logger == nil {
		return
	}
	logger.Debug("substitution starting",
		slog.Int("template_length", templateLen),
	)
}

// LogSubstituteComplete logs a successful substitution.
func LogSubstituteComplete(logger *slog.Logger, durationMs float64, lookups int) {
	if logger == nil {
		return
	}
	logger.Debug("substitution completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("lookups", lookups),
	)
}

// LogSubstituteError logs a failed substitution.
func LogSubstituteError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("substitution failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLookup logs one routing decision of a prefix dispatcher.
// route is "prefix", "default" or "none".
func LogLookup(ctx context.Context, logger *slog.Logger, route, key, prefix string, found bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.DebugContext(ctx, "lookup dispatched",
		slog.String("route", route),
		slog.String("key", key),
		slog.String("prefix", prefix),
		slog.Bool("found", found),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCycle logs a detected resolution cycle.
func LogCycle(logger *slog.Logger, key string, chain []string) {
	if logger == nil {
		return
	}
	logger.Warn("substitution cycle",
		slog.String("key", key),
		slog.String("chain", strings.Join(chain, " -> ")),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
