// Package observability provides logging, metrics, and tracing hooks
// for fmtstring formatters and template catalogs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// FormatSummary describes one completed format call.
type FormatSummary struct {
	TemplateRunes int
	Placeholders  int
	Substituted   int
	Missing       int
	Escaped       int
}

// EnrichLogger adds the formatter call ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "fmt-1a2b3c4d")
//	enriched.Debug("scanning") // includes call_id
func EnrichLogger(logger *slog.Logger, callID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("call_id", callID))
}

// LogFormat logs a completed format call.
func LogFormat(logger *slog.Logger, summary FormatSummary, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template formatted",
		slog.Int("template_runes", summary.TemplateRunes),
		slog.Int("placeholders", summary.Placeholders),
		slog.Int("substituted", summary.Substituted),
		slog.Int("missing", summary.Missing),
		slog.Int("escaped", summary.Escaped),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCatalogOp logs a successful catalog operation.
func LogCatalogOp(logger *slog.Logger, op, name string) {
	if logger == nil {
		return
	}
	logger.Debug("catalog operation",
		slog.String("operation", op),
		slog.String("name", name),
	)
}

// LogCatalogError logs a failed catalog operation.
func LogCatalogError(logger *slog.Logger, op, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("catalog operation failed",
		slog.String("operation", op),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
