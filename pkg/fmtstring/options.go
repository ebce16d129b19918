package fmtstring

import (
	"log/slog"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring/observability"
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger logs every format call at Debug level with its call ID,
// placeholder counts, and duration.
//
// Default: nil (no logging)
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		f.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// Metrics use the global meter provider.
//
// Default: false
func WithMetrics(enabled bool) Option {
	return func(f *Formatter) {
		f.metricsEnabled = enabled
		if enabled {
			f.metrics = observability.NewMetricsRecorder()
		} else {
			f.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder enables metrics using a custom recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(f *Formatter) {
		if m == nil {
			return
		}
		f.metricsEnabled = true
		f.metrics = m
	}
}

// WithTracing enables or disables OpenTelemetry tracing.
// Spans use the global tracer provider.
//
// Default: false
func WithTracing(enabled bool) Option {
	return func(f *Formatter) {
		f.tracingEnabled = enabled
		if enabled {
			f.spans = observability.NewSpanManager()
		} else {
			f.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager enables tracing using a custom span manager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(f *Formatter) {
		if s == nil {
			return
		}
		f.tracingEnabled = true
		f.spans = s
	}
}
