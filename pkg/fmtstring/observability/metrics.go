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

// MetricsRecorder records fmtstring metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordFormat records a completed format call.
	RecordFormat(ctx context.Context, summary FormatSummary, duration time.Duration)

	// RecordCatalogOp records a catalog operation and whether it failed.
	RecordCatalogOp(ctx context.Context, op string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	formatCalls   metric.Int64Counter
	formatLatency metric.Float64Histogram
	templateRunes metric.Int64Histogram
	substitutions metric.Int64Counter
	missingKeys   metric.Int64Counter
	catalogOps    metric.Int64Counter
	catalogErrors metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("fmtstring")

	formatCalls, err := meter.Int64Counter("fmtstring.format.calls",
		metric.WithDescription("Number of format calls"),
	)
	if err != nil {
		return nil, err
	}

	formatLatency, err := meter.Float64Histogram("fmtstring.format.latency_ms",
		metric.WithDescription("Format call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	templateRunes, err := meter.Int64Histogram("fmtstring.format.template_runes",
		metric.WithDescription("Template length in code points"),
		metric.WithUnit("{rune}"),
	)
	if err != nil {
		return nil, err
	}

	substitutions, err := meter.Int64Counter("fmtstring.format.substitutions",
		metric.WithDescription("Number of placeholders replaced with a value"),
	)
	if err != nil {
		return nil, err
	}

	missingKeys, err := meter.Int64Counter("fmtstring.format.missing_keys",
		metric.WithDescription("Number of placeholders whose key was not in the lookup"),
	)
	if err != nil {
		return nil, err
	}

	catalogOps, err := meter.Int64Counter("fmtstring.catalog.ops",
		metric.WithDescription("Number of template catalog operations"),
	)
	if err != nil {
		return nil, err
	}

	catalogErrors, err := meter.Int64Counter("fmtstring.catalog.errors",
		metric.WithDescription("Number of failed template catalog operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		formatCalls:   formatCalls,
		formatLatency: formatLatency,
		templateRunes: templateRunes,
		substitutions: substitutions,
		missingKeys:   missingKeys,
		catalogOps:    catalogOps,
		catalogErrors: catalogErrors,
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

// RecordFormat records a format call.
func (m *otelMetrics) RecordFormat(ctx context.Context, summary FormatSummary, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.Bool("missing", summary.Missing > 0),
	)

	m.formatCalls.Add(ctx, 1, attrs)
	m.formatLatency.Record(ctx, Milliseconds(duration), attrs)
	m.templateRunes.Record(ctx, int64(summary.TemplateRunes))

	if summary.Substituted > 0 {
		m.substitutions.Add(ctx, int64(summary.Substituted))
	}
	if summary.Missing > 0 {
		m.missingKeys.Add(ctx, int64(summary.Missing))
	}
}

// RecordCatalogOp records a catalog operation.
func (m *otelMetrics) RecordCatalogOp(ctx context.Context, op string, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
	)
	m.catalogOps.Add(ctx, 1, attrs)
	if err != nil {
		m.catalogErrors.Add(ctx, 1, attrs)
	}
}
