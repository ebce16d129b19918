package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("fmtstring")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartFormatSpan starts a span for one format call.
	StartFormatSpan(ctx context.Context, callID string, templateRunes int) (context.Context, trace.Span)

	// EndFormatSpan records the scan summary on span and ends it.
	EndFormatSpan(span trace.Span, summary FormatSummary)

	// StartCatalogSpan starts a span for a catalog operation.
	StartCatalogSpan(ctx context.Context, op, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartFormatSpan(ctx context.Context, callID string, templateRunes int) (context.Context, trace.Span) {
	return StartFormatSpan(ctx, callID, templateRunes)
}

func (m *otelSpanManager) EndFormatSpan(span trace.Span, summary FormatSummary) {
	EndFormatSpan(span, summary)
}

func (m *otelSpanManager) StartCatalogSpan(ctx context.Context, op, name string) (context.Context, trace.Span) {
	return StartCatalogSpan(ctx, op, name)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartFormatSpan starts a span for one format call.
// Uses the global OTel tracer.
func StartFormatSpan(ctx context.Context, callID string, templateRunes int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fmtstring.format",
		trace.WithAttributes(
			attribute.String("call.id", callID),
			attribute.Int("template.runes", templateRunes),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndFormatSpan records the scan summary on span and ends it.
// Format calls never fail, so the status is always Ok.
func EndFormatSpan(span trace.Span, summary FormatSummary) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("placeholders.total", summary.Placeholders),
		attribute.Int("placeholders.substituted", summary.Substituted),
		attribute.Int("placeholders.missing", summary.Missing),
		attribute.Int("placeholders.escaped", summary.Escaped),
	)
	span.SetStatus(codes.Ok, "")
	span.End()
}

// StartCatalogSpan starts a span for a catalog operation.
// Uses the global OTel tracer.
func StartCatalogSpan(ctx context.Context, op, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fmtstring.catalog."+op,
		trace.WithAttributes(
			attribute.String("catalog.operation", op),
			attribute.String("template.name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
