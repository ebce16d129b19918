package catalog

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring/observability"
)

// Instrumented wraps a Store with logging, metrics, and tracing.
type Instrumented struct {
	next    Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

var _ Store = (*Instrumented)(nil)

// InstrumentOption configures an Instrumented store.
type InstrumentOption func(*Instrumented)

// WithLogger logs each operation: Debug on success, Warn on failure.
// ErrNotFound from Get is logged at Debug.
func WithLogger(logger *slog.Logger) InstrumentOption {
	return func(i *Instrumented) {
		i.logger = logger
	}
}

// WithMetrics records each operation with m.
func WithMetrics(m observability.MetricsRecorder) InstrumentOption {
	return func(i *Instrumented) {
		if m != nil {
			i.metrics = m
		}
	}
}

// WithSpans traces each operation with s.
func WithSpans(s observability.SpanManager) InstrumentOption {
	return func(i *Instrumented) {
		if s != nil {
			i.spans = s
		}
	}
}

// Instrument wraps next. With no options the wrapper only delegates.
func Instrument(next Store, opts ...InstrumentOption) *Instrumented {
	i := &Instrumented{
		next:    next,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Put implements Store.
func (i *Instrumented) Put(ctx context.Context, name, template string) (Info, error) {
	ctx, span := i.spans.StartCatalogSpan(ctx, "put", name)
	info, err := i.next.Put(ctx, name, template)
	if err == nil {
		i.spans.AddSpanEvent(ctx, "template.stored",
			attribute.String("template.id", info.ID),
			attribute.Int64("template.bytes", info.Size),
		)
	}
	i.finish(ctx, span, "put", name, err)
	return info, err
}

// Get implements Store.
func (i *Instrumented) Get(ctx context.Context, name string) (string, error) {
	ctx, span := i.spans.StartCatalogSpan(ctx, "get", name)
	text, err := i.next.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		i.spans.AddSpanEvent(ctx, "template.not_found")
	}
	i.finish(ctx, span, "get", name, err)
	return text, err
}

// List implements Store.
func (i *Instrumented) List(ctx context.Context) ([]Info, error) {
	ctx, span := i.spans.StartCatalogSpan(ctx, "list", "")
	infos, err := i.next.List(ctx)
	i.finish(ctx, span, "list", "", err)
	return infos, err
}

// Delete implements Store.
func (i *Instrumented) Delete(ctx context.Context, name string) error {
	ctx, span := i.spans.StartCatalogSpan(ctx, "delete", name)
	err := i.next.Delete(ctx, name)
	i.finish(ctx, span, "delete", name, err)
	return err
}

// Close implements Store.
func (i *Instrumented) Close() error {
	return i.next.Close()
}

func (i *Instrumented) finish(ctx context.Context, span trace.Span, op, name string, err error) {
	i.spans.EndSpanWithError(span, err)
	i.metrics.RecordCatalogOp(ctx, op, err)
	if err != nil && !errors.Is(err, ErrNotFound) {
		observability.LogCatalogError(i.logger, op, name, err)
		return
	}
	observability.LogCatalogOp(i.logger, op, name)
}
