package fmtstring

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring/observability"
)

// Formatter substitutes placeholders and reports each call to the
// configured logger, metrics recorder, and span manager.
//
// Create with NewFormatter(). Formatter is safe for concurrent use after
// construction.
type Formatter struct {
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	metricsEnabled bool
	tracingEnabled bool
}

// NewFormatter creates a Formatter with the given options.
//
// With no options the Formatter only scans: no logging, no metrics,
// no tracing.
//
// Example:
//
//	f := fmtstring.NewFormatter(
//	    fmtstring.WithLogger(logger),
//	    fmtstring.WithMetrics(true),
//	)
//	out := f.Format(ctx, "{0} + {0}", fmtstring.Positional(2))
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format replaces the placeholders in template with values from lookup.
//
// It never fails: empty keys, keys containing whitespace, and unterminated
// braces are copied literally, and missing keys become "".
func (f *Formatter) Format(ctx context.Context, template string, lookup Lookup) string {
	out, _ := f.FormatWithStats(ctx, template, lookup)
	return out
}

// FormatWithStats is Format that also returns what the scan did.
func (f *Formatter) FormatWithStats(ctx context.Context, template string, lookup Lookup) (string, Stats) {
	var stats Stats
	if template == "" {
		return "", stats
	}
	if !f.instrumented() {
		return scan(template, lookup, &stats), stats
	}

	done := observability.TimedOperation()
	callID := newCallID()
	runes := utf8.RuneCountInString(template)

	ctx, span := f.spans.StartFormatSpan(ctx, callID, runes)
	out := scan(template, lookup, &stats)
	elapsed := done()

	summary := stats.summary(runes)
	f.spans.EndFormatSpan(span, summary)
	f.metrics.RecordFormat(ctx, summary, elapsed)
	observability.LogFormat(observability.EnrichLogger(f.logger, callID), summary, observability.Milliseconds(elapsed))

	return out, stats
}

// FormatAll formats every template with the same lookup.
// A nil slice yields nil.
func (f *Formatter) FormatAll(ctx context.Context, templates []string, lookup Lookup) []string {
	if templates == nil {
		return nil
	}
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = f.Format(ctx, t, lookup)
	}
	return out
}

// FormatMap formats every string value of m, descending into nested
// map[string]any and []any values. Other values are copied as-is.
// A nil map yields nil.
func (f *Formatter) FormatMap(ctx context.Context, m map[string]any, lookup Lookup) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = f.formatValue(ctx, v, lookup)
	}
	return out
}

func (f *Formatter) formatValue(ctx context.Context, v any, lookup Lookup) any {
	switch val := v.(type) {
	case string:
		return f.Format(ctx, val, lookup)
	case map[string]any:
		return f.FormatMap(ctx, val, lookup)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = f.formatValue(ctx, item, lookup)
		}
		return out
	default:
		return v
	}
}

func (f *Formatter) instrumented() bool {
	return f.logger != nil || f.metricsEnabled || f.tracingEnabled
}

func (s Stats) summary(runes int) observability.FormatSummary {
	return observability.FormatSummary{
		TemplateRunes: runes,
		Placeholders:  s.Placeholders,
		Substituted:   s.Substituted,
		Missing:       s.Missing,
		Escaped:       s.Escaped,
	}
}

func newCallID() string {
	return "fmt-" + uuid.New().String()[:8]
}

// defaultFormatter backs the package-level functions. It has no
// observability configured.
var defaultFormatter = NewFormatter()

// Format replaces the placeholders in template with values from lookup.
//
// Example:
//
//	fmtstring.Format("Hello {0}, you are {1} years old", fmtstring.Positional("John", 25))
//	// "Hello John, you are 25 years old"
//
//	fmtstring.Format("{name} is {{name}}", fmtstring.Named(map[string]any{"name": "John"}))
//	// "John is {name}"
func Format(template string, lookup Lookup) string {
	return defaultFormatter.Format(context.Background(), template, lookup)
}

// FormatNullable is Format for optional templates. A nil or empty
// template is returned unchanged without scanning.
func FormatNullable(template *string, lookup Lookup) *string {
	if template == nil || *template == "" {
		return template
	}
	out := Format(*template, lookup)
	return &out
}

// FormatAll formats every template with the same lookup.
func FormatAll(templates []string, lookup Lookup) []string {
	return defaultFormatter.FormatAll(context.Background(), templates, lookup)
}

// FormatMap formats every string value of m recursively.
func FormatMap(m map[string]any, lookup Lookup) map[string]any {
	return defaultFormatter.FormatMap(context.Background(), m, lookup)
}
