package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Attribute keys shared by spans, metrics and log lines.
const (
	AttrOperation = "rule34.operation"
	AttrQuery     = "rule34.query"
	AttrLimit     = "rule34.limit"
	AttrError     = "rule34.error"
	AttrCacheHit  = "rule34.cache_hit"
	AttrNamespace = "rule34.cache_namespace"
)

// CallMeta describes one client call for telemetry purposes.
type CallMeta struct {
	Operation string // search_by_id, search_by_tags, ... (required)
	Query     string // identifier, change-token or tag-string (optional)
	Limit     int    // result limit; zero when the operation takes none
}

// SpanName returns the deterministic span name for this call.
// Format: rule34.<operation>
func (m CallMeta) SpanName() string {
	return "rule34." + m.Operation
}

// Validate reports whether the metadata can label a call.
func (m CallMeta) Validate() error {
	if m.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}

// Attributes returns the identifying attributes of the call.
// Empty query and zero limit are omitted.
func (m CallMeta) Attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrOperation, m.Operation),
	}
	if m.Query != "" {
		attrs = append(attrs, attribute.String(AttrQuery, m.Query))
	}
	if m.Limit > 0 {
		attrs = append(attrs, attribute.Int(AttrLimit, m.Limit))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with call-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a client call.
	StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with call metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := append(meta.Attributes(), attribute.Bool(AttrError, false))

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool(AttrError, true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
