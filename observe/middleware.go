package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ExecuteFunc is the signature for an observed client call.
type ExecuteFunc func(ctx context.Context, meta CallMeta) (any, error)

// Middleware wraps client calls with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ExecuteFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
// Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// Logger returns the middleware's logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap wraps an ExecuteFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, meta CallMeta) (any, error) {
		if err := meta.Validate(); err != nil {
			return nil, err
		}

		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		result, err := fn(ctx, meta)

		duration := time.Since(start)
		m.metrics.RecordCall(ctx, meta, duration, err)

		callLogger := m.logger.WithCall(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			callLogger.Error(ctx, "call failed", fields...)
		} else {
			callLogger.Info(ctx, "call completed", fields...)
		}

		// Logged before the span ends so log lines carry its IDs.
		m.tracer.EndSpan(span, err)

		return result, err
	}
}

// CacheLookup records the outcome of a cache lookup made during a call.
// It tags the active span, increments the lookup counter and logs at debug.
func (m *Middleware) CacheLookup(ctx context.Context, meta CallMeta, namespace string, hit bool) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Bool(AttrCacheHit, hit),
		attribute.String(AttrNamespace, namespace),
	)
	m.metrics.RecordCacheLookup(ctx, meta, namespace, hit)

	msg := "cache miss"
	if hit {
		msg = "cache hit"
	}
	m.logger.WithCall(meta).Debug(ctx, msg, Field{Key: AttrNamespace, Value: namespace})
}

// Run executes fn through mw and returns its typed result.
func Run[T any](ctx context.Context, mw *Middleware, meta CallMeta, fn func(ctx context.Context) (T, error)) (T, error) {
	if mw == nil {
		mw = NopMiddleware()
	}

	wrapped := mw.Wrap(func(ctx context.Context, _ CallMeta) (any, error) {
		return fn(ctx)
	})

	result, err := wrapped(ctx, meta)
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := result.(T)
	return v, nil
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
