package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricCallTotal    = "rule34.call.total"
	MetricCallErrors   = "rule34.call.errors"
	MetricCallDuration = "rule34.call.duration_ms"
	MetricCacheLookups = "rule34.cache.lookups"
)

// Metrics records call and cache metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a client call with duration and error status.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error)

	// RecordCacheLookup records one cache lookup in the given namespace.
	RecordCacheLookup(ctx context.Context, meta CallMeta, namespace string, hit bool)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheLookups metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		MetricCallTotal,
		metric.WithDescription("Total number of client calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		MetricCallErrors,
		metric.WithDescription("Total number of failed client calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricCallDuration,
		metric.WithDescription("Client call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		MetricCacheLookups,
		metric.WithDescription("Cache lookups by namespace and outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		cacheLookups: cacheLookups,
	}, nil
}

// RecordCall records metrics for a client call.
// Only the operation is used as an attribute; queries are unbounded.
func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String(AttrOperation, meta.Operation))

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	durationMs := float64(duration.Microseconds()) / 1000
	m.durationHist.Record(ctx, durationMs, opt)
}

// RecordCacheLookup increments the lookup counter.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, meta CallMeta, namespace string, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, meta.Operation),
		attribute.String(AttrNamespace, namespace),
		attribute.Bool(AttrCacheHit, hit),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordCacheLookup(ctx context.Context, meta CallMeta, namespace string, hit bool) {
}
