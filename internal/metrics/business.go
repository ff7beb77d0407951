package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records identifier codec operations. Every series carries
// domain, operation, kind and status labels. kind must come from a bounded
// set, so callers map unregistered kinds to a fixed placeholder.
type BusinessMetrics interface {
	// RecordOperation counts one operation.
	// Operation examples: "id_encode", "id_decode", "id_decode_batch"
	// Status examples: "success", "wrong_tag", "malformed", "unknown_kind", "error"
	RecordOperation(ctx context.Context, domain, operation, kind, status string)

	// RecordDuration records the duration of one operation in seconds.
	RecordDuration(ctx context.Context, domain, operation, kind string, duration time.Duration, status string)

	// RecordBatchItems counts the items of a batch by outcome.
	RecordBatchItems(ctx context.Context, domain, operation, kind string, succeeded, failed int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	itemCounter      metric.Int64Counter
}

// NewBusinessMetrics creates a BusinessMetrics on meterProvider. Metric names
// are prefixed with namespace (e.g. "opaqueid_operations_total").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of identifier operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of identifier operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	itemCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_batch_items_total", namespace),
		metric.WithDescription("Total number of identifiers processed in batches"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch item counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		itemCounter:      itemCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, kind, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(labels(domain, operation, kind, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation, kind string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), metric.WithAttributes(labels(domain, operation, kind, status)...))
}

func (b *businessMetrics) RecordBatchItems(ctx context.Context, domain, operation, kind string, succeeded, failed int) {
	if succeeded > 0 {
		b.itemCounter.Add(ctx, int64(succeeded),
			metric.WithAttributes(labels(domain, operation, kind, "success")...))
	}
	if failed > 0 {
		b.itemCounter.Add(ctx, int64(failed),
			metric.WithAttributes(labels(domain, operation, kind, "error")...))
	}
}

func labels(domain, operation, kind, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("kind", kind),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, kind, status string) {}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation, kind string,
	duration time.Duration,
	status string,
) {
}

// RecordBatchItems does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordBatchItems(
	ctx context.Context,
	domain, operation, kind string,
	succeeded, failed int,
) {
}
