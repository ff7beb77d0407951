package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/allisson/opaqueid/internal/metrics"
	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

const (
	metricsDomain = "opaqueid"

	// unknownKindLabel replaces kind names that are not registered, which
	// arrive from callers and would otherwise be unbounded label values.
	unknownKindLabel = "unknown"
)

// identifierUseCaseWithMetrics decorates IdentifierUseCase with metrics instrumentation.
type identifierUseCaseWithMetrics struct {
	next     IdentifierUseCase
	registry *KindRegistry
	metrics  metrics.BusinessMetrics
}

// NewIdentifierUseCaseWithMetrics wraps an IdentifierUseCase with metrics recording.
// Kind labels are limited to the names in registry.
func NewIdentifierUseCaseWithMetrics(
	useCase IdentifierUseCase,
	registry *KindRegistry,
	m metrics.BusinessMetrics,
) IdentifierUseCase {
	return &identifierUseCaseWithMetrics{
		next:     useCase,
		registry: registry,
		metrics:  m,
	}
}

func (u *identifierUseCaseWithMetrics) Encode(ctx context.Context, kind string, id int64) (string, error) {
	start := time.Now()
	token, err := u.next.Encode(ctx, kind, id)
	u.record(ctx, "id_encode", kind, start, err)
	return token, err
}

func (u *identifierUseCaseWithMetrics) Decode(ctx context.Context, kind, token string) (int64, error) {
	start := time.Now()
	id, err := u.next.Decode(ctx, kind, token)
	u.record(ctx, "id_decode", kind, start, err)
	return id, err
}

func (u *identifierUseCaseWithMetrics) EncodeBatch(ctx context.Context, kind string, ids []int64) ([]string, error) {
	start := time.Now()
	tokens, err := u.next.EncodeBatch(ctx, kind, ids)
	u.record(ctx, "id_encode_batch", kind, start, err)
	if err == nil {
		u.metrics.RecordBatchItems(ctx, metricsDomain, "id_encode_batch", u.kindLabel(kind), len(tokens), 0)
	}
	return tokens, err
}

// DecodeBatch records the batch as a success even when items fail; item
// failures are counted separately.
func (u *identifierUseCaseWithMetrics) DecodeBatch(
	ctx context.Context,
	kind string,
	tokens []string,
) ([]DecodeResult, error) {
	start := time.Now()
	results, err := u.next.DecodeBatch(ctx, kind, tokens)
	u.record(ctx, "id_decode_batch", kind, start, err)
	if err == nil {
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		u.metrics.RecordBatchItems(
			ctx,
			metricsDomain,
			"id_decode_batch",
			u.kindLabel(kind),
			len(results)-failed,
			failed,
		)
	}
	return results, err
}

// Kinds delegates without recording metrics.
func (u *identifierUseCaseWithMetrics) Kinds(ctx context.Context) []domain.KindInfo {
	return u.next.Kinds(ctx)
}

func (u *identifierUseCaseWithMetrics) record(ctx context.Context, operation, kind string, start time.Time, err error) {
	status := operationStatus(err)
	kind = u.kindLabel(kind)

	u.metrics.RecordOperation(ctx, metricsDomain, operation, kind, status)
	u.metrics.RecordDuration(ctx, metricsDomain, operation, kind, time.Since(start), status)
}

// kindLabel returns kind when it is registered and unknownKindLabel otherwise,
// whatever the outcome of the call.
func (u *identifierUseCaseWithMetrics) kindLabel(kind string) string {
	if u.registry.Known(kind) {
		return kind
	}
	return unknownKindLabel
}

// operationStatus classifies err into a bounded status label.
func operationStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrWrongTag):
		return "wrong_tag"
	case errors.Is(err, domain.ErrUnknownCharacter), errors.Is(err, domain.ErrOverflow):
		return "malformed"
	case errors.Is(err, domain.ErrKindNotFound):
		return "unknown_kind"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
