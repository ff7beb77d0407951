package usecase

import (
	"context"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// IdentifierUseCase encodes and decodes identifiers of kinds registered at runtime.
type IdentifierUseCase interface {
	// Encode returns the token for id under kind.
	Encode(ctx context.Context, kind string, id int64) (string, error)

	// Decode returns the id behind token. A token minted for another kind or under
	// another key fails with domain.ErrWrongTag.
	Decode(ctx context.Context, kind, token string) (int64, error)

	// EncodeBatch encodes ids in order. It fails as a whole only when the kind is
	// unknown or the batch is larger than MaxBatchSize.
	EncodeBatch(ctx context.Context, kind string, ids []int64) ([]string, error)

	// DecodeBatch decodes tokens in order, reporting failures per item.
	DecodeBatch(ctx context.Context, kind string, tokens []string) ([]DecodeResult, error)

	// Kinds lists the registered kinds sorted by name.
	Kinds(ctx context.Context) []domain.KindInfo
}
