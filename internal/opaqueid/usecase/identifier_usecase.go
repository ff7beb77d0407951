// Package usecase exposes identifier encoding for kinds that are only known at
// runtime, such as those configured through OPAQUEID_KINDS and named in request
// paths.
//
// Every operation resolves the kind name through a KindRegistry and then uses
// domain.Opaque with the configured block cipher:
//
//	registry, err := usecase.NewKindRegistry([]string{"user", "order"})
//	uc := usecase.NewIdentifierUseCase(registry, cipher)
//
//	token, err := uc.Encode(ctx, "user", 42)
//	id, err := uc.Decode(ctx, "user", token)
package usecase

import (
	"context"
	"fmt"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

type identifierUseCase struct {
	registry *KindRegistry
	cipher   domain.BlockCipher
}

// NewIdentifierUseCase creates an IdentifierUseCase.
func NewIdentifierUseCase(registry *KindRegistry, cipher domain.BlockCipher) IdentifierUseCase {
	return &identifierUseCase{
		registry: registry,
		cipher:   cipher,
	}
}

// Encode returns the token for id under kind.
func (u *identifierUseCase) Encode(ctx context.Context, kind string, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := u.registry.Lookup(kind)
	if err != nil {
		return "", err
	}

	return domain.NewOpaque(info.Tag, id, u.cipher).String(), nil
}

// Decode returns the id behind token.
func (u *identifierUseCase) Decode(ctx context.Context, kind, token string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := u.registry.Lookup(kind)
	if err != nil {
		return 0, err
	}

	return u.decode(info, token)
}

// EncodeBatch encodes ids in order.
func (u *identifierUseCase) EncodeBatch(ctx context.Context, kind string, ids []int64) ([]string, error) {
	info, err := u.prepareBatch(ctx, kind, len(ids))
	if err != nil {
		return nil, err
	}

	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = domain.NewOpaque(info.Tag, id, u.cipher).String()
	}
	return tokens, nil
}

// DecodeBatch decodes tokens in order. Item failures are reported in the
// result and never fail the batch.
func (u *identifierUseCase) DecodeBatch(
	ctx context.Context,
	kind string,
	tokens []string,
) ([]DecodeResult, error) {
	info, err := u.prepareBatch(ctx, kind, len(tokens))
	if err != nil {
		return nil, err
	}

	results := make([]DecodeResult, len(tokens))
	for i, token := range tokens {
		id, err := u.decode(info, token)
		results[i] = DecodeResult{Token: token, ID: id, Err: err}
	}
	return results, nil
}

// Kinds lists the registered kinds sorted by name.
func (u *identifierUseCase) Kinds(ctx context.Context) []domain.KindInfo {
	return u.registry.List()
}

func (u *identifierUseCase) prepareBatch(ctx context.Context, kind string, size int) (domain.KindInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.KindInfo{}, err
	}
	if size > MaxBatchSize {
		return domain.KindInfo{}, fmt.Errorf("%w: %d items, maximum is %d", ErrBatchTooLarge, size, MaxBatchSize)
	}
	return u.registry.Lookup(kind)
}

func (u *identifierUseCase) decode(info domain.KindInfo, token string) (int64, error) {
	o, err := domain.ParseOpaque(info.Tag, token)
	if err != nil {
		return 0, err
	}
	return o.Raw(u.cipher)
}
