// Package mocks provides mock implementations of the usecase interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
)

// MockIdentifierUseCase is a mock implementation of IdentifierUseCase for testing.
type MockIdentifierUseCase struct {
	mock.Mock
}

// Encode mocks the Encode method of IdentifierUseCase.
func (m *MockIdentifierUseCase) Encode(ctx context.Context, kind string, id int64) (string, error) {
	args := m.Called(ctx, kind, id)
	return args.String(0), args.Error(1)
}

// Decode mocks the Decode method of IdentifierUseCase.
func (m *MockIdentifierUseCase) Decode(ctx context.Context, kind, token string) (int64, error) {
	args := m.Called(ctx, kind, token)
	return args.Get(0).(int64), args.Error(1)
}

// EncodeBatch mocks the EncodeBatch method of IdentifierUseCase.
func (m *MockIdentifierUseCase) EncodeBatch(ctx context.Context, kind string, ids []int64) ([]string, error) {
	args := m.Called(ctx, kind, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// DecodeBatch mocks the DecodeBatch method of IdentifierUseCase.
func (m *MockIdentifierUseCase) DecodeBatch(
	ctx context.Context,
	kind string,
	tokens []string,
) ([]usecase.DecodeResult, error) {
	args := m.Called(ctx, kind, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.DecodeResult), args.Error(1)
}

// Kinds mocks the Kinds method of IdentifierUseCase.
func (m *MockIdentifierUseCase) Kinds(ctx context.Context) []domain.KindInfo {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.KindInfo)
}
