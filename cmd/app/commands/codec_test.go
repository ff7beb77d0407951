package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/service"
	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
	usecaseMocks "github.com/allisson/opaqueid/internal/opaqueid/usecase/mocks"
)

func newRealUseCase(t *testing.T) usecase.IdentifierUseCase {
	t.Helper()
	registry, err := usecase.NewKindRegistry([]string{"user", "order"})
	require.NoError(t, err)
	c, err := service.NewAES128(make([]byte, domain.KeySize))
	require.NoError(t, err)
	return usecase.NewIdentifierUseCase(registry, c)
}

func TestRunEncode(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		mockUseCase.On("EncodeBatch", ctx, "user", []int64{1, -2}).Return([]string{"tokA", "tokB"}, nil)

		var out bytes.Buffer
		err := RunEncode(ctx, mockUseCase, logger, &out, "user", []string{"1", "-2"}, "text")
		require.NoError(t, err)
		assert.Equal(t, "1\ttokA\n-2\ttokB\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		mockUseCase.On("EncodeBatch", ctx, "user", []int64{9223372036854775807}).Return([]string{"tok"}, nil)

		var out bytes.Buffer
		err := RunEncode(ctx, mockUseCase, logger, &out, "user", []string{"9223372036854775807"}, "json")
		require.NoError(t, err)

		var results []encodedID
		require.NoError(t, json.Unmarshal(out.Bytes(), &results))
		assert.Equal(t, []encodedID{{ID: "9223372036854775807", Token: "tok"}}, results)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-id", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		err := RunEncode(ctx, mockUseCase, logger, io.Discard, "user", []string{"1", "abc"}, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid id "abc"`)
		mockUseCase.AssertNotCalled(t, "EncodeBatch")
	})

	t.Run("id-out-of-range", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		err := RunEncode(ctx, mockUseCase, logger, io.Discard, "user", []string{"9223372036854775808"}, "text")
		assert.Error(t, err)
	})

	t.Run("no-ids", func(t *testing.T) {
		err := RunEncode(ctx, &usecaseMocks.MockIdentifierUseCase{}, logger, io.Discard, "user", nil, "text")
		assert.Error(t, err)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		mockUseCase.On("EncodeBatch", ctx, "invoice", []int64{1}).Return(nil, domain.ErrKindNotFound)

		err := RunEncode(ctx, mockUseCase, logger, io.Discard, "invoice", []string{"1"}, "text")
		assert.ErrorIs(t, err, domain.ErrKindNotFound)
		mockUseCase.AssertExpectations(t)
	})
}

func TestRunDecode(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		mockUseCase.On("DecodeBatch", ctx, "user", []string{"tokA"}).
			Return([]usecase.DecodeResult{{Token: "tokA", ID: 42}}, nil)

		var out bytes.Buffer
		require.NoError(t, RunDecode(ctx, mockUseCase, logger, &out, "user", []string{"tokA"}, "text"))
		assert.Equal(t, "tokA\t42\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("partial-failure", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockIdentifierUseCase{}
		mockUseCase.On("DecodeBatch", ctx, "user", []string{"tokA", "bad"}).
			Return([]usecase.DecodeResult{
				{Token: "tokA", ID: 7},
				{Token: "bad", Err: errors.New("boom")},
			}, nil)

		var out bytes.Buffer
		err := RunDecode(ctx, mockUseCase, logger, &out, "user", []string{"tokA", "bad"}, "json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 tokens")

		var results []decodedToken
		require.NoError(t, json.Unmarshal(out.Bytes(), &results))
		assert.Equal(t, []decodedToken{
			{Token: "tokA", ID: "7"},
			{Token: "bad", Error: "boom"},
		}, results)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("no-tokens", func(t *testing.T) {
		err := RunDecode(ctx, &usecaseMocks.MockIdentifierUseCase{}, logger, io.Discard, "user", nil, "text")
		assert.Error(t, err)
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunDecode(ctx, &usecaseMocks.MockIdentifierUseCase{}, logger, io.Discard, "user", []string{"a"}, "xml")
		assert.Error(t, err)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := newRealUseCase(t)

	var encoded bytes.Buffer
	require.NoError(t, RunEncode(ctx, uc, logger, &encoded, "user", []string{"0", "-1", "123456789"}, "json"))

	var ids []encodedID
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &ids))
	require.Len(t, ids, 3)

	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = id.Token
	}

	var decoded bytes.Buffer
	require.NoError(t, RunDecode(ctx, uc, logger, &decoded, "user", tokens, "text"))
	assert.Equal(t,
		tokens[0]+"\t0\n"+tokens[1]+"\t-1\n"+tokens[2]+"\t123456789\n",
		decoded.String(),
	)

	// Tokens of one kind do not decode as another
	err := RunDecode(ctx, uc, logger, io.Discard, "order", tokens[:1], "text")
	assert.Error(t, err)
}
