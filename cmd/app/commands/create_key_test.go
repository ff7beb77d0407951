package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/service"
)

// Manual mocks for KMS since they might not be generated in all environments
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (service.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.KMSKeeper), args.Error(1)
}

type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

var keyLine = regexp.MustCompile(`OPAQUEID_KEY="([^"]+)"`)

func extractKey(t *testing.T, out string) []byte {
	t.Helper()
	match := keyLine.FindStringSubmatch(out)
	require.Len(t, match, 2, "output has no OPAQUEID_KEY line: %s", out)
	raw, err := base64.StdEncoding.DecodeString(match[1])
	require.NoError(t, err)
	return raw
}

func TestRunCreateKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success-plain", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateKey(ctx, nil, logger, &out, "aes-128", "", "")
		require.NoError(t, err)

		assert.Len(t, extractKey(t, out.String()), domain.KeySize)
		assert.Contains(t, out.String(), `OPAQUEID_ALGORITHM="aes-128"`)
		assert.NotContains(t, out.String(), "KMS_KEY_URI")
	})

	t.Run("success-twofish", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateKey(ctx, nil, logger, &out, "twofish-128", "", ""))
		assert.Contains(t, out.String(), `OPAQUEID_ALGORITHM="twofish-128"`)
	})

	t.Run("success-kms-mock", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("encrypted"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateKey(ctx, mockService, logger, &out, "aes-128", "localsecrets", "base64key://...")
		require.NoError(t, err)

		assert.Equal(t, []byte("encrypted"), extractKey(t, out.String()))
		assert.Contains(t, out.String(), `KMS_PROVIDER="localsecrets"`)
		assert.Contains(t, out.String(), `KMS_KEY_URI="base64key://..."`)

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("success-kms-loadable", func(t *testing.T) {
		secret := make([]byte, 32)
		_, err := rand.Read(secret)
		require.NoError(t, err)
		uri := "base64key://" + base64.URLEncoding.EncodeToString(secret)

		var out bytes.Buffer
		kms := service.NewKMSService()
		require.NoError(t, RunCreateKey(ctx, kms, logger, &out, "aes-128", "localsecrets", uri))

		encoded := base64.StdEncoding.EncodeToString(extractKey(t, out.String()))
		key, err := service.NewKeyLoader(kms, logger).Load(ctx, encoded, uri)
		require.NoError(t, err)
		assert.Len(t, key, domain.KeySize)
	})

	t.Run("invalid-algorithm", func(t *testing.T) {
		err := RunCreateKey(ctx, nil, logger, io.Discard, "des", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid algorithm")
	})

	t.Run("kms-parameters-mismatch", func(t *testing.T) {
		err := RunCreateKey(ctx, nil, logger, io.Discard, "aes-128", "localsecrets", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be used together")
	})

	t.Run("kms-open-error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "base64key://...").Return(nil, errors.New("open error"))

		err := RunCreateKey(ctx, mockService, logger, io.Discard, "aes-128", "localsecrets", "base64key://...")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open error")
		mockService.AssertExpectations(t)
	})

	t.Run("kms-encrypt-error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return(nil, errors.New("encrypt error"))
		mockKeeper.On("Close").Return(errors.New("close error"))

		var out bytes.Buffer
		err := RunCreateKey(ctx, mockService, logger, &out, "aes-128", "localsecrets", "base64key://...")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encrypt identifier key with KMS")
		assert.Empty(t, out.String())

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})
}
