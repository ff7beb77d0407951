package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// KeyLoader turns the configured identifier key into raw key material.
//
// Without a KMS URI the configured value is the base64 key itself. With one it
// is the base64 KMS ciphertext of the key, as printed by the create-key command.
type KeyLoader struct {
	kms    KMSService
	logger *slog.Logger
}

// NewKeyLoader creates a KeyLoader. kms may be nil when keys are never wrapped.
func NewKeyLoader(kms KMSService, logger *slog.Logger) *KeyLoader {
	return &KeyLoader{kms: kms, logger: logger}
}

// Load returns the 16-byte key. The caller owns the result and should zero it
// once the cipher is built.
func (l *KeyLoader) Load(ctx context.Context, encodedKey, kmsKeyURI string) ([]byte, error) {
	if encodedKey == "" {
		return nil, domain.ErrKeyNotConfigured
	}

	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyEncoding, err)
	}

	key := raw
	if kmsKeyURI != "" {
		key, err = l.unwrap(ctx, raw, kmsKeyURI)
		Zero(raw)
		if err != nil {
			return nil, err
		}
	}

	if len(key) != domain.KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", domain.ErrInvalidKeySize, domain.KeySize, len(key))
	}

	return key, nil
}

func (l *KeyLoader) unwrap(ctx context.Context, ciphertext []byte, kmsKeyURI string) ([]byte, error) {
	if l.kms == nil {
		return nil, fmt.Errorf("%w: KMS key URI set but no KMS service available", domain.ErrKeyNotConfigured)
	}

	keeper, err := l.kms.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && l.logger != nil {
			l.logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt identifier key with KMS: %w", err)
	}
	return key, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
