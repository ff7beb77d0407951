// Package service provides the block cipher adapters behind identifiers and the
// collaborators that provision their key.
package service

import (
	"context"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// BlockCipherFactory creates block ciphers from raw key material.
type BlockCipherFactory interface {
	// Create returns a cipher for alg keyed with key. The caller may zero key afterwards.
	Create(key []byte, alg domain.Algorithm) (domain.BlockCipher, error)
}

// KMSKeeper encrypts and decrypts small payloads with a key held by a KMS.
// *secrets.Keeper implements it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Returns an error if the URI scheme is unknown or the provider cannot be reached.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
