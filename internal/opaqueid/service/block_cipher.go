package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/twofish"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// CipherBlock adapts a crypto/cipher.Block with 16-byte blocks to
// domain.BlockCipher. Encryption and decryption use stack buffers only.
//
// The standard library AES and x/crypto Twofish implementations keep an
// immutable key schedule, so a CipherBlock is safe for concurrent use.
type CipherBlock struct {
	block cipher.Block
}

// FromCipherBlock wraps block. It fails when block does not use 16-byte blocks.
func FromCipherBlock(block cipher.Block) (*CipherBlock, error) {
	if block.BlockSize() != domain.BlockSize {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidBlockSize, block.BlockSize())
	}
	return &CipherBlock{block: block}, nil
}

// NewAES128 creates an AES-128 block cipher. The key must be exactly 16 bytes.
func NewAES128(key []byte) (*CipherBlock, error) {
	if len(key) != domain.KeySize {
		return nil, fmt.Errorf("%w: aes-128 key must be %d bytes, got %d", domain.ErrInvalidKeySize, domain.KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return FromCipherBlock(block)
}

// NewTwofish128 creates a Twofish block cipher with a 128-bit key.
func NewTwofish128(key []byte) (*CipherBlock, error) {
	if len(key) != domain.KeySize {
		return nil, fmt.Errorf("%w: twofish-128 key must be %d bytes, got %d", domain.ErrInvalidKeySize, domain.KeySize, len(key))
	}

	block, err := twofish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create Twofish cipher: %w", err)
	}
	return FromCipherBlock(block)
}

// EncryptBlock encrypts one block.
func (c *CipherBlock) EncryptBlock(plaintext domain.Block) domain.Block {
	var out domain.Block
	c.block.Encrypt(out[:], plaintext[:])
	return out
}

// DecryptBlock decrypts one block.
func (c *CipherBlock) DecryptBlock(ciphertext domain.Block) domain.Block {
	var out domain.Block
	c.block.Decrypt(out[:], ciphertext[:])
	return out
}

type blockCipherFactory struct{}

// NewBlockCipherFactory creates a factory for every domain.Algorithm.
func NewBlockCipherFactory() BlockCipherFactory {
	return &blockCipherFactory{}
}

// Create returns a block cipher for alg.
func (f *blockCipherFactory) Create(key []byte, alg domain.Algorithm) (domain.BlockCipher, error) {
	var (
		c   *CipherBlock
		err error
	)
	switch alg {
	case domain.AES128:
		c, err = NewAES128(key)
	case domain.Twofish128:
		c, err = NewTwofish128(key)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, alg)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
