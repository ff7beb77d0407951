package domain

import (
	apperrors "github.com/allisson/opaqueid/internal/errors"
	"github.com/allisson/opaqueid/internal/opaqueid/encoding"
)

var (
	// ErrUnknownCharacter indicates a token containing a byte outside the token alphabet.
	ErrUnknownCharacter = encoding.ErrUnknownCharacter

	// ErrOverflow indicates a token whose value does not fit in a block.
	ErrOverflow = encoding.ErrOverflow

	// ErrWrongTag indicates a decrypted block whose tag differs from the expected one.
	//
	// The token may have been minted for another kind, encrypted under another
	// key, or forged. These causes cannot be told apart and callers must not try.
	ErrWrongTag = apperrors.Wrap(apperrors.ErrInvalidInput, "identifier has an unexpected tag")

	// ErrTagTooLong indicates a tag name longer than 8 bytes.
	ErrTagTooLong = apperrors.Wrap(apperrors.ErrInvalidInput, "tag name exceeds 8 bytes")

	// ErrTagNotASCII indicates a tag name with a byte outside 7-bit ASCII.
	ErrTagNotASCII = apperrors.Wrap(apperrors.ErrInvalidInput, "tag name must be ASCII")

	// ErrKindNotFound indicates an identifier kind that was not registered.
	ErrKindNotFound = apperrors.Wrap(apperrors.ErrNotFound, "identifier kind not found")

	// ErrKindAlreadyRegistered indicates two kinds sharing a name or a tag.
	ErrKindAlreadyRegistered = apperrors.Wrap(apperrors.ErrInvalidInput, "identifier kind already registered")

	// ErrInvalidKeySize indicates cipher key material of the wrong length.
	ErrInvalidKeySize = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyEncoding indicates configured key material that is not valid base64.
	ErrInvalidKeyEncoding = apperrors.Wrap(apperrors.ErrInvalidInput, "key is not valid base64")

	// ErrUnsupportedAlgorithm indicates an unknown block cipher algorithm.
	ErrUnsupportedAlgorithm = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidBlockSize indicates a block cipher whose block is not 16 bytes.
	ErrInvalidBlockSize = apperrors.Wrap(apperrors.ErrInvalidInput, "block cipher must use 16-byte blocks")

	// ErrKeyNotConfigured indicates the identifier key is missing from configuration.
	ErrKeyNotConfigured = apperrors.Wrap(apperrors.ErrMisconfigured, "identifier key not configured")
)
