package usecase

import (
	apperrors "github.com/allisson/opaqueid/internal/errors"
)

// MaxBatchSize bounds the number of items accepted by a batch operation.
const MaxBatchSize = 1000

// ErrBatchTooLarge indicates a batch request above MaxBatchSize items.
var ErrBatchTooLarge = apperrors.Wrap(apperrors.ErrInvalidInput, "batch exceeds maximum size")

// DecodeResult is the outcome of decoding one token of a batch. Err is set
// instead of ID when the token does not decode under the batch's kind.
type DecodeResult struct {
	Token string
	ID    int64
	Err   error
}
