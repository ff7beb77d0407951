package dto

import (
	"fmt"
	"strconv"

	apperrors "github.com/allisson/opaqueid/internal/errors"
	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
)

// Ids are rendered as decimal strings so JSON clients limited to float64
// numbers keep every digit.

// EncodeResponse represents the result of encoding one id.
type EncodeResponse struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Token string `json:"token"`
}

// MapEncodeResponse creates an EncodeResponse.
func MapEncodeResponse(kind string, id int64, token string) EncodeResponse {
	return EncodeResponse{
		Kind:  kind,
		ID:    strconv.FormatInt(id, 10),
		Token: token,
	}
}

// DecodeResponse represents the result of decoding one token.
type DecodeResponse struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Token string `json:"token"`
}

// MapDecodeResponse creates a DecodeResponse.
func MapDecodeResponse(kind, token string, id int64) DecodeResponse {
	return DecodeResponse{
		Kind:  kind,
		ID:    strconv.FormatInt(id, 10),
		Token: token,
	}
}

// EncodeBatchResponse represents the tokens of a batch, in request order.
type EncodeBatchResponse struct {
	Kind   string   `json:"kind"`
	Tokens []string `json:"tokens"`
}

// DecodeBatchItem represents the outcome of one token of a batch. Exactly one
// of ID and Error is set.
type DecodeBatchItem struct {
	Token   string `json:"token"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeBatchResponse represents the outcome of a batch, in request order.
type DecodeBatchResponse struct {
	Kind    string            `json:"kind"`
	Results []DecodeBatchItem `json:"results"`
}

// MapDecodeBatchResponse creates a DecodeBatchResponse from use case results.
func MapDecodeBatchResponse(kind string, results []usecase.DecodeResult) DecodeBatchResponse {
	items := make([]DecodeBatchItem, len(results))
	for i, r := range results {
		items[i] = DecodeBatchItem{Token: r.Token}
		if r.Err != nil {
			items[i].Error = ErrorCode(r.Err)
			items[i].Message = r.Err.Error()
			continue
		}
		items[i].ID = strconv.FormatInt(r.ID, 10)
	}
	return DecodeBatchResponse{Kind: kind, Results: items}
}

// ErrorCode returns the machine readable code for a decoding failure.
func ErrorCode(err error) string {
	switch {
	case apperrors.Is(err, domain.ErrWrongTag):
		return "wrong_tag"
	case apperrors.Is(err, domain.ErrUnknownCharacter):
		return "unknown_character"
	case apperrors.Is(err, domain.ErrOverflow):
		return "overflow"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal_error"
	}
}

// KindResponse represents a registered identifier kind.
type KindResponse struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// ListKindsResponse represents the registered identifier kinds.
type ListKindsResponse struct {
	Data []KindResponse `json:"data"`
}

// MapKindsToListResponse creates a ListKindsResponse.
func MapKindsToListResponse(kinds []domain.KindInfo) ListKindsResponse {
	data := make([]KindResponse, len(kinds))
	for i, k := range kinds {
		data[i] = KindResponse{
			Name: k.Name,
			Tag:  fmt.Sprintf("0x%016x", uint64(k.Tag)),
		}
	}
	return ListKindsResponse{Data: data}
}
