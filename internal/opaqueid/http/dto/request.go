// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"strconv"

	validation "github.com/jellydator/validation"

	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
	customValidation "github.com/allisson/opaqueid/internal/validation"
)

// maxTokenLength bounds request tokens. Valid tokens are at most 23 characters
// but trailing zero digits are accepted, so the bound is loose.
const maxTokenLength = 256

// EncodeRequest contains the id to encode. The id may be sent as a JSON number
// or as a decimal string.
type EncodeRequest struct {
	ID json.Number `json:"id"`
}

// Validate checks if the encode request is valid.
func (r *EncodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.Int64,
		),
	)
}

// ParsedID returns the id. Call Validate first.
func (r *EncodeRequest) ParsedID() int64 {
	id, _ := strconv.ParseInt(string(r.ID), 10, 64)
	return id
}

// DecodeRequest contains the token to decode.
type DecodeRequest struct {
	Token string `json:"token"`
}

// Validate checks if the decode request is valid.
func (r *DecodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxTokenLength),
		),
	)
}

// EncodeBatchRequest contains the ids to encode.
type EncodeBatchRequest struct {
	IDs []json.Number `json:"ids"`
}

// Validate checks if the encode batch request is valid.
func (r *EncodeBatchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDs,
			validation.Required,
			validation.Length(1, usecase.MaxBatchSize),
			validation.Each(validation.Required, customValidation.Int64),
		),
	)
}

// ParsedIDs returns the ids. Call Validate first.
func (r *EncodeBatchRequest) ParsedIDs() []int64 {
	ids := make([]int64, len(r.IDs))
	for i, n := range r.IDs {
		ids[i], _ = strconv.ParseInt(string(n), 10, 64)
	}
	return ids
}

// DecodeBatchRequest contains the tokens to decode. Malformed tokens are
// reported per item in the response.
type DecodeBatchRequest struct {
	Tokens []string `json:"tokens"`
}

// Validate checks if the decode batch request is valid.
func (r *DecodeBatchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Tokens,
			validation.Required,
			validation.Length(1, usecase.MaxBatchSize),
			validation.Each(validation.Length(0, maxTokenLength)),
		),
	)
}
