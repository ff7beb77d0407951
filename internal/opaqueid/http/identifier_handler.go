// Package http provides HTTP handlers for identifier encoding and decoding.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/opaqueid/internal/httputil"
	"github.com/allisson/opaqueid/internal/opaqueid/http/dto"
	identifierUseCase "github.com/allisson/opaqueid/internal/opaqueid/usecase"
	customValidation "github.com/allisson/opaqueid/internal/validation"
)

// IdentifierHandler handles HTTP requests for identifier operations.
type IdentifierHandler struct {
	identifierUseCase identifierUseCase.IdentifierUseCase
	logger            *slog.Logger
}

// NewIdentifierHandler creates a new identifier handler with required dependencies.
func NewIdentifierHandler(
	identifierUseCase identifierUseCase.IdentifierUseCase,
	logger *slog.Logger,
) *IdentifierHandler {
	return &IdentifierHandler{
		identifierUseCase: identifierUseCase,
		logger:            logger,
	}
}

// EncodeHandler encodes one id.
// POST /v1/ids/:kind/encode - Returns 200 OK with the token.
func (h *IdentifierHandler) EncodeHandler(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}

	var req dto.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id := req.ParsedID()
	token, err := h.identifierUseCase.Encode(c.Request.Context(), kind, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncodeResponse(kind, id, token))
}

// DecodeHandler decodes one token.
// POST /v1/ids/:kind/decode - Returns 200 OK with the id, or 422 when the token
// is malformed or was not minted for kind under the configured key.
func (h *IdentifierHandler) DecodeHandler(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}

	var req dto.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.identifierUseCase.Decode(c.Request.Context(), kind, req.Token)
	if err != nil {
		httputil.HandleCodedErrorGin(c, err, dto.ErrorCode(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecodeResponse(kind, req.Token, id))
}

// EncodeBatchHandler encodes several ids.
// POST /v1/ids/:kind/encode-batch - Returns 200 OK with the tokens in request order.
func (h *IdentifierHandler) EncodeBatchHandler(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}

	var req dto.EncodeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tokens, err := h.identifierUseCase.EncodeBatch(c.Request.Context(), kind, req.ParsedIDs())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncodeBatchResponse{Kind: kind, Tokens: tokens})
}

// DecodeBatchHandler decodes several tokens.
// POST /v1/ids/:kind/decode-batch - Returns 200 OK with one result per token.
// Tokens that fail to decode carry an error code instead of an id.
func (h *IdentifierHandler) DecodeBatchHandler(c *gin.Context) {
	kind, ok := h.kindParam(c)
	if !ok {
		return
	}

	var req dto.DecodeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.identifierUseCase.DecodeBatch(c.Request.Context(), kind, req.Tokens)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecodeBatchResponse(kind, results))
}

// ListKindsHandler lists the registered identifier kinds.
// GET /v1/kinds - Returns 200 OK.
func (h *IdentifierHandler) ListKindsHandler(c *gin.Context) {
	kinds := h.identifierUseCase.Kinds(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapKindsToListResponse(kinds))
}

func (h *IdentifierHandler) kindParam(c *gin.Context) (string, bool) {
	kind := c.Param("kind")
	if kind == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("identifier kind cannot be empty"), h.logger)
		return "", false
	}
	return kind, true
}
