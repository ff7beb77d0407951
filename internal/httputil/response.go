// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/opaqueid/internal/errors"
)

// ErrorResponse is the JSON body of every error response. Error is the
// category; Code optionally narrows it (e.g. "wrong_tag").
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HandleErrorGin maps err to a status code by its category and writes a JSON
// error response. Details of server-side failures are logged, never returned.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	HandleCodedErrorGin(c, err, "", logger)
}

// HandleCodedErrorGin is HandleErrorGin with a machine readable code attached
// to client errors. The code is dropped for 5xx responses.
func HandleCodedErrorGin(c *gin.Context, err error, code string, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := classify(err)
	if statusCode < http.StatusInternalServerError {
		errorResponse.Code = code
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.String("request_id", requestid.Get(c)),
			slog.String("path", c.FullPath()),
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

func classify(err error) (int, ErrorResponse) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:   "request_canceled",
			Message: "The request was canceled before it completed",
		}

	case apperrors.Is(err, apperrors.ErrMisconfigured):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error:   "not_configured",
			Message: "The service is not configured to handle this request",
		}

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.String("request_id", requestid.Get(c)), slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.String("request_id", requestid.Get(c)), slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
