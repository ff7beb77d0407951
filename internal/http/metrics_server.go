package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/opaqueid/internal/errors"
	"github.com/allisson/opaqueid/internal/metrics"
)

// MetricsServer exposes the Prometheus registry of a metrics.Provider on its own
// port. Scrapes bypass the API middleware chain, including rate limiting.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer serves GET /metrics and GET /health for provider. It fails
// with errors.ErrMisconfigured when provider is nil.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	provider *metrics.Provider,
) (*MetricsServer, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: metrics server needs a metrics provider", apperrors.ErrMisconfigured)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(failedScrapeLogger(logger))

	router.GET("/metrics", gin.WrapH(provider.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "the metrics server only serves /metrics and /health",
		})
	})

	return &MetricsServer{
		server: newHTTPServer(host, port, router),
		logger: logger,
	}, nil
}

// failedScrapeLogger logs requests that did not succeed. Successful scrapes
// arrive on a fixed schedule and are not logged.
func failedScrapeLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			logger.Warn("metrics server request failed",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.Int("status", status),
				slog.String("client_ip", c.ClientIP()),
			)
		}
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	return serve(s.server, "metrics", s.logger)
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return shutdown(ctx, s.server, "metrics", s.logger)
}
