// Package http provides the HTTP servers of the identifier service: the API
// server with its middleware chain and the Prometheus metrics server.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/opaqueid/internal/config"
	"github.com/allisson/opaqueid/internal/metrics"
	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	opaqueidHTTP "github.com/allisson/opaqueid/internal/opaqueid/http"
)

// readinessProbe is the block round-tripped through the cipher by /ready.
var readinessProbe = domain.Concat(domain.MustTag("ready"), 1)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	cipher domain.BlockCipher
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is installed by SetupRouter.
func NewServer(
	cipher domain.BlockCipher,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		cipher: cipher,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server for host:port with the timeouts shared by
// the API and metrics servers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve blocks until srv stops. A shutdown is not an error.
func serve(srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting "+name+" server", slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s server: %w", name, err)
	}
	return nil
}

func shutdown(ctx context.Context, srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("shutting down " + name + " server")
	return srv.Shutdown(ctx)
}

// SetupRouter configures the Gin router with middleware and routes. ctx bounds
// background work started by middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	identifierHandler *opaqueidHTTP.IdentifierHandler,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	v1.GET("/kinds", identifierHandler.ListKindsHandler)

	ids := v1.Group("/ids/:kind")
	{
		ids.POST("/encode", identifierHandler.EncodeHandler)
		ids.POST("/decode", identifierHandler.DecodeHandler)
		ids.POST("/encode-batch", identifierHandler.EncodeBatchHandler)
		ids.POST("/decode-batch", identifierHandler.DecodeBatchHandler)
	}

	s.router = router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router
	return serve(s.server, "http", s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return shutdown(ctx, s.server, "http", s.logger)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the identifier cipher still inverts its own
// output. The container never builds a Server without a cipher.
func (s *Server) readinessHandler(c *gin.Context) {
	cipherStatus := "ok"
	if s.cipher.DecryptBlock(s.cipher.EncryptBlock(readinessProbe)) != readinessProbe {
		cipherStatus = "error"
	}

	if cipherStatus != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"cipher": cipherStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"cipher": cipherStatus},
	})
}
