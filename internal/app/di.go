// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/opaqueid/internal/config"
	"github.com/allisson/opaqueid/internal/http"
	"github.com/allisson/opaqueid/internal/metrics"
	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	opaqueidHTTP "github.com/allisson/opaqueid/internal/opaqueid/http"
	"github.com/allisson/opaqueid/internal/opaqueid/service"
	"github.com/allisson/opaqueid/internal/opaqueid/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	kmsService    service.KMSService
	keyLoader     *service.KeyLoader
	cipherFactory service.BlockCipherFactory
	cipher        domain.BlockCipher

	// Use Cases
	kindRegistry      *usecase.KindRegistry
	identifierUseCase usecase.IdentifierUseCase

	// Handlers
	identifierHandler *opaqueidHTTP.IdentifierHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	kmsServiceInit        sync.Once
	keyLoaderInit         sync.Once
	cipherFactoryInit     sync.Once
	cipherInit            sync.Once
	kindRegistryInit      sync.Once
	identifierUseCaseInit sync.Once
	identifierHandlerInit sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() service.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = service.NewKMSService()
	})
	return c.kmsService
}

// KeyLoader returns the identifier key loader.
func (c *Container) KeyLoader() *service.KeyLoader {
	c.keyLoaderInit.Do(func() {
		c.keyLoader = service.NewKeyLoader(c.KMSService(), c.Logger())
	})
	return c.keyLoader
}

// BlockCipherFactory returns the block cipher factory.
func (c *Container) BlockCipherFactory() service.BlockCipherFactory {
	c.cipherFactoryInit.Do(func() {
		c.cipherFactory = service.NewBlockCipherFactory()
	})
	return c.cipherFactory
}

// Cipher returns the keyed identifier cipher.
func (c *Container) Cipher(ctx context.Context) (domain.BlockCipher, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initCipher(ctx)
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// KindRegistry returns the registry of configured identifier kinds.
func (c *Container) KindRegistry() (*usecase.KindRegistry, error) {
	var err error
	c.kindRegistryInit.Do(func() {
		c.kindRegistry, err = usecase.NewKindRegistry(c.config.IdentifierKinds)
		if err != nil {
			err = fmt.Errorf("failed to create kind registry: %w", err)
			c.initErrors["kindRegistry"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kindRegistry"]; exists {
		return nil, storedErr
	}
	return c.kindRegistry, nil
}

// IdentifierUseCase returns the identifier use case.
func (c *Container) IdentifierUseCase(ctx context.Context) (usecase.IdentifierUseCase, error) {
	var err error
	c.identifierUseCaseInit.Do(func() {
		c.identifierUseCase, err = c.initIdentifierUseCase(ctx)
		if err != nil {
			c.initErrors["identifierUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identifierUseCase"]; exists {
		return nil, storedErr
	}
	return c.identifierUseCase, nil
}

// IdentifierHandler returns the identifier HTTP handler.
func (c *Container) IdentifierHandler(ctx context.Context) (*opaqueidHTTP.IdentifierHandler, error) {
	var err error
	c.identifierHandlerInit.Do(func() {
		var useCase usecase.IdentifierUseCase
		useCase, err = c.IdentifierUseCase(ctx)
		if err != nil {
			err = fmt.Errorf("failed to get identifier use case for handler: %w", err)
			c.initErrors["identifierHandler"] = err
			return
		}
		c.identifierHandler = opaqueidHTTP.NewIdentifierHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identifierHandler"]; exists {
		return nil, storedErr
	}
	return c.identifierHandler, nil
}

// HTTPServer returns the HTTP API server with its router configured. ctx
// bounds the key load and the lifetime of background middleware work.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initCipher loads the identifier key, unwrapping it through KMS when a key
// URI is configured, and zeroes the key bytes once the cipher holds them.
func (c *Container) initCipher(ctx context.Context) (domain.BlockCipher, error) {
	key, err := c.KeyLoader().Load(ctx, c.config.IdentifierKey, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to load identifier key: %w", err)
	}
	defer service.Zero(key)

	alg := domain.Algorithm(c.config.IdentifierAlgorithm)
	cipher, err := c.BlockCipherFactory().Create(key, alg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", alg, err)
	}

	c.Logger().Info("identifier cipher ready",
		slog.String("algorithm", alg.String()),
		slog.Bool("kms_wrapped", c.config.KMSKeyURI != ""),
	)
	return cipher, nil
}

func (c *Container) initIdentifierUseCase(ctx context.Context) (usecase.IdentifierUseCase, error) {
	registry, err := c.KindRegistry()
	if err != nil {
		return nil, err
	}

	cipher, err := c.Cipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for identifier use case: %w", err)
	}

	baseUseCase := usecase.NewIdentifierUseCase(registry, cipher)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for identifier use case: %w", err)
		}
		return usecase.NewIdentifierUseCaseWithMetrics(baseUseCase, registry, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	handler, err := c.IdentifierHandler(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get identifier handler for http server: %w", err)
	}

	cipher, err := c.Cipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(cipher, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, handler, provider, c.config.MetricsNamespace)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
}
