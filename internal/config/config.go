// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	customValidation "github.com/allisson/opaqueid/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// IdentifierKey is the base64 identifier key, or its base64 KMS ciphertext when KMSKeyURI is set.
	IdentifierKey string
	// IdentifierAlgorithm is the block cipher used for identifiers.
	IdentifierAlgorithm string
	// IdentifierKinds lists the kind names served over HTTP.
	IdentifierKinds []string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per client IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins lists the allowed origins, parsed from a comma-separated value.
	CORSAllowOrigins []string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// KMSProvider is the KMS provider to use (e.g., "localsecrets", "gcpkms", "awskms").
	KMSProvider string
	// KMSKeyURI is the URI of the KMS key wrapping the identifier key.
	KMSKeyURI string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Identifiers
		IdentifierKey:       env.GetString("OPAQUEID_KEY", ""),
		IdentifierAlgorithm: env.GetString("OPAQUEID_ALGORITHM", string(domain.AES128)),
		IdentifierKinds:     splitList(env.GetString("OPAQUEID_KINDS", "")),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 50.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: splitList(env.GetString("CORS_ALLOW_ORIGINS", "")),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "opaqueid"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),
	}
}

// Validate checks the values that cannot be defaulted. A plain identifier key
// must decode to 16 bytes; a KMS-wrapped one is only checked when loaded.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.IdentifierAlgorithm,
			validation.Required,
			validation.In(string(domain.AES128), string(domain.Twofish128)),
		),
		validation.Field(&c.IdentifierKinds, validation.Each(customValidation.NotBlank, customValidation.KindName)),
		validation.Field(&c.IdentifierKey,
			customValidation.Base64,
			validation.When(c.KMSKeyURI == "", customValidation.Base64Length(domain.KeySize)),
		),
		validation.Field(&c.CORSAllowOrigins,
			validation.When(c.CORSEnabled, validation.Required),
			validation.Each(customValidation.Origin),
		),
		validation.Field(&c.RateLimitRequestsPerSec, validation.Min(0.0)),
		validation.Field(&c.RateLimitBurst, validation.Min(0)),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
