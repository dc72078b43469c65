// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is loaded once at process
// start and treated as immutable afterwards; components receive the fields
// they need instead of reading the environment themselves.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver is the database driver to use (e.g., "postgres", "mysql").
	DBDriver string
	// DBConnectionString is the fallback connection string, used only when no
	// encrypted credential record is stored (or the master key is absent).
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration
	// DBConnectTimeout bounds the liveness ping performed after pool construction.
	DBConnectTimeout time.Duration
	// DBTestConnectTimeout bounds the short-lived "test connection" probe.
	DBTestConnectTimeout time.Duration

	// MasterKey is the operator-supplied secret used to derive the credential
	// encryption key. It is never persisted. When empty, the credential store
	// degrades to "not configured": reads report absence and writes fail fast.
	MasterKey string
	// CredentialsStoreBackend selects where the encrypted record lives ("file" or "blob").
	CredentialsStoreBackend string
	// CredentialsFilePath is the on-disk location of the encrypted record (file backend).
	CredentialsFilePath string
	// CredentialsBlobURL is the bucket URL for the blob backend (e.g., "s3://bucket?region=...").
	CredentialsBlobURL string
	// CredentialsSSLMode is the sslmode applied to connection strings built from
	// stored credentials. Defaults to "disable" to match the internal non-TLS
	// network this deployment targets; override for other trust models.
	CredentialsSSLMode string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SessionTTL is the duration after which an admin session expires.
	SessionTTL time.Duration

	// RateLimitEnabled indicates whether rate limiting for admin endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per session.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for admin endpoint rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", "postgres"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 10),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),
		DBConnectTimeout:     env.GetDuration("DB_CONNECT_TIMEOUT_SECONDS", 5, time.Second),
		DBTestConnectTimeout: env.GetDuration("DB_TEST_CONNECT_TIMEOUT_SECONDS", 5, time.Second),

		// Encrypted credential store
		MasterKey:               env.GetString("DB_CREDENTIALS_MASTER_KEY", ""),
		CredentialsStoreBackend: env.GetString("DB_CREDENTIALS_STORE", "file"),
		CredentialsFilePath:     env.GetString("DB_CREDENTIALS_FILE", ".db-credentials.enc"),
		CredentialsBlobURL:      env.GetString("DB_CREDENTIALS_BLOB_URL", ""),
		CredentialsSSLMode:      env.GetString("DB_CREDENTIALS_SSLMODE", "disable"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Sessions
		SessionTTL: env.GetDuration("SESSION_TTL_SECONDS", 86400, time.Second),

		// Rate Limiting (admin endpoints)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "backoffice"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// HasMasterKey reports whether encryption-at-rest is available.
func (c *Config) HasMasterKey() bool {
	return c.MasterKey != ""
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
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
