package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.DBMaxOpenConnections)
	assert.Equal(t, 5, cfg.DBMaxIdleConnections)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)

	assert.Equal(t, "file", cfg.CredentialsStoreBackend)
	assert.Equal(t, ".db-credentials.enc", cfg.CredentialsFilePath)
	assert.Equal(t, "disable", cfg.CredentialsSSLMode)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)

	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
	assert.Equal(t, 20, cfg.RateLimitBurst)

	assert.False(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "backoffice", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_CREDENTIALS_STORE", "blob")
	t.Setenv("DB_CREDENTIALS_BLOB_URL", "s3://creds-bucket?region=us-east-1")
	t.Setenv("SESSION_TTL_SECONDS", "3600")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "blob", cfg.CredentialsStoreBackend)
	assert.Equal(t, "s3://creds-bucket?region=us-east-1", cfg.CredentialsBlobURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_HasMasterKey(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasMasterKey())

	cfg.MasterKey = "some-key"
	assert.True(t, cfg.HasMasterKey())
}

func TestConfig_GetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
