package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"test", "test", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestAppConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"development", "development", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		expected string
	}{
		{"localhost", "localhost", 8080, "localhost:8080"},
		{"all interfaces", "0.0.0.0", 3000, "0.0.0.0:3000"},
		{"custom host", "192.168.1.1", 9000, "192.168.1.1:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ServerConfig{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.expected, cfg.Address())
		})
	}
}

func TestConfig_Validate_Development(t *testing.T) {
	cfg := Development()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_Production_DefaultSecretKey(t *testing.T) {
	cfg := Development()
	cfg.App.Environment = "production"
	cfg.App.SecretKey = "change-me-in-production"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "secret key must be changed")
}

func TestConfig_Validate_EmptyDatabaseURL(t *testing.T) {
	cfg := Development()
	cfg.Database.URL = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database url is required")
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 70000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Development()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid server port")
		})
	}
}

func TestConfig_Validate_BadPrefix(t *testing.T) {
	cfg := Development()
	cfg.App.APIV1Prefix = "api/v1"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prefix")
}

func TestDevelopment(t *testing.T) {
	cfg := Development()

	assert.Equal(t, "Wallet Ledger Service", cfg.App.ProjectName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "/api/v1", cfg.App.APIV1Prefix)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestTest(t *testing.T) {
	cfg := Test()

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Contains(t, cfg.Database.URL, "walletledger_test")
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Wallet Ledger Service", cfg.App.ProjectName)
	assert.Equal(t, "/api/v1", cfg.App.APIV1Prefix)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConnections)
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("SECRET_KEY", "real-secret")
	os.Setenv("DATABASE_URL", "postgres://app:pw@db.internal:5432/ledger")
	os.Setenv("API_V1_PREFIX", "/api/v2")
	os.Setenv("SERVER_PORT", "9000")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("SECRET_KEY")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("API_V1_PREFIX")
		os.Unsetenv("SERVER_PORT")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "real-secret", cfg.App.SecretKey)
	assert.Equal(t, "postgres://app:pw@db.internal:5432/ledger", cfg.Database.URL)
	assert.Equal(t, "/api/v2", cfg.App.APIV1Prefix)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestServerConfig_Timeouts(t *testing.T) {
	cfg := Development()

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestRateLimitConfig(t *testing.T) {
	cfg := Development()

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 20, cfg.RateLimit.BurstSize)
	assert.Equal(t, time.Minute, cfg.RateLimit.CleanupInterval)
}

func TestCORSConfig(t *testing.T) {
	cfg := Development()

	assert.Contains(t, cfg.CORS.AllowedOrigins, "*")
	assert.Contains(t, cfg.CORS.AllowedMethods, "GET")
	assert.Contains(t, cfg.CORS.AllowedMethods, "POST")
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
}
