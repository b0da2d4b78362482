package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.NotNil(t, cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "value")

	var entry map[string]interface{}
	err := json.Unmarshal([]byte(output), &entry)
	assert.NoError(t, err)
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "debug", Format: "text", Output: &buf})

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestNew_LogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&Config{Level: tt.level, Format: "json", Output: &buf})
			assert.True(t, logger.Handler().Enabled(context.Background(), tt.expected))
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	logger := New(nil)
	require.NotNil(t, logger)
}

func TestContextHandler_AddsCorrelationAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-456")
	ctx = WithUserID(ctx, "7")

	logger.InfoContext(ctx, "test with context")

	output := buf.String()
	assert.Contains(t, output, "req-456")
	assert.Contains(t, output, `"user_id":"7"`)
}

func TestContextHandler_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	logger.InfoContext(context.Background(), "no correlation")

	output := buf.String()
	assert.NotContains(t, output, "request_id")
	assert.NotContains(t, output, "user_id")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-request-id")
	assert.Equal(t, "test-request-id", GetRequestID(ctx))
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "42")
	assert.Equal(t, "42", GetUserID(ctx))
}

func TestGetUserID_Empty(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	logger.With("service", "walletledger").Info("test with attr")

	assert.Contains(t, buf.String(), "walletledger")
}

func TestContextHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: "json", Output: &buf})

	logger.WithGroup("request").Info("test with group", "method", "GET")

	output := buf.String()
	assert.Contains(t, output, "request")
	assert.Contains(t, output, "method")
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "warn", Format: "json", Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	Setup(&Config{Level: "info", Format: "json", Output: &buf})

	slog.Info("test after setup")

	assert.Contains(t, buf.String(), "test after setup")
}

func TestNew_NilOutputDefaultsToStdout(t *testing.T) {
	logger := New(&Config{Level: "info", Format: "json", Output: nil})
	require.NotNil(t, logger)
}
