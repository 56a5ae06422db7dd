package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{"trace level", "trace", log.DebugLevel},
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"unknown level", "loud", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SetupHandlerText(tt.logLevel, &bytes.Buffer{})
			logger, ok := handler.(*log.Logger)
			require.True(t, ok, "expected *log.Logger, got %T", handler)
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
		})
	}
}

func TestSetupHandlerJSON(t *testing.T) {
	tests := []struct {
		logLevel string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			h := SetupHandlerJSON(tt.logLevel, &bytes.Buffer{})
			assert.True(t, h.Enabled(context.Background(), tt.enabled))
			assert.False(t, h.Enabled(context.Background(), tt.disabled))
		})
	}
}

func TestNew_JSONWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	New("json", "info", &buf).Info("submitted", "allowed", true)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "submitted", rec["msg"])
	assert.Equal(t, true, rec["allowed"])
}

func TestNew_TextWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	New("text", "debug", &buf).Debug("toggled", "activity", "node")

	out := buf.String()
	assert.Contains(t, out, "toggled")
	assert.Contains(t, out, "activity=node")
}
