package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplychain/backend/internal/infrastructure/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{"console format", config.LogConfig{Level: "debug", Format: "console", Output: "stdout"}},
		{"json format", config.LogConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"stderr output", config.LogConfig{Level: "warn", Format: "json", Output: "stderr"}},
		{"empty output defaults to stdout", config.LogConfig{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
}

func TestNew_UnwritableFileOutput(t *testing.T) {
	_, err := New(config.LogConfig{Level: "info", Format: "json", Output: "/nonexistent-dir/app.log"})
	assert.Error(t, err)
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "test", ""} {
		t.Run("env "+env, func(t *testing.T) {
			logger, err := NewForEnvironment(env)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "level %q", tt.input)
	}
}
