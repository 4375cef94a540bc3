package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.False(t, cfg.AsJSON)
	assert.False(t, cfg.IntegrateTracing)
	assert.True(t, cfg.Colors)
	assert.Equal(t, 20, cfg.ExceptionMaxFrames)
	assert.True(t, cfg.ExceptionPreserveTraceback)
	assert.True(t, cfg.ExceptionExtractLocation)
	assert.True(t, cfg.ExceptionSkipLibraryFrames)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.ExceptionMaxFrames = 0
	require.Error(t, cfg.Validate())
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"Error", zapcore.ErrorLevel, false},
		{"critical", zapcore.FatalLevel, false},
		{"fatal", zapcore.FatalLevel, false},
		{" info ", zapcore.InfoLevel, false},
		{"verbose", zapcore.InfoLevel, true},
		{"", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := LevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_AS_JSON", "true")
	t.Setenv("LOG_TRACING", "yes")
	t.Setenv("LOG_COLORS", "off")
	t.Setenv("LOG_EXCEPTION_MAX_FRAMES", "5")
	t.Setenv("LOG_EXCEPTION_PRESERVE_TRACEBACK", "0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level)
	assert.True(t, cfg.AsJSON)
	assert.True(t, cfg.IntegrateTracing)
	assert.False(t, cfg.Colors)
	assert.Equal(t, 5, cfg.ExceptionMaxFrames)
	assert.False(t, cfg.ExceptionPreserveTraceback)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		value      string
		wantSubstr string
	}{
		{"bad level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad bool", "LOG_AS_JSON", "definitely", "LOG_AS_JSON"},
		{"bad int", "LOG_EXCEPTION_MAX_FRAMES", "many", "LOG_EXCEPTION_MAX_FRAMES"},
		{"zero frames", "LOG_EXCEPTION_MAX_FRAMES", "0", "exception_max_frames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}
