package logging

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/o11y/internal/envutil"
)

// Config holds logging configuration.
//
// Construct once at process start, either directly or via FromEnv, and treat
// as read-only afterwards.
type Config struct {
	// Level is the minimum level emitted.
	Level zapcore.Level
	// AsJSON selects the JSON renderer over the console renderer.
	AsJSON bool
	// IntegrateTracing adds active-span fields to every event.
	IntegrateTracing bool
	// Colors enables ANSI colors in the console renderer.
	Colors bool

	// ExceptionMaxFrames caps rendered stack frames. Must be >= 1.
	ExceptionMaxFrames int
	// ExceptionPreserveTraceback also attaches a formatted traceback string.
	ExceptionPreserveTraceback bool
	// ExceptionExtractLocation adds the error's source location as a field.
	ExceptionExtractLocation bool
	// ExceptionSkipLibraryFrames drops runtime/testing/reflect frames.
	ExceptionSkipLibraryFrames bool
}

// NewDefaultConfig returns config with production-ready defaults.
func NewDefaultConfig() Config {
	return Config{
		Level:                      zapcore.InfoLevel,
		AsJSON:                     false,
		IntegrateTracing:           false,
		Colors:                     true,
		ExceptionMaxFrames:         20,
		ExceptionPreserveTraceback: true,
		ExceptionExtractLocation:   true,
		ExceptionSkipLibraryFrames: true,
	}
}

// Validate checks config for errors.
func (c Config) Validate() error {
	if c.ExceptionMaxFrames < 1 {
		return fmt.Errorf("exception_max_frames must be at least 1, got %d", c.ExceptionMaxFrames)
	}
	return nil
}

// LevelFromString parses a log level name.
//
// Accepted: debug, info, warning (warn), error, critical (fatal).
func LevelFromString(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warning", "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "critical", "fatal":
		return zapcore.FatalLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level: %q", s)
}

// FromEnv creates configuration from environment variables.
//
// Variables (defaults in parens):
//
//	LOG_LEVEL                          level name (INFO)
//	LOG_AS_JSON                        bool (false)
//	LOG_TRACING                        bool (false)
//	LOG_COLORS                         bool (true)
//	LOG_EXCEPTION_MAX_FRAMES           int >= 1 (20)
//	LOG_EXCEPTION_PRESERVE_TRACEBACK   bool (true)
//	LOG_EXCEPTION_EXTRACT_LOCATION     bool (true)
//	LOG_EXCEPTION_SKIP_LIBRARY_FRAMES  bool (true)
func FromEnv() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("LOG_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LOG_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := NewDefaultConfig()

	if raw := k.String("level"); raw != "" {
		level, err := LevelFromString(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Level = level
	}

	bools := []struct {
		key  string
		name string
		dst  *bool
	}{
		{"as_json", "LOG_AS_JSON", &cfg.AsJSON},
		{"tracing", "LOG_TRACING", &cfg.IntegrateTracing},
		{"colors", "LOG_COLORS", &cfg.Colors},
		{"exception_preserve_traceback", "LOG_EXCEPTION_PRESERVE_TRACEBACK", &cfg.ExceptionPreserveTraceback},
		{"exception_extract_location", "LOG_EXCEPTION_EXTRACT_LOCATION", &cfg.ExceptionExtractLocation},
		{"exception_skip_library_frames", "LOG_EXCEPTION_SKIP_LIBRARY_FRAMES", &cfg.ExceptionSkipLibraryFrames},
	}
	for _, b := range bools {
		if raw := k.String(b.key); raw != "" {
			v, err := envutil.ParseBool(b.name, raw)
			if err != nil {
				return Config{}, err
			}
			*b.dst = v
		}
	}

	if raw := k.String("exception_max_frames"); raw != "" {
		n, err := envutil.ParseInt("LOG_EXCEPTION_MAX_FRAMES", raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_EXCEPTION_MAX_FRAMES: %q", raw)
		}
		cfg.ExceptionMaxFrames = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
