package metrics

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/o11y/internal/envutil"
)

// Config controls which built-in collectors the registry starts with and an
// optional prefix applied to metrics registered through the wrapper.
type Config struct {
	// EnableGoCollector registers Go runtime metrics (GC, goroutines, memory).
	EnableGoCollector bool
	// EnablePlatformCollector registers build-info metrics (Go version,
	// module path, VCS data).
	EnablePlatformCollector bool
	// EnableProcessCollector registers process metrics (CPU, memory, fds).
	EnableProcessCollector bool
	// Prefix is prepended to every metric registered through the collector.
	Prefix string
}

// NewDefaultConfig enables all built-in collectors with no prefix.
func NewDefaultConfig() Config {
	return Config{
		EnableGoCollector:       true,
		EnablePlatformCollector: true,
		EnableProcessCollector:  true,
	}
}

// FromEnv creates configuration from environment variables.
//
// Variables (defaults in parens):
//
//	METRICS_ENABLE_GC        bool (true)
//	METRICS_ENABLE_PLATFORM  bool (true)
//	METRICS_ENABLE_PROCESS   bool (true)
//	METRICS_PREFIX           string ("")
func FromEnv() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("METRICS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "METRICS_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := NewDefaultConfig()
	bools := []struct {
		key  string
		name string
		dst  *bool
	}{
		{"enable_gc", "METRICS_ENABLE_GC", &cfg.EnableGoCollector},
		{"enable_platform", "METRICS_ENABLE_PLATFORM", &cfg.EnablePlatformCollector},
		{"enable_process", "METRICS_ENABLE_PROCESS", &cfg.EnableProcessCollector},
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
	cfg.Prefix = k.String("prefix")
	return cfg, nil
}
