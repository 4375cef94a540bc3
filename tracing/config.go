// Package tracing bootstraps the global OpenTelemetry trace pipeline from
// configuration. Sampling strategy and the exporter wire protocol are the
// SDK's concern; this package only selects and wires an exporter.
package tracing

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/o11y/internal/envutil"
)

// ExportType selects the span exporter.
type ExportType string

const (
	// ExportStdout writes spans to standard output, for local development.
	ExportStdout ExportType = "stdout"
	// ExportHTTP ships spans over OTLP/HTTP.
	ExportHTTP ExportType = "http"
	// ExportGRPC ships spans over OTLP/gRPC.
	ExportGRPC ExportType = "grpc"
)

// Config holds tracing bootstrap configuration.
type Config struct {
	// ExportType selects the exporter. Default stdout.
	ExportType ExportType
	// Endpoint is the collector address, required for http and grpc.
	Endpoint string
	// Insecure disables TLS on the exporter connection.
	Insecure bool
	// Timeout bounds each export batch. Minimum 1 second.
	Timeout time.Duration
	// Headers are attached to every export request.
	Headers map[string]string
}

// NewDefaultConfig returns a stdout-exporting config.
func NewDefaultConfig() Config {
	return Config{
		ExportType: ExportStdout,
		Timeout:    30 * time.Second,
	}
}

// Validate checks configuration for errors.
func (c Config) Validate() error {
	switch c.ExportType {
	case ExportStdout, ExportHTTP, ExportGRPC:
	default:
		return fmt.Errorf("invalid export type: %q", c.ExportType)
	}
	if c.Timeout < time.Second {
		return fmt.Errorf("timeout must be at least 1 second, got %s", c.Timeout)
	}
	return nil
}

// FromEnv creates configuration from environment variables.
//
// Variables (defaults in parens):
//
//	TRACING_EXPORTER_TYPE      stdout|http|grpc (stdout)
//	TRACING_EXPORTER_ENDPOINT  collector address ("")
//	TRACING_INSECURE           bool (false)
//	TRACING_TIMEOUT            seconds, >= 1 (30)
func FromEnv() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("TRACING_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TRACING_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := NewDefaultConfig()

	if raw := k.String("exporter_type"); raw != "" {
		et := ExportType(strings.ToLower(raw))
		switch et {
		case ExportStdout, ExportHTTP, ExportGRPC:
			cfg.ExportType = et
		default:
			return Config{}, fmt.Errorf("invalid TRACING_EXPORTER_TYPE: %q", raw)
		}
	}

	cfg.Endpoint = k.String("exporter_endpoint")

	if raw := k.String("insecure"); raw != "" {
		v, err := envutil.ParseBool("TRACING_INSECURE", raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Insecure = v
	}

	if raw := k.String("timeout"); raw != "" {
		secs, err := envutil.ParseInt("TRACING_TIMEOUT", raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TRACING_TIMEOUT: %q", raw)
		}
		if secs < 1 {
			return Config{}, fmt.Errorf("timeout must be at least 1 second, got %d", secs)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
