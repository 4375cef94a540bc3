package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ErrConfiguration marks tracing bootstrap failures caused by invalid
// configuration. The host should treat it as fatal during startup.
var ErrConfiguration = errors.New("invalid tracing configuration")

// Option overrides parts of Configure, primarily for tests.
type Option func(*options)

type options struct {
	exporter     sdktrace.SpanExporter
	stdoutWriter io.Writer
}

// WithSpanExporter bypasses exporter construction entirely.
func WithSpanExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) { o.exporter = exp }
}

// WithStdoutWriter redirects the stdout exporter's output.
func WithStdoutWriter(w io.Writer) Option {
	return func(o *options) { o.stdoutWriter = w }
}

// Configure builds and installs the global trace pipeline: a resource naming
// the service, the configured span exporter behind a batch processor, and
// W3C trace-context propagation. It returns a shutdown function that flushes
// pending spans.
//
// Requesting an http or grpc exporter without an endpoint fails with
// ErrConfiguration.
func Configure(ctx context.Context, cfg Config, serviceName, serviceVersion string, opts ...Option) (func(context.Context) error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	exporter := o.exporter
	if exporter == nil {
		var err error
		exporter, err = newExporter(ctx, cfg, o)
		if err != nil {
			return nil, err
		}
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, cfg Config, o options) (sdktrace.SpanExporter, error) {
	switch cfg.ExportType {
	case ExportStdout:
		var sopts []stdouttrace.Option
		if o.stdoutWriter != nil {
			sopts = append(sopts, stdouttrace.WithWriter(o.stdoutWriter))
		}
		exp, err := stdouttrace.New(sopts...)
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		return exp, nil

	case ExportHTTP:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("%w: http exporter requires an endpoint", ErrConfiguration)
		}
		hopts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(stripScheme(cfg.Endpoint)),
			otlptracehttp.WithTimeout(cfg.Timeout),
		}
		if len(cfg.Headers) > 0 {
			hopts = append(hopts, otlptracehttp.WithHeaders(cfg.Headers))
		}
		if cfg.Insecure {
			hopts = append(hopts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, hopts...)
		if err != nil {
			return nil, fmt.Errorf("creating http exporter: %w", err)
		}
		return exp, nil

	case ExportGRPC:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("%w: grpc exporter requires an endpoint", ErrConfiguration)
		}
		gopts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(stripScheme(cfg.Endpoint)),
			otlptracegrpc.WithTimeout(cfg.Timeout),
		}
		if len(cfg.Headers) > 0 {
			gopts = append(gopts, otlptracegrpc.WithHeaders(cfg.Headers))
		}
		if cfg.Insecure {
			gopts = append(gopts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("creating grpc exporter: %w", err)
		}
		return exp, nil
	}

	return nil, fmt.Errorf("%w: unsupported export type %q", ErrConfiguration, cfg.ExportType)
}

// stripScheme removes http:// or https:// from an endpoint URL. The OTLP
// exporters expect host:port, not full URLs.
func stripScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return endpoint
}
