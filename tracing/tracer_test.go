package tracing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

// resetGlobalTracer keeps tests from leaking the provider installed by
// Configure into the rest of the suite.
func resetGlobalTracer(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
	})
}

func TestConfigureWithInMemoryExporter(t *testing.T) {
	resetGlobalTracer(t)

	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := Configure(context.Background(), NewDefaultConfig(), "billing", "1.4.2",
		WithSpanExporter(exporter))
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "checkout")
	span.End()

	require.NoError(t, shutdown(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "checkout", spans[0].Name)

	attrs := spans[0].Resource.Attributes()
	found := map[string]string{}
	for _, kv := range attrs {
		found[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "billing", found["service.name"])
	assert.Equal(t, "1.4.2", found["service.version"])
}

func TestConfigureStdoutExporter(t *testing.T) {
	resetGlobalTracer(t)

	var buf bytes.Buffer
	shutdown, err := Configure(context.Background(), NewDefaultConfig(), "billing", "1.4.2",
		WithStdoutWriter(&buf))
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "warmup")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "warmup")
}

func TestConfigureInvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Timeout = 0

	_, err := Configure(context.Background(), cfg, "svc", "1.0.0")
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestConfigureMissingEndpoint(t *testing.T) {
	for _, et := range []ExportType{ExportHTTP, ExportGRPC} {
		t.Run(string(et), func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.ExportType = et

			_, err := Configure(context.Background(), cfg, "svc", "1.0.0")
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), "endpoint")
		})
	}
}

func TestConfigureGRPCExporter(t *testing.T) {
	resetGlobalTracer(t)

	cfg := NewDefaultConfig()
	cfg.ExportType = ExportGRPC
	cfg.Endpoint = "http://localhost:4317"
	cfg.Insecure = true
	cfg.Timeout = 2 * time.Second
	cfg.Headers = map[string]string{"x-team": "platform"}

	// The exporter connects lazily, so bootstrap succeeds without a
	// collector; just verify construction and a clean shutdown.
	shutdown, err := Configure(context.Background(), cfg, "svc", "1.0.0")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestShutdownFlushesPendingSpans(t *testing.T) {
	resetGlobalTracer(t)

	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := Configure(context.Background(), NewDefaultConfig(), "svc", "1.0.0",
		WithSpanExporter(exporter))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, span := otel.Tracer("test").Start(context.Background(), "op")
		span.End()
	}

	// Batching means nothing is guaranteed to be exported yet; shutdown must
	// drain the queue.
	require.NoError(t, shutdown(context.Background()))
	assert.Len(t, exporter.GetSpans(), 5)
}
