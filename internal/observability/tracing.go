// Package observability wires OpenTelemetry tracing into the app.
//
// Spans come from two sources: Genkit instruments every model call, and
// the catalog client's HTTP transport is wrapped with otelhttp. Both
// feed Genkit's TracerProvider; Setup attaches an OTLP HTTP exporter to
// it so a local collector receives everything.
//
// Tracing is opt-in. With no endpoint configured, Setup is a no-op and
// spans stay in-process.
package observability

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/stylesphere/stylesphere/internal/config"
	"github.com/stylesphere/stylesphere/internal/log"
)

// Setup attaches an OTLP HTTP exporter to Genkit's TracerProvider.
// Returns a shutdown function that flushes pending spans.
//
// Exporter construction failure disables tracing instead of failing
// startup; a shopping session works fine without a collector.
func Setup(ctx context.Context, cfg config.TracingConfig, logger log.Logger) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if !cfg.Enabled() {
		return noop, nil
	}

	// Genkit's TracerProvider reads service identity from the OTEL
	// environment at span export time.
	if cfg.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("failed to create trace exporter, tracing disabled", "error", err)
		return noop, nil
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("tracing enabled",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
	)

	return tracing.TracerProvider().Shutdown, nil
}
