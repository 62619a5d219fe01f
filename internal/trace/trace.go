// SPDX-License-Identifier: Unlicense OR MIT

// Package trace sets up the OpenTelemetry tracer provider of the
// splitmenu commands. Spans go to an OTLP endpoint when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, and to the debug log otherwise.
package trace

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	EnvEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName = "OTEL_SERVICE_NAME"
)

// Provider owns a tracer provider and its exporter.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// New returns a Provider exporting to the configured OTLP endpoint,
// or logging spans to logger.
func New(ctx context.Context, logger zerolog.Logger) (*Provider, error) {
	service := os.Getenv(EnvServiceName)
	if service == "" {
		service = "splitmenu"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(service),
	)
	var exporter sdktrace.TracerProviderOption
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		exp, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("endpoint", endpoint).Msg("exporting traces")
		exporter = sdktrace.WithBatcher(exp)
	} else {
		exporter = sdktrace.WithSyncer(logExporter{logger: logger})
	}
	return &Provider{
		provider: sdktrace.NewTracerProvider(exporter, sdktrace.WithResource(res)),
	}, nil
}

// Tracer returns the named tracer.
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	return p.provider.Tracer(name)
}

// Shutdown flushes and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

// logExporter writes finished spans to a logger at debug level.
type logExporter struct {
	logger zerolog.Logger
}

func (e logExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		ev := e.logger.Debug().
			Str("span", s.Name()).
			Dur("duration", s.EndTime().Sub(s.StartTime()))
		for _, kv := range s.Attributes() {
			ev = ev.Str(string(kv.Key), kv.Value.Emit())
		}
		ev.Msg("span ended")
	}
	return nil
}

func (logExporter) Shutdown(context.Context) error {
	return nil
}
