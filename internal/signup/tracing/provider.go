// Package tracing настраивает OpenTelemetry для сервиса регистрации.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Поддерживаемые экспортеры.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnsupportedExporter - неизвестный тип экспортера.
var ErrUnsupportedExporter = errors.New("unsupported trace exporter")

// Config настраивает трассировку.
type Config struct {
	Enabled      bool    `yaml:"enabled" env:"SIGNUP_TRACING_ENABLED" env-default:"false"`
	Exporter     string  `yaml:"exporter" env:"SIGNUP_TRACING_EXPORTER" env-default:"stdout"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"SIGNUP_TRACING_OTLP_ENDPOINT" env-default:"localhost:4317"`
	SampleRate   float64 `yaml:"sample_rate" env:"SIGNUP_TRACING_SAMPLE_RATE" env-default:"1.0"`
	ServiceName  string  `yaml:"service_name" env:"SIGNUP_TRACING_SERVICE_NAME" env-default:"signup"`
}

// Provider владеет TracerProvider и отдает Tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider создает провайдер. При выключенной трассировке возвращается no-op.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(cfg.ServiceName)}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case ExporterStdout:
		exporter, err = stdouttrace.New()
	case ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	case ExporterNone, "":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExporter, cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "signup"
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
	}, nil
}

// Tracer возвращает трассировщик. Безопасен и при выключенной трассировке.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled сообщает, включена ли трассировка.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown сбрасывает накопленные спаны.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
