package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/glowandgrind/site-api/config"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	TracingEnabled bool
	OTLPEndpoint   string // host:port of an OTLP/HTTP collector
	OTLPInsecure   bool
	SamplingRate   float64 // 0 means sample everything

	MetricsEnabled bool
}

func FromCentralConfig(c *config.Config) Config {
	return Config{
		ServiceName:    c.Observability.ServiceName,
		ServiceVersion: c.Observability.ServiceVersion,
		Environment:    c.Server.Environment,
		TracingEnabled: c.Observability.Tracing.Enabled,
		OTLPEndpoint:   c.Observability.Tracing.OTLPEndpoint,
		OTLPInsecure:   c.Observability.Tracing.OTLPInsecure,
		SamplingRate:   c.Observability.Tracing.SamplingRate,
		MetricsEnabled: c.Observability.Metrics.Enabled,
	}
}

// Provider owns the SDK providers installed as otel globals.
type Provider struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// InitTelemetry installs global tracer and meter providers. Spans are only
// exported when tracing is enabled and an OTLP endpoint is set. OTel
// metrics are bridged into the default Prometheus registry served on
// /metrics next to the promauto counters.
func InitTelemetry(ctx context.Context, cfg Config) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	mp, err := newMeterProvider(res, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{TracerProvider: tp, MeterProvider: mp}, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg Config) (*trace.TracerProvider, error) {
	rate := cfg.SamplingRate
	if rate <= 0 || rate > 1 {
		rate = 1.0
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(rate))),
	}

	if cfg.TracingEnabled && cfg.OTLPEndpoint != "" {
		expOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			expOpts = append(expOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, expOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}

	return trace.NewTracerProvider(opts...), nil
}

func newMeterProvider(res *resource.Resource, cfg Config) (*metric.MeterProvider, error) {
	opts := []metric.Option{metric.WithResource(res)}

	if cfg.MetricsEnabled {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		opts = append(opts, metric.WithReader(exporter))
	}

	return metric.NewMeterProvider(opts...), nil
}

// Shutdown flushes pending spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}
