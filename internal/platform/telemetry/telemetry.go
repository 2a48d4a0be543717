// Package telemetry sets up OpenTelemetry tracing and metrics for the
// service and owns the metric instruments the rest of the code records to.
//
//	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
//	defer otel.Shutdown(ctx)
//	otel.Metrics.SyncTickTotal.Add(ctx, 1, metric.WithAttributes(telemetry.AttrTickKind.String("detect")))
//
// With telemetry disabled Setup installs nothing and Metrics is nil; every
// recorder in the service accepts a nil *Metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/irebix/LayerVisSync/internal/platform/config"
)

// ServiceScope names the tracers and meters of this module.
const ServiceScope = "github.com/irebix/LayerVisSync"

// Metric and span attribute keys.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrTickKind    = attribute.Key("layersync.tick.kind")
	AttrOperation   = attribute.Key("layersync.operation")
)

// Providers are the SDK providers installed by Setup. All fields are nil
// when telemetry is disabled.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup installs global tracer and meter providers plus the W3C trace
// context and baggage propagators, then registers the service metrics.
// On error nothing stays installed.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{}, nil
	}

	dest, err := parseCollector(cfg.Exporter, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	spans, err := dest.spanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	points, err := dest.metricExporter(ctx)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res)),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(points)),
			sdkmetric.WithResource(res),
		),
	}
	if p.Metrics, err = NewMetrics(p.Meter, cfg.ServiceName); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, nil
}

// Shutdown flushes and stops both providers. Safe on a disabled setup.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
