package telemetry

import (
	"errors"

	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Metrics are the instruments recorded by the HTTP layers and the sync
// engine.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	SyncTickTotal           metric.Int64Counter
	SyncFlipsTotal          metric.Int64Counter
	SyncWritesTotal         metric.Int64Counter
	SyncTransactionDuration metric.Float64Histogram
}

// NewMetrics registers every instrument on mp under ServiceScope.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(ServiceScope, metric.WithInstrumentationAttributes(semconv.ServiceName(serviceName)))

	var errs []error
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		errs = append(errs, err)
		return c
	}
	seconds := func(name, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
		errs = append(errs, err)
		return h
	}

	m := &Metrics{
		ServerRequestDuration: seconds("http.server.request.duration", "Duration of panel API requests"),
		ServerRequestTotal:    counter("http.server.request.total", "Panel API requests", "{request}"),
		ClientRequestDuration: seconds("http.client.request.duration", "Duration of alert bridge calls"),
		ClientRequestTotal:    counter("http.client.request.total", "Alert bridge calls", "{request}"),

		SyncTickTotal:           counter("layersync.tick.total", "Sync engine ticks by kind and result", "{tick}"),
		SyncFlipsTotal:          counter("layersync.flips.total", "Visibility flips detected on tracked layers", "{flip}"),
		SyncWritesTotal:         counter("layersync.writes.total", "Layer writes issued by the sync engine", "{write}"),
		SyncTransactionDuration: seconds("layersync.transaction.duration", "Duration of exclusive host transactions"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}
