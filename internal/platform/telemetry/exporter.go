package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted in telemetry.exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnsupportedExporter reports an exporter name Setup does not know.
var ErrUnsupportedExporter = errors.New("unsupported telemetry exporter")

// collector is where spans and metric points go.
type collector struct {
	kind     string
	hostPort string
	insecure bool
}

// parseCollector validates the exporter settings. OTLP endpoints are URLs;
// anything but https is sent in plain text.
func parseCollector(exporter, endpoint string) (collector, error) {
	switch exporter {
	case ExporterStdout:
		return collector{kind: exporter}, nil
	case ExporterOTLP:
		if endpoint == "" {
			return collector{}, errors.New("otlp exporter requires an endpoint")
		}
		c := collector{kind: exporter, hostPort: endpoint, insecure: true}
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			c.hostPort = u.Host
			c.insecure = u.Scheme != "https"
		}
		return c, nil
	}
	return collector{}, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
}

func (c collector) spanExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	if c.kind == ExporterStdout {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.hostPort)}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func (c collector) metricExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	if c.kind == ExporterStdout {
		return stdoutmetric.New()
	}
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.hostPort)}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}
