package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/irebix/LayerVisSync/internal/platform/telemetry"
)

// OpenTelemetry opens a server span per request, continuing any W3C trace
// context the caller sent, and records the server request metrics. Spans
// and metrics are labeled with the chi route pattern once routing is done,
// which keeps group indexes and layer ids out of span names. metrics may be
// nil.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	tracer := otel.GetTracerProvider().Tracer(telemetry.ServiceScope + "/http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
				),
			)
			defer span.End()

			rec := newRecorder(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			span.SetName("HTTP " + r.Method + " " + route)
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rec.status),
			)
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}

			if metrics == nil {
				return
			}
			result := "success"
			if rec.status >= http.StatusBadRequest {
				result = "error"
			}
			attrs := metric.WithAttributes(
				telemetry.AttrHTTPMethod.String(r.Method),
				telemetry.AttrHTTPRoute.String(route),
				telemetry.AttrHTTPStatus.Int(rec.status),
				telemetry.AttrResult.String(result),
			)
			metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			metrics.ServerRequestTotal.Add(ctx, 1, attrs)
		})
	}
}
