package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

// Logging stores a request logger carrying the request and correlation ids
// in the context and logs one line per completed request. The level follows
// the status: 5xx at error, 4xx at warn, the rest at info. Health probes
// only log at debug.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, reqLogger)

			if reqLogger.Enabled(ctx, slog.LevelDebug) {
				reqLogger.LogAttrs(ctx, slog.LevelDebug, "request headers", headerAttrs(r.Header)...)
			}

			rec := newRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			reqLogger.LogAttrs(ctx, completionLevel(r, rec.status), "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routePattern(r)),
				slog.Int("status", rec.status),
				slog.Int64("bytes", rec.written),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func completionLevel(r *http.Request, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case strings.HasPrefix(r.URL.Path, "/health/"):
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// routePattern returns the chi route pattern once routing has run, so
// /api/v1/groups/3 is reported as /api/v1/groups/{index}.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// headerAttrs renders headers sorted by name with credentials redacted.
func headerAttrs(h http.Header) []slog.Attr {
	names := slices.Sorted(maps.Keys(h))
	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		value := strings.Join(h[name], ",")
		if logging.IsCredentialHeader(name) {
			value = logging.Redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
