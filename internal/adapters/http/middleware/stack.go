package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/irebix/LayerVisSync/internal/platform/telemetry"
)

// Chain composes middleware; the first one is the outermost.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}

// StackConfig configures Stack. Metrics may be nil.
type StackConfig struct {
	Logger    *slog.Logger
	Metrics   *telemetry.Metrics
	SessionID string
	Timeout   time.Duration
}

// Stack returns the full inbound pipeline of the panel API.
func Stack(cfg StackConfig) func(http.Handler) http.Handler {
	return Chain(
		Recovery(cfg.Logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(cfg.Metrics),
		Logging(cfg.Logger),
		Session(cfg.SessionID),
		Timeout(cfg.Timeout),
	)
}
