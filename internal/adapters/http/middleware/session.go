package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/irebix/LayerVisSync/internal/platform/httpclient"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

const headerSyncSession = "X-Sync-Session"

type sessionIDKey struct{}

// SessionIDFromContext returns the sync session id stored by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// Session tags every request with the sync engine's session id. The id goes
// on the context, on the request logger, on outbound alert bridge calls and
// into the X-Sync-Session response header. Register it after Logging so the
// enriched logger replaces the request logger.
func Session(sessionID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
			ctx = httpclient.WithHeader(ctx, headerSyncSession, sessionID)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(slog.String("session_id", sessionID)))

			w.Header().Set(headerSyncSession, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
