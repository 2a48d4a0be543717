package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/irebix/LayerVisSync/internal/adapters/http/middleware"
	"github.com/irebix/LayerVisSync/internal/platform/httpclient"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

func TestSession_TagsContextHeaderAndLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var (
		gotID    string
		outbound string
	)
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID = middleware.SessionIDFromContext(r.Context())
		outbound = httpclient.Propagated(r.Context()).Get("X-Sync-Session")
		logging.FromContext(r.Context()).InfoContext(r.Context(), "inside")
	})
	handler := middleware.Chain(middleware.Logging(logger), middleware.Session("sess-1"))(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", http.NoBody))

	if gotID != "sess-1" {
		t.Errorf("SessionIDFromContext() = %q, want %q", gotID, "sess-1")
	}
	if outbound != "sess-1" {
		t.Errorf("outbound X-Sync-Session = %q, want %q", outbound, "sess-1")
	}
	if got := rec.Header().Get("X-Sync-Session"); got != "sess-1" {
		t.Errorf("X-Sync-Session = %q, want %q", got, "sess-1")
	}
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, `"msg":"inside"`) && !strings.Contains(line, `"session_id":"sess-1"`) {
			t.Errorf("handler log line = %s, want session_id attribute", line)
		}
	}
}

func TestSessionIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if got := middleware.SessionIDFromContext(req.Context()); got != "" {
		t.Errorf("SessionIDFromContext() = %q, want empty", got)
	}
}
