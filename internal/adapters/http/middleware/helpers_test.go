package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// logSink captures JSON log lines at debug level and up.
type logSink struct {
	buf bytes.Buffer
}

func (s *logSink) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&s.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// entries decodes every captured line, optionally filtered by msg.
func (s *logSink) entries(t *testing.T, msg string) []map[string]any {
	t.Helper()

	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(s.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decoding log line %q: %v", line, err)
		}
		if msg == "" || entry["msg"] == msg {
			out = append(out, entry)
		}
	}
	return out
}

// single returns the only entry with msg and fails otherwise.
func (s *logSink) single(t *testing.T, msg string) map[string]any {
	t.Helper()

	got := s.entries(t, msg)
	if len(got) != 1 {
		t.Fatalf("found %d %q log entries, want 1; log:\n%s", len(got), msg, s.buf.String())
	}
	return got[0]
}
