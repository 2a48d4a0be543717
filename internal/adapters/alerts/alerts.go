// Package alerts provides the log-backed user alert sink used when no
// panel bridge is configured.
package alerts

import (
	"context"
	"log/slog"
	"sync"

	"github.com/irebix/LayerVisSync/internal/ports"
)

// Compile-time interface check.
var _ ports.Alerter = (*LogAlerter)(nil)

// LogAlerter writes alerts to the structured log and keeps the most recent
// ones for the status endpoint.
type LogAlerter struct {
	logger *slog.Logger
	keep   int

	mu     sync.Mutex
	recent []string
}

// NewLogAlerter creates a LogAlerter that remembers the last keep messages.
func NewLogAlerter(logger *slog.Logger, keep int) *LogAlerter {
	return &LogAlerter{logger: logger, keep: max(keep, 0)}
}

// Alert logs message at warn level. It never fails.
func (a *LogAlerter) Alert(ctx context.Context, message string) error {
	a.logger.WarnContext(ctx, "user alert", slog.String("message", message))

	if a.keep == 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, message)
	if over := len(a.recent) - a.keep; over > 0 {
		a.recent = append(a.recent[:0], a.recent[over:]...)
	}
	return nil
}

// Recent returns the remembered messages, oldest first.
func (a *LogAlerter) Recent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.recent))
	copy(out, a.recent)
	return out
}
