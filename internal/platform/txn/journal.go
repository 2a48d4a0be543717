// Package txn provides the undo journal behind host exclusive transactions.
//
// A Journal collects domain.Action values in batches. Flush executes the
// staged batch in insertion order; if one action fails, the batch's completed
// actions are rolled back in reverse order and the journal is marked failed.
// Undo reverts every action applied through the journal, so a whole
// exclusive scope applies as one step or not at all:
//
//	j := txn.New("Sync visibility")
//	ctx = txn.WithJournal(ctx, j)
//
//	_ = j.Stage(action)
//	if err := j.Flush(ctx); err != nil {
//	    j.Undo(ctx)
//	}
package txn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/platform/logging"
)

// ErrClosed is returned when actions are staged or flushed on a closed
// journal.
var ErrClosed = errors.New("txn: journal closed")

// ErrNilAction is returned when a nil Action is staged.
var ErrNilAction = errors.New("txn: nil action")

// Journal records the actions of one exclusive transaction. It is safe for
// concurrent use.
type Journal struct {
	label string

	mu      sync.Mutex
	staged  []domain.Action
	applied []domain.Action
	failed  bool
	closed  bool
}

// New creates an empty journal. label names the transaction in logs and in
// the host's undo history.
func New(label string) *Journal {
	return &Journal{label: label}
}

// Label returns the transaction label.
func (j *Journal) Label() string { return j.label }

// Stage queues action for the next Flush.
func (j *Journal) Stage(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}
	j.staged = append(j.staged, action)
	return nil
}

// Flush executes every staged action in insertion order. On failure the
// actions of this batch that already executed are rolled back in reverse
// order, the journal is marked failed, and the error is returned. Actions
// applied by earlier flushes are left for Undo.
func (j *Journal) Flush(ctx context.Context) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	items := j.staged
	j.staged = nil
	j.mu.Unlock()

	logger := logging.FromContext(ctx)

	for i, item := range items {
		logger.DebugContext(ctx, "executing action",
			slog.String("operation", "Journal.Flush"),
			slog.String("transaction", j.label),
			slog.Int("step", i+1),
			slog.Int("total", len(items)),
			slog.String("action", item.Description()),
		)

		if err := item.Execute(ctx); err != nil {
			logger.ErrorContext(ctx, "action failed, initiating rollback",
				slog.String("operation", "Journal.Flush"),
				slog.String("transaction", j.label),
				slog.Int("failed_step", i+1),
				slog.String("action", item.Description()),
				slog.Any("error", err),
			)
			rollback(ctx, j.label, items[:i], logger)

			j.mu.Lock()
			j.failed = true
			j.mu.Unlock()
			return fmt.Errorf("executing %s: %w", item.Description(), err)
		}
	}

	j.mu.Lock()
	j.applied = append(j.applied, items...)
	j.mu.Unlock()
	return nil
}

// Undo rolls back every applied action in reverse order and discards
// anything still staged. Rollback errors are logged and do not stop the
// remaining rollbacks. It returns the number of actions rolled back.
func (j *Journal) Undo(ctx context.Context) int {
	j.mu.Lock()
	items := j.applied
	j.applied = nil
	j.staged = nil
	j.mu.Unlock()

	rollback(ctx, j.label, items, logging.FromContext(ctx))
	return len(items)
}

// Close prevents further staging. It returns the number of applied actions.
func (j *Journal) Close() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return len(j.applied)
}

// Failed reports whether a Flush failed.
func (j *Journal) Failed() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.failed
}

// Applied returns the number of actions applied so far.
func (j *Journal) Applied() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.applied)
}

func rollback(ctx context.Context, label string, items []domain.Action, logger *slog.Logger) {
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if err := item.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("operation", "Journal.rollback"),
				slog.String("transaction", label),
				slog.Int("step", i+1),
				slog.String("action", item.Description()),
				slog.Any("error", err),
			)
		}
	}
}

type contextKey struct{}

// WithJournal returns a context carrying j.
func WithJournal(ctx context.Context, j *Journal) context.Context {
	return context.WithValue(ctx, contextKey{}, j)
}

// FromContext returns the journal stored in ctx, if any.
func FromContext(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(contextKey{}).(*Journal)
	return j, ok
}
