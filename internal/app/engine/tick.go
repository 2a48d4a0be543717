package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/syncgroup"
)

// TickStatus is the outcome of one tick.
type TickStatus string

const (
	// TickSkipped means a tick of the same kind was still running.
	TickSkipped TickStatus = "skipped"
	// TickIdle means nothing needed to change.
	TickIdle TickStatus = "idle"
	// TickApplied means flips were detected and propagated.
	TickApplied TickStatus = "applied"
	// TickFailed means the propagation transaction failed.
	TickFailed TickStatus = "failed"
)

// TickResult summarizes a detection tick.
type TickResult struct {
	Status    TickStatus
	Refreshed bool
	Flips     []syncgroup.Flip
	Writes    int
}

// DetectTick samples every tracked layer, and when some flipped, mirrors the
// new state onto their groups in a single exclusive transaction. A call made
// while another DetectTick is running returns TickSkipped without doing
// anything. A failed transaction leaves baselines untouched so the next tick
// detects the same flips again.
//
// When the host rejects the batch because a layer disappeared since the last
// refresh, the directory is rebuilt, the groups are pruned and the tick runs
// detection once more, so one deleted layer does not stall the other groups.
func (e *Engine) DetectTick(ctx context.Context) (TickResult, error) {
	if !e.detecting.CompareAndSwap(false, true) {
		e.recordTick(ctx, "detect", TickSkipped)
		return TickResult{Status: TickSkipped}, nil
	}
	defer e.detecting.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	refreshed := false
	if e.refreshRequested.Swap(false) {
		e.syncLocked(ctx)
		refreshed = true
	}

	res, err := e.propagateLocked(ctx)
	if err != nil && !refreshed && errors.Is(err, domain.ErrNotFound) {
		e.logger.InfoContext(ctx, "layer vanished before propagation, refreshing directory",
			slog.String("operation", "propagate"),
			slog.Any("error", err),
		)
		e.dir.Invalidate()
		e.syncLocked(ctx)
		refreshed = true
		res, err = e.propagateLocked(ctx)
	}
	res.Refreshed = refreshed

	switch {
	case err == nil:
		e.recordOutcome(nil)
	case !isCanceled(err):
		e.recordOutcome(err)
	}
	e.recordFlips(ctx, len(res.Flips))
	e.recordTick(ctx, "detect", res.Status)
	return res, err
}

// propagateLocked detects flips and applies their propagation plan.
// e.mu must be held.
func (e *Engine) propagateLocked(ctx context.Context) (TickResult, error) {
	flips := syncgroup.Detect(e.reg, e.lookup)
	if len(flips) == 0 {
		return TickResult{Status: TickIdle}, nil
	}

	plan := syncgroup.PlanPropagation(flips, e.lookup)
	res := TickResult{Flips: flips, Writes: len(plan.Writes)}

	if err := e.applyLocked(ctx, "propagate", plan); err != nil {
		res.Status = TickFailed
		return res, err
	}

	e.logger.DebugContext(ctx, "propagated visibility flips",
		slog.Int("flips", len(flips)),
		slog.Int("writes", res.Writes),
	)
	res.Status = TickApplied
	return res, nil
}

// RefreshTick rebuilds the directory and prunes groups of layers that no
// longer exist. It is skipped while another RefreshTick is running.
func (e *Engine) RefreshTick(ctx context.Context) error {
	if !e.refreshing.CompareAndSwap(false, true) {
		e.recordTick(ctx, "refresh", TickSkipped)
		return nil
	}
	defer e.refreshing.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	e.recordTick(ctx, "refresh", TickIdle)
	return nil
}
