// Package engine runs the sync-group state engine for one document session.
//
// The engine owns the registry, the layer directory and the re-entrancy
// guards. Two periodic entry points drive it: DetectTick samples tracked
// layers and propagates visibility flips, and RefreshTick rebuilds the
// directory and prunes groups whose layers are gone. Panel operations
// (toggle, group show/hide, delete) run through the same lock, so the
// registry is never mutated concurrently.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/irebix/LayerVisSync/internal/app/directory"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/domain/syncgroup"
	"github.com/irebix/LayerVisSync/internal/platform/telemetry"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// Compile-time checks.
var (
	_ ports.SyncService   = (*Engine)(nil)
	_ ports.HealthChecker = (*Engine)(nil)
)

// DefaultTransactionLabel names engine transactions in the host undo history.
const DefaultTransactionLabel = "Sync layer visibility"

// Config tunes an Engine.
type Config struct {
	// TransactionLabel names every exclusive host transaction.
	TransactionLabel string

	// MarkerTag, when set, is written to the tag attribute of linked layers
	// and cleared when they leave their group.
	MarkerTag string

	// MaxConsecutiveFailures is the number of failed detection ticks in a
	// row after which the health check reports the engine unavailable.
	MaxConsecutiveFailures int
}

func (c Config) withDefaults() Config {
	if c.TransactionLabel == "" {
		c.TransactionLabel = DefaultTransactionLabel
	}
	if c.MaxConsecutiveFailures <= 0 {
		c.MaxConsecutiveFailures = 5
	}
	return c
}

// Engine implements ports.SyncService for one document.
type Engine struct {
	doc       ports.Document
	alerter   ports.Alerter
	dir       *directory.Directory
	reg       *syncgroup.Registry
	cfg       Config
	sessionID string
	logger    *slog.Logger
	metrics   *telemetry.Metrics
	tracer    trace.Tracer

	// mu serializes every registry access.
	mu sync.Mutex

	detecting        atomic.Bool
	refreshing       atomic.Bool
	acting           atomic.Bool
	refreshRequested atomic.Bool

	state *safeRef[tickState]
}

// New creates an engine for doc. metrics may be nil.
func New(doc ports.Document, alerter ports.Alerter, logger *slog.Logger, cfg Config, metrics *telemetry.Metrics) *Engine {
	sessionID := uuid.NewString()
	e := &Engine{
		doc:       doc,
		alerter:   alerter,
		dir:       directory.New(doc),
		reg:       syncgroup.NewRegistry(),
		cfg:       cfg.withDefaults(),
		sessionID: sessionID,
		logger: logger.With(
			slog.String("session_id", sessionID),
			slog.String("document_id", doc.ID()),
		),
		metrics: metrics,
		tracer:  otel.GetTracerProvider().Tracer(telemetry.ServiceScope + "/engine"),
		state:   newRef(tickState{}),
	}
	e.refreshRequested.Store(true)
	return e
}

// SessionID returns the unique id of this engine session.
func (e *Engine) SessionID() string { return e.sessionID }

// RequestRefresh makes the next detection tick rebuild the directory before
// sampling, even when the tree structure looks unchanged.
func (e *Engine) RequestRefresh() {
	e.dir.Invalidate()
	e.refreshRequested.Store(true)
}

// Name implements ports.HealthChecker.
func (e *Engine) Name() string { return "sync-engine" }

// HealthCheck reports the engine unavailable after too many failed
// detection ticks in a row.
func (e *Engine) HealthCheck(_ context.Context) error {
	st := e.state.Get()
	if st.consecutiveFailures >= e.cfg.MaxConsecutiveFailures {
		return fmt.Errorf("%d consecutive failed ticks: %w", st.consecutiveFailures, st.lastErr)
	}
	return nil
}

// syncLocked refreshes the directory and prunes the registry to it.
// e.mu must be held.
func (e *Engine) syncLocked(ctx context.Context) {
	e.dir.Refresh(ctx)
	dropped := e.reg.Reconcile(e.dir.IDs())
	if len(dropped) == 0 {
		return
	}
	e.logger.InfoContext(ctx, "pruned sync groups of missing layers",
		slog.String("operation", "reconcile"),
		slog.Any("layer_ids", dropped),
	)
	e.clearMarkers(ctx, dropped)
}

// lookup reports the live visibility of id from the directory.
func (e *Engine) lookup(id layer.ID) (visible, ok bool) {
	h, ok := e.dir.Get(id)
	if !ok {
		return false, false
	}
	return h.Visible(), true
}

// describe snapshots id for display.
func (e *Engine) describe(id layer.ID) (layer.Info, bool) {
	h, ok := e.dir.Get(id)
	if !ok {
		return layer.Info{}, false
	}
	return layer.Describe(h), true
}

// applyLocked runs plan in one exclusive host transaction and records its
// baselines once the transaction committed. A failed transaction leaves every
// baseline untouched. e.mu must be held.
func (e *Engine) applyLocked(ctx context.Context, operation string, plan syncgroup.Plan) error {
	if len(plan.Writes) > 0 {
		if err := e.transact(ctx, operation, plan.Writes); err != nil {
			return err
		}
	}
	for _, b := range plan.Baselines {
		e.reg.SetBaseline(b.ID, b.Visible)
	}
	return nil
}

// transact issues directives in one exclusive host transaction.
func (e *Engine) transact(ctx context.Context, operation string, directives []layer.Directive) error {
	ctx, span := e.tracer.Start(ctx, "engine."+operation,
		trace.WithAttributes(
			attribute.String("layersync.session_id", e.sessionID),
			attribute.Int("layersync.writes", len(directives)),
		),
	)
	defer span.End()

	start := time.Now()
	err := e.doc.RunExclusive(ctx, e.cfg.TransactionLabel, func(ctx context.Context) error {
		return e.doc.BatchPlay(ctx, directives)
	})
	e.recordTransaction(ctx, operation, time.Since(start), len(directives), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: applying %d writes: %w", operation, len(directives), err)
	}
	return nil
}

// setMarkers tags ids with the configured marker. Marker writes are
// cosmetic, so failures are logged and not returned.
func (e *Engine) setMarkers(ctx context.Context, ids []layer.ID) {
	e.writeMarkers(ctx, "mark", ids, e.cfg.MarkerTag)
}

// clearMarkers removes the configured marker from ids.
func (e *Engine) clearMarkers(ctx context.Context, ids []layer.ID) {
	e.writeMarkers(ctx, "unmark", ids, "")
}

func (e *Engine) writeMarkers(ctx context.Context, operation string, ids []layer.ID, value string) {
	if e.cfg.MarkerTag == "" || len(ids) == 0 {
		return
	}

	directives := make([]layer.Directive, 0, len(ids))
	for _, id := range ids {
		if _, ok := e.dir.Get(id); ok {
			directives = append(directives, layer.SetTag(id, value))
		}
	}
	if len(directives) == 0 {
		return
	}

	if err := e.transact(ctx, operation, directives); err != nil {
		e.logger.WarnContext(ctx, "failed to update sync markers",
			slog.String("operation", operation),
			slog.Any("layer_ids", ids),
			slog.Any("error", err),
		)
	}
}

func (e *Engine) recordTick(ctx context.Context, kind string, result TickStatus) {
	if e.metrics == nil {
		return
	}
	e.metrics.SyncTickTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrTickKind.String(kind),
		telemetry.AttrResult.String(string(result)),
	))
}

func (e *Engine) recordFlips(ctx context.Context, n int) {
	if e.metrics == nil || n == 0 {
		return
	}
	e.metrics.SyncFlipsTotal.Add(ctx, int64(n))
}

func (e *Engine) recordTransaction(ctx context.Context, operation string, d time.Duration, writes int, err error) {
	if e.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	attrs := metric.WithAttributes(
		telemetry.AttrOperation.String(operation),
		telemetry.AttrResult.String(result),
	)
	e.metrics.SyncTransactionDuration.Record(ctx, d.Seconds(), attrs)
	if err == nil {
		e.metrics.SyncWritesTotal.Add(ctx, int64(writes), attrs)
	}
}

// tickState is the last detection outcome, read by Status and HealthCheck.
type tickState struct {
	lastTick            time.Time
	lastErr             error
	consecutiveFailures int
}

func (e *Engine) recordOutcome(err error) {
	e.state.Update(func(st *tickState) {
		st.lastTick = time.Now()
		if err == nil {
			st.lastErr = nil
			st.consecutiveFailures = 0
			return
		}
		st.lastErr = err
		st.consecutiveFailures++
	})
}

// errorString returns err's message, or "" for nil.
func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// isCanceled reports whether err came from context cancellation.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
