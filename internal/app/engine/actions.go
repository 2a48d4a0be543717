package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/domain/syncgroup"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// MsgSelectTwoLayers is shown when a toggle is requested with fewer than two
// layers selected.
const MsgSelectTwoLayers = "Select at least two layers to sync their visibility."

// errBusy is returned when a panel action overlaps another one.
var errBusy = fmt.Errorf("another sync action is in progress: %w", domain.ErrConflict)

// beginAction claims the panel action guard. The returned func releases it.
func (e *Engine) beginAction() (func(), error) {
	if !e.acting.CompareAndSwap(false, true) {
		return nil, errBusy
	}
	return func() { e.acting.Store(false) }, nil
}

// SelectedLayers returns the selected layers in tree order.
func (e *Engine) SelectedLayers(ctx context.Context) ([]layer.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	return e.selectedLocked(), nil
}

func (e *Engine) selectedLocked() []layer.Info {
	var out []layer.Info
	for _, h := range e.dir.Flattened() {
		if h.Selected() {
			out = append(out, layer.Describe(h))
		}
	}
	return out
}

// Status summarizes the session for the panel.
func (e *Engine) Status(ctx context.Context) (ports.SyncStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	selected := e.selectedLocked()
	ids := make([]layer.ID, len(selected))
	for i, s := range selected {
		ids[i] = s.ID
	}

	st := e.state.Get()
	return ports.SyncStatus{
		SessionID:  e.sessionID,
		DocumentID: e.doc.ID(),
		Mode:       syncgroup.ModeFor(e.reg, ids),
		Selected:   len(selected),
		Groups:     len(e.reg.Clusters()),
		Tracked:    e.reg.Len(),
		LastTick:   st.lastTick,
		LastError:  errorString(st.lastErr),
	}, nil
}

// ToggleSyncForSelection links the selected layers into one group, or
// dissolves their group when the selection matches it exactly. With fewer
// than two layers selected the user is alerted and nothing changes.
func (e *Engine) ToggleSyncForSelection(ctx context.Context) (ports.ToggleResult, error) {
	release, err := e.beginAction()
	if err != nil {
		return ports.ToggleResult{}, err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	selected := e.selectedLocked()

	if len(selected) < syncgroup.MinGroupSize {
		if alertErr := e.alerter.Alert(ctx, MsgSelectTwoLayers); alertErr != nil {
			e.logger.WarnContext(ctx, "failed to alert user",
				slog.String("operation", "ToggleSyncForSelection"),
				slog.Any("error", alertErr),
			)
		}
		return ports.ToggleResult{}, domain.NewValidationError("selection", MsgSelectTwoLayers)
	}

	ids := make([]layer.ID, len(selected))
	visibility := make(map[layer.ID]bool, len(selected))
	for i, s := range selected {
		ids[i] = s.ID
		visibility[s.ID] = s.Visible
	}

	if e.reg.IsExactMatch(ids) {
		removed := e.reg.Unlink(ids)
		e.clearMarkers(ctx, removed)
		e.RequestRefresh()

		e.logger.InfoContext(ctx, "unlinked sync group", slog.Any("layer_ids", removed))
		return ports.ToggleResult{Mode: syncgroup.ModeUnlink, Layers: removed}, nil
	}

	before := layer.NewSet(e.reg.Tracked()...)
	if err := e.reg.Link(ids, visibility); err != nil {
		return ports.ToggleResult{}, err
	}

	var orphaned []layer.ID
	for _, id := range before.Sorted() {
		if !e.reg.IsTracked(id) {
			orphaned = append(orphaned, id)
		}
	}
	e.clearMarkers(ctx, orphaned)
	e.setMarkers(ctx, ids)
	e.RequestRefresh()

	e.logger.InfoContext(ctx, "linked sync group",
		slog.Any("layer_ids", ids),
		slog.Any("orphaned_ids", orphaned),
	)
	return ports.ToggleResult{Mode: syncgroup.ModeLink, Layers: ids}, nil
}

// Clusters returns the current groups for display.
func (e *Engine) Clusters(ctx context.Context) ([]syncgroup.Cluster, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	return syncgroup.Project(e.reg, e.describe), nil
}

// SetGroupVisibility shows or hides every member of the group at index in
// one transaction and records the new baselines.
func (e *Engine) SetGroupVisibility(ctx context.Context, index int, visible bool) (syncgroup.Cluster, error) {
	return e.groupVisibility(ctx, "SetGroupVisibility", index, func(syncgroup.Cluster) bool {
		return visible
	})
}

// ToggleGroupVisibility hides the group at index when all of its members are
// visible and shows it otherwise.
func (e *Engine) ToggleGroupVisibility(ctx context.Context, index int) (syncgroup.Cluster, error) {
	return e.groupVisibility(ctx, "ToggleGroupVisibility", index, func(c syncgroup.Cluster) bool {
		return !c.AllVisible()
	})
}

func (e *Engine) groupVisibility(
	ctx context.Context,
	operation string,
	index int,
	target func(syncgroup.Cluster) bool,
) (syncgroup.Cluster, error) {
	release, err := e.beginAction()
	if err != nil {
		return syncgroup.Cluster{}, err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	c, err := e.clusterLocked(index)
	if err != nil {
		return syncgroup.Cluster{}, err
	}

	visible := target(c)
	plan := syncgroup.PlanGroupVisibility(c.IDs(), visible, e.lookup)
	if err := e.applyLocked(ctx, "group_visibility", plan); err != nil {
		e.logger.ErrorContext(ctx, "failed to set group visibility",
			slog.String("operation", operation),
			slog.Int("group_index", index),
			slog.Bool("visible", visible),
			slog.Any("error", err),
		)
		return syncgroup.Cluster{}, err
	}

	updated, err := e.clusterLocked(index)
	if err != nil {
		return syncgroup.Cluster{}, err
	}
	return updated, nil
}

// DeleteGroup dissolves the group at index. Layer visibility is left as is.
func (e *Engine) DeleteGroup(ctx context.Context, index int) error {
	release, err := e.beginAction()
	if err != nil {
		return err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.syncLocked(ctx)
	c, err := e.clusterLocked(index)
	if err != nil {
		return err
	}

	removed := e.reg.RemoveCluster(c.IDs())
	e.clearMarkers(ctx, removed)

	e.logger.InfoContext(ctx, "deleted sync group",
		slog.Int("group_index", index),
		slog.Any("layer_ids", removed),
	)
	return nil
}

// clusterLocked resolves a 1-based cluster index. e.mu must be held.
func (e *Engine) clusterLocked(index int) (syncgroup.Cluster, error) {
	clusters := syncgroup.Project(e.reg, e.describe)
	if index < 1 || index > len(clusters) {
		return syncgroup.Cluster{}, fmt.Errorf("sync group %d: %w", index, domain.ErrNotFound)
	}
	return clusters[index-1], nil
}
