package ports

import (
	"context"
	"time"

	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/internal/domain/syncgroup"
)

// SyncService defines the service port for the sync panel.
// Implemented by the sync engine; called by inbound adapters (handlers).
// Cluster indexes are 1-based over the canonical cluster order.
type SyncService interface {
	// SelectedLayers returns the currently selected layers.
	SelectedLayers(ctx context.Context) ([]layer.Info, error)

	// Status summarizes the engine for the panel.
	Status(ctx context.Context) (SyncStatus, error)

	// ToggleSyncForSelection links the selection into a group, or unlinks
	// it when the selection exactly matches an existing group.
	// Returns domain.ErrValidation if fewer than two layers are selected.
	// Returns domain.ErrConflict if another panel action is in progress.
	ToggleSyncForSelection(ctx context.Context) (ToggleResult, error)

	// Clusters returns the current sync groups for display.
	Clusters(ctx context.Context) ([]syncgroup.Cluster, error)

	// SetGroupVisibility shows or hides every member of a group.
	// Returns domain.ErrNotFound if index does not name a group.
	SetGroupVisibility(ctx context.Context, index int, visible bool) (syncgroup.Cluster, error)

	// ToggleGroupVisibility hides a fully visible group and shows any
	// other group.
	// Returns domain.ErrNotFound if index does not name a group.
	ToggleGroupVisibility(ctx context.Context, index int) (syncgroup.Cluster, error)

	// DeleteGroup dissolves a group without touching layer visibility.
	// Returns domain.ErrNotFound if index does not name a group.
	DeleteGroup(ctx context.Context, index int) error
}

// SyncStatus is the panel summary of a sync session.
type SyncStatus struct {
	SessionID  string
	DocumentID string
	Mode       syncgroup.Mode
	Selected   int
	Groups     int
	Tracked    int
	LastTick   time.Time
	LastError  string
}

// ToggleResult reports what a sync toggle did.
type ToggleResult struct {
	Mode   syncgroup.Mode
	Layers []layer.ID
}
