package ports

import (
	"context"

	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// Document is the host document the sync engine reads and writes.
// Implemented by host adapters; called by the application layer.
type Document interface {
	// ID identifies the document for logging.
	ID() string

	// Layers returns the top-level layers in host order. Nested layers are
	// reached through layer.Handle.Children.
	// Returns domain.ErrUnavailable if the document cannot be queried.
	Layers(ctx context.Context) ([]layer.Handle, error)

	// RunExclusive runs fn in the host's exclusive modal scope. Everything
	// written inside fn is applied as one undo step labeled label, or not
	// at all when fn returns an error or a write fails.
	// Returns domain.ErrConflict if the scope could not be acquired before
	// ctx is done.
	RunExclusive(ctx context.Context, label string, fn func(ctx context.Context) error) error

	// BatchPlay applies directives together. It is only valid with the
	// context passed to a RunExclusive callback.
	// Returns domain.ErrForbidden outside an exclusive scope and
	// domain.ErrNotFound or domain.ErrValidation for bad directives.
	BatchPlay(ctx context.Context, directives []layer.Directive) error
}

// DocumentEditor performs host-native edits. These edits stand in for the
// host's own UI and bypass the sync engine, so the engine only learns about
// them through detection and reconciliation.
type DocumentEditor interface {
	// Tree returns a snapshot of the whole layer tree.
	Tree(ctx context.Context) ([]layer.Node, error)

	// AddLayer creates a layer and returns its host-assigned id.
	// Returns domain.ErrNotFound if the parent does not exist.
	AddLayer(ctx context.Context, spec layer.Spec) (layer.ID, error)

	// UpdateLayer renames, shows or hides, or reparents a layer.
	// Returns domain.ErrNotFound if the layer or new parent does not exist
	// and domain.ErrValidation if the move would create a cycle.
	UpdateLayer(ctx context.Context, id layer.ID, patch layer.Patch) error

	// RemoveLayer deletes a layer and its descendants.
	// Returns domain.ErrNotFound if the layer does not exist.
	RemoveLayer(ctx context.Context, id layer.ID) error

	// Select replaces the host selection with ids.
	// Returns domain.ErrNotFound if any id does not exist.
	Select(ctx context.Context, ids []layer.ID) error
}

// Alerter shows a blocking, user-facing message.
type Alerter interface {
	Alert(ctx context.Context, message string) error
}
