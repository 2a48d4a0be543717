package domain

import "context"

// Action represents a single executable host write with rollback capability.
// Host transactions stage one Action per directive and roll completed actions
// back in reverse order when a later one fails.
type Action interface {
	// Execute performs the write. The context carries cancellation and
	// deadline signals that the implementation should respect.
	Execute(ctx context.Context) error

	// Rollback restores the value observed before Execute. Rollback is only
	// called if Execute returned nil.
	Rollback(ctx context.Context) error

	// Description returns a human-readable description of the action for
	// logging purposes (e.g., "set layer 12 visible=false").
	Description() string
}
