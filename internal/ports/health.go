package ports

import "context"

// HealthChecker reports whether one dependency of the sync session can do
// its job. The engine and the alert bridge client implement it.
type HealthChecker interface {
	// Name labels the check in the readiness body, e.g. "sync-engine".
	Name() string

	// HealthCheck returns nil when healthy. It must return once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and keys the outcome by Name; nil means
	// healthy.
	CheckAll(ctx context.Context) map[string]error
}
