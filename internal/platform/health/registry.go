// Package health provides a thread-safe registry of health checkers. The
// readiness endpoint reports the combined result; checks run concurrently
// with a per-check deadline so one slow component cannot stall the probe.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/irebix/LayerVisSync/internal/platform/fanout"
	"github.com/irebix/LayerVisSync/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

const (
	defaultMaxConcurrent = 4
	defaultCheckTimeout  = 2 * time.Second
)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker

	maxConcurrent int
	checkTimeout  time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds each individual health check.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) { r.checkTimeout = d }
}

// New creates an empty health check registry.
func New(opts ...Option) *Registry {
	r := &Registry{maxConcurrent: defaultMaxConcurrent, checkTimeout: defaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check and returns results keyed by checker
// name; nil means healthy. When two checkers share a name the one registered
// last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	outcomes := fanout.Run(ctx, r.maxConcurrent, checkers, func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
		ctx, cancel := context.WithTimeout(ctx, r.checkTimeout)
		defer cancel()
		return struct{}{}, c.HealthCheck(ctx)
	})

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i].Err
	}
	return results
}
