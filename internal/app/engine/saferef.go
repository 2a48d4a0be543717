package engine

import "sync"

// safeRef guards a value that is written by ticks and read by panel and
// health calls without taking the engine lock.
type safeRef[T any] struct {
	mu  sync.RWMutex
	val T
}

func newRef[T any](val T) *safeRef[T] {
	return &safeRef[T]{val: val}
}

// Get returns a copy of the value.
func (r *safeRef[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.val
}

// Update applies fn to the value under the write lock.
func (r *safeRef[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.val)
}
