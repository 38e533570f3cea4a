// Package store holds the shared state machinery for the entity
// stores: a normalized in-memory collection plus the request lifecycle
// flags every store carries.
package store

import "sync"

// Collection is the canonical client-side copy of one entity
// collection. Each asynchronous operation moves through three phases:
// Begin (requested), then ReplaceAll/Apply (succeeded) or Fail
// (failed).
//
// Fetches are guarded by a monotonically increasing sequence number:
// only the response matching the latest issued fetch is applied, so a
// slow earlier response can never overwrite a newer one.
type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	errMsg  string
	seq     uint64
}

// Snapshot is a point-in-time copy of the collection state. Failure is
// always observable by re-reading state, never by inspecting a raised
// fault.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

// Begin marks a request in flight and returns its sequence number.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.errMsg = ""
	c.seq++
	return c.seq
}

// Fail records a failed operation. Items are left untouched. A stale
// sequence is ignored and reported as such.
func (c *Collection[T]) Fail(seq uint64, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.loading = false
	c.errMsg = msg
	return true
}

// ReplaceAll swaps the collection wholesale with a fetch response,
// provided no newer fetch has been issued since seq.
func (c *Collection[T]) ReplaceAll(seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return false
	}
	c.items = items
	c.loading = false
	c.errMsg = ""
	return true
}

// Apply completes a mutation by editing items in place. Mutations are
// not subject to the fetch sequence guard.
func (c *Collection[T]) Apply(seq uint64, edit func(items []T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = edit(c.items)
	if seq == c.seq {
		c.loading = false
		c.errMsg = ""
	}
}

// Snapshot returns a copy of the current state.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{Items: items, Loading: c.loading, Err: c.errMsg}
}

// Find returns the first item matching the predicate.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether a request is currently outstanding.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the stored human-readable failure message, empty when
// the last operation succeeded.
func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}
