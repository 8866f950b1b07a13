// Package pool layers a concurrency-safe, keyed, deduplicated insertion
// API on top of a slotarena.Container, for callers who want to look
// elements up by an external key rather than by the handle the container
// hands back.
//
// It is grounded directly on arena-cache's pkg/loader.go and pkg/shard.go:
// loaderGroup wraps a singleflight.Group so that concurrent GetOrLoad
// calls for the same key collapse into one construction; shard.go wraps
// the whole thing in a mutex so the underlying structure, which is not
// itself safe for concurrent mutation, can be shared across goroutines.
// Pool reuses both ideas verbatim, pointed at a Container instead of a
// cache shard's map+clock pair.
//
// © 2025 slotarena authors. MIT License.
package pool

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Voskan/slotarena/pkg/slotarena"
)

// Pool is a concurrency-safe map from a comparable key to a value held in
// a slotarena.Container, with singleflight-deduplicated construction.
type Pool[K comparable, V any] struct {
	mu        sync.RWMutex
	container *slotarena.Container[V]
	handles   map[K]slotarena.Handle
	group     singleflight.Group
}

// New constructs an empty Pool backed by a fresh generation-guarded
// container built from opts.
func New[K comparable, V any](opts ...slotarena.Option[V]) *Pool[K, V] {
	return &Pool[K, V]{
		container: slotarena.New[V](opts...),
		handles:   make(map[K]slotarena.Handle),
	}
}

// Get returns the value stored under key, if present.
func (p *Pool[K, V]) Get(key K) (V, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	h, ok := p.handles[key]
	if !ok {
		var zero V
		return zero, false
	}
	return p.container.Get(h)
}

// GetOrInsert returns the value stored under key, constructing it with
// construct if absent. Concurrent calls for the same key that race while
// construct is running are deduplicated: construct runs at most once per
// key at a time, and every caller observes its result.
func (p *Pool[K, V]) GetOrInsert(key K, construct func() (V, error)) (V, error) {
	if v, ok := p.Get(key); ok {
		return v, nil
	}

	sfKey := fmt.Sprint(key)
	result, err, _ := p.group.Do(sfKey, func() (any, error) {
		if v, ok := p.Get(key); ok {
			return v, nil
		}
		v, err := construct()
		if err != nil {
			return v, err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if h, ok := p.handles[key]; ok {
			existing, _ := p.container.Get(h)
			return existing, nil
		}
		p.handles[key] = p.container.Insert(v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Remove deletes the value stored under key, if present, and returns it.
func (p *Pool[K, V]) Remove(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	h, ok := p.handles[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(p.handles, key)
	return p.container.Remove(h)
}

// Len returns the number of entries currently held.
func (p *Pool[K, V]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.container.Len()
}

// Snapshot returns a point-in-time summary of the backing container.
func (p *Pool[K, V]) Snapshot() slotarena.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.container.Snapshot()
}

// WriteDebugSnapshot writes the backing container's current Snapshot to w
// as JSON.
func (p *Pool[K, V]) WriteDebugSnapshot(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.container.WriteDebugSnapshot(w)
}
