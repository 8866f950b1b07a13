// Package guard provides the process-wide identity primitives shared by
// every slotarena container: the monotonic container-id source and the
// per-slot generation bump used by the generation guard.
//
// Generalised from arena-cache's internal/genring.Ring, which kept one
// id counter per ring (per cache shard generation). slotarena needs the
// same "stamp a fresh integer, panic if the budget runs out" behaviour,
// but scoped process-wide across every container, not per-container, so
// the counter lives here instead of on the container itself.
//
// © 2025 slotarena authors. MIT License.
package guard

import "sync/atomic"

// MaxContainerID bounds the container-id space to 44 bits — comfortably
// unreachable in a process lifetime, while keeping ids small enough to
// pack into a handle cheaply if a future caller wants to.
const MaxContainerID = uint64(1)<<44 - 1

var containerIDSource atomic.Uint64

// NextContainerID returns the next process-wide container id. Ids start
// at 1 so that the zero value of a Handle never aliases a real container.
// Panics if the id space is exhausted: container-id exhaustion at
// creation is a fatal, non-recoverable failure.
func NextContainerID() uint64 {
	id := containerIDSource.Add(1)
	if id > MaxContainerID {
		panic("slotarena: container id space exhausted")
	}
	return id
}

// BumpGeneration returns the next generation value for a slot that is
// transitioning from occupied back to vacant. Panics on overflow, which
// is unreachable in practice for a uint64 counter within one process
// lifetime; a narrower packed counter would also be adequate, but the
// full width avoids the packing complexity.
func BumpGeneration(g uint64) uint64 {
	if g == ^uint64(0) {
		panic("slotarena: slot generation counter exhausted")
	}
	return g + 1
}
