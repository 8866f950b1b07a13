// Package slotarena implements the indexed slot container: an unordered
// collection that mints its own stable integer-backed handles, with O(1)
// lookup and per-step iteration. Remove, and Insert when it reuses a
// vacant slot, also recount the freelist's runs to refresh the
// freelist-run metric, so besides the O(1) slot work (amortized for
// Insert) their cost grows with the number of disjoint vacant runs.
//
// It is the successor to arena-cache's cache/shard split: where
// pkg/cache.go orchestrates a sharded cache around internal/clockpro and
// internal/genring, Container[T] orchestrates a single slot array around
// internal/skipfield and internal/freelist. Three guard variants decide
// what a Handle is and how strictly it is validated: generation-guarded
// (the default), flag-guarded, and unguarded.
//
// The container is single-owner mutable (see the package doc for Pool,
// which layers concurrency-safety on top without relaxing this).
//
// © 2025 slotarena authors. MIT License.
package slotarena

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Voskan/slotarena/internal/freelist"
	"github.com/Voskan/slotarena/internal/guard"
	"github.com/Voskan/slotarena/internal/skipfield"
)

// GuardMode selects the per-slot occupancy tag a Container uses to decide
// presence and to validate handles. Fixed at construction; never mutated.
type GuardMode uint8

const (
	// ModeGeneration stamps every slot with a generation counter and
	// validates handles against both the slot's current generation and
	// the container's own id, so a stale or cross-container handle is
	// always rejected.
	ModeGeneration GuardMode = iota
	// ModeFlag stores one occupancy bit per slot and validates handles by
	// bounds and that bit alone; handles from distinct lifetimes of the
	// same slot (or distinct containers) may alias.
	ModeFlag
	// ModeNone carries no occupancy tag at all. Safe Get/Remove/Contains
	// cannot validate anything and always report absence; callers must
	// use the *Unchecked operations.
	ModeNone
)

func (m GuardMode) String() string {
	switch m {
	case ModeGeneration:
		return "generation"
	case ModeFlag:
		return "flag"
	case ModeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Handle is an opaque reference to a value inserted into a Container. In
// a generation-guarded container the zero Handle never refers to a live
// element, since container ids start at 1; a flag-guarded container only
// checks the index, so there the zero Handle refers to slot 0 whenever
// that slot is live. Handle shapes are unified across guard modes for
// implementation simplicity: containerID and generation are simply left
// at zero for flag/unguarded containers, which is harmless since those
// modes never compare them.
type Handle struct {
	containerID uint64
	index       int32
	generation  uint64
}

// Index returns the raw slot index a handle refers to, for diagnostics
// and for feeding the *Unchecked operations, which take a plain int.
func (h Handle) Index() int { return int(h.index) }

type slot[T any] struct {
	present    bool
	generation uint64
	value      T
	prevFree   int32
	nextFree   int32
}

// linkAccessor adapts a Container's slot slice to freelist.Links without
// the freelist package ever needing to know about T.
type linkAccessor[T any] struct {
	slots []slot[T]
}

func (a linkAccessor[T]) GetLink(i int) (prev, next int) {
	s := &a.slots[i]
	return int(s.prevFree), int(s.nextFree)
}

func (a linkAccessor[T]) SetLink(i int, prev, next int) {
	s := &a.slots[i]
	s.prevFree = int32(prev)
	s.nextFree = int32(next)
}

// Container is an indexed slot container over elements of type T.
// Construct one with New, WithCapacity, NewFlagged, or NewUnguarded.
type Container[T any] struct {
	mode        GuardMode
	containerID uint64

	slots []slot[T]
	skip  skipfield.Field
	free  freelist.List

	occupied int
	growths  int

	cfg *config[T]
}

// New constructs a generation-guarded container.
func New[T any](opts ...Option[T]) *Container[T] {
	return newContainer[T](ModeGeneration, 0, opts)
}

// WithCapacity constructs a generation-guarded container with its backing
// storage pre-sized to hold at least n elements without reallocating.
func WithCapacity[T any](n int, opts ...Option[T]) *Container[T] {
	return newContainer[T](ModeGeneration, n, opts)
}

// NewFlagged constructs a flag-guarded container.
func NewFlagged[T any](opts ...Option[T]) *Container[T] {
	return newContainer[T](ModeFlag, 0, opts)
}

// NewUnguarded constructs a container with no occupancy tag. Only the
// *Unchecked operations are meaningful on it.
func NewUnguarded[T any](opts ...Option[T]) *Container[T] {
	return newContainer[T](ModeNone, 0, opts)
}

func newContainer[T any](mode GuardMode, capHint int, opts []Option[T]) *Container[T] {
	cfg := defaultConfig[T]()
	applyOptions(cfg, opts)

	var id uint64
	if mode == ModeGeneration {
		id = guard.NextContainerID()
	}

	c := &Container[T]{
		mode:        mode,
		containerID: id,
		free:        freelist.NewList(),
		cfg:         cfg,
	}
	if capHint > 0 {
		c.reserve(capHint)
	}
	c.cfg.metrics.setCapacity(cap(c.slots))
	return c
}

// Mode reports the guard variant this container was constructed with.
func (c *Container[T]) Mode() GuardMode { return c.mode }

// Len returns the number of live elements.
func (c *Container[T]) Len() int { return c.occupied }

// IsEmpty reports whether the container holds no elements.
func (c *Container[T]) IsEmpty() bool { return c.occupied == 0 }

// Capacity returns the size of the backing allocation.
func (c *Container[T]) Capacity() int { return cap(c.slots) }

// reserve pre-sizes the backing storage to at least n slots without
// changing the logical length; it never shrinks.
func (c *Container[T]) reserve(n int) {
	if cap(c.slots) >= n {
		return
	}
	newSlots := make([]slot[T], len(c.slots), n)
	copy(newSlots, c.slots)
	c.slots = newSlots

	newSkip := make(skipfield.Field, len(c.skip), n)
	copy(newSkip, c.skip)
	c.skip = newSkip
}

// appendSlot grows the slot array by exactly one element at the tail,
// relying on Go's append to provide an amortized O(1), geometric growth
// schedule (rather than hand-rolling a next-power-of-two reallocation
// over one combined block; see SPEC_FULL.md, "Slot storage & growth").
func (c *Container[T]) appendSlot() int {
	idx := len(c.slots)
	oldCap := cap(c.slots)

	c.slots = append(c.slots, slot[T]{})
	c.skip = append(c.skip, 0)

	if cap(c.slots) != oldCap {
		c.growths++
		c.cfg.metrics.incGrowth()
		c.cfg.metrics.setCapacity(cap(c.slots))
		if c.growths > c.cfg.growthLogThreshold {
			c.cfg.logger.Debug("slotarena: grew backing storage",
				zap.Int("capacity", cap(c.slots)),
				zap.Int("growths", c.growths))
		}
	}
	return idx
}

// allocateSlot returns the index of a slot ready to receive a value,
// recycling the freelist's head run when possible and otherwise growing
// the slot array by one. The returned slot's present flag is still
// false; the caller sets value and present together.
func (c *Container[T]) allocateSlot() int {
	if !c.free.Empty() {
		head := c.free.Head()
		runLen := int(c.skip[head])
		skipfield.ApplyInsert(c.skip, head)
		c.free.PopFront(linkAccessor[T]{c.slots}, runLen)
		c.cfg.metrics.setFreelistRuns(c.countFreelistRuns())
		return head
	}
	return c.appendSlot()
}

// freeSlot threads slot idx (just vacated) into the freelist and repaints
// the skipfield. l and r are read before either structure is mutated,
// since the mutation may overwrite the very cells that gave us l and r.
func (c *Container[T]) freeSlot(idx int) {
	l := c.skip.At(idx - 1)
	r := c.skip.At(idx + 1)
	skipfield.ApplyRemove(c.skip, idx, l, r)
	c.free.Push(linkAccessor[T]{c.slots}, idx, int(l), int(r))
	c.cfg.metrics.setFreelistRuns(c.countFreelistRuns())
}

// Insert places v into the container and returns a handle for it.
// The slot work is amortized O(1): it reuses a freelist slot if one
// exists, or grows the backing storage by one (which Go's slice append
// may, in turn, have to reallocate and copy — the source of the
// "amortized" in O(1)). Reusing a freelist slot also recounts the
// freelist's runs for the metrics sink, a walk over every vacant run.
func (c *Container[T]) Insert(v T) Handle {
	idx := c.allocateSlot()
	s := &c.slots[idx]
	s.value = v
	s.present = true

	var gen uint64
	if c.mode == ModeGeneration {
		gen = s.generation
	}

	c.occupied++
	c.cfg.metrics.setOccupied(c.occupied)

	return Handle{containerID: c.containerID, index: int32(idx), generation: gen}
}

// validate resolves a handle to a slot index, applying exactly the checks
// appropriate to the container's guard mode. ModeNone never validates
// anything — there is no tag to check safely — which is the mechanism by
// which an unguarded container refuses to offer a safe path at all,
// despite sharing Container[T]'s type with the other two modes.
func (c *Container[T]) validate(h Handle) (int, bool) {
	if c.mode == ModeNone {
		return 0, false
	}
	idx := int(h.index)
	if idx < 0 || idx >= len(c.slots) {
		return 0, false
	}
	s := &c.slots[idx]
	if !s.present {
		return 0, false
	}
	if c.mode == ModeGeneration {
		if h.containerID != c.containerID || h.generation != s.generation {
			return 0, false
		}
	}
	return idx, true
}

// Get returns the value referred to by h, if it is still live.
func (c *Container[T]) Get(h Handle) (T, bool) {
	idx, ok := c.validate(h)
	if !ok {
		c.cfg.metrics.incRejected()
		var zero T
		return zero, false
	}
	return c.slots[idx].value, true
}

// GetPtr returns a pointer to the value referred to by h, for in-place
// mutation, if it is still live. The pointer is invalidated by any
// subsequent growth of the container.
func (c *Container[T]) GetPtr(h Handle) (*T, bool) {
	idx, ok := c.validate(h)
	if !ok {
		c.cfg.metrics.incRejected()
		return nil, false
	}
	return &c.slots[idx].value, true
}

// Contains reports whether h currently refers to a live element.
func (c *Container[T]) Contains(h Handle) bool {
	_, ok := c.validate(h)
	return ok
}

// Remove deletes the element referred to by h and returns it, if it was
// still live.
func (c *Container[T]) Remove(h Handle) (T, bool) {
	idx, ok := c.validate(h)
	if !ok {
		c.cfg.metrics.incRejected()
		var zero T
		return zero, false
	}
	return c.removeAt(idx), true
}

func (c *Container[T]) removeAt(idx int) T {
	s := &c.slots[idx]
	val := s.value

	var zero T
	s.value = zero
	s.present = false
	if c.mode == ModeGeneration {
		s.generation = guard.BumpGeneration(s.generation)
	}

	c.freeSlot(idx)
	c.occupied--
	c.cfg.metrics.setOccupied(c.occupied)
	return val
}

// At returns the value referred to by h, panicking if h is not live — a
// checked-indexing convenience standing in for an index operator, which
// Go does not support overloading.
func (c *Container[T]) At(h Handle) T {
	v, ok := c.Get(h)
	if !ok {
		panic(fmt.Sprintf("slotarena: handle %+v does not refer to a live element", h))
	}
	return v
}

// GetUnchecked returns a pointer to the value at the given raw index,
// without any presence validation. The caller must know the slot is
// live; behaviour is undefined otherwise.
func (c *Container[T]) GetUnchecked(idx int) *T {
	return &c.slots[idx].value
}

// RemoveUnchecked removes and returns the value at the given raw index,
// without any presence validation. The caller must know the slot is
// live; behaviour is undefined otherwise.
func (c *Container[T]) RemoveUnchecked(idx int) T {
	return c.removeAt(idx)
}

// Snapshot is a point-in-time summary of a container's internal state,
// used by the debug-snapshot HTTP endpoint and the inspector CLI.
type Snapshot struct {
	Len          int `json:"len"`
	Capacity     int `json:"capacity"`
	FreelistRuns int `json:"freelist_runs"`
	Growths      int `json:"growths"`
}

// Snapshot returns a Snapshot of the container's current state.
func (c *Container[T]) Snapshot() Snapshot {
	return Snapshot{
		Len:          c.occupied,
		Capacity:     cap(c.slots),
		FreelistRuns: c.countFreelistRuns(),
		Growths:      c.growths,
	}
}

// WriteDebugSnapshot writes the container's current Snapshot to w as JSON,
// in the form cmd/slotarena-inspect decodes, for a host process's debug
// endpoint.
func (c *Container[T]) WriteDebugSnapshot(w io.Writer) error {
	return json.NewEncoder(w).Encode(c.Snapshot())
}

func (c *Container[T]) countFreelistRuns() int {
	if c.free.Empty() {
		return 0
	}
	acc := linkAccessor[T]{c.slots}
	n := 0
	for i := c.free.Head(); i != freelist.None; {
		n++
		_, next := acc.GetLink(i)
		i = next
	}
	return n
}
