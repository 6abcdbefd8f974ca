package rhi

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/spaghettifunk/phoenix/engine/containers"
	"github.com/spaghettifunk/phoenix/engine/core"
)

type slot[R any] struct {
	resource   R
	generation uint32
	live       bool
}

// ResourceContainer is a fixed-capacity pool that maps handles of kind K to
// resources of type R. Resources live by value in a preallocated arena, so a
// pointer returned by Get stays valid until that slot is destroyed. Allocation
// and destruction are O(1) through a LIFO free list: the most recently
// destroyed slot is the next one handed out.
//
// A container is not safe for concurrent use.
type ResourceContainer[R any, I constraints.Unsigned, K Kind] struct {
	slots []slot[R]
	free  *containers.FreeList[I]
}

// NewResourceContainer preallocates capacity slots. The capacity can't exceed
// the number of indices the handle type can address.
func NewResourceContainer[R any, I constraints.Unsigned, K Kind](capacity int) (*ResourceContainer[R, I, K], error) {
	var k K
	if capacity < 0 {
		return nil, fmt.Errorf("%s container: negative capacity %d: %w", k.KindName(), capacity, core.ErrInvalidConfig)
	}
	if capacity > 0 && uint64(capacity-1) > uint64(MaxIndex[I]()) {
		return nil, fmt.Errorf("%s container: capacity %d exceeds max index %d: %w", k.KindName(), capacity, uint64(MaxIndex[I]()), core.ErrCapacityTooLarge)
	}
	return &ResourceContainer[R, I, K]{
		slots: make([]slot[R], capacity),
		free:  containers.NewFreeList[I](capacity),
	}, nil
}

// Allocate takes a free slot and resets its resource to the zero value. When
// the container is exhausted the returned handle is invalid.
func (c *ResourceContainer[R, I, K]) Allocate() Handle[I, K] {
	index, ok := c.free.Pop()
	if !ok {
		var k K
		core.LogError("%s container exhausted (capacity %d)", k.KindName(), len(c.slots))
		return Handle[I, K]{}
	}
	s := &c.slots[index]
	var zero R
	s.resource = zero
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.live = true
	return NewHandle[I, K](index, s.generation)
}

// Get returns the resource behind a live handle. Stale, invalid or foreign
// handles trip an assertion in debug builds; in release builds the caller
// guarantees liveness.
func (c *ResourceContainer[R, I, K]) Get(h Handle[I, K]) *R {
	if core.DebugChecks() {
		core.Assert(h.IsValid(), "get on invalid handle %s", h)
		core.Assert(int(h.Index()) < len(c.slots), "handle %s out of range (capacity %d)", h, len(c.slots))
		s := &c.slots[h.Index()]
		core.Assert(s.live, "handle %s refers to a free slot", h)
		core.Assert(s.generation == h.Generation(), "handle %s is stale (slot generation %d)", h, s.generation)
	}
	return &c.slots[h.Index()].resource
}

// Lookup is the checked variant of Get that never panics.
func (c *ResourceContainer[R, I, K]) Lookup(h Handle[I, K]) (*R, bool) {
	if !c.IsLive(h) {
		return nil, false
	}
	return &c.slots[h.Index()].resource, true
}

// IsLive reports whether h still refers to the resource it was allocated for.
func (c *ResourceContainer[R, I, K]) IsLive(h Handle[I, K]) bool {
	if !h.IsValid() || int(h.Index()) >= len(c.slots) {
		return false
	}
	s := &c.slots[h.Index()]
	return s.live && s.generation == h.Generation()
}

// Destroy frees the slot behind h. The caller's copy of h is left dangling and
// should be invalidated by the caller.
func (c *ResourceContainer[R, I, K]) Destroy(h Handle[I, K]) {
	if !c.IsLive(h) {
		core.Assert(false, "destroy of dead handle %s", h)
		core.LogError("ignoring destroy of dead handle %s", h)
		return
	}
	s := &c.slots[h.Index()]
	var zero R
	s.resource = zero
	s.live = false
	if err := c.free.Push(h.Index()); err != nil {
		core.LogError("%s: %s", h, err.Error())
	}
}

// Each visits every live resource in slot order.
func (c *ResourceContainer[R, I, K]) Each(fn func(h Handle[I, K], r *R)) {
	for i := range c.slots {
		s := &c.slots[i]
		if s.live {
			fn(NewHandle[I, K](I(i), s.generation), &s.resource)
		}
	}
}

// Clear destroys every remaining live resource, calling release first when it
// is not nil.
func (c *ResourceContainer[R, I, K]) Clear(release func(h Handle[I, K], r *R)) {
	for i := range c.slots {
		s := &c.slots[i]
		if !s.live {
			continue
		}
		h := NewHandle[I, K](I(i), s.generation)
		if release != nil {
			release(h, &s.resource)
		}
		c.Destroy(h)
	}
}

// Live is the number of allocated slots.
func (c *ResourceContainer[R, I, K]) Live() int {
	return len(c.slots) - c.free.Len()
}

func (c *ResourceContainer[R, I, K]) Capacity() int {
	return len(c.slots)
}
