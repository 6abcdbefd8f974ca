// Package rhi is the render hardware interface: typed resource handles, the
// fixed-capacity containers that back them, plain-data descriptors and the
// Device/Context interfaces implemented by a graphics backend.
package rhi

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Kind tags a Handle with the resource it refers to. Handles of different
// kinds are different Go types and can't be mixed up.
type Kind interface {
	KindName() string
}

// Handle is a non-owning reference to a slot in a ResourceContainer.
//
// The zero value is invalid. The slot is stored as index+1 so that zero acts as
// the invalid sentinel, which leaves [0, MaxValue] for live indices where
// MaxValue is max(I)-1. The generation is stamped by the container and
// changes every time the slot is reused.
type Handle[I constraints.Unsigned, K Kind] struct {
	slot       I
	generation uint32
}

// NewHandle builds a live handle. Only containers should need this.
func NewHandle[I constraints.Unsigned, K Kind](index I, generation uint32) Handle[I, K] {
	return Handle[I, K]{slot: index + 1, generation: generation}
}

// MaxIndex is the largest index a handle with index type I can address.
func MaxIndex[I constraints.Unsigned]() I {
	return ^I(0) - 1
}

// IsValid reports whether the handle was produced by a successful allocation
// and has not been invalidated since.
func (h Handle[I, K]) IsValid() bool {
	return h.slot != 0
}

// Invalidate resets the handle to the invalid sentinel. Calling it twice is fine.
func (h *Handle[I, K]) Invalidate() {
	h.slot = 0
	h.generation = 0
}

// Index is the container slot. It is meaningless for invalid handles.
func (h Handle[I, K]) Index() I {
	return h.slot - 1
}

func (h Handle[I, K]) Generation() uint32 {
	return h.generation
}

func (h Handle[I, K]) String() string {
	var k K
	if !h.IsValid() {
		return fmt.Sprintf("%s(invalid)", k.KindName())
	}
	return fmt.Sprintf("%s(%d#%d)", k.KindName(), h.Index(), h.generation)
}
