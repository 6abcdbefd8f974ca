package containers

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var ErrFreeListFull = errors.New("free list is full")

// FreeList is an intrusive LIFO stack of slot indices in [0, capacity).
// The link of every free slot is stored in a preallocated array, so push and
// pop never allocate.
type FreeList[I constraints.Unsigned] struct {
	next []I
	head I
	end  I
	free int
}

// NewFreeList creates a list holding every index, lowest index on top.
func NewFreeList[I constraints.Unsigned](capacity int) *FreeList[I] {
	fl := &FreeList[I]{
		next: make([]I, capacity),
		end:  I(capacity),
		free: capacity,
	}
	for i := 0; i < capacity; i++ {
		fl.next[i] = I(i + 1)
	}
	fl.head = 0
	if capacity == 0 {
		fl.head = fl.end
	}
	return fl
}

// Pop removes the most recently pushed index.
func (fl *FreeList[I]) Pop() (I, bool) {
	if fl.IsEmpty() {
		return 0, false
	}
	i := fl.head
	fl.head = fl.next[i]
	fl.next[i] = fl.end
	fl.free--
	return i, true
}

// Push returns an index to the list. The caller must not push an index twice.
func (fl *FreeList[I]) Push(i I) error {
	if fl.free == len(fl.next) {
		return ErrFreeListFull
	}
	fl.next[i] = fl.head
	fl.head = i
	fl.free++
	return nil
}

// IsEmpty checks if no index is left
func (fl *FreeList[I]) IsEmpty() bool {
	return fl.head == fl.end
}

// Len is the number of free indices.
func (fl *FreeList[I]) Len() int {
	return fl.free
}

func (fl *FreeList[I]) Cap() int {
	return len(fl.next)
}
