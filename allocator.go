package catalog

import "github.com/pkg/errors"

// DefaultCapacity is the number of handles an allocator can hand out when no
// capacity is configured.
const DefaultCapacity = 1024

// maxCapacity keeps slot indices representable in a Handle.
const maxCapacity = 1<<32 - 1

const unsetTarget = -1

// slot binds one handle to the current array position of its row.
type slot struct {
	target     int
	next       int // next free slot; only meaningful while inactive
	generation uint32
	active     bool
}

// HandleAllocator maps handles to mutable target indices. Inactive slots form
// a singly linked free list rooted at free; removed slots are reused LIFO.
// Slots are materialized lazily up to the configured capacity.
type HandleAllocator struct {
	slots    []slot
	free     int
	capacity int
	active   int
}

// NewHandleAllocator creates an allocator that holds at most capacity live
// handles. A capacity <= 0 selects DefaultCapacity.
func NewHandleAllocator(capacity int) *HandleAllocator {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if limit := uint64(maxCapacity); uint64(capacity) > limit {
		capacity = int(limit)
	}
	return &HandleAllocator{capacity: capacity}
}

// Add binds a fresh handle to target.
func (a *HandleAllocator) Add(target int) (Handle, error) {
	if a.free == len(a.slots) {
		if len(a.slots) >= a.capacity {
			return InvalidHandle, errors.Wrapf(ErrCapacityExceeded, "%d handles in use", a.active)
		}
		a.slots = append(a.slots, slot{target: unsetTarget, next: len(a.slots) + 1, generation: 1})
	}
	i := a.free
	s := &a.slots[i]
	a.free = s.next
	s.target = target
	s.active = true
	a.active++
	return newHandle(uint32(i), s.generation), nil
}

// Get returns the target index bound to h.
func (a *HandleAllocator) Get(h Handle) (int, error) {
	s, err := a.lookup(h)
	if err != nil {
		return unsetTarget, err
	}
	return s.target, nil
}

// Change rebinds h to a new target index. Used whenever a row moves.
func (a *HandleAllocator) Change(h Handle, target int) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	s.target = target
	return nil
}

// Remove deactivates h and pushes its slot onto the free list. The slot
// generation is bumped so h and any copies of it become stale.
func (a *HandleAllocator) Remove(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	i := int(h.Slot())
	s.target = unsetTarget
	s.active = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.next = a.free
	a.free = i
	a.active--
	return nil
}

// Contains reports whether h is live.
func (a *HandleAllocator) Contains(h Handle) bool {
	_, err := a.lookup(h)
	return err == nil
}

// Len returns the number of live handles.
func (a *HandleAllocator) Len() int { return a.active }

// Cap returns the maximum number of live handles.
func (a *HandleAllocator) Cap() int { return a.capacity }

// Available returns how many more handles can be added before the allocator
// is full.
func (a *HandleAllocator) Available() int { return a.capacity - a.active }

func (a *HandleAllocator) lookup(h Handle) (*slot, error) {
	if h == InvalidHandle {
		return nil, errors.Wrap(ErrInvalidHandle, "invalid handle value")
	}
	i := int(h.Slot())
	if i >= len(a.slots) {
		return nil, errors.Wrapf(ErrInvalidHandle, "%v out of range", h)
	}
	s := &a.slots[i]
	if !s.active {
		return nil, errors.Wrapf(ErrInvalidHandle, "%v not active", h)
	}
	if s.generation != h.Generation() {
		return nil, errors.Wrapf(ErrInvalidHandle, "%v is stale (slot generation %d)", h, s.generation)
	}
	return s, nil
}
