package catalog

import "fmt"

// Handle is a stable reference to a catalog row. It stays valid while the row
// moves around in the packed arrays and becomes stale once the row is removed.
//
// The low 32 bits hold the allocator slot, the high 32 bits the slot
// generation. Generations start at 1, so the zero value never names a slot.
type Handle uint64

// InvalidHandle is the distinguished "no row" value. As a parent it means
// "insert as root".
const InvalidHandle Handle = 0

func newHandle(slot, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(slot))
}

// Valid reports whether h is not InvalidHandle. It does not check liveness;
// use Store.Contains for that.
func (h Handle) Valid() bool { return h != InvalidHandle }

// Slot returns the allocator slot index encoded in h.
func (h Handle) Slot() uint32 { return uint32(h) }

// Generation returns the slot generation encoded in h.
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

func (h Handle) String() string {
	if h == InvalidHandle {
		return "handle(invalid)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.Slot(), h.Generation())
}
