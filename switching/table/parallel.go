package table

import (
	"fmt"

	"github.com/lumisim/macswitch/switching"
)

// A ParallelStore partitions the slots across a fixed number of compare
// lanes. Each cycle every lane checks one slot, so the latency is the
// depth of a lane plus one cycle to reduce the lane results.
type ParallelStore struct {
	*arena

	lanes int
}

// NewParallelStore creates a lane-partitioned store.
func NewParallelStore(capacity, lanes int, noEvict bool) *ParallelStore {
	if lanes <= 0 {
		panic(fmt.Sprintf("lane count must be positive, got %d", lanes))
	}

	return &ParallelStore{
		arena: newArena(capacity, noEvict),
		lanes: lanes,
	}
}

// Capacity returns the number of slots.
func (s *ParallelStore) Capacity() int { return s.capacity() }

// Len returns the number of valid entries.
func (s *ParallelStore) Len() int { return s.len() }

// find walks the slots lane by lane. Slot i belongs to lane i mod lanes.
func (s *ParallelStore) find(addr switching.MACAddr) (int, bool) {
	for lane := 0; lane < s.lanes; lane++ {
		for slot := lane; slot < len(s.slots); slot += s.lanes {
			if s.slots[slot].Valid && s.slots[slot].Addr == addr {
				return slot, true
			}
		}
	}

	return 0, false
}

// Lookup searches for a destination address.
func (s *ParallelStore) Lookup(
	addr switching.MACAddr,
	frame uint64,
) (int, bool) {
	slot, ok := s.find(addr)
	if !ok {
		return 0, false
	}

	return s.hit(slot, frame), true
}

// Learn records a source address.
func (s *ParallelStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	return s.learn(addr, port, frame, s.find)
}

// Scrub removes stale entries.
func (s *ParallelStore) Scrub(minFrame uint64) ScrubReport {
	return s.scrub(minFrame)
}

// SupportsScrub reports that the store ages entries.
func (s *ParallelStore) SupportsScrub() bool { return true }

// Entries returns the valid entries in slot order.
func (s *ParallelStore) Entries() []Entry { return s.entries() }

// Remove invalidates the entry for an address.
func (s *ParallelStore) Remove(addr switching.MACAddr) bool {
	return s.remove(addr, s.find)
}

// Clear invalidates every entry.
func (s *ParallelStore) Clear() { s.clear() }

// SearchLatency is the lane depth plus one reduce cycle.
func (s *ParallelStore) SearchLatency() int {
	return (s.capacity()+s.lanes-1)/s.lanes + 1
}
