package table

import "github.com/lumisim/macswitch/switching"

// A HashedStore keeps a hash index from address to slot next to the slot
// arena. Lookups take three cycles: hash, index read, slot read.
type HashedStore struct {
	*arena

	index map[switching.MACAddr]int
}

// NewHashedStore creates a hash-indexed store.
func NewHashedStore(capacity int, noEvict bool) *HashedStore {
	s := &HashedStore{
		index: make(map[switching.MACAddr]int, capacity),
	}

	s.arena = newArena(capacity, noEvict)
	s.arena.onInsert = func(addr switching.MACAddr, slot int) {
		s.index[addr] = slot
	}
	s.arena.onRemove = func(addr switching.MACAddr, slot int) {
		if s.index[addr] == slot {
			delete(s.index, addr)
		}
	}

	return s
}

// Capacity returns the number of slots.
func (s *HashedStore) Capacity() int { return s.capacity() }

// Len returns the number of valid entries.
func (s *HashedStore) Len() int { return s.len() }

func (s *HashedStore) find(addr switching.MACAddr) (int, bool) {
	slot, ok := s.index[addr]
	return slot, ok
}

// Lookup searches for a destination address.
func (s *HashedStore) Lookup(
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
func (s *HashedStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	return s.learn(addr, port, frame, s.find)
}

// Scrub removes stale entries.
func (s *HashedStore) Scrub(minFrame uint64) ScrubReport {
	return s.scrub(minFrame)
}

// SupportsScrub reports that the store ages entries.
func (s *HashedStore) SupportsScrub() bool { return true }

// Entries returns the valid entries in slot order.
func (s *HashedStore) Entries() []Entry { return s.entries() }

// Remove invalidates the entry for an address.
func (s *HashedStore) Remove(addr switching.MACAddr) bool {
	return s.remove(addr, s.find)
}

// Clear invalidates every entry.
func (s *HashedStore) Clear() {
	s.clear()
	s.index = make(map[switching.MACAddr]int, s.capacity())
}

// SearchLatency covers hash, index read, and slot read.
func (s *HashedStore) SearchLatency() int { return 3 }
