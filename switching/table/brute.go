package table

import "github.com/lumisim/macswitch/switching"

// A BruteStore compares every slot against the key at once, the way a
// fully replicated comparator array would. Latency is two cycles, match
// then reduce, independent of capacity.
type BruteStore struct {
	*arena
}

// NewBruteStore creates a full-parallel-compare store.
func NewBruteStore(capacity int, noEvict bool) *BruteStore {
	return &BruteStore{arena: newArena(capacity, noEvict)}
}

// Capacity returns the number of slots.
func (s *BruteStore) Capacity() int { return s.capacity() }

// Len returns the number of valid entries.
func (s *BruteStore) Len() int { return s.len() }

// Lookup searches for a destination address.
func (s *BruteStore) Lookup(
	addr switching.MACAddr,
	frame uint64,
) (int, bool) {
	slot, ok := s.scan(addr)
	if !ok {
		return 0, false
	}

	return s.hit(slot, frame), true
}

// Learn records a source address.
func (s *BruteStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	return s.learn(addr, port, frame, s.scan)
}

// Scrub removes stale entries.
func (s *BruteStore) Scrub(minFrame uint64) ScrubReport {
	return s.scrub(minFrame)
}

// SupportsScrub reports that the store ages entries.
func (s *BruteStore) SupportsScrub() bool { return true }

// Entries returns the valid entries in slot order.
func (s *BruteStore) Entries() []Entry { return s.entries() }

// Remove invalidates the entry for an address.
func (s *BruteStore) Remove(addr switching.MACAddr) bool {
	return s.remove(addr, s.scan)
}

// Clear invalidates every entry.
func (s *BruteStore) Clear() { s.clear() }

// SearchLatency is a fixed two cycles.
func (s *BruteStore) SearchLatency() int { return 2 }
