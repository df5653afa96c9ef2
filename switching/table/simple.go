package table

import "github.com/lumisim/macswitch/switching"

// A SimpleStore checks one slot per cycle, front to back. It is the
// smallest strategy and the slowest: the modeled latency equals the
// capacity.
type SimpleStore struct {
	*arena
}

// NewSimpleStore creates a linear-scan store.
func NewSimpleStore(capacity int, noEvict bool) *SimpleStore {
	return &SimpleStore{arena: newArena(capacity, noEvict)}
}

// Capacity returns the number of slots.
func (s *SimpleStore) Capacity() int { return s.capacity() }

// Len returns the number of valid entries.
func (s *SimpleStore) Len() int { return s.len() }

// Lookup searches for a destination address.
func (s *SimpleStore) Lookup(
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
func (s *SimpleStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	return s.learn(addr, port, frame, s.scan)
}

// Scrub removes stale entries.
func (s *SimpleStore) Scrub(minFrame uint64) ScrubReport {
	return s.scrub(minFrame)
}

// SupportsScrub reports that the store ages entries.
func (s *SimpleStore) SupportsScrub() bool { return true }

// Entries returns the valid entries in slot order.
func (s *SimpleStore) Entries() []Entry { return s.entries() }

// Remove invalidates the entry for an address.
func (s *SimpleStore) Remove(addr switching.MACAddr) bool {
	return s.remove(addr, s.scan)
}

// Clear invalidates every entry.
func (s *SimpleStore) Clear() { s.clear() }

// SearchLatency is one cycle per slot.
func (s *SimpleStore) SearchLatency() int { return s.capacity() }
