package table

import (
	"sort"

	"github.com/lumisim/macswitch/switching"
)

// A BinaryStore keeps a sorted permutation of the slot indices next to the
// slot arena and binary-searches it. Slots never move on insert or removal,
// only the permutation does, so the eviction tracker's per-slot states stay
// attached to the right entries.
type BinaryStore struct {
	*arena

	// index lists slot numbers ordered by the address they hold.
	index []int
}

// NewBinaryStore creates a binary-search store.
func NewBinaryStore(capacity int, noEvict bool) *BinaryStore {
	s := &BinaryStore{
		index: make([]int, 0, capacity),
	}

	s.arena = newArena(capacity, noEvict)
	s.arena.onInsert = s.indexInsert
	s.arena.onRemove = s.indexRemove

	return s
}

// Capacity returns the number of slots.
func (s *BinaryStore) Capacity() int { return s.capacity() }

// Len returns the number of valid entries.
func (s *BinaryStore) Len() int { return s.len() }

// lowerBound returns the first index position holding an address not below
// addr.
func (s *BinaryStore) lowerBound(addr switching.MACAddr) int {
	return sort.Search(len(s.index), func(i int) bool {
		return s.slots[s.index[i]].Addr >= addr
	})
}

func (s *BinaryStore) find(addr switching.MACAddr) (int, bool) {
	pos := s.lowerBound(addr)
	if pos == len(s.index) || s.slots[s.index[pos]].Addr != addr {
		return 0, false
	}

	return s.index[pos], true
}

func (s *BinaryStore) indexInsert(addr switching.MACAddr, slot int) {
	pos := s.lowerBound(addr)
	s.index = append(s.index, 0)
	copy(s.index[pos+1:], s.index[pos:])
	s.index[pos] = slot
}

func (s *BinaryStore) indexRemove(addr switching.MACAddr, slot int) {
	for pos := s.lowerBound(addr); pos < len(s.index); pos++ {
		if s.slots[s.index[pos]].Addr != addr {
			break
		}

		if s.index[pos] == slot {
			s.index = append(s.index[:pos], s.index[pos+1:]...)
			return
		}
	}
}

// Lookup searches for a destination address.
func (s *BinaryStore) Lookup(
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
func (s *BinaryStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	return s.learn(addr, port, frame, s.find)
}

// Scrub removes stale entries.
func (s *BinaryStore) Scrub(minFrame uint64) ScrubReport {
	return s.scrub(minFrame)
}

// SupportsScrub reports that the store ages entries.
func (s *BinaryStore) SupportsScrub() bool { return true }

// Entries returns the valid entries in slot order.
func (s *BinaryStore) Entries() []Entry { return s.entries() }

// Remove invalidates the entry for an address.
func (s *BinaryStore) Remove(addr switching.MACAddr) bool {
	return s.remove(addr, s.find)
}

// Clear invalidates every entry.
func (s *BinaryStore) Clear() {
	s.clear()
	s.index = s.index[:0]
}

// SearchLatency is one cycle per halving step plus the final slot read.
func (s *BinaryStore) SearchLatency() int {
	return ceilLog2(s.capacity()) + 1
}
