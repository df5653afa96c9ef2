package table

import (
	"fmt"

	"github.com/lumisim/macswitch/switching"
)

// A StreamStore keeps exactly one entry per source port: slot i remembers
// the last address seen on port i. It never fills, never evicts through a
// tracker, and has nothing to age, so scrubbing is a no-op. Lookups take a
// single cycle.
type StreamStore struct {
	slots []Entry
}

// NewStreamStore creates a one-entry-per-port store.
func NewStreamStore(portCount int) *StreamStore {
	if portCount <= 0 || portCount > switching.MaxPorts {
		panic(fmt.Sprintf("port count %d out of range", portCount))
	}

	return &StreamStore{
		slots: make([]Entry, portCount),
	}
}

// Capacity returns the port count.
func (s *StreamStore) Capacity() int { return len(s.slots) }

// Len returns the number of ports with a remembered address.
func (s *StreamStore) Len() int {
	n := 0
	for _, entry := range s.slots {
		if entry.Valid {
			n++
		}
	}

	return n
}

// Lookup searches the per-port entries for a destination address.
func (s *StreamStore) Lookup(
	addr switching.MACAddr,
	frame uint64,
) (int, bool) {
	for slot := range s.slots {
		entry := &s.slots[slot]
		if entry.Valid && entry.Addr == addr {
			entry.LastSeen = frame

			return entry.Port, true
		}
	}

	return 0, false
}

// Learn overwrites the slot of the source port. A port changing stations
// simply forgets the old one; the store is never full.
func (s *StreamStore) Learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
) LearnResult {
	if port < 0 || port >= len(s.slots) {
		panic(fmt.Sprintf("port %d out of range [0, %d)",
			port, len(s.slots)))
	}

	entry := &s.slots[port]
	if entry.Valid && entry.Addr == addr {
		entry.LastSeen = frame

		return LearnResult{Outcome: LearnRefresh, Slot: port}
	}

	evicted := entry.Valid
	*entry = Entry{
		Addr:     addr,
		Port:     port,
		Valid:    true,
		LastSeen: frame,
	}

	return LearnResult{Outcome: LearnNew, Slot: port, Evicted: evicted}
}

// Scrub does nothing; the store has no aging.
func (s *StreamStore) Scrub(minFrame uint64) ScrubReport {
	return ScrubReport{}
}

// SupportsScrub reports that the store does not age entries.
func (s *StreamStore) SupportsScrub() bool { return false }

// Entries returns the valid entries in port order.
func (s *StreamStore) Entries() []Entry {
	entries := make([]Entry, 0, len(s.slots))
	for _, entry := range s.slots {
		if entry.Valid {
			entries = append(entries, entry)
		}
	}

	return entries
}

// Remove forgets every port that remembered the address.
func (s *StreamStore) Remove(addr switching.MACAddr) bool {
	removed := false
	for slot := range s.slots {
		if s.slots[slot].Valid && s.slots[slot].Addr == addr {
			s.slots[slot].Valid = false
			removed = true
		}
	}

	return removed
}

// Clear forgets every port.
func (s *StreamStore) Clear() {
	for slot := range s.slots {
		s.slots[slot] = Entry{}
	}
}

// SearchLatency is a single cycle.
func (s *StreamStore) SearchLatency() int { return 1 }
