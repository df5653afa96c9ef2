// Package table provides the associative stores that back the forwarding
// table. All strategies implement the same Store contract and differ only
// in search organization and modeled latency.
package table

import (
	"math/bits"

	"github.com/lumisim/macswitch/switching"
)

// An Entry is one slot of a store. Usage states live in the eviction
// tracker, not here.
type Entry struct {
	Addr     switching.MACAddr
	Port     int
	Valid    bool
	LastSeen uint64
}

// LearnOutcome classifies the effect of learning one source address.
type LearnOutcome int

const (
	// LearnNew inserted the address into a free or evicted slot.
	LearnNew LearnOutcome = iota

	// LearnRefresh matched an existing entry on the same port.
	LearnRefresh

	// LearnMove matched an existing entry and changed its port.
	LearnMove

	// LearnDropped discarded the address because the table is full and
	// replacement is disabled.
	LearnDropped
)

// A LearnResult reports what learning one source address did to the store.
type LearnResult struct {
	Outcome LearnOutcome
	Slot    int

	// Evicted is set when the insert overwrote a valid entry.
	Evicted bool

	// Full is set when the address was dropped for lack of space.
	Full bool

	// TableErr is set when the store detected and repaired an internal
	// inconsistency while inserting.
	TableErr bool
}

// A ScrubReport summarizes one scrub walk.
type ScrubReport struct {
	Removed  int
	TableErr bool
}

// Store is the contract between the lookup dispatcher and a backend search
// strategy. Lookup and Learn refresh the matched entry's LastSeen with the
// given frame counter value.
type Store interface {
	Capacity() int
	Len() int

	// Lookup searches for a destination address. A hit promotes the entry
	// and reports its port.
	Lookup(addr switching.MACAddr, frame uint64) (port int, ok bool)

	// Learn records a source address, inserting or updating as needed.
	Learn(addr switching.MACAddr, port int, frame uint64) LearnResult

	// Scrub removes every entry whose LastSeen is below minFrame and
	// repairs duplicate-address slots.
	Scrub(minFrame uint64) ScrubReport

	// SupportsScrub reports whether the strategy ages entries at all.
	SupportsScrub() bool

	// Entries returns the valid entries in slot order.
	Entries() []Entry

	// Remove invalidates the entry for an address, if present.
	Remove(addr switching.MACAddr) bool

	// Clear invalidates every entry and resets the eviction state.
	Clear()

	// SearchLatency is the modeled lookup latency in cycles.
	SearchLatency() int
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}
