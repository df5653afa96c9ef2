package table

import (
	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/nru"
)

// An arena owns the slots, the occupancy count, and the eviction handshake
// with the NRU tracker. Strategies that keep a search index alongside the
// slots register hooks so the index follows every insert and removal.
type arena struct {
	slots    []Entry
	tracker  *nru.Tracker
	occupied int
	noEvict  bool

	onInsert func(addr switching.MACAddr, slot int)
	onRemove func(addr switching.MACAddr, slot int)
}

func newArena(capacity int, noEvict bool) *arena {
	return &arena{
		slots:   make([]Entry, capacity),
		tracker: nru.NewTracker(capacity),
		noEvict: noEvict,
	}
}

func (a *arena) capacity() int {
	return len(a.slots)
}

func (a *arena) len() int {
	return a.occupied
}

// hit promotes a matched slot and refreshes its LastSeen.
func (a *arena) hit(slot int, frame uint64) int {
	a.tracker.OnRead(slot)
	a.slots[slot].LastSeen = frame

	return a.slots[slot].Port
}

// learn implements the Store learn semantics on top of a strategy-specific
// search function.
func (a *arena) learn(
	addr switching.MACAddr,
	port int,
	frame uint64,
	find func(switching.MACAddr) (int, bool),
) LearnResult {
	if slot, ok := find(addr); ok {
		entry := &a.slots[slot]
		entry.LastSeen = frame

		if entry.Port == port {
			a.tracker.OnRead(slot)

			return LearnResult{Outcome: LearnRefresh, Slot: slot}
		}

		entry.Port = port
		a.tracker.OnWrite(slot)

		return LearnResult{Outcome: LearnMove, Slot: slot}
	}

	if a.noEvict && a.occupied == len(a.slots) {
		return LearnResult{Outcome: LearnDropped, Full: true}
	}

	var slot int
	var tableErr bool
	if a.noEvict {
		slot = a.firstFree()
	} else {
		slot, tableErr = a.victim()
	}

	evicted := a.slots[slot].Valid
	if evicted {
		a.dropIndex(a.slots[slot].Addr, slot)
		a.occupied--
	}

	a.slots[slot] = Entry{
		Addr:     addr,
		Port:     port,
		Valid:    true,
		LastSeen: frame,
	}
	a.occupied++
	a.tracker.Commit(slot)
	a.addIndex(addr, slot)

	return LearnResult{
		Outcome:  LearnNew,
		Slot:     slot,
		Evicted:  evicted,
		TableErr: tableErr,
	}
}

// victim asks the tracker for the next slot to overwrite. An out-of-range
// answer is repaired by falling back to slot 0.
func (a *arena) victim() (slot int, tableErr bool) {
	slot = a.tracker.Candidate()
	if slot < 0 || slot >= len(a.slots) {
		return 0, true
	}

	return slot, false
}

func (a *arena) firstFree() int {
	for slot := range a.slots {
		if !a.slots[slot].Valid {
			return slot
		}
	}

	panic("no free slot in a non-full arena")
}

// scrub walks every slot once. Duplicate addresses keep the lower slot;
// stale entries are removed.
func (a *arena) scrub(minFrame uint64) ScrubReport {
	var report ScrubReport

	seen := make(map[switching.MACAddr]struct{}, a.occupied)
	for slot := range a.slots {
		entry := &a.slots[slot]
		if !entry.Valid {
			continue
		}

		if _, dup := seen[entry.Addr]; dup {
			a.invalidate(slot)
			report.TableErr = true

			continue
		}
		seen[entry.Addr] = struct{}{}

		if entry.LastSeen < minFrame {
			a.invalidate(slot)
			report.Removed++
		}
	}

	return report
}

func (a *arena) remove(
	addr switching.MACAddr,
	find func(switching.MACAddr) (int, bool),
) bool {
	slot, ok := find(addr)
	if !ok {
		return false
	}

	a.invalidate(slot)

	return true
}

func (a *arena) invalidate(slot int) {
	a.dropIndex(a.slots[slot].Addr, slot)
	a.slots[slot].Valid = false
	a.tracker.Clear(slot)
	a.occupied--
}

func (a *arena) clear() {
	for slot := range a.slots {
		a.slots[slot] = Entry{}
	}
	a.occupied = 0
	a.tracker.Reset()
}

func (a *arena) entries() []Entry {
	entries := make([]Entry, 0, a.occupied)
	for _, entry := range a.slots {
		if entry.Valid {
			entries = append(entries, entry)
		}
	}

	return entries
}

// scan is the index-free search shared by the compare-based strategies.
func (a *arena) scan(addr switching.MACAddr) (int, bool) {
	for slot := range a.slots {
		if a.slots[slot].Valid && a.slots[slot].Addr == addr {
			return slot, true
		}
	}

	return 0, false
}

func (a *arena) addIndex(addr switching.MACAddr, slot int) {
	if a.onInsert != nil {
		a.onInsert(addr, slot)
	}
}

func (a *arena) dropIndex(addr switching.MACAddr, slot int) {
	if a.onRemove != nil {
		a.onRemove(addr, slot)
	}
}
