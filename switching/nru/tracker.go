// Package nru implements the not-recently-used replacement policy of the
// forwarding table. Each slot carries a 2-bit usage state. Reads promote,
// victim selection demotes everyone until an idle slot appears, and a
// round-robin cursor breaks ties between equally idle slots.
package nru

import "fmt"

// Usage state bounds. A written slot starts at StateWritten. Reads saturate
// at StateMax.
const (
	StateIdle    = 0
	StateWritten = 1
	StateMax     = 3
)

// A Tracker holds the usage state of every slot and the round-robin cursor.
// It decides which slot to overwrite when the table is full. The tracker
// never touches slot contents; the store owns those.
type Tracker struct {
	states []uint8
	cursor int
}

// NewTracker creates a tracker for a table with the given slot count.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		panic(fmt.Sprintf("tracker capacity must be positive, got %d",
			capacity))
	}

	t := &Tracker{
		states: make([]uint8, capacity),
	}
	t.Reset()

	return t
}

// Capacity returns the number of slots the tracker covers.
func (t *Tracker) Capacity() int {
	return len(t.states)
}

// State returns the usage state of a slot.
func (t *Tracker) State(slot int) int {
	t.mustBeInRange(slot)

	return int(t.states[slot])
}

// OnWrite records a write to a slot. The state becomes StateWritten no
// matter what it was before, so rewriting a hot entry also restarts its
// aging.
func (t *Tracker) OnWrite(slot int) {
	t.mustBeInRange(slot)

	t.states[slot] = StateWritten
}

// OnRead records a successful match against a slot. The state increases by
// one and saturates at StateMax.
func (t *Tracker) OnRead(slot int) {
	t.mustBeInRange(slot)

	if t.states[slot] < StateMax {
		t.states[slot]++
	}
}

// Clear returns a slot to the idle state, making it the preferred victim in
// its cursor region.
func (t *Tracker) Clear(slot int) {
	t.mustBeInRange(slot)

	t.states[slot] = StateIdle
}

// Candidate returns the slot to overwrite next: the first idle slot
// strictly after the cursor, wrapping around. When no slot is idle, every
// state is demoted by one and the scan repeats. At most StateMax demotion
// rounds are ever needed.
//
// Candidate does not move the cursor. As long as no state changes in
// between, repeated calls keep returning the same slot, so a caller may
// hold a candidate across cycles before committing it.
func (t *Tracker) Candidate() int {
	for round := 0; round <= StateMax; round++ {
		if slot, ok := t.scanIdle(); ok {
			return slot
		}

		t.demoteAll()
	}

	panic("no idle slot after full demotion")
}

// Commit overwrites the victim decision into the tracker: the cursor moves
// to the slot and the slot is marked written.
func (t *Tracker) Commit(slot int) {
	t.mustBeInRange(slot)

	t.cursor = slot
	t.states[slot] = StateWritten
}

// Reset returns every slot to idle and parks the cursor so that the first
// candidate is slot 0.
func (t *Tracker) Reset() {
	for i := range t.states {
		t.states[i] = StateIdle
	}
	t.cursor = len(t.states) - 1
}

func (t *Tracker) scanIdle() (int, bool) {
	capacity := len(t.states)
	for i := 1; i <= capacity; i++ {
		slot := (t.cursor + i) % capacity
		if t.states[slot] == StateIdle {
			return slot, true
		}
	}

	return 0, false
}

func (t *Tracker) demoteAll() {
	for i := range t.states {
		if t.states[i] > StateIdle {
			t.states[i]--
		}
	}
}

func (t *Tracker) mustBeInRange(slot int) {
	if slot < 0 || slot >= len(t.states) {
		panic(fmt.Sprintf("slot %d out of range [0, %d)",
			slot, len(t.states)))
	}
}
