// Package highlight holds the per-marker highlight states and the timer
// table that walks a marker from Peak through Fading back to Idle.
package highlight

import (
	"sort"
	"time"
)

// State is the discrete highlight tag of one marker.
type State int

const (
	Idle State = iota
	Approaching
	Peak
	Fading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Approaching:
		return "approaching"
	case Peak:
		return "peak"
	case Fading:
		return "fading"
	default:
		return "unknown"
	}
}

const (
	DefaultFadeDelay = 300 * time.Millisecond
	DefaultIdleDelay = 1000 * time.Millisecond
)

type slot struct {
	fadeAt time.Time
	idleAt time.Time
}

// Table maps marker IDs to their pending Peak->Fading->Idle deadlines.
// There is at most one slot per marker; a new trigger replaces the old one.
// Deadlines are checked against the clock passed in by the caller, so the
// table holds no goroutines or runtime timers. Not safe for concurrent use.
type Table struct {
	FadeDelay time.Duration // Peak -> Fading
	IdleDelay time.Duration // Fading -> Idle
	slots     map[string]slot
}

func NewTable(fadeDelay, idleDelay time.Duration) *Table {
	if fadeDelay <= 0 {
		fadeDelay = DefaultFadeDelay
	}
	if idleDelay <= 0 {
		idleDelay = DefaultIdleDelay
	}
	return &Table{FadeDelay: fadeDelay, IdleDelay: idleDelay, slots: make(map[string]slot)}
}

// Trigger starts a Peak at now for id, superseding any pending sequence.
func (t *Table) Trigger(id string, now time.Time) {
	fade := now.Add(t.FadeDelay)
	t.slots[id] = slot{fadeAt: fade, idleAt: fade.Add(t.IdleDelay)}
}

// Resolve returns the timer-driven state of id at now. ok is false when no
// sequence is pending; an expired slot is dropped and reports !ok.
func (t *Table) Resolve(id string, now time.Time) (State, bool) {
	s, found := t.slots[id]
	if !found {
		return Idle, false
	}
	switch {
	case now.Before(s.fadeAt):
		return Peak, true
	case now.Before(s.idleAt):
		return Fading, true
	default:
		delete(t.slots, id)
		return Idle, false
	}
}

// Forget drops id's pending sequence.
func (t *Table) Forget(id string) {
	delete(t.slots, id)
}

// Clear drops every pending sequence.
func (t *Table) Clear() {
	t.slots = make(map[string]slot)
}

// Pending returns the IDs with a live sequence, sorted.
func (t *Table) Pending() []string {
	ids := make([]string, 0, len(t.slots))
	for id := range t.slots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of pending sequences.
func (t *Table) Len() int { return len(t.slots) }
