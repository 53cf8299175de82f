// Package toc tracks which heading of a long-form essay is active as the
// reader scrolls.
package toc

import (
	"sort"
	"sync"
)

// Heading is a section heading at a vertical document offset.
type Heading struct {
	ID    string
	Title string
	Level int
	Top   float64
}

// DefaultActivation is the fraction of the viewport, from its top edge,
// a heading must scroll past to become active.
const DefaultActivation = 0.2

// Tracker derives the active heading from the scroll position.
type Tracker struct {
	mu         sync.Mutex
	headings   []Heading
	activation float64
	active     string
	onChange   []func(prev, next string)
}

// New sorts headings by offset. activation <= 0 uses DefaultActivation.
func New(headings []Heading, activation float64) *Tracker {
	hs := append([]Heading(nil), headings...)
	sort.SliceStable(hs, func(i, j int) bool { return hs[i].Top < hs[j].Top })
	if activation <= 0 || activation > 1 {
		activation = DefaultActivation
	}
	return &Tracker{headings: hs, activation: activation}
}

// OnChange registers cb, called only when the active heading changes.
func (t *Tracker) OnChange(cb func(prev, next string)) {
	t.mu.Lock()
	t.onChange = append(t.onChange, cb)
	t.mu.Unlock()
}

// Observe updates the active heading for a viewport scrolled to scrollTop
// and viewportHeight tall, and returns its ID. The active heading is the
// last one whose top has crossed the activation line; before the first
// heading is reached the first heading stays active.
func (t *Tracker) Observe(scrollTop, viewportHeight float64) string {
	t.mu.Lock()
	if len(t.headings) == 0 {
		t.mu.Unlock()
		return ""
	}
	line := scrollTop + viewportHeight*t.activation
	next := t.headings[0].ID
	for _, h := range t.headings {
		if h.Top > line {
			break
		}
		next = h.ID
	}
	prev := t.active
	t.active = next
	cbs := append([]func(string, string){}, t.onChange...)
	t.mu.Unlock()

	if prev != next {
		for _, cb := range cbs {
			cb(prev, next)
		}
	}
	return next
}

// Active returns the last observed active heading.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
