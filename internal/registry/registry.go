// Package registry tracks the normalized horizontal position of every
// marker of one mounted timeline.
package registry

import (
	"math"
	"sort"
	"sync"
)

// Rect is a bounding box on the rendering surface.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) valid() bool {
	for _, v := range []float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W >= 0 && r.H >= 0
}

// Geometry is the rendering surface as seen by the registry. ok is false
// while the container or a marker is not mounted.
type Geometry interface {
	Container() (Rect, bool)
	Marker(id string) (Rect, bool)
}

// Registry owns the marker ID -> normalized X mapping.
type Registry struct {
	mu        sync.Mutex
	ids       []string
	positions map[string]float64
	dirty     bool
}

// New returns a registry for the given marker IDs. Positions are unknown
// until the first Refresh.
func New(ids []string) *Registry {
	cp := append([]string(nil), ids...)
	return &Registry{ids: cp, positions: map[string]float64{}, dirty: true}
}

// IDs returns the declared marker IDs.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

// Invalidate marks positions stale, e.g. after a resize.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.dirty = true
	r.mu.Unlock()
}

// Dirty reports whether positions need a refresh.
func (r *Registry) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// Refresh samples g and recomputes every marker's horizontal center
// relative to the container, normalized to [0,1]. Markers whose geometry
// is missing or malformed are left out for this refresh, never placed at 0.
// ok is false when the container is unmounted or has no width; positions
// are then cleared and the registry stays dirty.
func (r *Registry) Refresh(g Geometry) (map[string]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.positions = make(map[string]float64, len(r.ids))
	if g == nil {
		r.dirty = true
		return map[string]float64{}, false
	}
	box, ok := g.Container()
	if !ok || !box.valid() || box.W <= 0 {
		r.dirty = true
		return map[string]float64{}, false
	}

	for _, id := range r.ids {
		m, ok := g.Marker(id)
		if !ok || !m.valid() {
			continue
		}
		x := (m.X + m.W/2 - box.X) / box.W
		r.positions[id] = math.Max(0, math.Min(1, x))
	}
	r.dirty = false
	return r.copyLocked(), true
}

// Positions returns a copy of the last refreshed positions.
func (r *Registry) Positions() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLocked()
}

// Position returns one marker's last refreshed position.
func (r *Registry) Position(id string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.positions[id]
	return p, ok
}

// Sorted returns the refreshed IDs ordered by position, ties by ID.
func (r *Registry) Sorted() []string {
	pos := r.Positions()
	ids := make([]string, 0, len(pos))
	for id := range pos {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if pos[ids[i]] != pos[ids[j]] {
			return pos[ids[i]] < pos[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (r *Registry) copyLocked() map[string]float64 {
	out := make(map[string]float64, len(r.positions))
	for k, v := range r.positions {
		out[k] = v
	}
	return out
}
