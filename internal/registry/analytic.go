package registry

import (
	"sync"

	"scanline/internal/layout"
	"scanline/internal/timeline"
)

// Analytic is a Geometry computed from declared marker positions instead
// of measured from a rendered surface. Width can change at any time
// (terminal resize); callers then Invalidate the registry.
type Analytic struct {
	mu      sync.RWMutex
	start   float64
	end     float64
	width   float64
	markers map[string]float64
	size    float64
}

// NewAnalytic lays out tl's markers over a container width pixels wide.
// markerSize is the marker's rendered width.
func NewAnalytic(tl *timeline.Timeline, width, markerSize float64) *Analytic {
	a := &Analytic{
		start:   tl.DomainStart,
		end:     tl.DomainEnd,
		width:   width,
		markers: make(map[string]float64),
		size:    markerSize,
	}
	for _, m := range tl.Markers() {
		a.markers[m.ID] = m.At
	}
	return a
}

// Resize changes the container width. Zero unmounts the container.
func (a *Analytic) Resize(width float64) {
	a.mu.Lock()
	a.width = width
	a.mu.Unlock()
}

func (a *Analytic) Width() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.width
}

func (a *Analytic) Container() (Rect, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.width <= 0 {
		return Rect{}, false
	}
	return Rect{W: a.width, H: 1}, true
}

func (a *Analytic) Marker(id string) (Rect, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	at, ok := a.markers[id]
	if !ok || a.width <= 0 {
		return Rect{}, false
	}
	cx := layout.Project(at, a.start, a.end, a.width)
	return Rect{X: cx - a.size/2, W: a.size, H: a.size}, true
}

// Laid is a Geometry backed by a finished row layout.
type Laid struct {
	Result layout.Result
}

func (l Laid) Container() (Rect, bool) {
	w := l.Result.TrackWidth()
	if w <= 0 {
		return Rect{}, false
	}
	return Rect{X: l.Result.TrackX0, W: w, H: l.Result.Height}, true
}

func (l Laid) Marker(id string) (Rect, bool) {
	b, ok := l.Result.Box(id)
	if !ok {
		return Rect{}, false
	}
	return Rect{X: b.X, Y: b.MarkerY}, true
}
