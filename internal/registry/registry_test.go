package registry

import (
	"math"
	"testing"

	"scanline/internal/layout"
	"scanline/internal/timeline"
)

type fakeGeometry struct {
	container *Rect
	markers   map[string]Rect
}

func (f fakeGeometry) Container() (Rect, bool) {
	if f.container == nil {
		return Rect{}, false
	}
	return *f.container, true
}

func (f fakeGeometry) Marker(id string) (Rect, bool) {
	r, ok := f.markers[id]
	return r, ok
}

func TestRefreshNormalizesCenters(t *testing.T) {
	reg := New([]string{"a", "b", "c"})
	g := fakeGeometry{
		container: &Rect{X: 100, W: 400},
		markers: map[string]Rect{
			"a": {X: 95, W: 10},  // center 100 -> 0
			"b": {X: 290, W: 20}, // center 300 -> 0.5
			"c": {X: 600, W: 10}, // past the right edge -> clamped to 1
		},
	}
	pos, ok := reg.Refresh(g)
	if !ok {
		t.Fatal("refresh failed")
	}
	want := map[string]float64{"a": 0, "b": 0.5, "c": 1}
	for id, w := range want {
		if math.Abs(pos[id]-w) > 1e-9 {
			t.Errorf("%s=%v want %v", id, pos[id], w)
		}
	}
	if reg.Dirty() {
		t.Fatal("registry still dirty after refresh")
	}
}

func TestRefreshTreatsMissingGeometryAsAbsent(t *testing.T) {
	reg := New([]string{"present", "missing", "nan"})
	g := fakeGeometry{
		container: &Rect{W: 200},
		markers: map[string]Rect{
			"present": {X: 50},
			"nan":     {X: math.NaN()},
		},
	}
	pos, ok := reg.Refresh(g)
	if !ok {
		t.Fatal("refresh failed")
	}
	if _, found := pos["missing"]; found {
		t.Fatal("missing marker reported")
	}
	if _, found := pos["nan"]; found {
		t.Fatal("malformed marker reported")
	}
	if _, found := reg.Position("present"); !found {
		t.Fatal("present marker absent")
	}
}

func TestRefreshWithoutContainer(t *testing.T) {
	reg := New([]string{"a"})
	g := fakeGeometry{container: &Rect{W: 100}, markers: map[string]Rect{"a": {X: 10}}}
	if _, ok := reg.Refresh(g); !ok {
		t.Fatal("initial refresh failed")
	}
	for _, broken := range []Geometry{nil, fakeGeometry{}, fakeGeometry{container: &Rect{W: 0}}} {
		pos, ok := reg.Refresh(broken)
		if ok || len(pos) != 0 {
			t.Fatalf("refresh on %v: ok=%v pos=%v", broken, ok, pos)
		}
		if len(reg.Positions()) != 0 {
			t.Fatal("stale positions kept after failed refresh")
		}
		if !reg.Dirty() {
			t.Fatal("registry clean after failed refresh")
		}
	}
}

func TestAnalyticGeometryTracksResize(t *testing.T) {
	tl := &timeline.Timeline{DomainEnd: 100, Rows: []timeline.Row{{Items: []timeline.Item{
		{ID: "q", At: 25}, {ID: "h", At: 50},
	}}}}
	a := NewAnalytic(tl, 400, 8)
	reg := New([]string{"q", "h"})
	pos, ok := reg.Refresh(a)
	if !ok || math.Abs(pos["q"]-0.25) > 1e-9 || math.Abs(pos["h"]-0.5) > 1e-9 {
		t.Fatalf("pos=%v ok=%v", pos, ok)
	}
	a.Resize(80)
	reg.Invalidate()
	pos, _ = reg.Refresh(a)
	if math.Abs(pos["q"]-0.25) > 1e-9 {
		t.Fatalf("normalized position changed with width: %v", pos)
	}
	a.Resize(0)
	if _, ok := reg.Refresh(a); ok {
		t.Fatal("zero width container should not refresh")
	}
	if got := reg.Sorted(); len(got) != 0 {
		t.Fatalf("sorted=%v", got)
	}
}

func TestLaidGeometryMatchesLayout(t *testing.T) {
	tl := &timeline.Timeline{DomainEnd: 122, Rows: []timeline.Row{{Items: []timeline.Item{
		{ID: "x", At: 0}, {ID: "y", At: 61}, {ID: "z", At: 122},
	}}}}
	res := layout.LayoutRows(tl, layout.DefaultOptions())
	reg := New([]string{"x", "y", "z", "ghost"})
	pos, ok := reg.Refresh(Laid{Result: res})
	if !ok {
		t.Fatal("refresh failed")
	}
	want := map[string]float64{"x": 0, "y": 0.5, "z": 1}
	for id, w := range want {
		if math.Abs(pos[id]-w) > 1e-9 {
			t.Errorf("%s=%v want %v", id, pos[id], w)
		}
	}
	if order := reg.Sorted(); len(order) != 3 || order[0] != "x" || order[2] != "z" {
		t.Fatalf("sorted=%v", order)
	}
}
