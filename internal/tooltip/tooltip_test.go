package tooltip

import "testing"

func TestPositionAboveAnchor(t *testing.T) {
	got := Position(Point{X: 200, Y: 150}, 800, Size{W: 100, H: 40}, 10)
	want := Point{X: 150, Y: 100}
	if got != want {
		t.Fatalf("Position=%+v want %+v", got, want)
	}
}

func TestPositionTopNeverNegative(t *testing.T) {
	for _, y := range []float64{0, 5, 20, 49.9} {
		got := Position(Point{X: 400, Y: y}, 800, Size{W: 120, H: 40}, 10)
		if got.Y < 0 {
			t.Fatalf("anchor y=%v gives negative top %v", y, got.Y)
		}
		if got.Y != 0 {
			t.Fatalf("anchor y=%v should pin to top, got %v", y, got.Y)
		}
	}
}

func TestPositionPinsToTopInsteadOfFlipping(t *testing.T) {
	anchor := Point{X: 400, Y: 10}
	s := Size{W: 120, H: 40}
	got := Position(anchor, 800, s, 10)
	if !Overlaps(got, s, anchor) {
		t.Fatalf("expected pinned tooltip %+v to cover anchor %+v", got, anchor)
	}
}

func TestPositionClampsHorizontally(t *testing.T) {
	cases := []struct {
		name   string
		anchor Point
		width  float64
		size   Size
		wantX  float64
	}{
		{"left edge", Point{X: 10, Y: 200}, 800, Size{W: 100, H: 30}, 0},
		{"right edge", Point{X: 790, Y: 200}, 800, Size{W: 100, H: 30}, 700},
		{"wider than container", Point{X: 50, Y: 200}, 80, Size{W: 100, H: 30}, 0},
		{"centered", Point{X: 400, Y: 200}, 800, Size{W: 100, H: 30}, 350},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Position(c.anchor, c.width, c.size, 8)
			if got.X != c.wantX {
				t.Fatalf("x=%v want %v", got.X, c.wantX)
			}
			if c.size.W <= c.width && got.X+c.size.W > c.width {
				t.Fatalf("tooltip escapes right edge: %+v", got)
			}
		})
	}
}
