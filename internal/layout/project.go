// Package layout maps domain values onto container coordinates and keeps
// labels and annotations from colliding.
package layout

import "math"

// Normalize maps value from [start,end] onto [0,1], clamping out-of-range
// values. A degenerate domain (end <= start) maps everything to 0.5.
func Normalize(value, start, end float64) float64 {
	if !(end > start) || math.IsNaN(value) {
		return 0.5
	}
	p := (value - start) / (end - start)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Project linearly maps value from [start,end] onto [0,width] pixels.
// Values outside the domain are clamped, never dropped. A degenerate
// domain places the point at the midpoint instead of dividing by zero.
func Project(value, start, end, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return Normalize(value, start, end) * width
}

// Domain returns the min and max of values. ok is false for an empty slice.
func Domain(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}
