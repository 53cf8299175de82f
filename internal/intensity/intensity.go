// Package intensity turns timecoded story beats into a plottable
// dramatic-intensity curve.
package intensity

import (
	"math"
	"sort"

	"scanline/internal/layout"
	"scanline/internal/log"
	"scanline/internal/timecode"
	"scanline/internal/timeline"
	"scanline/internal/tooltip"
)

// Point is a beat with its timecode resolved to minutes.
type Point struct {
	Minutes     float64
	Intensity   float64
	Label       string
	Description string
	Source      int // index in the input slice
}

// Skip records an input point that could not be plotted.
type Skip struct {
	Index int
	Err   error
}

// Plot is a sorted, validated intensity series.
type Plot struct {
	Points []Point
	Lo, Hi float64 // x domain in minutes
}

// Pixel is a projected point.
type Pixel struct {
	X, Y float64
}

// Build resolves timecodes, drops malformed points, clamps intensity to
// [0,100] and sorts by time so the connecting line never doubles back.
// The sort is stable: beats sharing a timecode keep their input order.
func Build(points []timeline.IntensityPoint, logger *log.Logger) (Plot, []Skip) {
	if logger == nil {
		logger = log.Discard()
	}
	var p Plot
	var skipped []Skip
	for i, in := range points {
		m, err := timecode.Minutes(in.Timecode)
		if err != nil {
			logger.Warnf("skipping intensity point %d (%s): %v", i, in.Label, err)
			skipped = append(skipped, Skip{Index: i, Err: err})
			continue
		}
		v := in.Intensity
		if math.IsNaN(v) {
			v = 0
		}
		p.Points = append(p.Points, Point{
			Minutes:     m,
			Intensity:   math.Max(0, math.Min(100, v)),
			Label:       in.Label,
			Description: in.Description,
			Source:      i,
		})
	}
	sort.SliceStable(p.Points, func(a, b int) bool { return p.Points[a].Minutes < p.Points[b].Minutes })

	xs := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i] = pt.Minutes
	}
	p.Lo, p.Hi, _ = layout.Domain(xs)
	return p, skipped
}

// Project maps every point into a width x height box, 100 at the top.
// A single point, or several at the same minute, land on the horizontal
// midpoint.
func (p Plot) Project(width, height float64) []Pixel {
	out := make([]Pixel, len(p.Points))
	for i, pt := range p.Points {
		out[i] = Pixel{
			X: layout.Project(pt.Minutes, p.Lo, p.Hi, width),
			Y: height - pt.Intensity/100*height,
		}
	}
	return out
}

// Nearest returns the index of the point horizontally closest to x in a
// plot width pixels wide, or -1 for an empty plot.
func (p Plot) Nearest(x, width float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, pt := range p.Points {
		d := math.Abs(layout.Project(pt.Minutes, p.Lo, p.Hi, width) - x)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Tooltip places the info popup for point i.
func (p Plot) Tooltip(i int, width, height float64, size tooltip.Size, margin float64) (tooltip.Point, bool) {
	if i < 0 || i >= len(p.Points) {
		return tooltip.Point{}, false
	}
	px := p.Project(width, height)[i]
	return tooltip.Position(tooltip.Point{X: px.X, Y: px.Y}, width, size, margin), true
}

// Peak returns the most intense point; the earliest wins ties.
func (p Plot) Peak() (Point, bool) {
	if len(p.Points) == 0 {
		return Point{}, false
	}
	best := p.Points[0]
	for _, pt := range p.Points[1:] {
		if pt.Intensity > best.Intensity {
			best = pt
		}
	}
	return best, true
}
