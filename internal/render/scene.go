// Package render draws timelines and intensity plots for the static host
// surfaces: SVG files and chart images.
package render

import (
	"scanline/internal/config"
	"scanline/internal/layout"
	"scanline/internal/timeline"
)

// Scene is a fully laid out timeline ready to draw at any frame.
type Scene struct {
	Title    string
	Timeline *timeline.Timeline
	Layout   layout.Result
	Pills    []layout.Pill
	Height   float64
}

// NewScene lays out f's timeline and turning points with cfg. Turning-point
// pills get a band above the rows sized by how many pill rows they need.
func NewScene(f *timeline.Fixture, cfg config.Config) Scene {
	tl := f.Timeline
	if tl == nil {
		tl = &timeline.Timeline{}
	}
	opt := cfg.LayoutOptions()
	po := cfg.PillOptions()

	probe := layout.LayoutRows(tl, opt)
	_, band := layout.LayoutPills(f.TurningPoints, tl.DomainStart, tl.DomainEnd, probe, 0, po)

	opt.MarginTop += band
	res := layout.LayoutRows(tl, opt)
	pills, _ := layout.LayoutPills(f.TurningPoints, tl.DomainStart, tl.DomainEnd, res, opt.MarginTop, po)

	return Scene{
		Title:    f.Title,
		Timeline: tl,
		Layout:   res,
		Pills:    pills,
		Height:   res.Height + cfg.Layout.MarginBottom,
	}
}

// ScanX converts a normalized scan position to a pixel column.
func (s Scene) ScanX(pos float64) float64 {
	return s.Layout.TrackX0 + pos*s.Layout.TrackWidth()
}
