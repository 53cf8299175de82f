package layout

import (
	"scanline/internal/timeline"
)

// Options controls row layout. All lengths are pixels.
type Options struct {
	Width        float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	RowGap       float64
	LabelColumn  float64 // width reserved left of the track for row labels
	MarkerRadius float64
	FontSize     float64
	WrapChars    int     // wrap item labels at this many characters
	BumpStep     float64 // vertical distance between bump tiers
	TextGap      float64 // gap between the marker and the first text line
	MinSpacing   float64 // label anchors closer than this are staggered
	Tiers        int     // stagger tiers, at least 2 to stagger at all
}

// DefaultOptions mirrors the default timeline config.
func DefaultOptions() Options {
	return Options{
		Width:        1200,
		MarginLeft:   40,
		MarginRight:  40,
		MarginTop:    30,
		RowGap:       24,
		LabelColumn:  120,
		MarkerRadius: 6,
		FontSize:     12,
		WrapChars:    18,
		BumpStep:     28,
		TextGap:      8,
		MinSpacing:   40,
		Tiers:        3,
	}
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of r.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Segment is a straight connector line.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// ItemBox is the computed geometry of one timeline item.
type ItemBox struct {
	ID        string
	Row       int
	X         float64 // marker center
	MarkerY   float64
	Tier      int
	Lines     []string
	Text      Rect
	Connector *Segment
}

// RowBox is the computed geometry of one row.
type RowBox struct {
	Label    string
	SubLabel string
	Top      float64
	Height   float64
	MarkerY  float64
}

// Result is a complete row layout.
type Result struct {
	Width   float64
	Height  float64
	TrackX0 float64
	TrackX1 float64
	Rows    []RowBox
	Items   []ItemBox
}

// TrackWidth is the pixel width markers are projected onto.
func (r Result) TrackWidth() float64 { return r.TrackX1 - r.TrackX0 }

// Box returns the item box with the given ID.
func (r Result) Box(id string) (ItemBox, bool) {
	for _, b := range r.Items {
		if b.ID == id {
			return b, true
		}
	}
	return ItemBox{}, false
}

// LayoutRows computes the geometry of every row and item in two passes.
// The first pass sizes every text block from fixed font metrics; the
// second places blocks by tier and derives connectors from the known
// sizes, so nothing has to be measured after rendering.
func LayoutRows(tl *timeline.Timeline, opt Options) Result {
	res := Result{
		Width:   opt.Width,
		TrackX0: opt.MarginLeft + opt.LabelColumn,
		TrackX1: opt.Width - opt.MarginRight,
	}
	if res.TrackX1 < res.TrackX0 {
		res.TrackX1 = res.TrackX0
	}
	track := res.TrackWidth()

	type sized struct {
		item   timeline.Item
		x      float64
		lines  []string
		bounds TextBounds
	}

	// pass one: sizes and anchors
	rows := make([][]sized, len(tl.Rows))
	for r, row := range tl.Rows {
		for _, it := range row.Items {
			lines := WrapLabel(it.Label, opt.WrapChars)
			rows[r] = append(rows[r], sized{
				item:   it,
				x:      res.TrackX0 + Project(it.At, tl.DomainStart, tl.DomainEnd, track),
				lines:  lines,
				bounds: EstimateWrappedTextBounds(lines, opt.FontSize),
			})
		}
	}

	// pass two: tiers, vertical placement, connectors
	y := opt.MarginTop
	for r, row := range tl.Rows {
		anchors := make([]float64, len(rows[r]))
		bumps := make([]int, len(rows[r]))
		for i, s := range rows[r] {
			anchors[i] = s.x
			bumps[i] = s.item.Bump
		}
		tiers := StaggerFixed(anchors, bumps, opt.MinSpacing, opt.Tiers)

		markerY := y + opt.MarkerRadius
		textBase := markerY + opt.MarkerRadius + opt.TextGap
		bottom := markerY + opt.MarkerRadius

		for i, s := range rows[r] {
			tier := tiers[i]
			top := textBase + float64(tier)*opt.BumpStep
			left := clamp(s.x-s.bounds.Width/2, 0, opt.Width-s.bounds.Width)
			box := ItemBox{
				ID:      s.item.ID,
				Row:     r,
				X:       s.x,
				MarkerY: markerY,
				Tier:    tier,
				Lines:   s.lines,
				Text:    Rect{X: left, Y: top, W: s.bounds.Width, H: s.bounds.Height},
			}
			if s.item.Connector && len(s.lines) > 0 {
				box.Connector = &Segment{X1: s.x, Y1: markerY + opt.MarkerRadius, X2: s.x, Y2: top}
			}
			if end := top + s.bounds.Height; end > bottom {
				bottom = end
			}
			res.Items = append(res.Items, box)
		}

		res.Rows = append(res.Rows, RowBox{
			Label:    row.Label,
			SubLabel: row.SubLabel,
			Top:      y,
			Height:   bottom - y,
			MarkerY:  markerY,
		})
		y = bottom + opt.RowGap
	}
	res.Height = y
	return res
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
