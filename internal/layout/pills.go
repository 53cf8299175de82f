package layout

import (
	"sort"

	"scanline/internal/timeline"
)

// PackPills stacks pill-shaped annotations of equal width into rows so that
// no two pills in a row overlap. centers are pill centers in pixels.
//
// Pills are visited left to right; each goes into the lowest-indexed row
// whose rightmost edge leaves at least minGap before the pill's left edge,
// or into a new row when none qualifies. Greedy first-fit, not optimal bin
// packing. rows is indexed like the input; count is the number of rows used.
func PackPills(centers []float64, pillWidth, minGap float64) (rows []int, count int) {
	rows = make([]int, len(centers))
	if len(centers) == 0 {
		return rows, 0
	}

	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centers[order[a]] < centers[order[b]]
	})

	half := pillWidth / 2
	var rightEdges []float64
	for _, idx := range order {
		left := centers[idx] - half
		placed := -1
		for r, edge := range rightEdges {
			if left-edge >= minGap {
				placed = r
				break
			}
		}
		if placed < 0 {
			rightEdges = append(rightEdges, 0)
			placed = len(rightEdges) - 1
		}
		rightEdges[placed] = centers[idx] + half
		rows[idx] = placed
	}
	return rows, len(rightEdges)
}

// Pill is a placed turning-point annotation.
type Pill struct {
	ID    string
	Label string
	Row   int
	Box   Rect
}

// PillOptions sizes turning-point pills.
type PillOptions struct {
	Width  float64
	Height float64
	MinGap float64
	RowGap float64
}

// LayoutPills projects items onto the track of res and packs them into
// rows stacked upward from baseline. It returns the pills and the total
// height they occupy.
func LayoutPills(items []timeline.Item, start, end float64, res Result, baseline float64, opt PillOptions) ([]Pill, float64) {
	centers := make([]float64, len(items))
	for i, it := range items {
		centers[i] = res.TrackX0 + Project(it.At, start, end, res.TrackWidth())
	}
	rows, count := PackPills(centers, opt.Width, opt.MinGap)

	pills := make([]Pill, len(items))
	for i, it := range items {
		top := baseline - float64(rows[i]+1)*(opt.Height+opt.RowGap)
		pills[i] = Pill{
			ID:    it.ID,
			Label: it.Label,
			Row:   rows[i],
			Box:   Rect{X: centers[i] - opt.Width/2, Y: top, W: opt.Width, H: opt.Height},
		}
	}
	return pills, float64(count) * (opt.Height + opt.RowGap)
}
