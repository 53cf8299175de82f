// Package timeline holds the declarative data a timeline view is mounted
// with: rows of point-in-time markers over a numeric domain, plus the
// timecoded beats of a dramatic-intensity plot.
package timeline

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDegenerateDomain reports DomainEnd <= DomainStart. Layout still
	// works (every marker lands at the midpoint) so callers may log and go on.
	ErrDegenerateDomain = errors.New("degenerate timeline domain")
	// ErrDuplicateID reports two items sharing an ID within one timeline.
	ErrDuplicateID = errors.New("duplicate item id")
)

// MaxBump is the highest vertical bump level an item may request.
const MaxBump = 2

// Item is a single marker on a row.
type Item struct {
	ID          string  `yaml:"id"`
	At          float64 `yaml:"at"`
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	Color       string  `yaml:"color"`
	Bump        int     `yaml:"bump"`      // 0, 1 or 2: vertical offset tier of the text block
	Connector   bool    `yaml:"connector"` // draw a line from the marker to its text block
}

// Row is one visually stacked lane. Order is render order only.
type Row struct {
	Label    string `yaml:"label"`
	SubLabel string `yaml:"sub_label"`
	Items    []Item `yaml:"items"`
}

// Timeline is the static input of a mounted view.
type Timeline struct {
	DomainStart float64 `yaml:"domain_start"`
	DomainEnd   float64 `yaml:"domain_end"`
	Rows        []Row   `yaml:"rows"`
}

// Marker is the flattened view of an item used by the registry and animator.
type Marker struct {
	ID  string
	At  float64
	Row int
}

// IntensityPoint is one timecoded beat of the dramatic-intensity plot.
type IntensityPoint struct {
	Timecode    string  `yaml:"timecode"`
	Intensity   float64 `yaml:"intensity"`
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
}

// DefaultID is the position-derived key used for items without an ID.
func DefaultID(row, index int, at float64) string {
	return fmt.Sprintf("r%d-i%d-%s", row, index, strconv.FormatFloat(at, 'f', -1, 64))
}

// Normalize fills in missing IDs, clamps bump levels and rejects duplicate
// IDs. It mutates t in place.
func (t *Timeline) Normalize() error {
	seen := make(map[string]bool)
	for r := range t.Rows {
		items := t.Rows[r].Items
		for i := range items {
			it := &items[i]
			if it.ID == "" {
				it.ID = DefaultID(r, i, it.At)
			}
			if it.Bump < 0 {
				it.Bump = 0
			} else if it.Bump > MaxBump {
				it.Bump = MaxBump
			}
			if seen[it.ID] {
				return fmt.Errorf("%w: %q", ErrDuplicateID, it.ID)
			}
			seen[it.ID] = true
		}
	}
	return nil
}

// Validate reports a degenerate domain. It is not fatal for rendering.
func (t *Timeline) Validate() error {
	if t.DomainEnd <= t.DomainStart {
		return fmt.Errorf("%w: start=%g end=%g", ErrDegenerateDomain, t.DomainStart, t.DomainEnd)
	}
	return nil
}

// Markers flattens rows into render order.
func (t *Timeline) Markers() []Marker {
	var out []Marker
	for r, row := range t.Rows {
		for _, it := range row.Items {
			out = append(out, Marker{ID: it.ID, At: it.At, Row: r})
		}
	}
	return out
}

// Item looks an item up by ID.
func (t *Timeline) Item(id string) (Item, bool) {
	for _, row := range t.Rows {
		for _, it := range row.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

// Span returns the domain width, or 0 for a degenerate domain.
func (t *Timeline) Span() float64 {
	if t.DomainEnd <= t.DomainStart {
		return 0
	}
	return t.DomainEnd - t.DomainStart
}
