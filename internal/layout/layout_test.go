package layout

import (
	"math"
	"testing"

	"scanline/internal/timeline"
)

func TestProjectEndpointsAndMonotonic(t *testing.T) {
	const w = 800.0
	if got := Project(0, 0, 122, w); got != 0 {
		t.Fatalf("start projects to %v", got)
	}
	if got := Project(122, 0, 122, w); got != w {
		t.Fatalf("end projects to %v", got)
	}
	prev := -1.0
	for v := 0.0; v <= 122; v += 0.5 {
		got := Project(v, 0, 122, w)
		if got < prev {
			t.Fatalf("not monotonic at %v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestProjectClampsOutOfDomain(t *testing.T) {
	if got := Project(-10, 0, 100, 500); got != 0 {
		t.Errorf("below domain=%v", got)
	}
	if got := Project(200, 0, 100, 500); got != 500 {
		t.Errorf("above domain=%v", got)
	}
}

func TestProjectDegenerateDomainUsesMidpoint(t *testing.T) {
	for _, c := range [][2]float64{{5, 5}, {10, 2}} {
		got := Project(5, c[0], c[1], 300)
		if math.IsNaN(got) || got != 150 {
			t.Errorf("Project on domain %v = %v want 150", c, got)
		}
	}
	lo, hi, ok := Domain([]float64{42})
	if !ok || lo != hi {
		t.Fatalf("single point domain %v %v %v", lo, hi, ok)
	}
	if got := Project(42, lo, hi, 300); got != 150 {
		t.Fatalf("single point projects to %v", got)
	}
}

func TestStaggerAgainstPredecessorOnly(t *testing.T) {
	anchors := []float64{0, 10, 45, 50, 90}
	got := Stagger(anchors, 40, 3)
	if got[1] == got[0] {
		t.Errorf("anchor 10 shares tier %d with 0", got[1])
	}
	if got[2] == got[1] {
		t.Errorf("anchor 45 shares tier %d with 10", got[2])
	}
	if got[4] != got[3] {
		t.Errorf("anchor 90 staggered relative to 50: %v", got)
	}
	want := []int{0, 1, 2, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Stagger=%v want %v", got, want)
		}
	}
}

func TestStaggerUnsortedInputKeepsIndexing(t *testing.T) {
	got := Stagger([]float64{45, 0, 10}, 40, 2)
	// sorted: 0 (tier 0), 10 (tier 1), 45 (tier 0)
	want := []int{0, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Stagger=%v want %v", got, want)
		}
	}
	if all := Stagger([]float64{0, 1, 2}, 40, 1); all[0]+all[1]+all[2] != 0 {
		t.Fatalf("single tier should never stagger: %v", all)
	}
}

func TestStaggerFollowsPinnedTiers(t *testing.T) {
	cases := []struct {
		name    string
		anchors []float64
		fixed   []int
		want    []int
	}{
		{"after a pinned predecessor", []float64{0, 10}, []int{1, 0}, []int{1, 2}},
		{"around a pinned successor", []float64{0, 10, 20}, []int{0, 0, 1}, []int{0, 2, 1}},
		{"far from the pin", []float64{0, 100}, []int{2, 0}, []int{2, 0}},
		{"nil pins", []float64{0, 10}, nil, []int{0, 1}},
	}
	for _, c := range cases {
		got := StaggerFixed(c.anchors, c.fixed, 40, 3)
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("%s: StaggerFixed=%v want %v", c.name, got, c.want)
				break
			}
		}
	}
}

func TestLayoutRowsBumpedNeighbourDoesNotShareTier(t *testing.T) {
	tl := &timeline.Timeline{
		DomainEnd: 100,
		Rows: []timeline.Row{{Items: []timeline.Item{
			{ID: "bumped", At: 50, Label: "Explicitly bumped label", Bump: 1},
			{ID: "free", At: 51, Label: "Neighbouring label"},
		}}},
	}
	res := LayoutRows(tl, DefaultOptions())
	a, _ := res.Box("bumped")
	b, _ := res.Box("free")
	if a.Tier != 1 {
		t.Fatalf("explicit bump ignored: tier=%d", a.Tier)
	}
	if a.Tier == b.Tier || a.Text.Y == b.Text.Y {
		t.Fatalf("overlapping neighbours share tier %d (y=%v, %v)", a.Tier, a.Text.Y, b.Text.Y)
	}
}

func TestPackPillsFirstFit(t *testing.T) {
	rows, count := PackPills([]float64{100, 150, 200}, 96, 2)
	want := []int{0, 1, 0}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("rows=%v want %v", rows, want)
		}
	}
	if count != 2 {
		t.Fatalf("count=%d want 2", count)
	}
}

func TestPackPillsNeverOverlapsWithinRow(t *testing.T) {
	const w, gap = 96.0, 2.0
	centers := []float64{300, 100, 120, 140, 400, 101, 600}
	rows, count := PackPills(centers, w, gap)
	if count > len(centers) {
		t.Fatalf("count=%d", count)
	}
	for i := range centers {
		for j := i + 1; j < len(centers); j++ {
			if rows[i] != rows[j] {
				continue
			}
			if math.Abs(centers[i]-centers[j]) < w+gap {
				t.Fatalf("pills %d and %d overlap in row %d", i, j, rows[i])
			}
		}
	}
	// four pills at 100, 101, 120, 140 all overlap pairwise
	if count != 4 {
		t.Fatalf("count=%d want 4", count)
	}
}

func TestWrapLabel(t *testing.T) {
	lines := WrapLabel("Smoke and Stack arrive at the juke joint", 12)
	if len(lines) < 3 {
		t.Fatalf("lines=%q", lines)
	}
	for _, l := range lines {
		if len(l) > 12 {
			t.Fatalf("line %q exceeds limit", l)
		}
	}
	if WrapLabel("   ", 10) != nil {
		t.Fatal("blank label should yield no lines")
	}
	b := EstimateWrappedTextBounds([]string{"abcd", "ab"}, 10)
	if math.Abs(b.Width-28) > 1e-9 || math.Abs(b.Height-24) > 1e-9 {
		t.Fatalf("bounds=%+v", b)
	}
}

func endToEndTimeline() *timeline.Timeline {
	tl := &timeline.Timeline{
		DomainStart: 0,
		DomainEnd:   122,
		Rows: []timeline.Row{{
			Label: "Plot",
			Items: []timeline.Item{
				{At: 3, Label: "Twins return"},
				{At: 44, Label: "Juke opens", Connector: true},
				{At: 79, Label: "Remmick"},
				{At: 79, Label: "Siege"},
				{At: 115, Label: "Dawn"},
				{At: 122, Label: "Credits", Bump: 2, Connector: true},
			},
		}},
	}
	_ = tl.Normalize()
	return tl
}

func TestLayoutRowsEndToEnd(t *testing.T) {
	tl := endToEndTimeline()
	res := LayoutRows(tl, DefaultOptions())
	if len(res.Items) != 6 || len(res.Rows) != 1 {
		t.Fatalf("items=%d rows=%d", len(res.Items), len(res.Rows))
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].X < res.Items[i-1].X {
			t.Fatalf("x not non-decreasing at %d: %v < %v", i, res.Items[i].X, res.Items[i-1].X)
		}
	}
	if res.Items[2].X != res.Items[3].X {
		t.Fatalf("items at minute 79 differ: %v vs %v", res.Items[2].X, res.Items[3].X)
	}
	if res.Items[5].X != res.TrackX1 {
		t.Fatalf("domain end projects to %v, track ends at %v", res.Items[5].X, res.TrackX1)
	}
	// coincident labels must not share a tier
	if res.Items[2].Tier == res.Items[3].Tier {
		t.Fatalf("coincident items share tier %d", res.Items[2].Tier)
	}
	if res.Items[5].Tier != 2 {
		t.Fatalf("explicit bump ignored: tier=%d", res.Items[5].Tier)
	}
	c := res.Items[5].Connector
	if c == nil || c.Y2 != res.Items[5].Text.Y || c.Y1 >= c.Y2 {
		t.Fatalf("connector=%+v text=%+v", c, res.Items[5].Text)
	}
	if res.Items[0].Connector != nil {
		t.Fatal("connector drawn without request")
	}
	for _, b := range res.Items {
		if b.Text.X < 0 || b.Text.X+b.Text.W > res.Width+1e-9 {
			t.Fatalf("text box %+v escapes width %v", b.Text, res.Width)
		}
	}
	if res.Height <= res.Rows[0].Top+res.Rows[0].Height {
		t.Fatalf("height %v does not cover rows", res.Height)
	}
}

func TestLayoutPillsStacksUpward(t *testing.T) {
	tl := endToEndTimeline()
	res := LayoutRows(tl, DefaultOptions())
	items := []timeline.Item{{ID: "a", At: 79}, {ID: "b", At: 80}, {ID: "c", At: 3}}
	pills, height := LayoutPills(items, 0, 122, res, 100, PillOptions{Width: 96, Height: 18, MinGap: 2, RowGap: 4})
	if pills[0].Row == pills[1].Row {
		t.Fatalf("overlapping pills share a row: %+v", pills)
	}
	if pills[2].Row != 0 {
		t.Fatalf("isolated pill row=%d", pills[2].Row)
	}
	if height != 2*(18+4) {
		t.Fatalf("height=%v", height)
	}
	for _, p := range pills {
		if p.Box.Y+p.Box.H > 100 {
			t.Fatalf("pill %+v below baseline", p)
		}
	}
}
