package intensity

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"scanline/internal/log"
	"scanline/internal/timecode"
	"scanline/internal/timeline"
	"scanline/internal/tooltip"
)

func beats() []timeline.IntensityPoint {
	return []timeline.IntensityPoint{
		{Timecode: "44:00", Intensity: 60, Label: "Juke opens"},
		{Timecode: "3:00", Intensity: 20, Label: "Church"},
		{Timecode: "oops", Intensity: 90, Label: "Broken"},
		{Timecode: "1:19:00", Intensity: 140, Label: "Siege"},
		{Timecode: "2:02:00", Intensity: -5, Label: "Dawn"},
	}
}

func TestBuildSortsSkipsAndClamps(t *testing.T) {
	var buf bytes.Buffer
	p, skipped := Build(beats(), log.New(&buf, log.LevelWarn))

	if len(skipped) != 1 || skipped[0].Index != 2 || !errors.Is(skipped[0].Err, timecode.ErrInvalidFormat) {
		t.Fatalf("skipped=%+v", skipped)
	}
	if !strings.Contains(buf.String(), "Broken") {
		t.Fatalf("malformed point not logged: %q", buf.String())
	}
	wantOrder := []string{"Church", "Juke opens", "Siege", "Dawn"}
	for i, w := range wantOrder {
		if p.Points[i].Label != w {
			t.Fatalf("order=%v", p.Points)
		}
	}
	if p.Points[2].Intensity != 100 || p.Points[3].Intensity != 0 {
		t.Fatalf("intensity not clamped: %+v", p.Points)
	}
	if p.Lo != 3 || p.Hi != 122 {
		t.Fatalf("domain=[%v,%v]", p.Lo, p.Hi)
	}
	if p.Points[0].Source != 1 {
		t.Fatalf("source index=%d", p.Points[0].Source)
	}
}

func TestProjectAndSinglePoint(t *testing.T) {
	p, _ := Build(beats(), nil)
	px := p.Project(600, 200)
	if px[0].X != 0 || px[len(px)-1].X != 600 {
		t.Fatalf("x endpoints=%v %v", px[0].X, px[len(px)-1].X)
	}
	for i := 1; i < len(px); i++ {
		if px[i].X < px[i-1].X {
			t.Fatalf("x decreases at %d", i)
		}
	}
	if px[2].Y != 0 || px[3].Y != 200 {
		t.Fatalf("y mapping: %v", px)
	}

	single, _ := Build([]timeline.IntensityPoint{{Timecode: "10:00", Intensity: 50}}, nil)
	got := single.Project(600, 200)
	if math.IsNaN(got[0].X) || got[0].X != 300 || got[0].Y != 100 {
		t.Fatalf("single point=%+v", got[0])
	}
}

func TestNearestAndTooltip(t *testing.T) {
	p, _ := Build(beats(), nil)
	if got := p.Nearest(590, 600); got != 3 {
		t.Fatalf("nearest=%d", got)
	}
	if got := (Plot{}).Nearest(10, 600); got != -1 {
		t.Fatalf("empty nearest=%d", got)
	}
	// the clamped 100-intensity point sits on the top edge
	pos, ok := p.Tooltip(2, 600, 200, tooltip.Size{W: 160, H: 48}, 8)
	if !ok || pos.Y != 0 {
		t.Fatalf("tooltip=%+v ok=%v", pos, ok)
	}
	if _, ok := p.Tooltip(9, 600, 200, tooltip.Size{}, 0); ok {
		t.Fatal("out-of-range tooltip")
	}
	peak, _ := p.Peak()
	if peak.Label != "Siege" {
		t.Fatalf("peak=%+v", peak)
	}
}
