package toc

import "testing"

func essay() []Heading {
	return []Heading{
		{ID: "score", Top: 2400},
		{ID: "intro", Top: 0},
		{ID: "plot", Top: 900},
		{ID: "cast", Top: 1600},
	}
}

func TestObserveActiveHeading(t *testing.T) {
	tr := New(essay(), 0)
	cases := []struct {
		scroll float64
		want   string
	}{
		{0, "intro"},
		{700, "intro"},
		{740, "plot"},
		{1500, "cast"},
		{5000, "score"},
	}
	for _, c := range cases {
		if got := tr.Observe(c.scroll, 800); got != c.want {
			t.Errorf("scroll %v: active=%q want %q", c.scroll, got, c.want)
		}
	}
}

func TestFirstHeadingActiveBeforeReached(t *testing.T) {
	tr := New([]Heading{{ID: "a", Top: 500}, {ID: "b", Top: 900}}, 0.1)
	if got := tr.Observe(0, 800); got != "a" {
		t.Fatalf("active=%q", got)
	}
	if got := New(nil, 0).Observe(0, 800); got != "" {
		t.Fatalf("empty tracker active=%q", got)
	}
}

func TestOnChangeFiresOnlyOnChange(t *testing.T) {
	tr := New(essay(), 0)
	var changes [][2]string
	tr.OnChange(func(prev, next string) { changes = append(changes, [2]string{prev, next}) })
	for _, s := range []float64{0, 10, 20, 800, 810, 0} {
		tr.Observe(s, 800)
	}
	want := [][2]string{{"", "intro"}, {"intro", "plot"}, {"plot", "intro"}}
	if len(changes) != len(want) {
		t.Fatalf("changes=%v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes=%v want %v", changes, want)
		}
	}
	if tr.Active() != "intro" {
		t.Fatalf("active=%q", tr.Active())
	}
}
