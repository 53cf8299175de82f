package layout

import "sort"

// Stagger assigns a vertical tier to each label anchor (pixels) so that a
// label closer than minSpacing to its predecessor lands on a different
// tier than that predecessor.
//
// Anchors are processed in position order and compared only with the
// immediately preceding anchor: a greedy single pass, not a global
// label-placement solver. Two labels two places apart may still share a
// tier and overlap when three or more crowd together and tiers run out.
// The result is indexed like the input.
func Stagger(anchors []float64, minSpacing float64, tiers int) []int {
	return StaggerFixed(anchors, nil, minSpacing, tiers)
}

// StaggerFixed is Stagger with some tiers decided up front: fixed[i] > 0
// pins anchor i to that tier. Every other anchor is compared with the tier
// its predecessor actually got, pinned or not, and when the next anchor is
// pinned close by, the computed tier also steps around that pin if a free
// tier remains. fixed may be nil or shorter than anchors.
func StaggerFixed(anchors []float64, fixed []int, minSpacing float64, tiers int) []int {
	levels := make([]int, len(anchors))
	pinned := func(i int) (int, bool) {
		if i < len(fixed) && fixed[i] > 0 {
			return fixed[i], true
		}
		return 0, false
	}
	for i := range levels {
		levels[i], _ = pinned(i)
	}
	if len(anchors) < 2 || tiers < 2 {
		return levels
	}

	order := make([]int, len(anchors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return anchors[order[a]] < anchors[order[b]]
	})

	for k := 1; k < len(order); k++ {
		prev, cur := order[k-1], order[k]
		if _, ok := pinned(cur); ok {
			continue
		}
		if anchors[cur]-anchors[prev] >= minSpacing {
			continue
		}
		level := (levels[prev] + 1) % tiers
		if k+1 < len(order) {
			next := order[k+1]
			if pin, ok := pinned(next); ok && pin == level && anchors[next]-anchors[cur] < minSpacing {
				if alt := (level + 1) % tiers; alt != levels[prev] {
					level = alt
				}
			}
		}
		levels[cur] = level
	}
	return levels
}
