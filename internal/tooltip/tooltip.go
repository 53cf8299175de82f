// Package tooltip places info popups next to a hovered or focused anchor.
package tooltip

// Point is a pixel position relative to the container's top-left corner.
type Point struct {
	X, Y float64
}

// Size is a tooltip's pixel dimensions.
type Size struct {
	W, H float64
}

// Position returns the top-left corner of a tooltip of size s anchored at
// anchor inside a container containerWidth pixels wide.
//
// The tooltip sits above the anchor, margin pixels away, horizontally
// centered on it. A tooltip that would clip above the container is pinned
// to the top edge rather than flipped below the anchor, so for anchors near
// the top it may cover the anchor. Horizontally it never leaves the
// container; one wider than the container is pinned to the left edge.
func Position(anchor Point, containerWidth float64, s Size, margin float64) Point {
	top := anchor.Y - s.H - margin
	if top < 0 {
		top = 0
	}

	left := anchor.X - s.W/2
	if maxLeft := containerWidth - s.W; left > maxLeft {
		left = maxLeft
	}
	if left < 0 {
		left = 0
	}
	return Point{X: left, Y: top}
}

// Overlaps reports whether a tooltip placed at p with size s covers anchor.
func Overlaps(p Point, s Size, anchor Point) bool {
	return anchor.X >= p.X && anchor.X <= p.X+s.W && anchor.Y >= p.Y && anchor.Y <= p.Y+s.H
}
