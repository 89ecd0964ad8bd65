// Package geom holds the small amount of rectangle and linear-mapping math shared
// by the floating overlays (context menu placement, scrollbar thumb maths).
//
// All coordinates are terminal cells. Functions are pure and never panic.
package geom

import "math"

// Point is a cell coordinate.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in cells.
type Size struct {
	W int
	H int
}

// Rect is an axis-aligned rectangle. Containment is half-open: the right and
// bottom edges are exclusive.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Clamp limits v to [lo, hi]. When the range is empty (hi < lo) lo wins, so a
// box larger than its container is pinned to the leading edge.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampFloat is Clamp for float64 values.
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// MapLinear maps v from a span of fromSpan onto a span of toSpan.
// Returns 0 when fromSpan is not positive.
func MapLinear(v, fromSpan, toSpan float64) float64 {
	if fromSpan <= 0 {
		return 0
	}
	return v / fromSpan * toSpan
}

// Round rounds half away from zero and converts to int.
func Round(v float64) int {
	return int(math.Round(v))
}

// PlaceFloating resolves the on-screen origin of a floating box anchored at a
// point. The box flips to the other side of the anchor on any axis where it
// would overflow the viewport (padding included), then both axes are clamped
// into [padding, viewport-box-padding] so the box stays fully visible.
func PlaceFloating(anchor Point, box Size, viewport Size, padding int) Point {
	x, y := anchor.X, anchor.Y

	if anchor.X+box.W+padding > viewport.W {
		x = anchor.X - box.W
	}
	if anchor.Y+box.H+padding > viewport.H {
		y = anchor.Y - box.H
	}

	maxX := viewport.W - box.W - padding
	maxY := viewport.H - box.H - padding

	return Point{
		X: Clamp(x, padding, maxX),
		Y: Clamp(y, padding, maxY),
	}
}
