// Package physics provides collision detection and clamping utilities.
package physics

// Box is an axis-aligned bounding box with its top-left corner at (X, Y).
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Top returns the y coordinate of the top edge.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Overlap reports whether two boxes intersect. All four comparisons are
// strict, so boxes that only share an edge do not overlap.
func Overlap(a, b Box) bool {
	return a.Left() < b.Right() &&
		a.Right() > b.Left() &&
		a.Top() < b.Bottom() &&
		a.Bottom() > b.Top()
}

// Clamp limits v to the range [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
