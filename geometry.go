package taproot

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Track divides a rectangle into equal-height lanes stacked top to bottom:
// a timeline with rows, a list, a keyboard of key strips. Consumers feed tap
// coordinates into a Track to decide what was hit. A Track holds no state;
// every method is pure arithmetic.
type Track struct {
	Bounds Rect
	Lanes  int
}

// LaneAt returns the index of the lane containing (x, y) and whether the
// point lies inside the track at all. The bottom edge belongs to the last
// lane.
func (t Track) LaneAt(x, y float64) (int, bool) {
	if t.Lanes <= 0 || !t.Bounds.Contains(x, y) {
		return 0, false
	}
	lane := int((y - t.Bounds.Y) / t.laneHeight())
	if lane >= t.Lanes {
		lane = t.Lanes - 1
	}
	return lane, true
}

// LaneRect returns the bounds of lane index i.
// Panics if i is out of range.
func (t Track) LaneRect(i int) Rect {
	if i < 0 || i >= t.Lanes {
		panic("taproot: lane index out of range")
	}
	h := t.laneHeight()
	return Rect{
		X:      t.Bounds.X,
		Y:      t.Bounds.Y + float64(i)*h,
		Width:  t.Bounds.Width,
		Height: h,
	}
}

// Fraction returns how far x sits along the track's width, clamped to [0, 1].
// A zero-width track reports 0.
func (t Track) Fraction(x float64) float64 {
	if t.Bounds.Width <= 0 {
		return 0
	}
	f := (x - t.Bounds.X) / t.Bounds.Width
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (t Track) laneHeight() float64 {
	return t.Bounds.Height / float64(t.Lanes)
}
