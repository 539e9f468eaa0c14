// pkg/physics/collision.go
package physics

import "math"

// boundsTolerance absorbs rounding when an intersection lands exactly on an
// endpoint of an axis-aligned segment.
const boundsTolerance = 1e-9

// Segment is a line segment from A to B
type Segment struct {
	A Vector2D
	B Vector2D
}

// Bounds returns the axis-aligned bounding box of the segment
func (s Segment) Bounds() Bounds {
	return Bounds{
		Min: Vector2D{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)},
		Max: Vector2D{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)},
	}
}

// line returns the coefficients of the segment's line in ax + by = c form.
func (s Segment) line() (a, b, c float64) {
	a = s.B.Y - s.A.Y
	b = s.A.X - s.B.X
	c = a*s.A.X + b*s.A.Y
	return a, b, c
}

// Intersect reports whether segments ab and cd cross, and where.
//
// Parallel lines, collinear overlaps included, never intersect. A solved
// point counts only if it lies inside both segments' bounding boxes
// (edges inclusive).
func Intersect(ab, cd Segment) (Vector2D, bool) {
	a1, b1, c1 := ab.line()
	a2, b2, c2 := cd.line()

	det := a1*b2 - a2*b1
	if det == 0 {
		return Vector2D{}, false
	}

	p := Vector2D{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}
	if !ab.Bounds().Contains(p) || !cd.Bounds().Contains(p) {
		return Vector2D{}, false
	}
	return p, true
}

// Intersects is Intersect without the point
func Intersects(ab, cd Segment) bool {
	_, ok := Intersect(ab, cd)
	return ok
}

// Bounds is an axis-aligned box, edges inclusive
type Bounds struct {
	Min Vector2D
	Max Vector2D
}

// Contains reports whether point lies in the box
func (r Bounds) Contains(point Vector2D) bool {
	return point.X >= r.Min.X-boundsTolerance &&
		point.X <= r.Max.X+boundsTolerance &&
		point.Y >= r.Min.Y-boundsTolerance &&
		point.Y <= r.Max.Y+boundsTolerance
}

// Overlaps reports whether two boxes share any point
func (r Bounds) Overlaps(other Bounds) bool {
	return !(other.Min.X > r.Max.X+boundsTolerance ||
		other.Max.X < r.Min.X-boundsTolerance ||
		other.Min.Y > r.Max.Y+boundsTolerance ||
		other.Max.Y < r.Min.Y-boundsTolerance)
}

// Union returns the smallest box containing both r and other
func (r Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Min: Vector2D{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Vector2D{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Rect represents a rectangle centred on Center and rotated by Rotation radians
type Rect struct {
	Center   Vector2D
	Width    float64
	Height   float64
	Rotation float64
}

// Corners returns the four corners in world space, counter-clockwise from
// the bottom left of the unrotated rectangle.
func (r Rect) Corners() [4]Vector2D {
	hw, hh := r.Width/2, r.Height/2
	local := [4]Vector2D{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}

	var corners [4]Vector2D
	for i, c := range local {
		corners[i] = c.Rotate(r.Rotation).Add(r.Center)
	}
	return corners
}

// Edges returns the closed outline of the rectangle
func (r Rect) Edges() [4]Segment {
	c := r.Corners()
	return [4]Segment{
		{A: c[0], B: c[1]},
		{A: c[1], B: c[2]},
		{A: c[2], B: c[3]},
		{A: c[3], B: c[0]},
	}
}

// Bounds returns the axis-aligned box around the rotated rectangle
func (r Rect) Bounds() Bounds {
	c := r.Corners()
	b := Segment{A: c[0], B: c[1]}.Bounds()
	return b.Union(Segment{A: c[2], B: c[3]}.Bounds())
}
