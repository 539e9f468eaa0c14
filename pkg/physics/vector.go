// Package physics holds the lander's numeric core: vector algebra, the
// generic integrator and exact segment geometry.
package physics

import "math"

// Linear is what Body needs from the quantity it integrates.
type Linear[T any] interface {
	Add(other T) T
	Scale(factor float64) T
}

// Vector2D is a point or direction in world space. Y grows upward.
type Vector2D struct {
	X, Y float64
}

// Add returns v + o
func (v Vector2D) Add(o Vector2D) Vector2D { return Vector2D{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vector2D) Sub(o Vector2D) Vector2D { return Vector2D{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by k
func (v Vector2D) Scale(k float64) Vector2D { return Vector2D{v.X * k, v.Y * k} }

// Dot returns the dot product of v and o
func (v Vector2D) Dot(o Vector2D) float64 { return v.X*o.X + v.Y*o.Y }

// Length is the Euclidean norm
func (v Vector2D) Length() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v counter-clockwise by angle radians about the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	s, c := math.Sincos(angle)
	return Vector2D{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Scalar lets one-dimensional quantities such as the hull angle share the
// Body integrator with positions.
type Scalar float64

// Add returns s + o
func (s Scalar) Add(o Scalar) Scalar { return s + o }

// Scale returns s multiplied by k
func (s Scalar) Scale(k float64) Scalar { return Scalar(float64(s) * k) }

// Abs returns |s|
func (s Scalar) Abs() float64 { return math.Abs(float64(s)) }
