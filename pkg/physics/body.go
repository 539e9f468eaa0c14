package physics

import "math"

// DefaultFriction is the per-time-unit velocity retention used by the lander.
const DefaultFriction = 0.999

// Body integrates position, velocity and acceleration for any linear quantity.
//
// Acceleration is consumed by Step: owners must re-apply their forces every
// tick, so no force survives past the step it was applied in.
type Body[T Linear[T]] struct {
	Position     T
	Velocity     T
	Acceleration T
	Friction     float64 // velocity multiplier per time unit, < 1
}

// NewBody returns a body at rest at position.
func NewBody[T Linear[T]](position T, friction float64) Body[T] {
	return Body[T]{Position: position, Friction: friction}
}

// Accelerate adds a to the acceleration pending for the next Step.
func (b *Body[T]) Accelerate(a T) {
	b.Acceleration = b.Acceleration.Add(a)
}

// SetAcceleration replaces the pending acceleration.
func (b *Body[T]) SetAcceleration(a T) {
	b.Acceleration = a
}

// Step advances the body by dt time units.
func (b *Body[T]) Step(dt float64) {
	b.Velocity = b.Velocity.Add(b.Acceleration)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Velocity = b.Velocity.Scale(math.Pow(b.Friction, dt))

	var zero T
	b.Acceleration = zero
}
