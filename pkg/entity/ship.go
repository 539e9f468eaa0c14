// pkg/entity/ship.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// ShipStats holds the tuning constants a ship flies with. Accelerations are
// per time unit and are multiplied by the elapsed time when applied.
type ShipStats struct {
	Gravity          float64
	TurnAcceleration float64
	Thrust           float64
	Friction         float64
	TurnFriction     float64
}

// DefaultShipStats returns the arcade tuning, with time measured in milliseconds.
func DefaultShipStats() ShipStats {
	return ShipStats{
		Gravity:          0.0004,
		TurnAcceleration: 0.0001,
		Thrust:           0.002,
		Friction:         physics.DefaultFriction,
		TurnFriction:     physics.DefaultFriction,
	}
}

// Ship is the lander: a rectangle whose position and rotation are
// integrated independently.
type Ship struct {
	ecs.BasicEntity

	Body     physics.Body[physics.Vector2D]
	Rotation physics.Body[physics.Scalar]
	Size     physics.Vector2D
	Stats    ShipStats
}

// NewShip creates an upright ship at rest at position
func NewShip(position, size physics.Vector2D, stats ShipStats) *Ship {
	return &Ship{
		BasicEntity: ecs.NewBasic(),
		Body:        physics.NewBody(position, stats.Friction),
		Rotation:    physics.NewBody(physics.Scalar(0), stats.TurnFriction),
		Size:        size,
		Stats:       stats,
	}
}

// Step handles the ship's state update for a single tick. Gravity joins
// whatever thrust was applied this tick before the body integrates.
func (s *Ship) Step(dt float64) {
	s.Body.Accelerate(physics.Vector2D{Y: -s.Stats.Gravity * dt})
	s.Body.Step(dt)
	s.Rotation.Step(dt)
}

// RotateLeft sets a counter-clockwise turning acceleration for this tick
func (s *Ship) RotateLeft(dt float64) {
	s.Rotation.SetAcceleration(physics.Scalar(s.Stats.TurnAcceleration * dt))
}

// RotateRight sets a clockwise turning acceleration for this tick
func (s *Ship) RotateRight(dt float64) {
	s.Rotation.SetAcceleration(physics.Scalar(-s.Stats.TurnAcceleration * dt))
}

// ThrustUp fires the main engine along the ship's current heading
func (s *Ship) ThrustUp(dt float64) {
	thrust := physics.Vector2D{Y: s.Stats.Thrust * dt}
	s.Body.Accelerate(thrust.Rotate(s.Angle()))
}

// Position returns the centre of the ship
func (s *Ship) Position() physics.Vector2D {
	return s.Body.Position
}

// Velocity returns the ship's linear velocity
func (s *Ship) Velocity() physics.Vector2D {
	return s.Body.Velocity
}

// Angle returns the rotation in radians, zero being upright
func (s *Ship) Angle() float64 {
	return float64(s.Rotation.Position)
}

// AngularVelocity returns the rotation rate in radians per time unit
func (s *Ship) AngularVelocity() float64 {
	return float64(s.Rotation.Velocity)
}

// Outline returns the ship's hull as a rotated rectangle in world space
func (s *Ship) Outline() physics.Rect {
	return physics.Rect{
		Center:   s.Body.Position,
		Width:    s.Size.X,
		Height:   s.Size.Y,
		Rotation: s.Angle(),
	}
}

// Footprint returns the horizontal extent of the ship's width around its centre
func (s *Ship) Footprint() (left, right float64) {
	x := s.Body.Position.X
	return x - s.Size.X/2, x + s.Size.X/2
}
