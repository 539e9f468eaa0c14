// Package autopilot flies the lander onto the terrain's landing zone using
// only what a snapshot exposes. It is used by the headless driver and by
// tests that need complete flights.
package autopilot

import (
	"math"

	"github.com/opd-ai/go-lander/pkg/engine"
)

// Pilot is a feedback controller. Velocities are in world units per
// millisecond, angles in radians.
type Pilot struct {
	// Cruise: hold Clearance above the ground below while drifting toward
	// the zone at up to MaxDrift.
	Clearance float64
	Lookahead float64 // extra ground scanned either side of the hull
	DriftGain float64
	MaxDrift  float64
	MaxClimb  float64

	// Descent starts once the ship is within Window of the zone centre and
	// pauses (hover) while it is within HoverRange but outside Window.
	Window      float64
	HoverRange  float64
	DescentGain float64
	MinDescent  float64
	MaxDescent  float64

	// Attitude
	TiltGain      float64
	MaxTilt       float64
	FinalAltitude float64 // below this height above the zone tilt is capped at FinalTilt
	FinalTilt     float64
	TurnGain      float64
	MaxTurnRate   float64
	TurnDeadband  float64
}

// New returns a pilot tuned for the default ship and terrain
func New() *Pilot {
	return &Pilot{
		Clearance: 30,
		Lookahead: 24,
		DriftGain: 0.005,
		MaxDrift:  0.08,
		MaxClimb:  0.05,

		Window:      2,
		HoverRange:  8,
		DescentGain: 0.002,
		MinDescent:  0.015,
		MaxDescent:  0.12,

		TiltGain:      25,
		MaxTilt:       0.35,
		FinalAltitude: 15,
		FinalTilt:     0.06,
		TurnGain:      1.0 / 40,
		MaxTurnRate:   0.003,
		TurnDeadband:  0.0008,
	}
}

// Controls implements engine.ControlSource
func (p *Pilot) Controls(snap engine.Snapshot) engine.Controls {
	ship, ground := snap.Ship, snap.Terrain
	if len(ground.Heights) == 0 || snap.State.Terminal() {
		return engine.Controls{}
	}

	dx := ground.ColumnX(ground.LandingZone) - ship.Position.X
	bottom := ship.Position.Y - ship.Size.Y/2
	halfWidth := ship.Size.X / 2
	altitude := bottom - highest(ground, ship.Position.X-halfWidth-p.Lookahead, ship.Position.X+halfWidth+p.Lookahead)
	zoneAltitude := bottom - float64(ground.Heights[ground.LandingZone])
	near := math.Abs(dx) < p.HoverRange

	var wantVY float64
	switch {
	case math.Abs(dx) < p.Window:
		wantVY = -clampRange(zoneAltitude*p.DescentGain, p.MinDescent, p.MaxDescent)
	case near:
		wantVY = 0
	default:
		wantVY = clamp((p.Clearance-altitude)*p.DescentGain, p.MaxClimb)
	}

	// Thrust along a heading tilted by -theta pushes toward +X.
	wantVX := clamp(dx*p.DriftGain, p.MaxDrift)
	tilt := -clamp((wantVX-ship.Velocity.X)*p.TiltGain, p.MaxTilt)
	if near && zoneAltitude < p.FinalAltitude {
		tilt = clamp(tilt, p.FinalTilt)
	}
	wantSpin := clamp((tilt-ship.Angle)*p.TurnGain, p.MaxTurnRate)

	return engine.Controls{
		Left:   ship.AngularVelocity < wantSpin-p.TurnDeadband,
		Right:  ship.AngularVelocity > wantSpin+p.TurnDeadband,
		Thrust: ship.Velocity.Y < wantVY,
	}
}

// highest returns the tallest column whose edge lies between left and right
func highest(t engine.TerrainState, left, right float64) float64 {
	lo := max(0, t.ColumnAt(left))
	hi := min(len(t.Heights)-1, t.ColumnAt(right)+1)
	top := 0
	for i := lo; i <= hi; i++ {
		top = max(top, t.Heights[i])
	}
	return float64(top)
}

func clamp(v, limit float64) float64 {
	return clampRange(v, -limit, limit)
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
