// pkg/engine/state.go
package engine

import (
	"math"

	"github.com/opd-ai/go-lander/pkg/landing"
	"github.com/opd-ai/go-lander/pkg/physics"
)

// Snapshot represents a copy of the session state for presentation layers
type Snapshot struct {
	SessionID string              `json:"sessionId"`
	Tick      uint64              `json:"tick"`
	State     landing.FlightState `json:"state"`
	Failures  []string            `json:"failures,omitempty"`
	Ship      ShipState           `json:"ship"`
	Terrain   TerrainState        `json:"terrain"`
}

// ShipState represents a snapshot of the ship's kinematics
type ShipState struct {
	ID              uint64           `json:"id"`
	Position        physics.Vector2D `json:"position"`
	Velocity        physics.Vector2D `json:"velocity"`
	Angle           float64          `json:"angle"`
	AngularVelocity float64          `json:"angularVelocity"`
	Size            physics.Vector2D `json:"size"`
}

// TerrainState represents a snapshot of the terrain profile
type TerrainState struct {
	ID          uint64  `json:"id"`
	Heights     []int   `json:"heights"`
	Spacing     float64 `json:"spacing"`
	LandingZone int     `json:"landingZone"`
}

// ColumnX maps a column index to world X, matching terrain.Terrain.ColumnX
func (t TerrainState) ColumnX(i int) float64 {
	return t.Spacing * float64(i-len(t.Heights)/2)
}

// ColumnAt maps world X to the column whose span contains it
func (t TerrainState) ColumnAt(x float64) int {
	return int(math.Floor(x/t.Spacing + float64(len(t.Heights)/2)))
}

// Snapshot returns a copy of the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	heights := make([]int, len(s.terrain.Heights))
	copy(heights, s.terrain.Heights)

	snap := Snapshot{
		SessionID: s.sessionID,
		Tick:      s.tick,
		State:     s.machine.State(),
		Ship: ShipState{
			ID:              s.ship.ID(),
			Position:        s.ship.Position(),
			Velocity:        s.ship.Velocity(),
			Angle:           s.ship.Angle(),
			AngularVelocity: s.ship.AngularVelocity(),
			Size:            s.ship.Size,
		},
		Terrain: TerrainState{
			ID:          s.terrain.ID(),
			Heights:     heights,
			Spacing:     s.terrain.Spacing,
			LandingZone: s.terrain.LandingZone,
		},
	}
	if snap.State.Terminal() {
		snap.Failures = failureNames(s.machine.Report())
	}
	return snap
}
