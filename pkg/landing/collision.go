// Package landing decides when the ship meets the ground and whether that
// meeting was a landing or a crash.
package landing

import (
	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/terrain"
)

// Contact describes a ship/ground intersection
type Contact struct {
	Hit      bool
	Baseline bool // the ship struck the ground line outside the terrain
	Point    physics.Vector2D
}

// Detector tests the ship outline against the terrain polyline and a
// far-reaching baseline.
type Detector struct {
	Baseline physics.Segment
}

// NewDetector places the baseline depth units below zero, extending ±extent
func NewDetector(depth, extent float64) Detector {
	return Detector{Baseline: terrain.Baseline(depth, extent)}
}

// Detect returns the first contact between any ship edge and any ground edge.
// Terrain edges are tested before the baseline.
func (d Detector) Detect(ship *entity.Ship, t *terrain.Terrain) Contact {
	outline := ship.Outline()
	hull := outline.Edges()
	reach := outline.Bounds()

	for _, ground := range t.Edges() {
		if !reach.Overlaps(ground.Bounds()) {
			continue
		}
		if p, ok := hitAny(hull, ground); ok {
			return Contact{Hit: true, Point: p}
		}
	}

	if p, ok := hitAny(hull, d.Baseline); ok {
		return Contact{Hit: true, Baseline: true, Point: p}
	}
	return Contact{}
}

// IntersectsTerrain reports whether the ship touches the ground anywhere
func (d Detector) IntersectsTerrain(ship *entity.Ship, t *terrain.Terrain) bool {
	return d.Detect(ship, t).Hit
}

func hitAny(hull [4]physics.Segment, ground physics.Segment) (physics.Vector2D, bool) {
	for _, edge := range hull {
		if p, ok := physics.Intersect(edge, ground); ok {
			return p, true
		}
	}
	return physics.Vector2D{}, false
}
