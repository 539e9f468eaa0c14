package landing

import (
	"math"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/terrain"
)

// Criteria are the tolerances a touchdown must meet
type Criteria struct {
	MaxVelocity float64 // exclusive
	MaxRotation float64 // radians, inclusive
	MaxSlope    int     // exclusive, per column
}

// DefaultCriteria returns the arcade tolerances
func DefaultCriteria() Criteria {
	return Criteria{
		MaxVelocity: 0.05,
		MaxRotation: 0.1,
		MaxSlope:    2,
	}
}

// Predicate names one landing check
type Predicate string

// Landing checks, in the order Failures reports them
const (
	PredicateVelocity Predicate = "velocity" // speed below MaxVelocity
	PredicateRotation Predicate = "rotation" // hull within MaxRotation of upright
	PredicateTerrain  Predicate = "terrain"  // every footprint column gentler than MaxSlope
)

// Report is the outcome of the landing checks at the moment of contact
type Report struct {
	VelocityOK bool
	RotationOK bool
	TerrainOK  bool

	Speed       float64
	Angle       float64
	FirstColumn int
	LastColumn  int
	Contact     Contact
}

// Landed reports whether every check passed
func (r Report) Landed() bool {
	return r.VelocityOK && r.RotationOK && r.TerrainOK
}

// Failures lists the checks that did not pass
func (r Report) Failures() []Predicate {
	var failed []Predicate
	if !r.VelocityOK {
		failed = append(failed, PredicateVelocity)
	}
	if !r.RotationOK {
		failed = append(failed, PredicateRotation)
	}
	if !r.TerrainOK {
		failed = append(failed, PredicateTerrain)
	}
	return failed
}

// Evaluate runs the three landing checks against the ship's current state
func Evaluate(ship *entity.Ship, t *terrain.Terrain, contact Contact, c Criteria) Report {
	r := Report{
		Speed:   ship.Velocity().Length(),
		Angle:   ship.Angle(),
		Contact: contact,
	}

	r.VelocityOK = r.Speed < c.MaxVelocity
	r.RotationOK = math.Abs(math.Mod(r.Angle, 2*math.Pi)) <= c.MaxRotation

	left, right := ship.Footprint()
	r.FirstColumn = t.ColumnAt(left)
	r.LastColumn = t.ColumnAt(right)
	r.TerrainOK = !contact.Baseline && flatUnder(t, r.FirstColumn, r.LastColumn, c.MaxSlope)

	return r
}

// flatUnder reports whether every column in [first, last] has a gentle slope.
// Columns without slope data are never flat.
func flatUnder(t *terrain.Terrain, first, last, maxSlope int) bool {
	for i := first; i <= last; i++ {
		slope, ok := t.SlopeAt(i)
		if !ok || abs(slope) >= maxSlope {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
