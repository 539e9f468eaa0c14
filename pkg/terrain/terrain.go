// Package terrain generates the height profile the lander flies over and
// answers the column and slope queries used for collision and landing checks.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// DefaultSpacing is the world distance between adjacent columns.
const DefaultSpacing = 8

var (
	// ErrInvalidDimensions is returned for terrain too narrow to hold a landing zone.
	ErrInvalidDimensions = errors.New("invalid terrain dimensions")
	// ErrNilSource is returned when no random source is supplied.
	ErrNilSource = errors.New("nil random source")
)

// Source is the randomness terrain generation consumes. *rand.Rand from
// math/rand/v2 satisfies it. Nil sources, typed or not, are rejected.
type Source interface {
	NormFloat64() float64
	IntN(n int) int
}

// Noise controls the roughness added on top of the parabolic base shape.
type Noise struct {
	Scale  float64
	Offset float64
}

// DefaultNoise matches the arcade tuning: (gauss - 0.5) * 10.
var DefaultNoise = Noise{Scale: 10, Offset: 0.5}

// Terrain is an immutable height profile.
type Terrain struct {
	ecs.BasicEntity

	Heights     []int
	Slopes      []int
	Spacing     float64
	LandingZone int // centre column of the forced flat run
	MaxHeight   int
}

// Generate builds a terrain of width columns no taller than maxHeight.
//
// The profile is a parabola peaking at the centre with Gaussian roughness.
// One random interior column g is then chosen and its neighbours levelled to
// its height, so a three-column flat run always exists.
func Generate(width, maxHeight int, spacing float64, noise Noise, src Source) (*Terrain, error) {
	if width < 3 || maxHeight < 0 {
		return nil, fmt.Errorf("%w: width=%d maxHeight=%d", ErrInvalidDimensions, width, maxHeight)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing=%v", ErrInvalidDimensions, spacing)
	}
	if isNil(src) {
		return nil, ErrNilSource
	}

	heights := make([]int, width)
	for k := range heights {
		i := float64(k - width/2)
		n := (src.NormFloat64() - noise.Offset) * noise.Scale
		h := math.Round(float64(maxHeight) - i*i/2 + n)
		heights[k] = int(math.Max(0, math.Min(float64(maxHeight), h)))
	}

	g := 1 + src.IntN(width-2)
	heights[g-1] = heights[g]
	heights[g+1] = heights[g]

	return FromHeights(heights, spacing, g, maxHeight), nil
}

// isNil catches typed nils such as a nil *rand.Rand stored in the interface.
func isNil(src Source) bool {
	if src == nil {
		return true
	}
	switch v := reflect.ValueOf(src); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// FromHeights wraps an existing profile, deriving its slopes. landingZone is
// recorded as given.
func FromHeights(heights []int, spacing float64, landingZone, maxHeight int) *Terrain {
	h := make([]int, len(heights))
	copy(h, heights)

	return &Terrain{
		BasicEntity: ecs.NewBasic(),
		Heights:     h,
		Slopes:      deriveSlopes(h),
		Spacing:     spacing,
		LandingZone: landingZone,
		MaxHeight:   maxHeight,
	}
}

func deriveSlopes(heights []int) []int {
	if len(heights) < 2 {
		return nil
	}
	slopes := make([]int, len(heights)-1)
	for i := range slopes {
		slopes[i] = heights[i+1] - heights[i]
	}
	return slopes
}

// Width returns the number of columns
func (t *Terrain) Width() int {
	return len(t.Heights)
}

// ColumnX maps a column index to its world X coordinate
func (t *Terrain) ColumnX(i int) float64 {
	return t.Spacing * float64(i-t.Width()/2)
}

// ColumnAt maps a world X coordinate to the column whose cell contains it.
// The result may lie outside [0, Width).
func (t *Terrain) ColumnAt(x float64) int {
	return int(math.Floor(x/t.Spacing + float64(t.Width()/2)))
}

// Point returns column i as a world-space vertex
func (t *Terrain) Point(i int) physics.Vector2D {
	return physics.Vector2D{X: t.ColumnX(i), Y: float64(t.Heights[i])}
}

// SlopeAt returns the slope between column i and i+1. ok is false when the
// column has no slope data.
func (t *Terrain) SlopeAt(i int) (slope int, ok bool) {
	if i < 0 || i >= len(t.Slopes) {
		return 0, false
	}
	return t.Slopes[i], true
}

// Edges returns the polyline through all columns
func (t *Terrain) Edges() []physics.Segment {
	if t.Width() < 2 {
		return nil
	}
	edges := make([]physics.Segment, t.Width()-1)
	for i := range edges {
		edges[i] = physics.Segment{A: t.Point(i), B: t.Point(i + 1)}
	}
	return edges
}

// Baseline returns the horizontal ground line depth units below zero
// spanning ±extent, which catches ships that leave the generated width.
func Baseline(depth, extent float64) physics.Segment {
	return physics.Segment{
		A: physics.Vector2D{X: -extent, Y: -depth},
		B: physics.Vector2D{X: extent, Y: -depth},
	}
}

// Run is a stretch of equal-height columns [Start, End]
type Run struct {
	Start  int
	End    int
	Height int
}

// Len returns the number of columns in the run
func (r Run) Len() int {
	return r.End - r.Start + 1
}

// CenterX returns the world X midway across the run
func (t *Terrain) CenterX(r Run) float64 {
	return (t.ColumnX(r.Start) + t.ColumnX(r.End)) / 2
}

// FlatRuns lists every run of at least minLen equal-height columns
func (t *Terrain) FlatRuns(minLen int) []Run {
	var runs []Run
	start := 0
	for i := 1; i <= t.Width(); i++ {
		if i < t.Width() && t.Heights[i] == t.Heights[start] {
			continue
		}
		if r := (Run{Start: start, End: i - 1, Height: t.Heights[start]}); r.Len() >= minLen {
			runs = append(runs, r)
		}
		start = i
	}
	return runs
}
