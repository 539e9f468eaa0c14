package terrain

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fixedSource returns the same gaussian sample every time and a fixed column.
type fixedSource struct {
	gauss  float64
	column int
}

func (f fixedSource) NormFloat64() float64 { return f.gauss }
func (f fixedSource) IntN(n int) int       { return f.column % n }

func hasFlatRun(heights []int, minLen int) bool {
	run := 1
	for i := 1; i < len(heights); i++ {
		if heights[i] == heights[i-1] {
			run++
			if run >= minLen {
				return true
			}
		} else {
			run = 1
		}
	}
	return minLen <= 1
}

func TestGenerate_LandingZoneInvariant(t *testing.T) {
	sizes := []struct {
		width     int
		maxHeight int
	}{
		{3, 0}, {3, 100}, {10, 50}, {50, 300}, {51, 200}, {120, 1000},
	}

	for _, size := range sizes {
		for seed := uint64(0); seed < 200; seed++ {
			tr, err := Generate(size.width, size.maxHeight, DefaultSpacing, DefaultNoise, newSource(seed))
			if err != nil {
				t.Fatalf("Generate(%d, %d) failed: %v", size.width, size.maxHeight, err)
			}
			if len(tr.Heights) != size.width {
				t.Fatalf("expected %d columns, got %d", size.width, len(tr.Heights))
			}
			if !hasFlatRun(tr.Heights, 3) {
				t.Fatalf("seed %d width %d: no flat run in %v", seed, size.width, tr.Heights)
			}
			g := tr.LandingZone
			if g < 1 || g > size.width-2 {
				t.Fatalf("landing zone %d not interior", g)
			}
			if tr.Heights[g-1] != tr.Heights[g] || tr.Heights[g+1] != tr.Heights[g] {
				t.Fatalf("landing zone %d not flat: %v", g, tr.Heights[g-1:g+2])
			}
		}
	}
}

func TestGenerate_SlopesMatchHeights(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		tr, err := Generate(50, 300, DefaultSpacing, DefaultNoise, newSource(seed))
		if err != nil {
			t.Fatal(err)
		}
		if len(tr.Slopes) != len(tr.Heights)-1 {
			t.Fatalf("expected %d slopes, got %d", len(tr.Heights)-1, len(tr.Slopes))
		}
		for i, s := range tr.Slopes {
			if s != tr.Heights[i+1]-tr.Heights[i] {
				t.Errorf("slope[%d] = %d, expected %d", i, s, tr.Heights[i+1]-tr.Heights[i])
			}
		}
	}
}

func TestGenerate_HeightsClamped(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		tr, err := Generate(80, 150, DefaultSpacing, DefaultNoise, newSource(seed))
		if err != nil {
			t.Fatal(err)
		}
		for i, h := range tr.Heights {
			if h < 0 || h > 150 {
				t.Errorf("height[%d] = %d outside [0, 150]", i, h)
			}
		}
	}
}

func TestGenerate_ParabolicShape(t *testing.T) {
	// gauss == offset removes the noise entirely.
	tr, err := Generate(10, 100, DefaultSpacing, DefaultNoise, fixedSource{gauss: 0.5, column: 7})
	if err != nil {
		t.Fatal(err)
	}

	// i = -5..4, h = 100 - i*i/2 rounded half away from zero.
	expected := []int{88, 92, 96, 98, 100, 100, 100, 96, 96, 96}
	for i, h := range tr.Heights {
		if h != expected[i] {
			t.Errorf("height[%d] = %d, expected %d", i, h, expected[i])
		}
	}
	if tr.LandingZone != 8 {
		t.Errorf("LandingZone = %d, expected 8", tr.LandingZone)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		maxHeight int
		spacing   float64
		src       Source
		want      error
	}{
		{"too_narrow", 2, 100, DefaultSpacing, newSource(1), ErrInvalidDimensions},
		{"negative_height", 10, -1, DefaultSpacing, newSource(1), ErrInvalidDimensions},
		{"zero_spacing", 10, 100, 0, newSource(1), ErrInvalidDimensions},
		{"nil_source", 10, 100, DefaultSpacing, nil, ErrNilSource},
		{"typed_nil_source", 10, 100, DefaultSpacing, (*rand.Rand)(nil), ErrNilSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.width, tt.maxHeight, tt.spacing, DefaultNoise, tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerate_FreshIdentity(t *testing.T) {
	a, _ := Generate(20, 100, DefaultSpacing, DefaultNoise, newSource(3))
	b, _ := Generate(20, 100, DefaultSpacing, DefaultNoise, newSource(3))
	if a.ID() == b.ID() {
		t.Errorf("expected distinct identities, both %d", a.ID())
	}
}

func TestTerrain_ColumnMapping(t *testing.T) {
	tr := FromHeights(make([]int, 50), 8, 25, 0)

	tests := []struct {
		name   string
		x      float64
		column int
	}{
		{"origin", 0, 25},
		{"just_left_of_origin", -0.1, 24},
		{"first_column", -200, 0},
		{"left_of_map", -200.5, -1},
		{"last_column", 192, 49},
		{"right_of_map", 200, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ColumnAt(tt.x); got != tt.column {
				t.Errorf("ColumnAt(%v) = %d, expected %d", tt.x, got, tt.column)
			}
		})
	}

	for i := 0; i < tr.Width(); i++ {
		if got := tr.ColumnAt(tr.ColumnX(i)); got != i {
			t.Errorf("ColumnAt(ColumnX(%d)) = %d", i, got)
		}
	}
}

func TestTerrain_SlopeAtFailsClosed(t *testing.T) {
	tr := FromHeights([]int{1, 3, 3, 0}, 8, 1, 3)

	for _, i := range []int{-1, 3, 4, 100} {
		if _, ok := tr.SlopeAt(i); ok {
			t.Errorf("SlopeAt(%d) should have no data", i)
		}
	}
	if s, ok := tr.SlopeAt(2); !ok || s != -3 {
		t.Errorf("SlopeAt(2) = %d, %v; expected -3, true", s, ok)
	}
}

func TestTerrain_Edges(t *testing.T) {
	tr := FromHeights([]int{0, 10, 20}, 8, 1, 20)
	edges := tr.Edges()
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if edges[0].A.X != -8 || edges[0].A.Y != 0 || edges[1].B.X != 8 || edges[1].B.Y != 20 {
		t.Errorf("unexpected edges %v", edges)
	}

	base := Baseline(50, 1e6)
	if base.A.Y != -50 || base.B.Y != -50 || base.A.X != -1e6 || base.B.X != 1e6 {
		t.Errorf("unexpected baseline %v", base)
	}
}

func TestTerrain_FlatRuns(t *testing.T) {
	tr := FromHeights([]int{0, 0, 0, 0, 5, 6, 6, 6, 2, 2}, 8, 6, 6)

	runs := tr.FlatRuns(3)
	expected := []Run{{Start: 0, End: 3, Height: 0}, {Start: 5, End: 7, Height: 6}}
	if len(runs) != len(expected) {
		t.Fatalf("FlatRuns(3) = %v, expected %v", runs, expected)
	}
	for i := range runs {
		if runs[i] != expected[i] {
			t.Errorf("run %d = %v, expected %v", i, runs[i], expected[i])
		}
	}
	if got := tr.CenterX(runs[1]); got != 8 {
		t.Errorf("CenterX = %v, expected 8", got)
	}
	if got := len(tr.FlatRuns(2)); got != 3 {
		t.Errorf("FlatRuns(2) found %d runs, expected 3", got)
	}
}
