// pkg/physics/collision_test.go
package physics

import (
	"math"
	"testing"
)

func seg(ax, ay, bx, by float64) Segment {
	return Segment{A: Vector2D{X: ax, Y: ay}, B: Vector2D{X: bx, Y: by}}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name     string
		ab       Segment
		cd       Segment
		expected bool
	}{
		{"crossing_diagonals", seg(0, 0, 2, 2), seg(0, 2, 2, 0), true},
		{"parallel_horizontal", seg(0, 0, 1, 0), seg(0, 1, 1, 1), false},
		{"collinear_overlap", seg(0, 0, 2, 0), seg(1, 0, 3, 0), false},
		{"lines_cross_outside_segments", seg(0, 0, 1, 1), seg(3, 0, 4, -1), false},
		{"t_junction_touching_endpoint", seg(0, 0, 2, 0), seg(1, 0, 1, 5), true},
		{"vertical_through_horizontal", seg(5, -1, 5, 1), seg(0, 0, 10, 0), true},
		{"shared_endpoint", seg(0, 0, 1, 1), seg(1, 1, 2, 0), true},
		{"disjoint", seg(0, 0, 1, 0), seg(5, 5, 6, 7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.ab, tt.cd); got != tt.expected {
				t.Errorf("Intersects(ab, cd) = %v, expected %v", got, tt.expected)
			}
			if got := Intersects(tt.cd, tt.ab); got != tt.expected {
				t.Errorf("Intersects(cd, ab) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestIntersect_Point(t *testing.T) {
	p, ok := Intersect(seg(0, 0, 2, 2), seg(0, 2, 2, 0))
	if !ok {
		t.Fatal("expected intersection")
	}
	if p != (Vector2D{X: 1, Y: 1}) {
		t.Errorf("intersection = %v, expected (1,1)", p)
	}
}

func TestIntersect_Symmetric(t *testing.T) {
	segments := []Segment{
		seg(0, 0, 2, 2), seg(0, 2, 2, 0), seg(-1, 1, 3, 1), seg(1, -5, 1, 5),
		seg(0, 0, 1, 0), seg(0.5, -0.5, 0.7, 3), seg(-3, -3, 3, 3.1), seg(2, 2, 4, 0),
	}

	for i, ab := range segments {
		for j, cd := range segments {
			p1, ok1 := Intersect(ab, cd)
			p2, ok2 := Intersect(cd, ab)
			if ok1 != ok2 {
				t.Errorf("segments %d,%d: asymmetric result %v vs %v", i, j, ok1, ok2)
			}
			if ok1 && p1 != p2 {
				t.Errorf("segments %d,%d: asymmetric point %v vs %v", i, j, p1, p2)
			}
		}
	}
}

func TestBounds(t *testing.T) {
	b := seg(4, -2, -1, 3).Bounds()
	if b.Min != (Vector2D{X: -1, Y: -2}) || b.Max != (Vector2D{X: 4, Y: 3}) {
		t.Fatalf("Bounds() = %v", b)
	}

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{"inside", Vector2D{X: 0, Y: 0}, true},
		{"on_edge", Vector2D{X: 4, Y: 0}, true},
		{"on_corner", Vector2D{X: -1, Y: -2}, true},
		{"outside", Vector2D{X: 4.1, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.point); got != tt.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}

	if !b.Overlaps(seg(4, 3, 10, 10).Bounds()) {
		t.Error("boxes touching at a corner should overlap")
	}
	if b.Overlaps(seg(5, 5, 10, 10).Bounds()) {
		t.Error("separate boxes should not overlap")
	}
}

func TestRect_Edges(t *testing.T) {
	t.Run("upright", func(t *testing.T) {
		r := Rect{Center: Vector2D{X: 10, Y: 20}, Width: 4, Height: 6}
		c := r.Corners()
		expected := [4]Vector2D{{X: 8, Y: 17}, {X: 12, Y: 17}, {X: 12, Y: 23}, {X: 8, Y: 23}}
		if c != expected {
			t.Errorf("Corners() = %v, expected %v", c, expected)
		}
		edges := r.Edges()
		for i, e := range edges {
			if e.B != edges[(i+1)%4].A {
				t.Errorf("edge %d does not connect to edge %d", i, (i+1)%4)
			}
		}
	})

	t.Run("quarter_turn_swaps_extent", func(t *testing.T) {
		r := Rect{Width: 4, Height: 6, Rotation: math.Pi / 2}
		b := r.Bounds()
		if math.Abs(b.Max.X-3) > 1e-9 || math.Abs(b.Max.Y-2) > 1e-9 {
			t.Errorf("Bounds() = %v, expected max (3,2)", b)
		}
	})
}
