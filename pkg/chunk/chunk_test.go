package chunk

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestForPoint(t *testing.T) {
	tests := []struct {
		name     string
		point    physics.Vector2D
		expected Chunk
	}{
		{"origin", physics.Vector2D{X: 0, Y: 0}, Chunk{0, 0}},
		{"inside_first", physics.Vector2D{X: 599.5, Y: 1}, Chunk{0, 0}},
		{"exact_boundary", physics.Vector2D{X: 600, Y: 1200}, Chunk{600, 1200}},
		{"negative_small", physics.Vector2D{X: -0.5, Y: -100}, Chunk{-600, -600}},
		{"negative_boundary", physics.Vector2D{X: -600, Y: -1200}, Chunk{-600, -1200}},
		{"negative_past_boundary", physics.Vector2D{X: -600.25, Y: 0}, Chunk{-1200, 0}},
		{"player_start", physics.Vector2D{X: 0, Y: -215}, Chunk{0, -600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForPoint(tt.point); got != tt.expected {
				t.Errorf("ForPoint(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestForPoint_ContainsPoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	points := []physics.Vector2D{
		{X: math.Nextafter(1200, 0), Y: math.Nextafter(-1200, 0)},
		{X: math.Nextafter(-600, 0), Y: math.Nextafter(-600, -1e9)},
		{X: -1e-300, Y: 1e-300},
	}
	for i := 0; i < 2000; i++ {
		points = append(points, physics.Vector2D{
			X: (rng.Float64() - 0.5) * 1e6,
			Y: (rng.Float64() - 0.5) * 1e6,
		})
	}

	for _, p := range points {
		c := ForPoint(p)
		lo, hi := c.BottomLeft(), c.TopRight()
		if !(lo.X <= p.X && p.X < hi.X && lo.Y <= p.Y && p.Y < hi.Y) {
			t.Fatalf("ForPoint(%v) = %v does not contain the point", p, c)
		}
		if !c.Contains(p) {
			t.Fatalf("Contains(%v) = false for its own chunk", p)
		}
		if c.X%Size != 0 || c.Y%Size != 0 {
			t.Fatalf("chunk %v is not aligned to the grid", c)
		}
	}
}

func TestChunk_Corners(t *testing.T) {
	for _, c := range []Chunk{{0, 0}, {-600, 1800}, New(-1200.2, 600.4)} {
		diff := c.TopRight().Sub(c.BottomLeft())
		if diff.X != Size || diff.Y != Size {
			t.Errorf("chunk %v corners differ by %v, expected (%d, %d)", c, diff, Size, Size)
		}
	}
}

func TestSurrounding(t *testing.T) {
	c := Chunk{X: 600, Y: -1200}
	window := c.Surrounding()

	if len(window) != WindowSize || WindowSize != 16 {
		t.Fatalf("Surrounding() returned %d chunks, expected 16", len(window))
	}

	seen := make(map[Chunk]bool)
	for _, w := range window {
		if seen[w] {
			t.Errorf("duplicate chunk %v", w)
		}
		seen[w] = true
	}
	if !seen[c] {
		t.Error("window does not include the center chunk")
	}
}

// The window extends two chunks toward negative coordinates and only one
// toward positive coordinates. This asymmetry is kept on purpose; a change
// to a centered window must update this test deliberately.
func TestSurrounding_WindowIsAsymmetric(t *testing.T) {
	c := Chunk{X: 0, Y: 0}
	window := c.Surrounding()

	minX, maxX, minY, maxY := math.MaxInt, math.MinInt, math.MaxInt, math.MinInt
	for _, w := range window {
		minX, maxX = min(minX, w.X), max(maxX, w.X)
		minY, maxY = min(minY, w.Y), max(maxY, w.Y)
	}
	if minX != -2*Size || maxX != Size || minY != -2*Size || maxY != Size {
		t.Errorf("window spans x[%d,%d] y[%d,%d], expected [-1200,600] on both axes",
			minX, maxX, minY, maxY)
	}
}

func TestRandomPointInside(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	c := Chunk{X: -600, Y: 1200}

	var sumX, sumY float64
	const n = 5000
	for i := 0; i < n; i++ {
		p := RandomPointInside(c, rng)
		if !c.Contains(p) {
			t.Fatalf("RandomPointInside returned %v outside %v", p, c)
		}
		if ForPoint(p) != c {
			t.Fatalf("point %v round-tripped to %v, expected %v", p, ForPoint(p), c)
		}
		sumX += p.X
		sumY += p.Y
	}

	// Uniform mean is the chunk center; 5000 samples keep it within ~3%.
	center := c.BottomLeft().Add(physics.Vector2D{X: Size / 2, Y: Size / 2})
	if math.Abs(sumX/n-center.X) > 20 || math.Abs(sumY/n-center.Y) > 20 {
		t.Errorf("sample mean (%v, %v) far from center %v", sumX/n, sumY/n, center)
	}
}
