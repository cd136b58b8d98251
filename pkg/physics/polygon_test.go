package physics

import (
	"math"
	"testing"
)

var asteroidOutline = PolygonFrom([][2]float64{
	{0, 0}, {-1, -3}, {-5, -2}, {-5, 1}, {-1, 4}, {3, 4}, {3, -1},
})

func TestPolygon_Area(t *testing.T) {
	tests := []struct {
		name     string
		poly     Polygon
		expected float64
	}{
		{"unit_square", PolygonFrom([][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}), 1},
		{"clockwise_square", PolygonFrom([][2]float64{{0, 0}, {0, 2}, {2, 2}, {2, 0}}), 4},
		{"asteroid_outline", asteroidOutline, 39},
		{"degenerate", PolygonFrom([][2]float64{{0, 0}, {1, 1}}), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Area(); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Area() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestPolygon_ConvexHull(t *testing.T) {
	hull := asteroidOutline.ConvexHull()

	// The origin vertex is a dent in the outline and must be dropped.
	if len(hull) != 6 {
		t.Fatalf("hull has %d vertices, expected 6: %v", len(hull), hull)
	}
	for _, v := range hull {
		if v == (Vector2D{}) {
			t.Error("hull kept the concave origin vertex")
		}
	}
	if area := hull.Area(); math.Abs(area-44) > epsilon {
		t.Errorf("hull area = %v, expected 44", area)
	}
}

func TestPolygon_ScaledAreaIsQuadratic(t *testing.T) {
	base := asteroidOutline.ConvexHull().Area()
	scaled := asteroidOutline.Scaled(4).ConvexHull().Area()
	if math.Abs(scaled-16*base) > 1e-6 {
		t.Errorf("scaled area = %v, expected %v", scaled, 16*base)
	}
}

func TestPolygon_BoundingRadius(t *testing.T) {
	square := PolygonFrom([][2]float64{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}})
	if got := square.BoundingRadius(); math.Abs(got-math.Sqrt2) > epsilon {
		t.Errorf("BoundingRadius() = %v, expected sqrt(2)", got)
	}
}
