// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxVec(a, b Vector2D) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: -2}), Vector2D{X: 4, Y: 2}},
		{"sub", Vector2D{X: 3, Y: 4}.Sub(Vector2D{X: 1, Y: -2}), Vector2D{X: 2, Y: 6}},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(2), Vector2D{X: 6, Y: -8}},
		{"scale_zero", Vector2D{X: 3, Y: -4}.Scale(0), Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Length(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}
	if v.Length() != 5 {
		t.Errorf("Length() = %v, expected 5", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("LengthSquared() = %v, expected 25", v.LengthSquared())
	}
	if d := v.Distance(Vector2D{}); d != 5 {
		t.Errorf("Distance() = %v, expected 5", d)
	}
	if dot := v.Dot(Vector2D{X: -4, Y: 3}); dot != 0 {
		t.Errorf("Dot() of perpendicular vectors = %v, expected 0", dot)
	}
}

func TestVector2D_NormalizeOr(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected Vector2D
	}{
		{"axis", Vector2D{X: 50, Y: 0}, Vector2D{X: 1, Y: 0}},
		{"diagonal", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"zero_falls_back", Vector2D{}, Up},
		{"nan_falls_back", Vector2D{X: math.NaN(), Y: 1}, Up},
		{"inf_falls_back", Vector2D{X: math.Inf(1), Y: 1}, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.NormalizeOr(Up)
			if !approxVec(got, tt.expected) {
				t.Errorf("NormalizeOr() = %v, expected %v", got, tt.expected)
			}
		})
	}

	if got := (Vector2D{}).Normalize(); got != (Vector2D{}) {
		t.Errorf("Normalize() of zero vector = %v, expected zero", got)
	}
}

func TestVector2D_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		angle    float64
		expected Vector2D
	}{
		{"quarter_turn_ccw", Vector2D{X: 1, Y: 0}, math.Pi / 2, Vector2D{X: 0, Y: 1}},
		{"quarter_turn_cw", Vector2D{X: 1, Y: 0}, -math.Pi / 2, Vector2D{X: 0, Y: -1}},
		{"half_turn", Vector2D{X: 2, Y: 3}, math.Pi, Vector2D{X: -2, Y: -3}},
		{"no_turn", Vector2D{X: 2, Y: 3}, 0, Vector2D{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.angle)
			if !approxVec(got, tt.expected) {
				t.Errorf("Rotate(%v) = %v, expected %v", tt.angle, got, tt.expected)
			}
			if math.Abs(got.Length()-tt.v.Length()) > epsilon {
				t.Errorf("Rotate changed length from %v to %v", tt.v.Length(), got.Length())
			}
		})
	}
}

func TestFromAngleAndHeading(t *testing.T) {
	if got := FromAngle(math.Pi/2, 2); !approxVec(got, Vector2D{X: 0, Y: 2}) {
		t.Errorf("FromAngle(pi/2, 2) = %v", got)
	}
	if got := FromHeading(0, 500); !approxVec(got, Vector2D{X: 0, Y: 500}) {
		t.Errorf("FromHeading(0, 500) = %v, expected straight up", got)
	}
	if got := FromHeading(math.Pi/2, 1); !approxVec(got, Vector2D{X: -1, Y: 0}) {
		t.Errorf("FromHeading(pi/2, 1) = %v, expected left", got)
	}
	if a := (Vector2D{X: 0, Y: -1}).Angle(); math.Abs(a+math.Pi/2) > epsilon {
		t.Errorf("Angle() = %v, expected -pi/2", a)
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	if !(Vector2D{X: 1, Y: 2}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vector2D{X: math.Inf(-1)}).IsFinite() {
		t.Error("expected infinite vector to be reported")
	}
	if (Vector2D{Y: math.NaN()}).IsFinite() {
		t.Error("expected NaN vector to be reported")
	}
}
