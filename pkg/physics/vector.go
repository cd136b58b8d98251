// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a point or direction in world units.
type Vector2D struct {
	X float64
	Y float64
}

// Up is the heading used when a direction cannot be derived from a vector.
var Up = Vector2D{X: 0, Y: 1}

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by factor.
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Dot returns the dot product of v and other.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of v.
func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns the squared magnitude of v.
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the euclidean distance between v and other.
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Normalize returns the unit vector along v, or the zero vector when v has
// no usable direction.
func (v Vector2D) Normalize() Vector2D {
	return v.NormalizeOr(Vector2D{})
}

// NormalizeOr returns the unit vector along v. Zero, infinite and NaN
// vectors yield fallback instead.
func (v Vector2D) NormalizeOr(fallback Vector2D) Vector2D {
	length := v.Length()
	if length == 0 || math.IsInf(length, 0) || math.IsNaN(length) {
		return fallback
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Angle returns the angle of v relative to the positive x axis, in radians.
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vector2D) Rotate(angle float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsFinite reports whether both components are finite numbers.
func (v Vector2D) IsFinite() bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

// FromAngle creates a vector of the given magnitude at angle radians from
// the positive x axis.
func FromAngle(angle float64, magnitude float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{X: magnitude * cos, Y: magnitude * sin}
}

// FromHeading creates a vector of the given magnitude along a body heading.
// Heading 0 points up the y axis and grows counter-clockwise, which is the
// convention body rotations use.
func FromHeading(heading float64, magnitude float64) Vector2D {
	sin, cos := math.Sincos(heading)
	return Vector2D{X: -sin * magnitude, Y: cos * magnitude}
}
