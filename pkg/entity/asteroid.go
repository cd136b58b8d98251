package entity

import (
	"math"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// BaseScale is the scale of a freshly spawned asteroid.
	BaseScale = 4.0

	// BaseSturdiness is the sturdiness of an asteroid at BaseScale.
	BaseSturdiness = 25.0
)

// AsteroidOutline is the unit asteroid outline. Bodies use its convex hull
// scaled by the asteroid's scale.
var AsteroidOutline = physics.PolygonFrom([][2]float64{
	{0, 0},
	{-1, -3},
	{-5, -2},
	{-5, 1},
	{-1, 4},
	{3, 4},
	{3, -1},
})

// AsteroidParams holds the placement of a new asteroid.
type AsteroidParams struct {
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	AngularVelocity float64
	Scale           float64

	// Mass is passed to the engine as a mass hint. Zero lets the engine
	// derive mass from the footprint.
	Mass float64
}

// InitialSturdiness returns the sturdiness of a new asteroid of the given
// scale. Sturdiness grows with footprint area.
func InitialSturdiness(scale float64) float64 {
	r := scale / BaseScale
	return BaseSturdiness * r * r
}

// AsteroidFootprint returns the convex polygon of an asteroid at scale.
func AsteroidFootprint(scale float64) physics.Polygon {
	return AsteroidOutline.Scaled(scale).ConvexHull()
}

// NewAsteroid returns the body spec and durable record for an asteroid.
// Spawned and fragment asteroids both go through here. The record's Handle
// is filled in once the engine has created the body.
func NewAsteroid(p AsteroidParams) (physics.BodySpec, *Durable) {
	scale := p.Scale
	if scale <= 0 || math.IsNaN(scale) {
		scale = BaseScale
	}
	spec := physics.BodySpec{
		Shape:           AsteroidFootprint(scale),
		Position:        p.Position,
		Velocity:        p.Velocity,
		AngularVelocity: p.AngularVelocity,
		Mass:            p.Mass,
	}
	return spec, newDurable(KindAsteroid, scale, InitialSturdiness(scale))
}
