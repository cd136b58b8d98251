// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ShipSturdiness is the sturdiness of the player ship.
const ShipSturdiness = 100.0

// ShipOutline is the player ship triangle, nose up.
var ShipOutline = physics.PolygonFrom([][2]float64{
	{-6, -10},
	{0, 14},
	{6, -10},
})

// NewShip returns the body spec and durable record for the player ship at
// position, at rest.
func NewShip(position physics.Vector2D) (physics.BodySpec, *Durable) {
	spec := physics.BodySpec{
		Shape:    ShipOutline,
		Position: position,
	}
	return spec, newDurable(KindShip, 1, ShipSturdiness)
}
