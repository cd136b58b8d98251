package entity

import (
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// BulletSpeed is the launch speed relative to the firing ship.
	BulletSpeed = 500.0

	// BulletLaunchOffset is how far ahead of the ship's center bullets appear.
	BulletLaunchOffset = 20.0

	// BulletTTL is how long a bullet lives, in seconds.
	BulletTTL = 3.0

	// BulletMass is the mass hint for bullets.
	BulletMass = 1.0
)

// BulletOutline is the square bullet shape.
var BulletOutline = physics.PolygonFrom([][2]float64{
	{-1, -1},
	{-1, 1},
	{1, 1},
	{1, -1},
})

// BulletParams configures bullet launches.
type BulletParams struct {
	Speed        float64
	LaunchOffset float64
	TTL          float64
}

// DefaultBulletParams returns the standard launch parameters.
func DefaultBulletParams() BulletParams {
	return BulletParams{Speed: BulletSpeed, LaunchOffset: BulletLaunchOffset, TTL: BulletTTL}
}

// LaunchBullet returns the body spec and record for a bullet fired by a ship
// in the given state at sim time now. The bullet leaves along the ship's
// heading and inherits the ship's velocity.
func LaunchBullet(ship physics.BodyState, now float64, params BulletParams) (physics.BodySpec, *Bullet) {
	dir := physics.FromHeading(ship.Rotation, 1)
	spec := physics.BodySpec{
		Shape:    BulletOutline,
		Position: ship.Position.Add(dir.Scale(params.LaunchOffset)),
		Velocity: dir.Scale(params.Speed).Add(ship.Velocity),
		Rotation: ship.Rotation,
		Mass:     BulletMass,
	}
	return spec, newBullet(now, params.TTL)
}
