// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Kind distinguishes the body types the simulation tracks.
type Kind int

const (
	KindAsteroid Kind = iota
	KindShip
	KindBullet
)

// String returns the lowercase kind name used in logs and events.
func (k Kind) String() string {
	switch k {
	case KindAsteroid:
		return "asteroid"
	case KindShip:
		return "ship"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Durable is a body that carries structural integrity. Sturdiness only
// decreases through collisions and the body is destroyed once it reaches
// zero. It is not clamped and may be negative until the body is reaped.
type Durable struct {
	ecs.BasicEntity
	Handle     physics.Handle
	Kind       Kind
	Scale      float64
	Sturdiness float64
}

// Alive reports whether the body survives the next destruction pass.
func (d *Durable) Alive() bool {
	return d.Sturdiness > 0
}

// Bullet is a body destroyed by age rather than by damage.
type Bullet struct {
	ecs.BasicEntity
	Handle    physics.Handle
	SpawnedAt float64
	TTL       float64
}

// Expired reports whether the bullet has outlived its TTL at time now.
func (b *Bullet) Expired(now float64) bool {
	return now-b.SpawnedAt > b.TTL
}
