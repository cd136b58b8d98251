// Package damage computes the structural damage two bodies take when they
// start touching.
//
// Each body's damage energy is scaled by the other body's mass and reduced
// to its inelastic share. Damage per unit of energy is inversely proportional
// to the body's current sturdiness, so weakened bodies fail faster.
package damage

import (
	"math"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// SturdinessConstant converts inelastic energy into sturdiness loss.
	SturdinessConstant = 1.0 / 500.0

	// DefaultRestitution is used for colliders without a material value.
	DefaultRestitution = 0.9
)

// Impact is one side of a contact as seen by the damage model.
type Impact struct {
	Mass        float64
	Velocity    physics.Vector2D
	Restitution float64
}

// CombineRestitution averages the two colliders' restitution. Other combine
// rules (min, max, multiply) are not supported.
func CombineRestitution(a, b float64) float64 {
	return (a + b) / 2
}

// InelasticFraction returns the share of impact energy lost at the given
// restitution.
func InelasticFraction(restitution float64) float64 {
	return 1 - restitution*restitution
}

// Energies returns the inelastic energy delivered to a and to b. Each side
// uses the opposite body's mass.
func Energies(a, b Impact) (toA, toB float64) {
	relv2 := a.Velocity.Sub(b.Velocity).LengthSquared()
	loss := InelasticFraction(CombineRestitution(a.Restitution, b.Restitution))
	toA = 0.5 * b.Mass * relv2 * loss
	toB = 0.5 * a.Mass * relv2 * loss
	return toA, toB
}

// Loss returns how much sturdiness a body at the given sturdiness loses when
// it absorbs energy. Bodies at or below zero are already doomed and take no
// further damage.
func Loss(sturdiness, energy float64) float64 {
	if sturdiness <= 0 || energy <= 0 || math.IsNaN(energy) {
		return 0
	}
	return SturdinessConstant * energy / sturdiness
}

// Apply returns the sturdiness after absorbing energy. The result is never
// greater than sturdiness.
func Apply(sturdiness, energy float64) float64 {
	return sturdiness - Loss(sturdiness, energy)
}
