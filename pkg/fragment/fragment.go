// Package fragment splits destroyed asteroids into smaller daughter bodies.
//
// The split approximately conserves momentum and energy: the parent's
// kinetic energy plus the energy left in its sturdiness is damped and shared
// between the daughters, which fly on in a narrow fan along the parent's
// heading. Mass is split evenly and is not damped.
package fragment

import (
	"math"

	"github.com/opd-ai/go-asteroids/pkg/damage"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// Threshold is the scale above which a destroyed asteroid fragments.
	Threshold = 2.0

	// Damping is the fraction of the parent's energy the daughters share.
	Damping = 1.0 / 10.0

	// Daughters is the number of fragments produced.
	Daughters = 3

	// SpreadAngle is the velocity splay of the side fragments, in radians.
	SpreadAngle = 0.2

	// BaseWidth scales the lateral offset of the side fragments.
	BaseWidth = 10.0
)

// Params are the fragmentation knobs.
type Params struct {
	Threshold   float64
	Damping     float64
	SpreadAngle float64
	BaseWidth   float64
}

// DefaultParams returns the standard fragmentation parameters.
func DefaultParams() Params {
	return Params{
		Threshold:   Threshold,
		Damping:     Damping,
		SpreadAngle: SpreadAngle,
		BaseWidth:   BaseWidth,
	}
}

// Parent is the state of an asteroid at the moment it is destroyed.
type Parent struct {
	Mass     float64
	Position physics.Vector2D
	Velocity physics.Vector2D
	Scale    float64

	// Sturdiness is the value at destruction and is usually <= 0.
	Sturdiness float64
}

// Daughter is one fragment to spawn.
type Daughter struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Mass     float64
	Scale    float64
	Energy   float64
}

// Fragments reports whether a parent of the given scale splits.
func (p Params) Fragments(scale float64) bool {
	return scale > p.Threshold
}

// Energy returns the energy the daughters of parent share: the damped sum
// of its kinetic energy and the potential energy left in its sturdiness.
func (p Params) Energy(parent Parent) float64 {
	kinetic := 0.5 * parent.Mass * parent.Velocity.LengthSquared()
	potential := parent.Sturdiness * parent.Sturdiness / damage.SturdinessConstant
	return (kinetic + potential) * p.Damping
}

// Split returns the daughters of parent, or nil when its scale is at or
// below the threshold. The first daughter continues straight on from the
// parent's position; the other two are displaced to either side.
func (p Params) Split(parent Parent) []Daughter {
	if !p.Fragments(parent.Scale) {
		return nil
	}

	energy := p.Energy(parent) / Daughters
	mass := parent.Mass / Daughters
	scale := (parent.Scale / Daughters) * (parent.Scale / Daughters)

	var speed float64
	if mass > 0 && energy > 0 {
		speed = math.Sqrt(2 * energy / mass)
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = 0
	}

	axis := parent.Velocity.NormalizeOr(physics.Up)
	offset := axis.Scale(p.BaseWidth * scale)

	daughter := func(pos, dir physics.Vector2D) Daughter {
		return Daughter{
			Position: pos,
			Velocity: dir.Scale(speed),
			Mass:     mass,
			Scale:    scale,
			Energy:   energy,
		}
	}

	return []Daughter{
		daughter(parent.Position, axis),
		daughter(parent.Position.Add(offset.Rotate(math.Pi/2)), axis.Rotate(-p.SpreadAngle)),
		daughter(parent.Position.Add(offset.Rotate(-math.Pi/2)), axis.Rotate(p.SpreadAngle)),
	}
}

// Split splits parent with the default parameters.
func Split(parent Parent) []Daughter {
	return DefaultParams().Split(parent)
}
