// Package spawn populates chunks of the world with asteroids as the player
// approaches them.
package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/chunk"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	// CountMean and CountStdDev describe how many asteroids a chunk gets.
	CountMean   = 3.0
	CountStdDev = 0.3

	// ScaleMean and ScaleStdDev describe the scale of each asteroid.
	ScaleMean   = 4.0
	ScaleStdDev = 0.5

	// MinScale keeps sampled scales positive.
	MinScale = 0.5

	// MaxSpeed bounds the initial linear speed.
	MaxSpeed = 100.0

	// MaxAngularSpeed bounds the initial angular speed in either direction.
	MaxAngularSpeed = 1.0
)

// Params are the population knobs.
type Params struct {
	CountMean       float64
	CountStdDev     float64
	ScaleMean       float64
	ScaleStdDev     float64
	MaxSpeed        float64
	MaxAngularSpeed float64
}

// DefaultParams returns the standard population parameters.
func DefaultParams() Params {
	return Params{
		CountMean:       CountMean,
		CountStdDev:     CountStdDev,
		ScaleMean:       ScaleMean,
		ScaleStdDev:     ScaleStdDev,
		MaxSpeed:        MaxSpeed,
		MaxAngularSpeed: MaxAngularSpeed,
	}
}

// Placement is one asteroid the policy wants created.
type Placement struct {
	Chunk           chunk.Chunk
	Position        physics.Vector2D
	Velocity        physics.Vector2D
	AngularVelocity float64
	Scale           float64
}

// Policy decides what a freshly visited chunk contains. Its output is
// random; the source is injected so runs can be reproduced.
type Policy struct {
	params Params
	rng    *rand.Rand
}

// NewPolicy returns a policy drawing from rng.
func NewPolicy(params Params, rng *rand.Rand) *Policy {
	return &Policy{params: params, rng: rng}
}

// Count draws the number of asteroids for one chunk.
func (p *Policy) Count() int {
	n := math.Round(p.normal(p.params.CountMean, p.params.CountStdDev))
	if n < 0 {
		return 0
	}
	return int(n)
}

// Scale draws the scale of one asteroid.
func (p *Policy) Scale() float64 {
	return math.Max(p.normal(p.params.ScaleMean, p.params.ScaleStdDev), MinScale)
}

// Populate returns the asteroids to create in c.
func (p *Policy) Populate(c chunk.Chunk) []Placement {
	n := p.Count()
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		scale := p.Scale()
		pos := chunk.RandomPointInside(c, p.rng)
		speed := p.rng.Float64() * p.params.MaxSpeed
		heading := p.rng.Float64() * 2 * math.Pi
		spin := (p.rng.Float64()*2 - 1) * p.params.MaxAngularSpeed

		out = append(out, Placement{
			Chunk:           c,
			Position:        pos,
			Velocity:        physics.FromAngle(heading, speed),
			AngularVelocity: spin,
			Scale:           scale,
		})
	}
	return out
}

func (p *Policy) normal(mean, stddev float64) float64 {
	return mean + p.rng.NormFloat64()*stddev
}
