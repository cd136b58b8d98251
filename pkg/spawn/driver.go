package spawn

import (
	"github.com/opd-ai/go-asteroids/pkg/chunk"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Batch is the population of one newly visited chunk.
type Batch struct {
	Chunk      chunk.Chunk
	Placements []Placement
}

// Driver populates the spawn window around the player on every tick.
type Driver struct {
	policy *Policy
}

// NewDriver returns a driver using policy.
func NewDriver(policy *Policy) *Driver {
	return &Driver{policy: policy}
}

// Step marks every unpopulated chunk of the window around player as
// populated and returns what each of them should contain. The registry is
// only used for the duration of the call. A non-finite player position
// populates nothing.
func (d *Driver) Step(reg *chunk.Registry, player physics.Vector2D) []Batch {
	if !player.IsFinite() {
		return nil
	}
	window := chunk.ForPoint(player).Surrounding()

	var batches []Batch
	for _, c := range reg.Unpopulated(window) {
		batches = append(batches, Batch{Chunk: c, Placements: d.policy.Populate(c)})
		reg.Mark(c)
	}
	return batches
}
