package spawn

import (
	"math"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/chunk"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func TestDriver_FirstStepPopulatesWindow(t *testing.T) {
	reg := chunk.NewRegistry()
	d := NewDriver(newTestPolicy(10))

	batches := d.Step(reg, physics.Vector2D{X: 0, Y: 0})
	if len(batches) != chunk.WindowSize {
		t.Fatalf("first step populated %d chunks, expected %d", len(batches), chunk.WindowSize)
	}
	if reg.Len() != chunk.WindowSize {
		t.Errorf("registry holds %d chunks, expected %d", reg.Len(), chunk.WindowSize)
	}

	for _, b := range batches {
		// 3 sigma bound of the count distribution.
		if n := len(b.Placements); n < 2 || n > 4 {
			t.Errorf("chunk %v got %d asteroids, expected 2-4", b.Chunk, n)
		}
		for _, pl := range b.Placements {
			// 4 sigma of the scale distribution; about 50 draws make a
			// 3 sigma bound too tight to hold for every seed.
			if pl.Scale < 2.0 || pl.Scale > 6.0 {
				t.Errorf("asteroid scale %v outside [2.0, 6.0]", pl.Scale)
			}
		}
	}
}

func TestDriver_NeverRepopulates(t *testing.T) {
	reg := chunk.NewRegistry()
	d := NewDriver(newTestPolicy(11))

	d.Step(reg, physics.Vector2D{X: 10, Y: 10})
	if again := d.Step(reg, physics.Vector2D{X: 20, Y: 590}); len(again) != 0 {
		t.Errorf("second step in the same chunk populated %d chunks, expected 0", len(again))
	}

	before := reg.Len()
	moved := d.Step(reg, physics.Vector2D{X: 610, Y: 10})
	if len(moved) != 4 {
		t.Errorf("moving one chunk right populated %d chunks, expected 4", len(moved))
	}
	if reg.Len() != before+len(moved) {
		t.Errorf("registry grew by %d, expected %d", reg.Len()-before, len(moved))
	}

	seen := make(map[chunk.Chunk]bool)
	for _, b := range moved {
		if seen[b.Chunk] {
			t.Errorf("chunk %v populated twice", b.Chunk)
		}
		seen[b.Chunk] = true
	}
}

func TestDriver_NonFinitePlayer(t *testing.T) {
	reg := chunk.NewRegistry()
	d := NewDriver(newTestPolicy(12))

	if got := d.Step(reg, physics.Vector2D{X: math.NaN()}); got != nil {
		t.Errorf("Step() with NaN position = %v, expected nil", got)
	}
	if reg.Len() != 0 {
		t.Errorf("registry grew to %d for an invalid position", reg.Len())
	}
}
