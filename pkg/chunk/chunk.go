// Package chunk partitions the unbounded world into fixed-size square cells
// and tracks which cells have already been populated.
package chunk

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Size is the side length of a chunk in world units.
const Size = 600

// windowOffsets are the per-axis chunk offsets of the spawn window. The
// window reaches two chunks in the negative direction and one in the
// positive direction.
var windowOffsets = [...]int{-2, -1, 0, 1}

// WindowSize is the number of chunks returned by Surrounding.
const WindowSize = len(windowOffsets) * len(windowOffsets)

// Chunk identifies a grid cell by its bottom-left corner in world units.
// Both coordinates are always multiples of Size.
type Chunk struct {
	X int
	Y int
}

// New returns the chunk whose corner is (x, y) rounded to whole units.
func New(x, y float64) Chunk {
	return Chunk{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// ForPoint returns the chunk containing p. For every finite point,
// BottomLeft() <= p < TopRight() on both axes.
func ForPoint(p physics.Vector2D) Chunk {
	return Chunk{X: snap(p.X), Y: snap(p.Y)}
}

// snap floors v to a multiple of Size, correcting for rounding in the
// division when v sits within an ulp of a boundary.
func snap(v float64) int {
	corner := int(math.Floor(v/Size)) * Size
	if float64(corner) > v {
		corner -= Size
	} else if v >= float64(corner+Size) {
		corner += Size
	}
	return corner
}

// BottomLeft returns the inclusive lower corner.
func (c Chunk) BottomLeft() physics.Vector2D {
	return physics.Vector2D{X: float64(c.X), Y: float64(c.Y)}
}

// TopRight returns the exclusive upper corner.
func (c Chunk) TopRight() physics.Vector2D {
	return physics.Vector2D{X: float64(c.X + Size), Y: float64(c.Y + Size)}
}

// Contains reports whether p lies inside the chunk.
func (c Chunk) Contains(p physics.Vector2D) bool {
	lo, hi := c.BottomLeft(), c.TopRight()
	return p.X >= lo.X && p.X < hi.X && p.Y >= lo.Y && p.Y < hi.Y
}

// Offset returns the chunk dx, dy cells away.
func (c Chunk) Offset(dx, dy int) Chunk {
	return Chunk{X: c.X + dx*Size, Y: c.Y + dy*Size}
}

// Surrounding returns the WindowSize chunks of the spawn window around c,
// including c itself.
func (c Chunk) Surrounding() []Chunk {
	out := make([]Chunk, 0, WindowSize)
	for _, dx := range windowOffsets {
		for _, dy := range windowOffsets {
			out = append(out, c.Offset(dx, dy))
		}
	}
	return out
}

// RandomPointInside returns a point drawn uniformly from
// [BottomLeft, TopRight) on both axes.
func RandomPointInside(c Chunk, rng *rand.Rand) physics.Vector2D {
	lo, hi := c.BottomLeft(), c.TopRight()
	return physics.Vector2D{
		X: uniform(rng, lo.X, hi.X),
		Y: uniform(rng, lo.Y, hi.Y),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}
