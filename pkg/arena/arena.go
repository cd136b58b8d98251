// pkg/arena/arena.go
package arena

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// DefaultDensity is the mass per unit of footprint area.
const DefaultDensity = 1.0

// DefaultRestitution is used for bodies created without one.
const DefaultRestitution = 0.9

const treeCapacity = 8

type body struct {
	state       physics.BodyState
	radius      float64
	restitution float64
}

type pair struct {
	a, b physics.Handle
}

func orderedPair(a, b physics.Handle) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

// Arena is a small kinematic engine: bodies move with constant velocity and
// pass through each other, and contacts are reported when bounding circles
// start to overlap.
type Arena struct {
	density    float64
	bodies     map[physics.Handle]*body
	nextHandle physics.Handle
	touching   map[pair]struct{}
	pending    []physics.Contact
	tree       *physics.QuadTree
	mu         sync.RWMutex
}

// New creates an empty arena. A non-positive density selects DefaultDensity.
func New(density float64) *Arena {
	if !(density > 0) || math.IsInf(density, 0) {
		density = DefaultDensity
	}
	return &Arena{
		density:    density,
		bodies:     make(map[physics.Handle]*body),
		nextHandle: 1,
		touching:   make(map[pair]struct{}),
	}
}

// CreateBody adds a body and returns its handle.
func (a *Arena) CreateBody(spec physics.BodySpec) (physics.Handle, error) {
	if len(spec.Shape) < 3 {
		return 0, fmt.Errorf("body shape needs at least 3 vertices, got %d", len(spec.Shape))
	}
	if !spec.Position.IsFinite() || !spec.Velocity.IsFinite() {
		return 0, fmt.Errorf("body position %v or velocity %v is not finite", spec.Position, spec.Velocity)
	}

	hull := spec.Shape.ConvexHull()
	mass := spec.Mass
	if mass <= 0 {
		mass = hull.Area() * a.density
	}
	restitution := spec.Restitution
	if restitution <= 0 {
		restitution = DefaultRestitution
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	h := a.nextHandle
	a.nextHandle++
	a.bodies[h] = &body{
		state: physics.BodyState{
			Position:        spec.Position,
			Velocity:        spec.Velocity,
			Rotation:        spec.Rotation,
			AngularVelocity: spec.AngularVelocity,
			Mass:            mass,
		},
		radius:      hull.BoundingRadius(),
		restitution: restitution,
	}
	return h, nil
}

// DestroyBody removes a body. Pending contacts that name it are kept.
func (a *Arena) DestroyBody(h physics.Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.bodies[h]; !ok {
		return fmt.Errorf("destroy body %d: %w", h, physics.ErrUnknownBody)
	}
	delete(a.bodies, h)
	for p := range a.touching {
		if p.a == h || p.b == h {
			delete(a.touching, p)
		}
	}
	return nil
}

// Body returns the state of a live body.
func (a *Arena) Body(h physics.Handle) (physics.BodyState, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	b, ok := a.bodies[h]
	if !ok {
		return physics.BodyState{}, false
	}
	return b.state, true
}

// Restitution returns the restitution of a live body.
func (a *Arena) Restitution(h physics.Handle) (float64, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	b, ok := a.bodies[h]
	if !ok {
		return 0, false
	}
	return b.restitution, true
}

// ContactStarts drains the contacts found by the steps since the last call.
func (a *Arena) ContactStarts() []physics.Contact {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.pending
	a.pending = nil
	return out
}

// Len returns the number of live bodies.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.bodies)
}

// Step advances every body by dt and records new contacts.
func (a *Arena) Step(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if dt > 0 {
		for _, b := range a.bodies {
			b.state.Position = b.state.Position.Add(b.state.Velocity.Scale(dt))
			b.state.Rotation = math.Mod(b.state.Rotation+b.state.AngularVelocity*dt, 2*math.Pi)
		}
	}

	a.detectContacts()
}

func (a *Arena) detectContacts() {
	handles := make([]physics.Handle, 0, len(a.bodies))
	for h := range a.bodies {
		handles = append(handles, h)
	}
	slices.Sort(handles)

	now := make(map[pair]struct{}, len(a.touching))
	if len(handles) > 1 {
		a.rebuildTree(handles)
		maxRadius := 0.0
		for _, b := range a.bodies {
			maxRadius = math.Max(maxRadius, b.radius)
		}

		for _, h := range handles {
			b := a.bodies[h]
			self := physics.Circle{Center: b.state.Position, Radius: b.radius}
			// Pad past the exclusive high edges of Rect.Contains.
			reach := physics.Circle{Center: b.state.Position, Radius: b.radius + maxRadius + 1}
			for _, other := range a.tree.Query(physics.RectAround(reach)) {
				if other <= h {
					continue
				}
				ob := a.bodies[other]
				if self.Overlaps(physics.Circle{Center: ob.state.Position, Radius: ob.radius}) {
					now[orderedPair(h, other)] = struct{}{}
				}
			}
		}
	}

	var started []physics.Contact
	for p := range now {
		if _, ok := a.touching[p]; !ok {
			started = append(started, physics.Contact{A: p.a, B: p.b})
		}
	}
	slices.SortFunc(started, func(x, y physics.Contact) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})

	a.pending = append(a.pending, started...)
	a.touching = now
}

func (a *Arena) rebuildTree(handles []physics.Handle) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, h := range handles {
		p := a.bodies[h].state.Position
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	side := math.Max(maxX-minX, maxY-minY) + 2
	boundary := physics.Rect{
		Center: physics.Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  side,
		Height: side,
	}
	if a.tree == nil {
		a.tree = physics.NewQuadTree(boundary, treeCapacity)
	} else {
		a.tree.Clear()
		a.tree.Boundary = boundary
	}

	for _, h := range handles {
		a.tree.Insert(a.bodies[h].state.Position, h)
	}
}
