package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

var errEngineDown = errors.New("engine down")

// fakeEngine is a hand-driven physics.Engine: bodies never move and
// contacts are queued by the test.
type fakeEngine struct {
	bodies      map[physics.Handle]physics.BodyState
	restitution map[physics.Handle]float64
	specs       map[physics.Handle]physics.BodySpec
	contacts    []physics.Contact
	next        physics.Handle
	createErr   error
	creates     int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		bodies:      make(map[physics.Handle]physics.BodyState),
		restitution: make(map[physics.Handle]float64),
		specs:       make(map[physics.Handle]physics.BodySpec),
		next:        1,
	}
}

func (e *fakeEngine) CreateBody(spec physics.BodySpec) (physics.Handle, error) {
	e.creates++
	if e.createErr != nil {
		return 0, e.createErr
	}
	h := e.next
	e.next++

	mass := spec.Mass
	if mass <= 0 {
		mass = spec.Shape.Area()
	}
	e.bodies[h] = physics.BodyState{
		Position:        spec.Position,
		Velocity:        spec.Velocity,
		Rotation:        spec.Rotation,
		AngularVelocity: spec.AngularVelocity,
		Mass:            mass,
	}
	if spec.Restitution > 0 {
		e.restitution[h] = spec.Restitution
	}
	e.specs[h] = spec
	return h, nil
}

func (e *fakeEngine) DestroyBody(h physics.Handle) error {
	if _, ok := e.bodies[h]; !ok {
		return physics.ErrUnknownBody
	}
	delete(e.bodies, h)
	delete(e.restitution, h)
	return nil
}

func (e *fakeEngine) Body(h physics.Handle) (physics.BodyState, bool) {
	s, ok := e.bodies[h]
	return s, ok
}

func (e *fakeEngine) Restitution(h physics.Handle) (float64, bool) {
	r, ok := e.restitution[h]
	return r, ok
}

func (e *fakeEngine) ContactStarts() []physics.Contact {
	out := e.contacts
	e.contacts = nil
	return out
}

func (e *fakeEngine) touch(a, b physics.Handle) {
	e.contacts = append(e.contacts, physics.Contact{A: a, B: b})
}

func newTestGame(t *testing.T, eng physics.Engine) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewGame(cfg, eng, rand.New(rand.NewPCG(1, 2)), logging.Discard())
}

// addRock places an asteroid directly, bypassing spawning, and returns its
// record so tests can set its sturdiness.
func addRock(t *testing.T, g *Game, scale float64, state physics.BodyState) *entity.Durable {
	t.Helper()
	rock, err := g.createAsteroid(entity.AsteroidParams{
		Position: state.Position,
		Velocity: state.Velocity,
		Scale:    scale,
		Mass:     state.Mass,
	})
	if err != nil {
		t.Fatalf("createAsteroid() failed: %v", err)
	}
	return rock
}
