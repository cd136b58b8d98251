// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/chunk"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/fragment"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/spawn"
)

// ErrNoPlayer is returned by operations that need a live player ship.
var ErrNoPlayer = errors.New("no player ship")

// Game owns the simulation state layered on top of a physics engine: the
// per-body domain records, the spawn registry, the clock and the systems
// that run every tick.
//
// Event handlers run synchronously inside Step while the game is locked and
// must not call back into the Game.
type Game struct {
	Config   *config.SimConfig
	Engine   physics.Engine
	EventBus *event.Bus

	store    *entity.Store
	registry *chunk.Registry
	factory  *Factory
	driver   *spawn.Driver
	fragment fragment.Params
	bullet   entity.BulletParams
	world    *ecs.World

	destruction *DestructionSystem
	expiry      *BulletExpirySystem

	EntityLock  sync.Mutex
	CurrentTick uint64
	ElapsedTime float64 // sim seconds
	tickCtx     context.Context

	logger *logging.Logger
}

// Stats is a snapshot of the simulation counters.
type Stats struct {
	Tick      uint64
	Elapsed   float64
	Asteroids int
	Ships     int
	Bullets   int
	Chunks    int
}

// NewGame creates a game driving eng. rng feeds the spawn policy; a nil
// logger discards output.
func NewGame(cfg *config.SimConfig, eng physics.Engine, rng *rand.Rand, logger *logging.Logger) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	g := &Game{
		Config:   cfg,
		Engine:   eng,
		EventBus: event.NewEventBus(),
		store:    entity.NewStore(),
		registry: chunk.NewRegistry(),
		factory:  NewFactory(eng, cfg.Breaker, logger),
		driver:   spawn.NewDriver(spawn.NewPolicy(cfg.SpawnParams(), rng)),
		fragment: cfg.FragmentParams(),
		bullet:   cfg.BulletParams(),
		world:    &ecs.World{},
		tickCtx:  context.Background(),
		logger:   logger,
	}

	g.initSystems()
	return g
}

// initSystems registers the per-tick systems. The world orders them by
// priority: damage, destruction, spawn, bullet expiry.
func (g *Game) initSystems() {
	g.destruction = &DestructionSystem{game: g}
	g.expiry = &BulletExpirySystem{game: g}

	g.world.AddSystem(&DamageSystem{game: g})
	g.world.AddSystem(g.destruction)
	g.world.AddSystem(&SpawnSystem{game: g})
	g.world.AddSystem(g.expiry)
}

// Step advances the simulation by dt seconds: the engine is stepped when it
// supports it, then every system runs once.
func (g *Game) Step(ctx context.Context, dt float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.CurrentTick++
	if dt > 0 {
		g.ElapsedTime += dt
	}
	g.tickCtx = logging.WithTick(ctx, g.CurrentTick)
	defer func() { g.tickCtx = context.Background() }()

	if stepper, ok := g.Engine.(physics.Stepper); ok {
		stepper.Step(dt)
	}
	g.world.Update(float32(dt))
}

// SpawnPlayer creates the player ship at position with the given velocity.
// Any previous player ship is left in place as an ordinary ship.
func (g *Game) SpawnPlayer(ctx context.Context, position, velocity physics.Vector2D) (physics.Handle, error) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	spec, ship := entity.NewShip(position)
	spec.Velocity = velocity
	h, err := g.factory.Create(ctx, spec)
	if err != nil {
		return 0, fmt.Errorf("failed to spawn player: %w", err)
	}

	ship.Handle = h
	g.addDurable(ship)
	g.store.SetPlayer(h)

	g.logger.Info(ctx, "player spawned", "handle", uint64(h), "x", position.X, "y", position.Y)
	g.EventBus.Publish(event.NewBodyEvent(event.BodySpawned, g, uint64(h), ship.Kind.String(), ship.Scale, ship.Sturdiness))
	return h, nil
}

// Fire launches a bullet from the player ship.
func (g *Game) Fire(ctx context.Context) (physics.Handle, error) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	state, ok := g.playerState()
	if !ok {
		return 0, ErrNoPlayer
	}

	spec, bullet := entity.LaunchBullet(state, g.ElapsedTime, g.bullet)
	h, err := g.factory.Create(ctx, spec)
	if err != nil {
		return 0, fmt.Errorf("failed to fire bullet: %w", err)
	}

	bullet.Handle = h
	g.store.AddBullet(bullet)
	g.expiry.Add(bullet)

	g.EventBus.Publish(event.NewBodyEvent(event.BodySpawned, g, uint64(h), entity.KindBullet.String(), 0, 0))
	return h, nil
}

// PlayerPosition returns the player ship's position, if there is one.
func (g *Game) PlayerPosition() (physics.Vector2D, bool) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	state, ok := g.playerState()
	return state.Position, ok
}

// Durable returns a copy of the domain record attached to h.
func (g *Game) Durable(h physics.Handle) (entity.Durable, bool) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	d, ok := g.store.Durable(h)
	if !ok {
		return entity.Durable{}, false
	}
	return *d, true
}

// Stats returns the current counters.
func (g *Game) Stats() Stats {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	asteroids, ships, bullets := g.store.Counts()
	return Stats{
		Tick:      g.CurrentTick,
		Elapsed:   g.ElapsedTime,
		Asteroids: asteroids,
		Ships:     ships,
		Bullets:   bullets,
		Chunks:    g.registry.Len(),
	}
}

// Breaker returns the factory guarding body creation.
func (g *Game) Breaker() *Factory {
	return g.factory
}

func (g *Game) playerState() (physics.BodyState, bool) {
	h, ok := g.store.Player()
	if !ok {
		return physics.BodyState{}, false
	}
	return g.Engine.Body(h)
}

// addDurable registers a durable record with the store and the destruction
// system.
func (g *Game) addDurable(d *entity.Durable) {
	g.store.AddDurable(d)
	g.destruction.Add(d)
}

// createAsteroid builds an asteroid through the shared construction path.
func (g *Game) createAsteroid(p entity.AsteroidParams) (*entity.Durable, error) {
	spec, rock := entity.NewAsteroid(p)
	h, err := g.factory.Create(g.tickCtx, spec)
	if err != nil {
		return nil, err
	}

	rock.Handle = h
	g.addDurable(rock)
	g.EventBus.Publish(event.NewBodyEvent(event.BodySpawned, g, uint64(h), rock.Kind.String(), rock.Scale, rock.Sturdiness))
	return rock, nil
}

// despawn removes h from the engine, the store and every system.
func (g *Game) despawn(h physics.Handle) {
	if err := g.Engine.DestroyBody(h); err != nil {
		g.logger.Debug(g.tickCtx, "engine destroy failed", "handle", uint64(h), "error", err.Error())
	}
	if basic, ok := g.store.Remove(h); ok {
		g.world.RemoveEntity(basic)
	}
}
