// pkg/engine/systems.go
package engine

import (
	"errors"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/damage"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/fragment"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// System priorities. The world runs higher priorities first, so damage is
// fully applied before anything is reaped in the same tick.
const (
	DamagePriority      = 30
	DestructionPriority = 20
	SpawnPriority       = 10
	BulletPriority      = 5
)

// DamageSystem drains the engine's contact starts and applies collision
// damage to both sides of each contact, in order.
type DamageSystem struct {
	game *Game
}

// Priority satisfies ecs.Prioritizer
func (s *DamageSystem) Priority() int { return DamagePriority }

// Remove satisfies the ecs.System interface
func (s *DamageSystem) Remove(ecs.BasicEntity) {}

// Update satisfies the ecs.System interface
func (s *DamageSystem) Update(float32) {
	for _, c := range s.game.Engine.ContactStarts() {
		s.apply(c)
	}
}

func (s *DamageSystem) impact(h physics.Handle) (damage.Impact, bool) {
	state, ok := s.game.Engine.Body(h)
	if !ok {
		return damage.Impact{}, false
	}
	restitution, ok := s.game.Engine.Restitution(h)
	if !ok || restitution <= 0 {
		restitution = damage.DefaultRestitution
	}
	return damage.Impact{Mass: state.Mass, Velocity: state.Velocity, Restitution: restitution}, true
}

func (s *DamageSystem) apply(c physics.Contact) {
	g := s.game
	a, okA := s.impact(c.A)
	b, okB := s.impact(c.B)
	if !okA || !okB {
		g.logger.Debug(g.tickCtx, "skipping contact with stale handle", "a", uint64(c.A), "b", uint64(c.B))
		return
	}

	toA, toB := damage.Energies(a, b)
	s.hit(c.A, c.B, toA)
	s.hit(c.B, c.A, toB)
}

func (s *DamageSystem) hit(h, other physics.Handle, energy float64) {
	g := s.game
	d, ok := g.store.Durable(h)
	if !ok || d.Sturdiness <= 0 {
		return
	}

	before := d.Sturdiness
	d.Sturdiness = damage.Apply(before, energy)
	if d.Sturdiness == before {
		return
	}

	g.logger.Debug(g.tickCtx, "body damaged",
		"handle", uint64(h),
		"other", uint64(other),
		"before", before,
		"after", d.Sturdiness,
	)
	g.EventBus.Publish(event.NewDamageEvent(g, uint64(h), uint64(other), before, d.Sturdiness))
}

// DestructionSystem reaps durable bodies whose sturdiness has run out and
// breaks large asteroids into daughters.
type DestructionSystem struct {
	game     *Game
	entities []*entity.Durable
}

// Priority satisfies ecs.Prioritizer
func (s *DestructionSystem) Priority() int { return DestructionPriority }

// Add starts tracking d.
func (s *DestructionSystem) Add(d *entity.Durable) {
	s.entities = append(s.entities, d)
}

// Remove satisfies the ecs.System interface
func (s *DestructionSystem) Remove(basic ecs.BasicEntity) {
	for i, d := range s.entities {
		if d.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

// Update satisfies the ecs.System interface
func (s *DestructionSystem) Update(float32) {
	var doomed []*entity.Durable
	for _, d := range s.entities {
		if !d.Alive() {
			doomed = append(doomed, d)
		}
	}

	for _, d := range doomed {
		s.destroy(d)
	}
}

func (s *DestructionSystem) destroy(d *entity.Durable) {
	g := s.game
	state, known := g.Engine.Body(d.Handle)
	player, hasPlayer := g.store.Player()
	wasPlayer := hasPlayer && player == d.Handle

	g.despawn(d.Handle)
	g.logger.Debug(g.tickCtx, "body destroyed",
		"handle", uint64(d.Handle),
		"kind", d.Kind.String(),
		"scale", d.Scale,
		"sturdiness", d.Sturdiness,
	)
	g.EventBus.Publish(event.NewBodyEvent(event.BodyDestroyed, g, uint64(d.Handle), d.Kind.String(), d.Scale, d.Sturdiness))

	if wasPlayer {
		g.logger.Info(g.tickCtx, "player ship destroyed", "handle", uint64(d.Handle))
		g.EventBus.Publish(event.NewBodyEvent(event.PlayerLost, g, uint64(d.Handle), d.Kind.String(), d.Scale, d.Sturdiness))
	}

	if d.Kind != entity.KindAsteroid || !known || !g.fragment.Fragments(d.Scale) {
		return
	}

	daughters := g.fragment.Split(fragment.Parent{
		Mass:       state.Mass,
		Position:   state.Position,
		Velocity:   state.Velocity,
		Scale:      d.Scale,
		Sturdiness: d.Sturdiness,
	})

	handles := make([]uint64, 0, len(daughters))
	for _, daughter := range daughters {
		rock, err := g.createAsteroid(entity.AsteroidParams{
			Position: daughter.Position,
			Velocity: daughter.Velocity,
			Scale:    daughter.Scale,
			Mass:     daughter.Mass,
		})
		if err != nil {
			g.logger.Warn(g.tickCtx, "failed to create fragment", "parent", uint64(d.Handle), "error", err.Error())
			g.EventBus.Publish(&event.BaseEvent{EventType: event.SpawnFailed, Source: g})
			continue
		}
		handles = append(handles, uint64(rock.Handle))
	}

	g.EventBus.Publish(event.NewFragmentEvent(g, uint64(d.Handle), handles))
}

// SpawnSystem populates the chunks around the player as it moves.
type SpawnSystem struct {
	game *Game
}

// Priority satisfies ecs.Prioritizer
func (s *SpawnSystem) Priority() int { return SpawnPriority }

// Remove satisfies the ecs.System interface
func (s *SpawnSystem) Remove(ecs.BasicEntity) {}

// Update satisfies the ecs.System interface
func (s *SpawnSystem) Update(float32) {
	g := s.game
	state, ok := g.playerState()
	if !ok {
		return
	}

	for _, batch := range g.driver.Step(g.registry, state.Position) {
		created := 0
		for _, p := range batch.Placements {
			_, err := g.createAsteroid(entity.AsteroidParams{
				Position:        p.Position,
				Velocity:        p.Velocity,
				AngularVelocity: p.AngularVelocity,
				Scale:           p.Scale,
			})
			if err != nil {
				level := g.logger.Warn
				if errors.Is(err, ErrSpawnSuspended) {
					level = g.logger.Debug
				}
				level(g.tickCtx, "failed to spawn asteroid",
					"chunk_x", batch.Chunk.X,
					"chunk_y", batch.Chunk.Y,
					"error", err.Error(),
				)
				g.EventBus.Publish(&event.BaseEvent{EventType: event.SpawnFailed, Source: g})
				continue
			}
			created++
		}

		g.logger.Debug(g.tickCtx, "chunk populated",
			"chunk_x", batch.Chunk.X,
			"chunk_y", batch.Chunk.Y,
			"asteroids", created,
		)
		g.EventBus.Publish(event.NewChunkEvent(g, batch.Chunk.X, batch.Chunk.Y, created))
	}
}

// BulletExpirySystem removes bullets that have outlived their TTL.
type BulletExpirySystem struct {
	game     *Game
	entities []*entity.Bullet
}

// Priority satisfies ecs.Prioritizer
func (s *BulletExpirySystem) Priority() int { return BulletPriority }

// Add starts tracking b.
func (s *BulletExpirySystem) Add(b *entity.Bullet) {
	s.entities = append(s.entities, b)
}

// Remove satisfies the ecs.System interface
func (s *BulletExpirySystem) Remove(basic ecs.BasicEntity) {
	for i, b := range s.entities {
		if b.ID() == basic.ID() {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

// Update satisfies the ecs.System interface
func (s *BulletExpirySystem) Update(float32) {
	g := s.game
	var expired []*entity.Bullet
	for _, b := range s.entities {
		if b.Expired(g.ElapsedTime) {
			expired = append(expired, b)
		}
	}

	for _, b := range expired {
		g.despawn(b.Handle)
		g.EventBus.Publish(event.NewBodyEvent(event.BulletExpired, g, uint64(b.Handle), entity.KindBullet.String(), 0, 0))
	}
}
