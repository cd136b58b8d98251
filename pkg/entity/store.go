package entity

import (
	"cmp"
	"slices"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

func newDurable(kind Kind, scale, sturdiness float64) *Durable {
	return &Durable{
		BasicEntity: ecs.NewBasic(),
		Kind:        kind,
		Scale:       scale,
		Sturdiness:  sturdiness,
	}
}

func newBullet(now, ttl float64) *Bullet {
	return &Bullet{
		BasicEntity: ecs.NewBasic(),
		SpawnedAt:   now,
		TTL:         ttl,
	}
}

// Store holds the domain fields the simulation attaches to engine bodies,
// keyed by physics handle. It is not safe for concurrent use.
type Store struct {
	durables  map[physics.Handle]*Durable
	bullets   map[physics.Handle]*Bullet
	player    physics.Handle
	hasPlayer bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		durables: make(map[physics.Handle]*Durable),
		bullets:  make(map[physics.Handle]*Bullet),
	}
}

// AddDurable registers d under its handle.
func (s *Store) AddDurable(d *Durable) {
	s.durables[d.Handle] = d
}

// Durable returns the record for h.
func (s *Store) Durable(h physics.Handle) (*Durable, bool) {
	d, ok := s.durables[h]
	return d, ok
}

// Durables returns all durable records ordered by handle.
func (s *Store) Durables() []*Durable {
	out := make([]*Durable, 0, len(s.durables))
	for _, d := range s.durables {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *Durable) int {
		return cmp.Compare(a.Handle, b.Handle)
	})
	return out
}

// AddBullet registers b under its handle.
func (s *Store) AddBullet(b *Bullet) {
	s.bullets[b.Handle] = b
}

// Bullet returns the record for h.
func (s *Store) Bullet(h physics.Handle) (*Bullet, bool) {
	b, ok := s.bullets[h]
	return b, ok
}

// Bullets returns all bullet records ordered by handle.
func (s *Store) Bullets() []*Bullet {
	out := make([]*Bullet, 0, len(s.bullets))
	for _, b := range s.bullets {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *Bullet) int {
		return cmp.Compare(a.Handle, b.Handle)
	})
	return out
}

// Remove drops every record for h and returns the ECS identity that was
// attached to it, if any. Removing the player's handle clears the player.
func (s *Store) Remove(h physics.Handle) (ecs.BasicEntity, bool) {
	if s.hasPlayer && s.player == h {
		s.hasPlayer = false
	}
	if d, ok := s.durables[h]; ok {
		delete(s.durables, h)
		return d.BasicEntity, true
	}
	if b, ok := s.bullets[h]; ok {
		delete(s.bullets, h)
		return b.BasicEntity, true
	}
	return ecs.BasicEntity{}, false
}

// SetPlayer marks h as the player's body.
func (s *Store) SetPlayer(h physics.Handle) {
	s.player = h
	s.hasPlayer = true
}

// Player returns the player's body handle, if a player exists.
func (s *Store) Player() (physics.Handle, bool) {
	return s.player, s.hasPlayer
}

// Counts returns the number of asteroids, ships and bullets held.
func (s *Store) Counts() (asteroids, ships, bullets int) {
	for _, d := range s.durables {
		switch d.Kind {
		case KindAsteroid:
			asteroids++
		case KindShip:
			ships++
		}
	}
	return asteroids, ships, len(s.bullets)
}
