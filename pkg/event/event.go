// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ChunkPopulated     Type = "chunk_populated"
	BodySpawned        Type = "body_spawned"
	BodyDamaged        Type = "body_damaged"
	BodyDestroyed      Type = "body_destroyed"
	AsteroidFragmented Type = "asteroid_fragmented"
	BulletExpired      Type = "bullet_expired"
	SpawnFailed        Type = "spawn_failed"
	PlayerLost         Type = "player_lost"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type registration struct {
	id      uint64
	handler Handler
}

// Subscription is returned by Subscribe and removes its handler on Cancel.
type Subscription struct {
	bus       *Bus
	eventType Type
	id        uint64
}

// Cancel removes the subscribed handler. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.eventType, s.id)
}

// Bus dispatches events synchronously to subscribed handlers, in
// subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{bus: b, eventType: eventType, id: id}
}

func (b *Bus) remove(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine and may subscribe or cancel without deadlocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	handlers := make([]Handler, len(regs))
	for i, r := range regs {
		handlers[i] = r.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// ChunkEvent reports a newly populated chunk.
type ChunkEvent struct {
	BaseEvent
	X         int
	Y         int
	Asteroids int
}

// NewChunkEvent creates a ChunkPopulated event
func NewChunkEvent(source interface{}, x, y, asteroids int) *ChunkEvent {
	return &ChunkEvent{
		BaseEvent: BaseEvent{EventType: ChunkPopulated, Source: source},
		X:         x,
		Y:         y,
		Asteroids: asteroids,
	}
}

// BodyEvent carries the state of a body at the time of the event.
type BodyEvent struct {
	BaseEvent
	Handle     uint64
	Kind       string
	Scale      float64
	Sturdiness float64
}

// NewBodyEvent creates a body event of the given type
func NewBodyEvent(eventType Type, source interface{}, handle uint64, kind string, scale, sturdiness float64) *BodyEvent {
	return &BodyEvent{
		BaseEvent:  BaseEvent{EventType: eventType, Source: source},
		Handle:     handle,
		Kind:       kind,
		Scale:      scale,
		Sturdiness: sturdiness,
	}
}

// DamageEvent reports one side of a contact losing sturdiness.
type DamageEvent struct {
	BaseEvent
	Handle uint64
	Other  uint64
	Before float64
	After  float64
}

// NewDamageEvent creates a BodyDamaged event
func NewDamageEvent(source interface{}, handle, other uint64, before, after float64) *DamageEvent {
	return &DamageEvent{
		BaseEvent: BaseEvent{EventType: BodyDamaged, Source: source},
		Handle:    handle,
		Other:     other,
		Before:    before,
		After:     after,
	}
}

// FragmentEvent reports a destroyed asteroid and the daughters it left.
type FragmentEvent struct {
	BaseEvent
	Parent    uint64
	Daughters []uint64
}

// NewFragmentEvent creates an AsteroidFragmented event
func NewFragmentEvent(source interface{}, parent uint64, daughters []uint64) *FragmentEvent {
	return &FragmentEvent{
		BaseEvent: BaseEvent{EventType: AsteroidFragmented, Source: source},
		Parent:    parent,
		Daughters: daughters,
	}
}
