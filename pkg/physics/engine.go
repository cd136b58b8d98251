package physics

import "errors"

// Handle identifies a body owned by the physics engine.
type Handle uint64

// ErrUnknownBody is returned by engines for handles they do not hold.
var ErrUnknownBody = errors.New("unknown body")

// BodyState is the engine-owned kinematic state of a body.
type BodyState struct {
	Position        Vector2D
	Velocity        Vector2D
	Rotation        float64
	AngularVelocity float64
	Mass            float64
}

// BodySpec describes a body to create.
type BodySpec struct {
	Shape           Polygon
	Position        Vector2D
	Velocity        Vector2D
	Rotation        float64
	AngularVelocity float64

	// Mass overrides the mass the engine would derive from Shape. Zero means
	// derive it.
	Mass float64

	// Restitution is the collider's material restitution. Zero means the
	// engine default.
	Restitution float64
}

// Contact reports that two bodies began touching during the last step.
type Contact struct {
	A Handle
	B Handle
}

// BodyReader exposes body state by handle.
type BodyReader interface {
	Body(h Handle) (BodyState, bool)
	Restitution(h Handle) (float64, bool)
}

// BodyWriter creates and destroys bodies.
type BodyWriter interface {
	CreateBody(spec BodySpec) (Handle, error)
	DestroyBody(h Handle) error
}

// ContactSource yields the contact-start events of the last step. Each call
// drains the pending events.
type ContactSource interface {
	ContactStarts() []Contact
}

// Engine is the capability set the simulation core needs from a physics
// engine.
type Engine interface {
	BodyReader
	BodyWriter
	ContactSource
}

// Stepper is implemented by engines that the simulation may advance itself.
type Stepper interface {
	Step(dt float64)
}
