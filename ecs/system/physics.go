package system

import (
	"github.com/milk9111/puffball/common"
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

// PhysicsSystem advances the simulation one fixed step: the Chipmunk space
// for dynamic bodies, plain integration for kinematic entities, then syncs
// transforms and decays ground-contact grace.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	const dt = 1.0 / common.TPS

	if pw := w.Physics(); pw != nil {
		pw.Step(dt)
	}

	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, b *component.PhysicsBody) {
		if b.Body == nil {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		pos := b.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})

	ecs.ForEach(w, component.VelocityComponent, func(e ecs.Entity, v *component.Velocity) {
		if ecs.Has(w, e, component.PhysicsBodyComponent) {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		t.X += v.X * dt
		t.Y += v.Y * dt
	})

	ecs.ForEach(w, component.CollisionStateComponent, func(e ecs.Entity, cs *component.CollisionState) {
		if cs.GroundGrace > 0 {
			cs.GroundGrace--
			cs.Grounded = true
			return
		}
		cs.Grounded = false
	})
}

// ClockSystem advances the tick clock, firing due timers. It runs after
// collision dispatch so timer continuations observe this tick's events.
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Clock().Advance()
}

// CollisionSystem runs the router sweep, dispatching edge-triggered overlap
// events.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Router().Sweep(w)
}
