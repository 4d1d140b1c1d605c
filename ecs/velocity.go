package ecs

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/puffball/ecs/component"
)

// VelocityOf reads an entity's velocity from its dynamic body if it has
// one, else from its kinematic Velocity component.
func VelocityOf(w *World, e Entity) (x, y float64) {
	if b, ok := Get(w, e, component.PhysicsBodyComponent); ok && b.Body != nil {
		v := b.Body.Velocity()
		return v.X, v.Y
	}
	if v, ok := Get(w, e, component.VelocityComponent); ok {
		return v.X, v.Y
	}
	return 0, 0
}

// SetVelocity writes an entity's velocity, body or kinematic.
func SetVelocity(w *World, e Entity, x, y float64) {
	if b, ok := Get(w, e, component.PhysicsBodyComponent); ok && b.Body != nil {
		b.Body.SetVelocityVector(cp.Vector{X: x, Y: y})
		return
	}
	if v, ok := Get(w, e, component.VelocityComponent); ok {
		v.X = x
		v.Y = y
	}
}

// SetVelocityX writes the horizontal velocity, preserving vertical.
func SetVelocityX(w *World, e Entity, x float64) {
	_, y := VelocityOf(w, e)
	SetVelocity(w, e, x, y)
}

// SetVelocityY writes the vertical velocity, preserving horizontal.
func SetVelocityY(w *World, e Entity, y float64) {
	x, _ := VelocityOf(w, e)
	SetVelocity(w, e, x, y)
}
