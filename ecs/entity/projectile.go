package entity

import (
	"fmt"

	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/prefabs"
)

// NewProjectile spawns a shot star at (x, y) with the given horizontal
// velocity. It destroys the first enemy it touches and itself with it.
func NewProjectile(w *ecs.World, x, y, vx float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("projectile: load spec: %w", err)
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TagsComponent, component.NewTags(component.TagProjectile)); err != nil {
		return 0, fmt.Errorf("projectile: add tags: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:  spec.Projectile.Width,
		Height: spec.Projectile.Height,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{X: vx}); err != nil {
		return 0, fmt.Errorf("projectile: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.ProjectileComponent, component.Projectile{}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}
	return e, nil
}

// NewExitRegion spawns a static region that transitions to the next scene
// on player contact.
func NewExitRegion(w *ecs.World, x, y, width, height float64) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TagsComponent, component.NewTags(component.TagExit)); err != nil {
		return 0, fmt.Errorf("exit: add tags: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("exit: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:  width,
		Height: height,
	}); err != nil {
		return 0, fmt.Errorf("exit: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.ExitComponent, component.Exit{}); err != nil {
		return 0, fmt.Errorf("exit: add exit: %w", err)
	}
	return e, nil
}
