package entity

import (
	"fmt"

	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/prefabs"
)

// NewFlyer spawns a gliding enemy with a constant horizontal velocity. It
// has no machine; the bounds system destroys it once it leaves the play
// margin.
func NewFlyer(w *ecs.World, x, y, speed float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadFlyerSpec()
	if err != nil {
		return 0, fmt.Errorf("flyer: load spec: %w", err)
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TagsComponent, component.NewTags(component.TagEnemy)); err != nil {
		return 0, fmt.Errorf("flyer: add tags: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("flyer: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	}); err != nil {
		return 0, fmt.Errorf("flyer: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{X: speed}); err != nil {
		return 0, fmt.Errorf("flyer: add velocity: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimatorComponent, &component.Animator{Current: "fly"}); err != nil {
		return 0, fmt.Errorf("flyer: add animator: %w", err)
	}
	if err := ecs.Add(w, e, component.FlyerComponent, &component.Flyer{Speed: speed}); err != nil {
		return 0, fmt.Errorf("flyer: add flyer: %w", err)
	}
	return e, nil
}
