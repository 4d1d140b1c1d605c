package entity

import (
	"fmt"

	"github.com/milk9111/puffball/common"
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/fsm"
	"github.com/milk9111/puffball/prefabs"
)

func secondsToTicks(seconds float64) int {
	return common.SecondsToTicks(seconds)
}

// NewPatroller spawns a walking enemy that idles briefly, then paces left
// and right forever with a fixed duration per leg.
func NewPatroller(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPatrollerSpec()
	if err != nil {
		return 0, fmt.Errorf("patroller: load spec: %w", err)
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TagsComponent, component.NewTags(component.TagEnemy)); err != nil {
		return 0, fmt.Errorf("patroller: add tags: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("patroller: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	}); err != nil {
		return 0, fmt.Errorf("patroller: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("patroller: add velocity: %w", err)
	}
	anim := &component.Animator{Current: "idle"}
	if err := ecs.Add(w, e, component.AnimatorComponent, anim); err != nil {
		return 0, fmt.Errorf("patroller: add animator: %w", err)
	}

	pat := &component.Patroller{
		MoveSpeed: spec.MoveSpeed,
		IdleTicks: secondsToTicks(spec.IdleSeconds),
		MoveTicks: secondsToTicks(spec.MoveSeconds),
	}

	m := fsm.New("patroller", w.Clock(), component.PatrollerIdle,
		component.PatrollerMoveLeft, component.PatrollerMoveRight)
	m.OnEnter(component.PatrollerIdle, func() {
		anim.Current = "idle"
		ecs.SetVelocityX(w, e, 0)
		m.After(pat.IdleTicks, func() { m.Enter(component.PatrollerMoveLeft) })
	})
	m.OnEnter(component.PatrollerMoveLeft, func() {
		anim.Current = "walk"
		m.After(pat.MoveTicks, func() { m.Enter(component.PatrollerMoveRight) })
	})
	m.OnUpdate(component.PatrollerMoveLeft, func() {
		ecs.SetVelocityX(w, e, -pat.MoveSpeed)
	})
	m.OnEnter(component.PatrollerMoveRight, func() {
		m.After(pat.MoveTicks, func() { m.Enter(component.PatrollerMoveLeft) })
	})
	m.OnUpdate(component.PatrollerMoveRight, func() {
		ecs.SetVelocityX(w, e, pat.MoveSpeed)
	})
	pat.Machine = m

	if err := ecs.Add(w, e, component.PatrollerComponent, pat); err != nil {
		return 0, fmt.Errorf("patroller: add patroller: %w", err)
	}

	w.OnDestroy(e, m.Stop)
	m.Start()
	return e, nil
}
