package entity

import (
	"fmt"

	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/fsm"
	"github.com/milk9111/puffball/prefabs"
)

// NewPlayer spawns the player at the given position and wires its inhale
// machine. Movement input is not read until BindControls attaches an input
// snapshot component.
func NewPlayer(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	e := w.CreateEntity()
	tags := component.NewTags(component.TagPlayer)
	if err := ecs.Add(w, e, component.TagsComponent, tags); err != nil {
		return 0, fmt.Errorf("player: add tags: %w", err)
	}

	t := &component.Transform{X: x, Y: y}
	if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:   spec.Collider.Width,
		Height:  spec.Collider.Height,
		OffsetX: spec.Collider.OffsetX,
		OffsetY: spec.Collider.OffsetY,
	}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}

	hp := spec.Health
	if hp == 0 {
		hp = 3
	}
	if err := ecs.Add(w, e, component.HealthComponent, &component.Health{Initial: hp, Current: hp}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	anim := &component.Animator{Current: "idle"}
	if err := ecs.Add(w, e, component.AnimatorComponent, anim); err != nil {
		return 0, fmt.Errorf("player: add animator: %w", err)
	}

	cs := &component.CollisionState{}
	if err := ecs.Add(w, e, component.CollisionStateComponent, cs); err != nil {
		return 0, fmt.Errorf("player: add collision state: %w", err)
	}

	zone, zcol, err := newCaptureZone(w, spec)
	if err != nil {
		return 0, err
	}

	p := &component.Player{
		MoveSpeed:          spec.MoveSpeed,
		JumpSpeed:          spec.JumpSpeed,
		PullSpeed:          spec.PullSpeed,
		ShootSpeed:         spec.ShootSpeed,
		ShootCooldownTicks: secondsToTicks(spec.ShootCooldown),
		MaxJumps:           spec.MaxJumps,
		JumpsLeft:          spec.MaxJumps,
	}

	m := fsm.New("player", w.Clock(), component.PlayerIdle, component.PlayerInhaling, component.PlayerFull)
	m.OnEnter(component.PlayerIdle, func() {
		anim.Current = "idle"
	})
	m.OnEnter(component.PlayerInhaling, func() {
		zcol.Disabled = false
		anim.Current = "inhale"
	})
	m.OnExit(component.PlayerInhaling, func() {
		zcol.Disabled = true
	})
	m.OnEnter(component.PlayerFull, func() {
		anim.Current = "full"
		p.ShotFired = false
	})
	p.Machine = m

	if err := ecs.Add(w, e, component.PlayerComponent, p); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if pw := w.Physics(); pw != nil {
		body := pw.AddBody(e, t, spec.Collider.Width, spec.Collider.Height, tags, true)
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, body); err != nil {
			return 0, fmt.Errorf("player: add physics body: %w", err)
		}
		pw.SetEntityState(e, cs)
		w.OnDestroy(e, func() { pw.RemoveBody(e, body) })
	} else {
		if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("player: add velocity: %w", err)
		}
	}

	w.OnDestroy(e, m.Stop)
	w.OnDestroy(e, func() { w.Destroy(zone) })

	m.Start()
	return e, nil
}

func newCaptureZone(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, *component.Collider, error) {
	zone := w.CreateEntity()
	if err := ecs.Add(w, zone, component.TagsComponent, component.NewTags(component.TagCapture)); err != nil {
		return 0, nil, fmt.Errorf("player: add zone tags: %w", err)
	}
	if err := ecs.Add(w, zone, component.TransformComponent, &component.Transform{}); err != nil {
		return 0, nil, fmt.Errorf("player: add zone transform: %w", err)
	}
	zcol := &component.Collider{
		Width:    spec.Zone.Width,
		Height:   spec.Zone.Height,
		Disabled: true,
	}
	if err := ecs.Add(w, zone, component.ColliderComponent, zcol); err != nil {
		return 0, nil, fmt.Errorf("player: add zone collider: %w", err)
	}
	if err := ecs.Add(w, zone, component.CaptureZoneComponent, &component.CaptureZone{
		OffsetX: spec.Zone.OffsetX,
		OffsetY: spec.Zone.OffsetY,
	}); err != nil {
		return 0, nil, fmt.Errorf("player: add zone: %w", err)
	}
	return zone, zcol, nil
}

// BindControls attaches the input snapshot the input system writes each
// tick. Without it the player ignores all input.
func BindControls(w *ecs.World, player ecs.Entity) error {
	if err := ecs.Add(w, player, component.InputComponent, &component.Input{}); err != nil {
		return fmt.Errorf("player: bind controls: %w", err)
	}
	return nil
}
