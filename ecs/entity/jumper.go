package entity

import (
	"fmt"

	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/fsm"
	"github.com/milk9111/puffball/prefabs"
)

// NewJumper spawns an enemy that waits on the ground, hops with one upward
// impulse, and idles again on the first tick it lands.
func NewJumper(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadJumperSpec()
	if err != nil {
		return 0, fmt.Errorf("jumper: load spec: %w", err)
	}

	e := w.CreateEntity()
	tags := component.NewTags(component.TagEnemy)
	if err := ecs.Add(w, e, component.TagsComponent, tags); err != nil {
		return 0, fmt.Errorf("jumper: add tags: %w", err)
	}
	t := &component.Transform{X: x, Y: y}
	if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
		return 0, fmt.Errorf("jumper: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	}); err != nil {
		return 0, fmt.Errorf("jumper: add collider: %w", err)
	}
	anim := &component.Animator{Current: "idle"}
	if err := ecs.Add(w, e, component.AnimatorComponent, anim); err != nil {
		return 0, fmt.Errorf("jumper: add animator: %w", err)
	}

	cs := &component.CollisionState{Grounded: true}
	if err := ecs.Add(w, e, component.CollisionStateComponent, cs); err != nil {
		return 0, fmt.Errorf("jumper: add collision state: %w", err)
	}

	jmp := &component.Jumper{
		IdleTicks: secondsToTicks(spec.IdleSeconds),
		JumpSpeed: spec.JumpSpeed,
	}

	m := fsm.New("jumper", w.Clock(), component.JumperIdle, component.JumperJump)
	m.OnEnter(component.JumperIdle, func() {
		anim.Current = "idle"
		m.After(jmp.IdleTicks, func() { m.Enter(component.JumperJump) })
	})
	m.OnEnter(component.JumperJump, func() {
		anim.Current = "jump"
		jmp.LeftGround = false
		ecs.SetVelocityY(w, e, -jmp.JumpSpeed)
	})
	m.OnUpdate(component.JumperJump, func() {
		// Landing counts only after the ground contact from before the
		// impulse has been observed gone, so lingering ground grace on the
		// launch tick cannot cut the jump short.
		if !cs.Grounded {
			jmp.LeftGround = true
			return
		}
		if jmp.LeftGround {
			m.Enter(component.JumperIdle)
		}
	})
	jmp.Machine = m

	if err := ecs.Add(w, e, component.JumperComponent, jmp); err != nil {
		return 0, fmt.Errorf("jumper: add jumper: %w", err)
	}

	if pw := w.Physics(); pw != nil {
		body := pw.AddBody(e, t, spec.Collider.Width, spec.Collider.Height, tags, true)
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, body); err != nil {
			return 0, fmt.Errorf("jumper: add physics body: %w", err)
		}
		pw.SetEntityState(e, cs)
		w.OnDestroy(e, func() { pw.RemoveBody(e, body) })
	} else {
		if err := ecs.Add(w, e, component.VelocityComponent, &component.Velocity{}); err != nil {
			return 0, fmt.Errorf("jumper: add velocity: %w", err)
		}
	}

	w.OnDestroy(e, m.Stop)
	m.Start()
	return e, nil
}
