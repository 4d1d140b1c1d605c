package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/ecs/entity"
)

// PlayerSystem applies the input snapshot to the player: horizontal
// movement and facing every tick regardless of the inhale machine's state,
// double jump on the jump edge, and the input-driven inhale transitions.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent, func(e ecs.Entity, p *component.Player) {
		input, ok := ecs.Get(w, e, component.InputComponent)
		if ok {
			s.move(w, e, p, input)
			s.inhale(w, e, p, input)
		}
		p.Machine.Update()
	})
}

func (s *PlayerSystem) move(w *ecs.World, e ecs.Entity, p *component.Player, input *component.Input) {
	ecs.SetVelocityX(w, e, input.MoveX*p.MoveSpeed)
	if input.MoveX > 0 {
		p.FacingLeft = false
	} else if input.MoveX < 0 {
		p.FacingLeft = true
	}

	cs, hasState := ecs.Get(w, e, component.CollisionStateComponent)
	if hasState && cs.Grounded {
		// Replenish on landing only. The grounded flag lingers through the
		// grace window, so gate on descent to keep a fresh jump's ascent
		// from refunding itself.
		if _, vy := ecs.VelocityOf(w, e); vy >= 0 {
			p.JumpsLeft = p.MaxJumps
		}
	}
	if input.JumpPressed && p.JumpsLeft > 0 {
		p.JumpsLeft--
		ecs.SetVelocityY(w, e, -p.JumpSpeed)
		if hasState {
			// The jump consumes the grace window.
			cs.Grounded = false
			cs.GroundGrace = 0
		}
	}
}

func (s *PlayerSystem) inhale(w *ecs.World, e ecs.Entity, p *component.Player, input *component.Input) {
	m := p.Machine
	switch {
	case m.Is(component.PlayerIdle):
		if input.InhalePressed {
			m.Enter(component.PlayerInhaling)
		}
	case m.Is(component.PlayerInhaling):
		if input.InhaleReleased {
			// no capture happened this session
			m.Enter(component.PlayerIdle)
		}
	case m.Is(component.PlayerFull):
		if input.InhaleReleased && !p.ShotFired {
			s.shoot(w, e, p)
		}
	}
}

func (s *PlayerSystem) shoot(w *ecs.World, e ecs.Entity, p *component.Player) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	dir := 1.0
	if p.FacingLeft {
		dir = -1
	}
	c, _ := ecs.Get(w, e, component.ColliderComponent)
	offset := 0.0
	if c != nil {
		offset = c.Width
	}
	if _, err := entity.NewProjectile(w, t.X+dir*offset, t.Y, dir*p.ShootSpeed); err != nil {
		return
	}
	p.ShotFired = true

	// The full appearance persists through the cooldown while the
	// projectile departs; the timer dies with the Full state if anything
	// else transitions first.
	m := p.Machine
	m.After(p.ShootCooldownTicks, func() {
		m.Enter(component.PlayerIdle)
	})
}
