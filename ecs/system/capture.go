package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

// CaptureSystem keeps the capture zone attached to the player: positioned
// by facing, enabled only while Inhaling. It runs before the collision
// sweep so the zone's overlap edges reflect this tick's placement.
type CaptureSystem struct{}

func NewCaptureSystem() *CaptureSystem {
	return &CaptureSystem{}
}

func (s *CaptureSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent, func(e ecs.Entity, p *component.Player) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		dir := 1.0
		if p.FacingLeft {
			dir = -1
		}
		inhaling := p.Machine.Is(component.PlayerInhaling)

		ecs.ForEach(w, component.CaptureZoneComponent, func(ze ecs.Entity, z *component.CaptureZone) {
			if zt, ok := ecs.Get(w, ze, component.TransformComponent); ok {
				zt.X = t.X + dir*z.OffsetX
				zt.Y = t.Y + z.OffsetY
			}
			if zc, ok := ecs.Get(w, ze, component.ColliderComponent); ok {
				zc.Disabled = !inhaling
			}
		})
	})
}

// PullSystem drags flagged enemies toward the inhaling player at a fixed
// speed, against the facing direction. It runs after the enemy machines so
// the pull is the last velocity write of the tick, overriding whatever
// movement the enemy's own state issued.
type PullSystem struct{}

func NewPullSystem() *PullSystem {
	return &PullSystem{}
}

func (s *PullSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent, func(e ecs.Entity, p *component.Player) {
		if !p.Machine.Is(component.PlayerInhaling) {
			return
		}
		dir := 1.0
		if p.FacingLeft {
			dir = -1
		}
		ecs.ForEach(w, component.InhalableComponent, func(en ecs.Entity, _ component.Inhalable) {
			ecs.SetVelocityX(w, en, -dir*p.PullSpeed)
		})
	})
}
