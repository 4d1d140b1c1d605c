package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

const (
	flickerFrames   = 48
	flickerInterval = 4
)

// RegisterRules wires the collision rules onto the world router: capture
// zone flagging, contact damage and capture, projectile kills, and the exit
// transition. nextScene is the opaque scene name pushed on exit contact.
//
// Every destructive handler checks the tombstone first, so an entity
// claimed by two rules in one tick is destroyed exactly once.
func RegisterRules(w *ecs.World, nextScene string) {
	r := w.Router()

	r.OnBegin(component.TagCapture, component.TagEnemy, func(w *ecs.World, zone, enemy ecs.Entity) {
		if w.Destroyed(enemy) {
			return
		}
		// The zone collider is only active while the player is Inhaling,
		// so this edge is exactly the inhalable entry. Add cannot fail
		// past the tombstone check above.
		_ = ecs.Add(w, enemy, component.InhalableComponent, component.Inhalable{})
	})

	r.OnEnd(component.TagCapture, component.TagEnemy, func(w *ecs.World, zone, enemy ecs.Entity) {
		if !ecs.Remove(w, enemy, component.InhalableComponent) {
			return
		}
		if w.Destroyed(enemy) {
			return
		}
		// The pull stops with the flag. Flyers get their cruise speed
		// back; everything else stops and lets its own state drive.
		if f, ok := ecs.Get(w, enemy, component.FlyerComponent); ok {
			ecs.SetVelocityX(w, enemy, f.Speed)
			return
		}
		ecs.SetVelocityX(w, enemy, 0)
	})

	r.OnBegin(component.TagPlayer, component.TagEnemy, func(w *ecs.World, player, enemy ecs.Entity) {
		if w.Destroyed(player) || w.Destroyed(enemy) {
			return
		}
		p, ok := ecs.Get(w, player, component.PlayerComponent)
		if !ok {
			return
		}

		if ecs.Has(w, enemy, component.InhalableComponent) {
			if p.Machine.Is(component.PlayerInhaling) {
				// First qualifying contact of the session: swallow.
				w.Destroy(enemy)
				p.Machine.Enter(component.PlayerFull)
			}
			// An enemy still flagged from the pull is never a damage
			// source, even if it arrives after the mouth is full.
			return
		}

		damagePlayer(w, player)
	})

	r.OnBegin(component.TagProjectile, component.TagEnemy, func(w *ecs.World, projectile, enemy ecs.Entity) {
		if w.Destroyed(projectile) || w.Destroyed(enemy) {
			return
		}
		w.Destroy(enemy)
		w.Destroy(projectile)
	})

	r.OnBegin(component.TagPlayer, component.TagExit, func(w *ecs.World, player, exit ecs.Entity) {
		if w.Destroyed(player) {
			return
		}
		w.Events().Push(ecs.Event{Type: ecs.EventSceneNext, Data: nextScene})
	})
}

func damagePlayer(w *ecs.World, player ecs.Entity) {
	h, ok := ecs.Get(w, player, component.HealthComponent)
	if !ok {
		return
	}
	h.Current--

	f, ok := ecs.Get(w, player, component.FlickerComponent)
	if !ok {
		f = &component.Flicker{}
		_ = ecs.Add(w, player, component.FlickerComponent, f)
	}
	f.Spans = append(f.Spans, component.FlickerSpan{
		Frames:   flickerFrames,
		Interval: flickerInterval,
		On:       true,
	})

	if h.Current <= 0 && w.Destroy(player) {
		w.Events().Push(ecs.Event{Type: ecs.EventSceneRestart})
	}
}
