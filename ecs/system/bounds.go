package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

// BoundsSystem culls entities that leave the playable region. A player
// crossing the fall threshold restarts the scene, which is a gameplay
// event, not an error. Enemies and projectiles are destroyed quietly once
// past the horizontal margin or below the threshold.
type BoundsSystem struct {
	FallY float64
	MinX  float64
	MaxX  float64
}

func NewBoundsSystem(fallY, minX, maxX float64) *BoundsSystem {
	return &BoundsSystem{FallY: fallY, MinX: minX, MaxX: maxX}
}

func (s *BoundsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TagsComponent, func(e ecs.Entity, tags component.Tags) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}

		if tags.Has(component.TagPlayer) {
			if t.Y > s.FallY && w.Destroy(e) {
				w.Events().Push(ecs.Event{Type: ecs.EventSceneRestart})
			}
			return
		}

		if tags.Has(component.TagEnemy) || tags.Has(component.TagProjectile) {
			if t.Y > s.FallY || t.X < s.MinX || t.X > s.MaxX {
				w.Destroy(e)
			}
		}
	})
}
