package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

// AISystem runs each enemy machine's per-tick update. Timer-driven
// transitions (patrol leg changes, jump delays) fire during the clock
// advance; this only services the active state's update callback.
type AISystem struct{}

func NewAISystem() *AISystem {
	return &AISystem{}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PatrollerComponent, func(e ecs.Entity, p *component.Patroller) {
		p.Machine.Update()
	})

	ecs.ForEach(w, component.JumperComponent, func(e ecs.Entity, j *component.Jumper) {
		j.Machine.Update()
	})
}
