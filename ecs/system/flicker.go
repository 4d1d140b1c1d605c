package system

import (
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
)

// FlickerSystem counts down damage-flicker spans. Spans finish
// independently; the component is removed once the last span runs out.
type FlickerSystem struct{}

func NewFlickerSystem() *FlickerSystem {
	return &FlickerSystem{}
}

func (s *FlickerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.FlickerComponent, func(e ecs.Entity, f *component.Flicker) {
		kept := f.Spans[:0]
		for i := range f.Spans {
			span := f.Spans[i]
			if span.Interval <= 0 {
				span.Interval = 1
			}
			span.Timer++
			if span.Timer >= span.Interval {
				span.Timer = 0
				span.On = !span.On
				span.Frames -= span.Interval
			}
			if span.Frames > 0 {
				kept = append(kept, span)
			}
		}
		f.Spans = kept
		if len(f.Spans) == 0 {
			ecs.Remove(w, e, component.FlickerComponent)
		}
	})
}
