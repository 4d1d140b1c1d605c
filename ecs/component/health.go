package component

// Health is a simple hit counter.
type Health struct {
	Initial int
	Current int
}

var HealthComponent = NewComponent[*Health]()

// FlickerSpan is one damage-flicker countdown. Frames is the remaining
// lifetime in ticks, Interval the half-period of the visibility toggle.
type FlickerSpan struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

// Flicker holds the active flicker spans for an entity. Spans run to
// completion independently; overlapping hits stack a second span instead of
// resetting the first.
type Flicker struct {
	Spans []FlickerSpan
}

// Visible reports whether the sprite should draw this tick: hidden whenever
// any active span is in its off phase.
func (f *Flicker) Visible() bool {
	if f == nil {
		return true
	}
	for _, s := range f.Spans {
		if !s.On {
			return false
		}
	}
	return true
}

var FlickerComponent = NewComponent[*Flicker]()

// Animator carries the name of the animation the behavior layer last
// requested. Rendering is an external collaborator; this is only the
// trigger point.
type Animator struct {
	Current string
}

var AnimatorComponent = NewComponent[*Animator]()

// Exit marks a region that transitions the game to the next scene on player
// contact.
type Exit struct{}

var ExitComponent = NewComponent[Exit]()
