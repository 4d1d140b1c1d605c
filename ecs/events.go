package ecs

// Event is a world-level event consumed by the scene orchestrator after the
// tick's systems have run.
type Event struct {
	Type string
	Data any
}

// Scene event types.
const (
	// EventSceneRestart requests a restart of the active scene (player
	// death or out-of-bounds fall).
	EventSceneRestart = "scene_restart"
	// EventSceneNext requests a transition to the named next scene. Data
	// carries the scene name.
	EventSceneNext = "scene_next"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
