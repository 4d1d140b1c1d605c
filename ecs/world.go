package ecs

import (
	"github.com/milk9111/puffball/clock"
	"github.com/milk9111/puffball/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, component storage, system order, the tick clock, and
// the deferred-destroy queue. All mutation happens inside the tick loop;
// there is no locking.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	systems  []System
	events   EventQueue
	clock    *clock.Clock

	physics *PhysicsWorld
	router  *Router

	// Deferred destroys: Destroy tombstones immediately so no handler acts
	// on a dead entity mid-tick, but component teardown waits until every
	// system for the tick has run.
	doomed    []Entity
	doomedSet map[entityID]bool
	cleanups  map[entityID][]func()
}

// NewWorld creates an empty world with its own tick clock.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*sparseSet),
		clock:     clock.New(),
		doomedSet: make(map[entityID]bool),
		cleanups:  make(map[entityID][]func()),
	}
}

// Clock returns the world tick clock.
func (w *World) Clock() *clock.Clock {
	return w.clock
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

// SetPhysics attaches a physics world.
func (w *World) SetPhysics(pw *PhysicsWorld) {
	w.physics = pw
}

// Physics returns the attached physics world, if any.
func (w *World) Physics() *PhysicsWorld {
	return w.physics
}

// Router returns the collision event router, creating it on first use.
func (w *World) Router() *Router {
	if w.router == nil {
		w.router = newRouter()
	}
	return w.router
}

// CreateEntity allocates a new live entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// Alive reports whether e is live and not yet marked for destruction.
func (w *World) Alive(e Entity) bool {
	return w.entities.alive(e) && !w.doomedSet[e.id()]
}

// Destroyed reports whether e has been destroyed or marked for destruction
// this tick. Destructive handlers check this before acting.
func (w *World) Destroyed(e Entity) bool {
	return !w.Alive(e)
}

// Destroy marks e for destruction. The mark is visible immediately through
// Destroyed; components are torn down and owned timers cancelled after the
// current tick's systems finish. Destroying an entity twice is a no-op.
func (w *World) Destroy(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	w.doomedSet[e.id()] = true
	w.doomed = append(w.doomed, e)
	return true
}

// OnDestroy registers a cleanup to run when e is torn down (FSM disposal,
// physics body removal, timer groups).
func (w *World) OnDestroy(e Entity, fn func()) {
	if fn == nil || !w.Alive(e) {
		return
	}
	w.cleanups[e.id()] = append(w.cleanups[e.id()], fn)
}

// OwnTimer ties a timer to e's lifetime.
func (w *World) OwnTimer(e Entity, t *clock.Timer) {
	if t == nil {
		return
	}
	w.OnDestroy(e, t.Cancel)
}

// Entities returns all live entities not marked for destruction.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.entities.gens))
	for id := 1; id < len(w.entities.gens); id++ {
		e := makeEntity(entityID(id), w.entities.gens[id])
		if w.Alive(e) {
			out = append(out, e)
		}
	}
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s != nil {
		w.systems = append(w.systems, s)
	}
}

// Update runs one tick: every system in order, then the deferred destroys.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
	w.applyDestroys()
}

func (w *World) applyDestroys() {
	for len(w.doomed) > 0 {
		// cleanups may destroy further entities; keep draining
		batch := w.doomed
		w.doomed = nil
		for _, e := range batch {
			if !w.entities.alive(e) {
				continue
			}
			id := e.id()
			for _, fn := range w.cleanups[id] {
				fn()
			}
			delete(w.cleanups, id)
			for _, store := range w.stores {
				store.remove(id)
			}
			w.entities.release(e)
			delete(w.doomedSet, id)
		}
	}
}

func (w *World) store(id component.ComponentID) *sparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}
