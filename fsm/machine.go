package fsm

import (
	"log"

	"github.com/milk9111/puffball/clock"
)

type stateDef struct {
	enter  func()
	update func()
	exit   func()
}

// Machine is a named-state machine driving one entity's discrete behavior.
// The legal state set is fixed at construction; a request to enter a name
// outside that set is ignored. Timers started through the machine while a
// state is active are cancelled the moment that state is exited, so a stale
// callback can never fire into a later state.
//
// Machines are single-threaded; all calls happen inside the tick loop.
type Machine struct {
	name    string
	states  map[string]*stateDef
	initial string
	current string
	started bool

	clock *clock.Clock
	group clock.Group

	// A transition requested while another is resolving (an enter callback
	// calling Enter again) is queued and applied before Enter returns,
	// never applied recursively.
	resolving bool
	queue     []string
}

// New declares a machine with its legal state set. The machine is not in any
// state until Start is called. name is used only for diagnostics.
func New(name string, clk *clock.Clock, initial string, states ...string) *Machine {
	m := &Machine{
		name:    name,
		states:  make(map[string]*stateDef, len(states)+1),
		initial: initial,
		clock:   clk,
	}
	m.states[initial] = &stateDef{}
	for _, s := range states {
		if _, ok := m.states[s]; !ok {
			m.states[s] = &stateDef{}
		}
	}
	return m
}

// OnEnter sets the enter callback for a declared state.
func (m *Machine) OnEnter(state string, fn func()) *Machine {
	if def := m.def(state); def != nil {
		def.enter = fn
	}
	return m
}

// OnUpdate sets the per-tick callback for a declared state.
func (m *Machine) OnUpdate(state string, fn func()) *Machine {
	if def := m.def(state); def != nil {
		def.update = fn
	}
	return m
}

// OnExit sets the exit callback for a declared state.
func (m *Machine) OnExit(state string, fn func()) *Machine {
	if def := m.def(state); def != nil {
		def.exit = fn
	}
	return m
}

func (m *Machine) def(state string) *stateDef {
	if m == nil {
		return nil
	}
	def, ok := m.states[state]
	if !ok {
		log.Printf("fsm: %s: handler registered for undeclared state %q", m.name, state)
		return nil
	}
	return def
}

// Start enters the initial state, firing its enter callback.
func (m *Machine) Start() {
	if m == nil || m.started {
		return
	}
	m.started = true
	m.Enter(m.initial)
}

// Current returns the active state name, or "" before Start.
func (m *Machine) Current() string {
	if m == nil {
		return ""
	}
	return m.current
}

// Is reports whether the active state is state.
func (m *Machine) Is(state string) bool {
	return m != nil && m.current == state
}

// Enter transitions to a declared state: the current state's exit callback
// fires, its pending timers are cancelled, then the new state's enter
// callback fires. Entering an undeclared name leaves the machine unchanged
// and fires nothing.
func (m *Machine) Enter(state string) {
	if m == nil {
		return
	}
	if _, ok := m.states[state]; !ok {
		log.Printf("fsm: %s: ignoring transition to undeclared state %q", m.name, state)
		return
	}
	m.queue = append(m.queue, state)
	if m.resolving {
		return
	}
	m.resolving = true
	for len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.apply(next)
	}
	m.resolving = false
}

func (m *Machine) apply(state string) {
	if cur, ok := m.states[m.current]; ok && m.current != "" {
		if cur.exit != nil {
			cur.exit()
		}
	}
	// Cancel after exit so timers started by the exit callback die too.
	m.group.Cancel()
	m.started = true
	m.current = state
	if def := m.states[state]; def.enter != nil {
		def.enter()
	}
}

// Update runs the active state's per-tick callback once.
func (m *Machine) Update() {
	if m == nil || m.current == "" {
		return
	}
	if def, ok := m.states[m.current]; ok && def.update != nil {
		def.update()
	}
}

// After schedules fn to run delay ticks from now, owned by the current state
// activation. Exiting the state (including re-entering the same state)
// cancels it.
func (m *Machine) After(delay int, fn func()) {
	if m == nil || m.clock == nil {
		return
	}
	m.group.Add(m.clock.After(delay, fn))
}

// Every schedules a repeating timer owned by the current state activation.
func (m *Machine) Every(interval int, fn func()) {
	if m == nil || m.clock == nil {
		return
	}
	m.group.Add(m.clock.Every(interval, fn))
}

// Stop exits the current state (firing its exit callback and cancelling its
// timers) without entering another. Used when the owning entity is destroyed.
func (m *Machine) Stop() {
	if m == nil || m.current == "" {
		return
	}
	if def, ok := m.states[m.current]; ok && def.exit != nil {
		def.exit()
	}
	m.group.Cancel()
	m.current = ""
	m.started = false
}
