package fsm

import (
	"testing"

	"github.com/milk9111/puffball/clock"
)

func TestUndeclaredStateIsIgnored(t *testing.T) {
	cases := []struct {
		name    string
		attempt string
	}{
		{"unknown_name", "swimming"},
		{"empty_name", ""},
		{"case_sensitive", "Idle"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl := clock.New()
			m := New("test", cl, "idle", "walk")
			calls := 0
			m.OnExit("idle", func() { calls++ })
			m.OnEnter("walk", func() { calls++ })
			m.Start()

			m.Enter(c.attempt)
			if m.Current() != "idle" {
				t.Fatalf("state changed to %q", m.Current())
			}
			if calls != 0 {
				t.Fatalf("callbacks fired %d times for an invalid transition", calls)
			}
		})
	}
}

func TestEnterFiresExitThenEnter(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "a", "b")
	var order []string
	m.OnEnter("a", func() { order = append(order, "enter_a") })
	m.OnExit("a", func() { order = append(order, "exit_a") })
	m.OnEnter("b", func() { order = append(order, "enter_b") })
	m.Start()
	m.Enter("b")

	want := []string{"enter_a", "exit_a", "enter_b"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestReentrantTransitionIsQueuedNotRecursive(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "a", "b", "c")
	var order []string
	m.OnEnter("b", func() {
		order = append(order, "enter_b")
		// requested mid-transition; must resolve after b fully enters
		m.Enter("c")
		order = append(order, "after_enter_call")
	})
	m.OnExit("b", func() { order = append(order, "exit_b") })
	m.OnEnter("c", func() { order = append(order, "enter_c") })
	m.Start()
	m.Enter("b")

	want := []string{"enter_b", "after_enter_call", "exit_b", "enter_c"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
	if m.Current() != "c" {
		t.Fatalf("expected final state c, got %q", m.Current())
	}
}

func TestStateTimersCancelledOnExit(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "idle", "move")
	fired := false
	m.OnEnter("idle", func() {
		m.After(3, func() { fired = true })
	})
	m.Start()

	m.Enter("move")
	for i := 0; i < 6; i++ {
		cl.Advance()
	}
	if fired {
		t.Fatal("timer owned by an exited state fired")
	}
}

func TestStateTimerDrivesTransition(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "idle", "move")
	m.OnEnter("idle", func() {
		m.After(2, func() { m.Enter("move") })
	})
	m.Start()

	cl.Advance()
	if m.Current() != "idle" {
		t.Fatalf("transitioned early on tick 1: %q", m.Current())
	}
	cl.Advance()
	if m.Current() != "move" {
		t.Fatalf("expected move on tick 2, got %q", m.Current())
	}
}

func TestUpdateRunsOncePerTickForActiveState(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "idle", "move")
	idleTicks, moveTicks := 0, 0
	m.OnUpdate("idle", func() { idleTicks++ })
	m.OnUpdate("move", func() { moveTicks++ })
	m.Start()

	for i := 0; i < 4; i++ {
		m.Update()
	}
	m.Enter("move")
	for i := 0; i < 3; i++ {
		m.Update()
	}
	if idleTicks != 4 || moveTicks != 3 {
		t.Fatalf("update counts idle=%d move=%d, want 4 and 3", idleTicks, moveTicks)
	}
}

func TestStopFiresExitAndCancelsTimers(t *testing.T) {
	cl := clock.New()
	m := New("test", cl, "idle")
	exited := false
	fired := false
	m.OnEnter("idle", func() { m.After(1, func() { fired = true }) })
	m.OnExit("idle", func() { exited = true })
	m.Start()
	m.Stop()
	cl.Advance()

	if !exited {
		t.Fatal("exit callback did not fire on Stop")
	}
	if fired {
		t.Fatal("timer fired after Stop")
	}
	if m.Current() != "" {
		t.Fatalf("expected no current state, got %q", m.Current())
	}
}
