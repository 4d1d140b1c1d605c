package clock

import "testing"

func advance(c *Clock, n int) {
	for i := 0; i < n; i++ {
		c.Advance()
	}
}

func TestAfterFiresOnDeadlineTick(t *testing.T) {
	cases := []struct {
		name  string
		delay int
		want  int // tick on which the callback should run
	}{
		{"one_tick", 1, 1},
		{"five_ticks", 5, 5},
		{"zero_clamps_to_next", 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl := New()
			firedAt := -1
			cl.After(c.delay, func() { firedAt = cl.Now() })
			advance(cl, c.want-1)
			if firedAt != -1 {
				t.Fatalf("fired early at tick %d", firedAt)
			}
			cl.Advance()
			if firedAt != c.want {
				t.Fatalf("expected fire at tick %d, got %d", c.want, firedAt)
			}
			advance(cl, 3)
			if firedAt != c.want {
				t.Fatalf("one-shot fired again, last at %d", firedAt)
			}
		})
	}
}

func TestCancelledTimerNeverFires(t *testing.T) {
	cl := New()
	fired := false
	timer := cl.After(2, func() { fired = true })
	timer.Cancel()
	advance(cl, 5)
	if fired {
		t.Fatal("cancelled timer fired")
	}
	if !timer.Stopped() {
		t.Fatal("cancelled timer should report stopped")
	}
	// double cancel is a no-op
	timer.Cancel()
}

func TestEveryRepeatsUntilCancelled(t *testing.T) {
	cl := New()
	ticks := []int{}
	timer := cl.Every(3, func() { ticks = append(ticks, cl.Now()) })
	advance(cl, 10)
	want := []int{3, 6, 9}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d fires, got %v", len(want), ticks)
	}
	for i, w := range want {
		if ticks[i] != w {
			t.Fatalf("fire %d at tick %d, want %d", i, ticks[i], w)
		}
	}
	timer.Cancel()
	advance(cl, 6)
	if len(ticks) != len(want) {
		t.Fatalf("repeating timer fired after cancel: %v", ticks)
	}
}

func TestGroupCancelStopsAllMembers(t *testing.T) {
	cl := New()
	var g Group
	count := 0
	g.Add(cl.After(1, func() { count++ }))
	g.Add(cl.After(2, func() { count++ }))
	g.Add(cl.Every(1, func() { count++ }))
	g.Cancel()
	advance(cl, 4)
	if count != 0 {
		t.Fatalf("group-cancelled timers fired %d times", count)
	}
}

func TestCallbackSchedulingRunsNextTickAtEarliest(t *testing.T) {
	cl := New()
	var order []string
	cl.After(1, func() {
		order = append(order, "outer")
		cl.After(1, func() { order = append(order, "inner") })
	})
	cl.Advance()
	if len(order) != 1 || order[0] != "outer" {
		t.Fatalf("inner callback ran on the same tick: %v", order)
	}
	cl.Advance()
	if len(order) != 2 || order[1] != "inner" {
		t.Fatalf("expected inner on following tick, got %v", order)
	}
}

func TestEarlierCallbackCanCancelLaterOne(t *testing.T) {
	cl := New()
	fired := false
	var second *Timer
	cl.After(1, func() { second.Cancel() })
	second = cl.After(1, func() { fired = true })
	cl.Advance()
	if fired {
		t.Fatal("timer fired despite cancellation earlier in the same tick")
	}
}
