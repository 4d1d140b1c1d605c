package clock

// Clock is a tick-indexed scheduler. All timers are expressed in whole
// simulation ticks so replays of the same input sequence fire callbacks on
// the same ticks. Advance is called exactly once per tick by the world
// update; nothing here touches wall-clock time.
type Clock struct {
	now     int
	pending []*Timer
	nextSeq uint64
}

// Timer is a handle for a scheduled callback. A cancelled timer never fires.
type Timer struct {
	clock    *Clock
	deadline int
	interval int // 0 for one-shot
	seq      uint64
	fn       func()
	done     bool
}

// Group collects timers that share an owner lifetime (an entity, or one FSM
// state activation). Cancelling the group cancels every timer in it.
type Group struct {
	timers []*Timer
}

func New() *Clock {
	return &Clock{}
}

// Now returns the current tick.
func (c *Clock) Now() int {
	if c == nil {
		return 0
	}
	return c.now
}

// After schedules fn to run once, delay ticks from now. A delay of zero or
// less fires on the next Advance.
func (c *Clock) After(delay int, fn func()) *Timer {
	if c == nil || fn == nil {
		return nil
	}
	if delay < 1 {
		delay = 1
	}
	return c.schedule(c.now+delay, 0, fn)
}

// Every schedules fn to run every interval ticks until cancelled.
func (c *Clock) Every(interval int, fn func()) *Timer {
	if c == nil || fn == nil {
		return nil
	}
	if interval < 1 {
		interval = 1
	}
	return c.schedule(c.now+interval, interval, fn)
}

func (c *Clock) schedule(deadline, interval int, fn func()) *Timer {
	c.nextSeq++
	t := &Timer{
		clock:    c,
		deadline: deadline,
		interval: interval,
		seq:      c.nextSeq,
		fn:       fn,
	}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves to the next tick and fires every due timer in scheduling
// order. Callbacks may schedule or cancel timers; timers scheduled from a
// callback run no earlier than the following tick.
func (c *Clock) Advance() {
	if c == nil {
		return
	}
	c.now++

	due := make([]*Timer, 0, len(c.pending))
	rest := c.pending[:0]
	for _, t := range c.pending {
		if !t.done && t.deadline <= c.now {
			due = append(due, t)
		} else if !t.done {
			rest = append(rest, t)
		}
	}
	c.pending = rest

	// Fire in the order the timers were scheduled.
	for i := 1; i < len(due); i++ {
		for j := i; j > 0 && due[j].seq < due[j-1].seq; j-- {
			due[j], due[j-1] = due[j-1], due[j]
		}
	}

	for _, t := range due {
		if t.done {
			// cancelled by an earlier callback this tick
			continue
		}
		if t.interval > 0 {
			t.deadline = c.now + t.interval
			c.pending = append(c.pending, t)
		} else {
			t.done = true
		}
		t.fn()
	}
}

// Cancel stops the timer. It is safe to call on a nil handle, on an already
// fired one-shot, and more than once.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.done = true
}

// Stopped reports whether the timer has fired (one-shot) or been cancelled.
func (t *Timer) Stopped() bool {
	return t == nil || t.done
}

// Add enrolls a timer in the group. Nil timers are ignored.
func (g *Group) Add(t *Timer) {
	if g == nil || t == nil {
		return
	}
	g.timers = append(g.timers, t)
}

// Cancel cancels every timer in the group and empties it.
func (g *Group) Cancel() {
	if g == nil {
		return
	}
	for _, t := range g.timers {
		t.Cancel()
	}
	g.timers = nil
}
