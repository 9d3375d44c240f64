package clock

import (
	"sync"
	"time"
)

// Fake is a Clock whose time only moves when Advance is called. Due
// callbacks run synchronously inside Advance, in deadline order, which
// makes debounce tests deterministic.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	seq     int
	at      time.Time
	f       func()
	fired   bool
	stopped bool
}

// NewFake returns a Fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) *Timer {
	c.mu.Lock()
	ft := &fakeTimer{seq: c.seq, at: c.now.Add(d), f: f}
	c.seq++
	c.pending = append(c.pending, ft)
	c.mu.Unlock()

	return &Timer{stop: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if ft.fired || ft.stopped {
			return false
		}
		ft.stopped = true
		return true
	}}
}

// Advance moves the clock forward by d, firing due timers in deadline
// order. The clock steps to each deadline before its callback runs, so a
// callback that schedules another timer sees the time it would see with a
// real clock; rescheduled timers fire too if their deadlines fall inside
// the advanced window.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		ft := c.nextDue(target)
		if ft == nil {
			return
		}
		ft.f()
	}
}

// nextDue pops the earliest unfired, unstopped timer due by target and
// steps the clock to its deadline. When none remains, the clock lands on
// target and nil is returned.
func (c *Fake) nextDue(target time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due *fakeTimer
	for _, ft := range c.pending {
		if ft.fired || ft.stopped || ft.at.After(target) {
			continue
		}
		if due == nil || ft.at.Before(due.at) || (ft.at.Equal(due.at) && ft.seq < due.seq) {
			due = ft
		}
	}
	if due == nil {
		c.now = target
		return nil
	}
	due.fired = true
	if due.at.After(c.now) {
		c.now = due.at
	}
	return due
}
