// Package clock abstracts timer operations so debounce behavior can be
// tested deterministically. Production code injects Real(); tests inject
// NewFake() and drive time with Advance.
package clock

import "time"

// Clock is the timer surface the controllers depend on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f. The returned Timer
	// cancels the pending call with Stop.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled call that can be cancelled.
type Timer struct {
	stop func() bool
}

// Stop prevents the timer from firing. Returns false if the timer already
// fired or was stopped.
func (t *Timer) Stop() bool { return t.stop() }
