// Package timertest provides a manually advanced clock for timer tests.
package timertest

import (
	"sort"
	"sync"
	"time"

	"focusflow/internal/core/timer"
)

// Clock is a fake timer.Clock. Time only moves when Advance is called.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *Clock
	at      time.Time
	fn      func()
	stopped bool
}

// New returns a Clock starting at start.
func New(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the fake current time.
func (clock *Clock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// AfterFunc schedules fn to run once the clock reaches now+d.
func (clock *Clock) AfterFunc(d time.Duration, fn func()) timer.Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	t := &fakeTimer{clock: clock, at: clock.now.Add(d), fn: fn}
	clock.timers = append(clock.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that became due,
// in deadline order. Timers scheduled while firing wait for the next Advance,
// so a large step behaves like a single late evaluation.
func (clock *Clock) Advance(d time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(d)
	var due, waiting []*fakeTimer
	for _, t := range clock.timers {
		switch {
		case t.stopped:
		case !t.at.After(clock.now):
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	clock.timers = waiting
	clock.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		clock.mu.Lock()
		stopped := t.stopped
		t.stopped = true
		clock.mu.Unlock()
		if !stopped {
			t.fn()
		}
	}
}

// Step advances the clock one second at a time, n times.
func (clock *Clock) Step(n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
	}
}

// Pending returns the number of scheduled timers that have not fired.
func (clock *Clock) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	count := 0
	for _, t := range clock.timers {
		if !t.stopped {
			count++
		}
	}
	return count
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
