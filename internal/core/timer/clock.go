package timer

import "time"

// Timer is a pending one-shot evaluation that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock provides the wall clock and one-shot scheduling used by the engine.
// Tests inject a fake implementation to control time.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
