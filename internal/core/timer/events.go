package timer

import (
	"errors"
	"time"
)

var (
	// ErrInvalidState indicates an operation that is not allowed while a run is active.
	ErrInvalidState = errors.New("invalid timer state")
	// ErrInvalidArgument indicates a malformed configuration.
	ErrInvalidArgument = errors.New("invalid timer argument")
)

// Phase represents the engine's run state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventComplete    EventType = "complete"
	EventStateChange EventType = "state_change"
)

// Event represents an engine update for subscribers.
type Event struct {
	Type      EventType
	Phase     Phase
	IsBreak   bool
	Cycle     int
	Remaining int
	Progress  float64
	At        time.Time
}

// Status is a point-in-time snapshot of the engine.
type Status struct {
	Phase                Phase
	PomodoroEnabled      bool
	IsBreak              bool
	CurrentCycle         int
	TotalCycles          int
	RemainingSeconds     int
	TotalSecondsForPhase int
	ProgressPercentage   float64
}

// PhaseLabel returns "Break" during a Pomodoro break and "Focus" otherwise.
func (status Status) PhaseLabel() string {
	if status.PomodoroEnabled && status.IsBreak {
		return "Break"
	}
	return "Focus"
}
