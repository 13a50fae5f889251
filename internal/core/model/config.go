package model

import "time"

// Duration bounds applied to every duration entering the timer engine.
const (
	MinDuration = time.Minute
	MaxDuration = 99 * time.Hour
)

// PomodoroConfig defines the focus/break cycle.
type PomodoroConfig struct {
	Focus  time.Duration
	Break  time.Duration
	Cycles int
}

// TimerConfiguration contains the settings for a single run of the timer engine.
type TimerConfiguration struct {
	// Duration is the total length of a plain (non-Pomodoro) run.
	Duration        time.Duration
	PomodoroEnabled bool
	Pomodoro        PomodoroConfig
}

// FormInput is the minute-based configuration submitted by a settings form.
type FormInput struct {
	DurationMinutes int
	FocusMinutes    int
	BreakMinutes    int
	Cycles          int
	PomodoroEnabled bool
}

// TimerConfiguration converts form minutes into a TimerConfiguration.
func (input FormInput) TimerConfiguration() TimerConfiguration {
	return TimerConfiguration{
		Duration:        time.Duration(input.DurationMinutes) * time.Minute,
		PomodoroEnabled: input.PomodoroEnabled,
		Pomodoro: PomodoroConfig{
			Focus:  time.Duration(input.FocusMinutes) * time.Minute,
			Break:  time.Duration(input.BreakMinutes) * time.Minute,
			Cycles: input.Cycles,
		},
	}
}

// ClampDuration truncates value to whole seconds and bounds it to [min, max].
func ClampDuration(value, min, max time.Duration) time.Duration {
	value = value.Truncate(time.Second)
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
