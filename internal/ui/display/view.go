package display

import (
	"fmt"

	"focusflow/internal/core/timer"
)

// View is the text and progress shown by the countdown window.
type View struct {
	Title    string
	Clock    string
	Progress float64
	Cycle    string
	Action   string
}

// Render converts an engine snapshot into window content. Progress is 0..1.
func Render(status timer.Status) View {
	view := View{
		Title:    status.PhaseLabel(),
		Clock:    timer.FormatClock(status.RemainingSeconds),
		Progress: status.ProgressPercentage / 100,
		Action:   "Start",
	}
	if status.PomodoroEnabled {
		view.Cycle = fmt.Sprintf("Cycle %d of %d", status.CurrentCycle, status.TotalCycles)
	}

	switch status.Phase {
	case timer.PhaseRunning:
		view.Action = "Pause"
	case timer.PhasePaused:
		view.Title += " (paused)"
		view.Action = "Resume"
	case timer.PhaseCompleted:
		view.Title = "Session complete"
		view.Clock = timer.FormatClock(0)
		view.Progress = 1
		view.Action = "Start again"
	}
	return view
}
