package display

import (
	"testing"

	"focusflow/internal/core/timer"

	"github.com/stretchr/testify/assert"
)

func TestRenderRunningPomodoro(t *testing.T) {
	view := Render(timer.Status{
		Phase:                timer.PhaseRunning,
		PomodoroEnabled:      true,
		CurrentCycle:         2,
		TotalCycles:          4,
		RemainingSeconds:     750,
		TotalSecondsForPhase: 1500,
		ProgressPercentage:   50,
	})
	assert.Equal(t, View{Title: "Focus", Clock: "12:30", Progress: 0.5, Cycle: "Cycle 2 of 4", Action: "Pause"}, view)
}

func TestRenderPausedBreak(t *testing.T) {
	view := Render(timer.Status{
		Phase:            timer.PhasePaused,
		PomodoroEnabled:  true,
		IsBreak:          true,
		CurrentCycle:     1,
		TotalCycles:      2,
		RemainingSeconds: 3661,
	})
	assert.Equal(t, "Break (paused)", view.Title)
	assert.Equal(t, "01:01:01", view.Clock)
	assert.Equal(t, "Resume", view.Action)
}

func TestRenderIdleAndComplete(t *testing.T) {
	idle := Render(timer.Status{Phase: timer.PhaseIdle, RemainingSeconds: 1500})
	assert.Equal(t, "Focus", idle.Title)
	assert.Equal(t, "Start", idle.Action)
	assert.Empty(t, idle.Cycle)

	done := Render(timer.Status{Phase: timer.PhaseCompleted, RemainingSeconds: 0, ProgressPercentage: 100})
	assert.Equal(t, "Session complete", done.Title)
	assert.Equal(t, "00:00", done.Clock)
	assert.Equal(t, 1.0, done.Progress)
	assert.Equal(t, "Start again", done.Action)
}
