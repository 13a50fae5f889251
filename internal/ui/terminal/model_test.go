package terminal

import (
	"testing"

	"focusflow/internal/core/timer"
	"focusflow/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	calls  []string
	status *timer.Status
}

func (s *fakeSession) Start() {
	s.calls = append(s.calls, "start")
	s.status.Phase = timer.PhaseRunning
}

func (s *fakeSession) Pause() {
	s.calls = append(s.calls, "pause")
	s.status.Phase = timer.PhasePaused
}

func (s *fakeSession) Resume() {
	s.calls = append(s.calls, "resume")
	s.status.Phase = timer.PhaseRunning
}

func (s *fakeSession) End() <-chan struct{} {
	s.calls = append(s.calls, "end")
	s.status.Phase = timer.PhaseIdle
	return closed()
}

func (s *fakeSession) Reset() <-chan struct{} {
	s.calls = append(s.calls, "reset")
	s.status.Phase = timer.PhaseIdle
	return closed()
}

func (s *fakeSession) Describe() string  { return "Focus for 25m 0s." }
func (s *fakeSession) ModeLabel() string { return "Pomodoro Mode" }

type fakeEngine struct{ status *timer.Status }

func (e fakeEngine) Status() timer.Status { return *e.status }

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func newModel(events <-chan timer.Event) (Model, *fakeSession, *timer.Status) {
	status := &timer.Status{
		Phase:                timer.PhaseIdle,
		PomodoroEnabled:      true,
		CurrentCycle:         1,
		TotalCycles:          4,
		RemainingSeconds:     1500,
		TotalSecondsForPhase: 1500,
	}
	sess := &fakeSession{status: status}
	return New(sess, fakeEngine{status: status}, events), sess, status
}

func press(m tea.Model, keys string) tea.Model {
	var msg tea.KeyMsg
	if keys == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestToggleCyclesThroughPhases(t *testing.T) {
	m, sess, _ := newModel(nil)

	var model tea.Model = m
	model = press(model, " ")
	model = press(model, " ")
	model = press(model, " ")
	model = press(model, "s")
	model = press(model, "r")

	assert.Equal(t, []string{"start", "pause", "resume", "end", "reset"}, sess.calls)
	assert.Equal(t, timer.PhaseIdle, model.(Model).status.Phase)
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestEventRefreshesStatus(t *testing.T) {
	events := make(chan timer.Event, 1)
	m, _, status := newModel(events)

	status.Phase = timer.PhaseRunning
	status.RemainingSeconds = 1499
	events <- timer.Event{Type: timer.EventTick, Remaining: 1499}

	msg := m.Init()()
	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	view := next.View()
	assert.Contains(t, view, "24:59")
	assert.Contains(t, view, "Cycle 1 of 4")
	assert.Contains(t, view, "Pomodoro Mode")
}

func TestClosedEventsQuit(t *testing.T) {
	events := make(chan timer.Event)
	close(events)
	m, _, _ := newModel(events)

	msg := m.Init()()
	assert.IsType(t, eventsClosedMsg{}, msg)
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCompletionShown(t *testing.T) {
	m, _, status := newModel(nil)
	status.Phase = timer.PhaseCompleted

	next, _ := m.Update(CompleteMsg(session.Summary{Duration: "1h 40m", Cycles: 4}))
	assert.Contains(t, next.View(), "Session complete: 1h 40m of focus")
}

func TestPausedTitle(t *testing.T) {
	m, _, status := newModel(nil)
	status.Phase = timer.PhasePaused
	status.IsBreak = true

	next, _ := m.Update(EventMsg{})
	assert.Contains(t, next.View(), "Break (paused)")
}
