package terminal

import (
	"fmt"

	"focusflow/internal/core/timer"
	"focusflow/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxProgressWidth = 60

// Session is the subset of the session coordinator the terminal drives.
type Session interface {
	Start()
	Pause()
	Resume()
	End() <-chan struct{}
	Reset() <-chan struct{}
	Describe() string
	ModeLabel() string
}

// StatusSource reports the engine state.
type StatusSource interface {
	Status() timer.Status
}

// EventMsg carries an engine event into the program.
type EventMsg timer.Event

// CompleteMsg reports a finished session.
type CompleteMsg session.Summary

type eventsClosedMsg struct{}

// Model is the bubbletea countdown.
type Model struct {
	session     Session
	engine      StatusSource
	events      <-chan timer.Event
	keys        KeyMap
	help        help.Model
	progress    progress.Model
	status      timer.Status
	description string
	summary     *session.Summary
	quitting    bool
}

// New creates the countdown model. events is usually engine.Subscribe.
func New(sess Session, engine StatusSource, events <-chan timer.Event) Model {
	return Model{
		session:     sess,
		engine:      engine,
		events:      events,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		status:      engine.Status(),
		description: sess.Describe(),
	}
}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > maxProgressWidth {
			width = maxProgressWidth
		}
		if width > 0 {
			m.progress.Width = width
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			switch m.status.Phase {
			case timer.PhaseRunning:
				m.session.Pause()
			case timer.PhasePaused:
				m.session.Resume()
			default:
				m.summary = nil
				m.session.Start()
			}
		case key.Matches(msg, m.keys.Stop):
			m.session.End()
		case key.Matches(msg, m.keys.Reset):
			m.summary = nil
			m.session.Reset()
		default:
			return m, nil
		}
		m.refresh()
		return m, nil

	case EventMsg:
		m.refresh()
		return m, waitForEvent(m.events)

	case CompleteMsg:
		summary := session.Summary(msg)
		m.summary = &summary
		m.refresh()
		return m, nil

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) refresh() {
	m.status = m.engine.Status()
	m.description = m.session.Describe()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := focusStyle
	if m.status.PomodoroEnabled && m.status.IsBreak {
		titleStyle = breakStyle
	}
	title := m.status.PhaseLabel()
	if m.status.Phase == timer.PhasePaused {
		title += " (paused)"
	}

	lines := []string{
		titleStyle.Render(title) + "  " + mutedStyle.Render(m.session.ModeLabel()),
		clockStyle.Render(timer.FormatClock(m.status.RemainingSeconds)),
		m.progress.ViewAs(m.status.ProgressPercentage / 100),
	}
	if m.status.PomodoroEnabled {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Cycle %d of %d", m.status.CurrentCycle, m.status.TotalCycles)))
	}
	lines = append(lines, "", m.description)
	if m.summary != nil {
		lines = append(lines, "", doneStyle.Render(fmt.Sprintf("Session complete: %s of focus", m.summary.Duration)))
	}
	lines = append(lines, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
