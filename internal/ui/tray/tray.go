package tray

import (
	"fmt"

	"focusflow/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnTogglePause func()
	OnEnd         func()
	OnReset       func()
	OnShowTimer   func()
	OnOpenMusic   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	endItem    *fyne.MenuItem
	resetItem  *fyne.MenuItem
	musicItem  *fyne.MenuItem
	phase      timer.Phase
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		phase:     timer.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start focus session", func() { call(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { call(manager.callbacks.OnTogglePause) })
	manager.endItem = fyne.NewMenuItem("End session", func() { call(manager.callbacks.OnEnd) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	manager.musicItem = fyne.NewMenuItem("Open music", func() { call(manager.callbacks.OnOpenMusic) })

	manager.applyPhase()
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line.
func (manager *Manager) SetStatus(status timer.Status) {
	manager.statusItem.Label = StatusLine(status)
	if status.Phase != manager.phase {
		manager.phase = status.Phase
		manager.applyPhase()
	}
	manager.refreshMenu()
}

// SetMusicAvailable toggles the open-music item.
func (manager *Manager) SetMusicAvailable(available bool) {
	manager.musicItem.Disabled = !available
	manager.refreshMenu()
}

// StatusLine renders the tray status for a snapshot.
func StatusLine(status timer.Status) string {
	clock := timer.FormatClock(status.RemainingSeconds)
	cycles := ""
	if status.PomodoroEnabled {
		cycles = fmt.Sprintf(" · cycle %d/%d", status.CurrentCycle, status.TotalCycles)
	}
	switch status.Phase {
	case timer.PhaseRunning:
		return fmt.Sprintf("%s %s%s", status.PhaseLabel(), clock, cycles)
	case timer.PhasePaused:
		return fmt.Sprintf("Paused %s%s", clock, cycles)
	case timer.PhaseCompleted:
		return "Session complete"
	default:
		return fmt.Sprintf("Ready %s", clock)
	}
}

func (manager *Manager) applyPhase() {
	active := manager.phase == timer.PhaseRunning || manager.phase == timer.PhasePaused
	manager.startItem.Disabled = active
	manager.pauseItem.Disabled = !active
	manager.endItem.Disabled = !active
	if manager.phase == timer.PhasePaused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("FocusFlow",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.endItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShowTimer) }),
		manager.musicItem,
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
