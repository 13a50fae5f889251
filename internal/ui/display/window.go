package display

import (
	"fmt"
	"image/color"
	"strings"

	"focusflow/internal/core/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controls defines the handlers behind the window's buttons.
type Controls struct {
	OnStart  func()
	OnPause  func()
	OnResume func()
	OnEnd    func()
	OnVolume func(volume int)
}

var (
	focusColor = color.NRGBA{R: 167, G: 139, B: 250, A: 255}
	breakColor = color.NRGBA{R: 16, G: 185, B: 129, A: 255}
	clockColor = color.NRGBA{R: 249, G: 250, B: 251, A: 255}
)

// Window is the countdown display.
type Window struct {
	window      fyne.Window
	controls    Controls
	title       *canvas.Text
	clock       *canvas.Text
	progress    *widget.ProgressBar
	cycle       *widget.Label
	description *widget.Label
	template    *widget.Label
	primary     *widget.Button
	end         *widget.Button
	volume      *widget.Slider
	volumeText  *widget.Label
	phase       timer.Phase
	// syncingVolume suppresses OnVolume while the slider follows the player.
	syncingVolume bool
}

// New creates the countdown window.
func New(app fyne.App, controls Controls) *Window {
	window := app.NewWindow("FocusFlow")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	title := canvas.NewText("Focus", focusColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 20

	clock := canvas.NewText("--:--", clockColor)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = 56

	display := &Window{
		window:      window,
		controls:    controls,
		title:       title,
		clock:       clock,
		progress:    widget.NewProgressBar(),
		cycle:       widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		description: widget.NewLabel(""),
		template:    widget.NewLabel(""),
		volume:      widget.NewSlider(0, 100),
		volumeText:  widget.NewLabel(""),
		phase:       timer.PhaseIdle,
	}
	display.description.Wrapping = fyne.TextWrapWord
	display.template.Wrapping = fyne.TextWrapWord
	display.progress.TextFormatter = func() string { return "" }

	display.primary = widget.NewButton("Start", display.handlePrimary)
	display.primary.Importance = widget.HighImportance
	display.end = widget.NewButton("End session", func() { call(display.controls.OnEnd) })
	display.end.Disable()

	display.volume.Step = 1
	display.volume.OnChanged = func(value float64) {
		display.volumeText.SetText(fmt.Sprintf("%d%%", int(value)))
		if !display.syncingVolume && display.controls.OnVolume != nil {
			display.controls.OnVolume(int(value))
		}
	}

	content := container.NewVBox(
		title,
		clock,
		display.progress,
		display.cycle,
		display.description,
		display.template,
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), display.volumeText, display.volume),
		container.NewHBox(layout.NewSpacer(), display.primary, display.end, layout.NewSpacer()),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(380, 420))
	window.SetCloseIntercept(window.Hide)

	return display
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
	display.window.RequestFocus()
}

// Hide hides the window.
func (display *Window) Hide() {
	display.window.Hide()
}

// Update renders an engine snapshot. Safe to call from any goroutine.
func (display *Window) Update(status timer.Status) {
	view := Render(status)
	fyne.Do(func() {
		display.phase = status.Phase
		display.title.Text = view.Title
		display.title.Color = focusColor
		if status.PomodoroEnabled && status.IsBreak {
			display.title.Color = breakColor
		}
		display.title.Refresh()
		display.clock.Text = view.Clock
		display.clock.Refresh()
		display.progress.SetValue(view.Progress)
		display.cycle.SetText(view.Cycle)
		display.primary.SetText(view.Action)

		if status.Phase == timer.PhaseRunning || status.Phase == timer.PhasePaused {
			display.end.Enable()
		} else {
			display.end.Disable()
		}
	})
}

// SetDescription updates the session description line.
func (display *Window) SetDescription(text string) {
	fyne.Do(func() {
		display.description.SetText(text)
	})
}

// SetTemplate shows the focus template title and tips.
func (display *Window) SetTemplate(title string, tips []string) {
	text := ""
	if title != "" {
		text = title
		for _, tip := range tips {
			text += "\n• " + strings.TrimSpace(tip)
		}
	}
	fyne.Do(func() {
		display.template.SetText(text)
	})
}

// SetVolume moves the slider without reporting a change.
func (display *Window) SetVolume(volume int) {
	fyne.Do(func() {
		display.syncingVolume = true
		display.volume.SetValue(float64(volume))
		display.syncingVolume = false
	})
}

func (display *Window) handlePrimary() {
	switch display.phase {
	case timer.PhaseRunning:
		call(display.controls.OnPause)
	case timer.PhasePaused:
		call(display.controls.OnResume)
	default:
		call(display.controls.OnStart)
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
