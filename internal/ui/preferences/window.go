package preferences

import (
	"fmt"

	"focusflow/internal/core/model"
	"focusflow/internal/templates"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const noTemplate = "No template"

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings model.Settings
	onSave   func(model.Settings) error

	duration   *widget.Entry
	focus      *widget.Entry
	breakLen   *widget.Entry
	cycles     *widget.Entry
	pomodoro   *widget.Check
	skipTimer  *widget.Check
	volume     *widget.Slider
	volumeText *widget.Label
	template   *widget.Select
	source     *widget.Select
	sourceURL  *widget.Entry

	templateIDs    map[string]string
	templateTitles map[string]string
}

// New creates a preferences window. onSave may reject the settings, in which
// case the error is shown and the window stays open.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("FocusFlow Settings")

	prefs := &Window{
		window:         window,
		settings:       settings,
		onSave:         onSave,
		duration:       widget.NewEntry(),
		focus:          widget.NewEntry(),
		breakLen:       widget.NewEntry(),
		cycles:         widget.NewEntry(),
		pomodoro:       widget.NewCheck("Pomodoro cycles", nil),
		skipTimer:      widget.NewCheck("Free play (no timer)", nil),
		volume:         widget.NewSlider(0, 100),
		volumeText:     widget.NewLabel(""),
		sourceURL:      widget.NewEntry(),
		templateIDs:    map[string]string{},
		templateTitles: map[string]string{},
	}
	prefs.volume.Step = 1
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeText.SetText(fmt.Sprintf("%d%%", int(value)))
	}
	prefs.sourceURL.SetPlaceHolder("https://...")

	options := []string{noTemplate}
	if all, err := templates.All(); err == nil {
		for _, template := range all {
			label := fmt.Sprintf("%s (%d min, %s)", template.Title, template.SuggestedMinutes, template.Intensity.Label())
			prefs.templateIDs[label] = template.ID
			prefs.templateTitles[template.ID] = label
			options = append(options, label)
		}
	}
	prefs.template = widget.NewSelect(options, func(label string) {
		if minutes := SuggestedMinutes(prefs.templateIDs[label]); minutes != "" {
			prefs.duration.SetText(minutes)
		}
	})

	prefs.source = widget.NewSelect([]string{
		noSource,
		string(model.SourceYouTube),
		string(model.SourceSpotify),
		string(model.SourceApple),
		string(model.SourceManual),
	}, func(kind string) {
		if kind == noSource || kind == string(model.SourceManual) {
			prefs.sourceURL.Disable()
			return
		}
		prefs.sourceURL.Enable()
	})

	prefs.pomodoro.OnChanged = func(bool) { prefs.refreshEnabled() }
	prefs.skipTimer.OnChanged = func(bool) { prefs.refreshEnabled() }

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.skipTimer,
		container.NewHBox(widget.NewLabel("Session length"), prefs.duration, widget.NewLabel("min")),
		prefs.pomodoro,
		container.NewHBox(widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), prefs.breakLen, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Cycles"), prefs.cycles),
		widget.NewLabelWithStyle("Focus template", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.template,
		widget.NewLabelWithStyle("Music", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.source,
		prefs.sourceURL,
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), prefs.volumeText, prefs.volume),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(460, 560))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	values := ValuesFromSettings(settings)

	prefs.duration.SetText(values.DurationMinutes)
	prefs.focus.SetText(values.FocusMinutes)
	prefs.breakLen.SetText(values.BreakMinutes)
	prefs.cycles.SetText(values.Cycles)
	prefs.pomodoro.SetChecked(values.PomodoroEnabled)
	prefs.skipTimer.SetChecked(values.SkipTimer)
	prefs.volume.SetValue(values.Volume)
	prefs.source.SetSelected(values.SourceKind)
	prefs.sourceURL.SetText(values.SourceURL)

	// Assigned directly so the suggested duration does not overwrite the saved one.
	label, ok := prefs.templateTitles[values.TemplateID]
	if !ok {
		label = noTemplate
	}
	prefs.template.Selected = label
	prefs.template.Refresh()
	prefs.refreshEnabled()
}

func (prefs *Window) values() Values {
	return Values{
		DurationMinutes: prefs.duration.Text,
		FocusMinutes:    prefs.focus.Text,
		BreakMinutes:    prefs.breakLen.Text,
		Cycles:          prefs.cycles.Text,
		PomodoroEnabled: prefs.pomodoro.Checked,
		SkipTimer:       prefs.skipTimer.Checked,
		Volume:          prefs.volume.Value,
		TemplateID:      prefs.templateIDs[prefs.template.Selected],
		SourceKind:      prefs.source.Selected,
		SourceURL:       prefs.sourceURL.Text,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.values().Apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func (prefs *Window) refreshEnabled() {
	timerOn := !prefs.skipTimer.Checked
	pomodoroOn := timerOn && prefs.pomodoro.Checked
	setEnabled(prefs.pomodoro, timerOn)
	setEnabled(prefs.duration, timerOn && !pomodoroOn)
	setEnabled(prefs.focus, pomodoroOn)
	setEnabled(prefs.breakLen, pomodoroOn)
	setEnabled(prefs.cycles, pomodoroOn)
}

func setEnabled(target fyne.Disableable, enabled bool) {
	if enabled {
		target.Enable()
		return
	}
	target.Disable()
}
