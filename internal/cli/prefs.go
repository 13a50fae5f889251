package cli

import (
	"fmt"
	"strconv"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
	"focusflow/internal/playback"
	"focusflow/internal/templates"
)

// PrefsCmd groups the preference subcommands.
type PrefsCmd struct {
	Show  PrefsShowCmd  `cmd:"" help:"Show saved preferences." default:"1"`
	Set   PrefsSetCmd   `cmd:"" help:"Update preferences."`
	Reset PrefsResetCmd `cmd:"" help:"Forget saved preferences."`
}

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	source := "none"
	if settings.Music != nil {
		source = string(settings.Music.Kind)
		if settings.Music.URL != "" {
			source += " " + settings.Music.URL
		}
	}
	template := "none"
	if settings.FocusTemplate != "" {
		template = settings.FocusTemplate
	}

	lines := []string{
		headingStyle.Render("Preferences") + " " + keyStyle.UnsetWidth().Render(ctx.Store.Path()),
		row("Timer mode", string(settings.TimerMode)),
		row("Session length", timer.FormatDuration(int(settings.TimerDuration/time.Second))),
		row("Pomodoro", strconv.FormatBool(settings.Pomodoro.Enabled)),
		row("Focus / break", fmt.Sprintf("%d / %d min", int(settings.Pomodoro.Focus/time.Minute), int(settings.Pomodoro.Break/time.Minute))),
		row("Cycles", strconv.Itoa(settings.Pomodoro.Cycles)),
		row("Volume", fmt.Sprintf("%d%%", settings.Volume)),
		row("Music", source),
		row("Focus template", template),
	}
	if !ctx.Store.HasSaved() {
		lines = append(lines, keyStyle.UnsetWidth().Render("(defaults, nothing saved yet)"))
	}
	for _, line := range lines {
		fmt.Fprintln(ctx.Out, line)
	}
	return nil
}

type PrefsSetCmd struct {
	Minutes     *int    `help:"Session length in minutes."`
	Mode        *string `help:"Timer mode: timer or skip."`
	Pomodoro    *bool   `help:"Enable Pomodoro cycles (--pomodoro=false disables)."`
	Focus       *int    `help:"Pomodoro focus minutes."`
	Break       *int    `help:"Pomodoro break minutes."`
	Cycles      *int    `help:"Pomodoro cycles."`
	Volume      *int    `help:"Music volume (0-100)."`
	Template    *string `help:"Focus template id; sets the session length to its suggestion unless --minutes is given."`
	MusicSource *string `help:"Music platform: youtube, spotify, apple, manual or none."`
	MusicURL    *string `help:"Music link."`
}

func (c *PrefsSetCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	updated, err := c.apply(settings)
	if err != nil {
		return err
	}
	if updated == nil {
		fmt.Fprintln(ctx.Out, "No changes specified. Run 'focusflow prefs set --help' for the available flags.")
		return nil
	}

	if err := ctx.Store.Save(*updated); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	ctx.Logger.Info("preferences updated", "path", ctx.Store.Path())
	fmt.Fprintln(ctx.Out, successStyle.Render("Preferences updated."))
	return nil
}

func (c *PrefsSetCmd) apply(settings model.Settings) (*model.Settings, error) {
	changed := false

	if c.Template != nil {
		template, err := templates.ByID(*c.Template)
		if err != nil {
			return nil, err
		}
		settings = template.Apply(settings)
		changed = true
	}

	input := settings.FormInput()
	timerChanged := false
	if c.Minutes != nil {
		if *c.Minutes <= 0 {
			return nil, fmt.Errorf("--minutes must be positive")
		}
		input.DurationMinutes = *c.Minutes
		timerChanged = true
	}
	if c.Focus != nil {
		if *c.Focus <= 0 {
			return nil, fmt.Errorf("--focus must be positive")
		}
		input.FocusMinutes = *c.Focus
		timerChanged = true
	}
	if c.Break != nil {
		if *c.Break <= 0 {
			return nil, fmt.Errorf("--break must be positive")
		}
		input.BreakMinutes = *c.Break
		timerChanged = true
	}
	if c.Cycles != nil {
		if *c.Cycles < 1 {
			return nil, fmt.Errorf("--cycles must be at least 1")
		}
		input.Cycles = *c.Cycles
		timerChanged = true
	}
	if c.Pomodoro != nil {
		input.PomodoroEnabled = *c.Pomodoro
		timerChanged = true
	}
	if timerChanged {
		settings = settings.ApplyForm(input)
		changed = true
	}

	if c.Mode != nil {
		switch mode := model.TimerMode(*c.Mode); mode {
		case model.TimerModeTimer, model.TimerModeSkip:
			settings.TimerMode = mode
		default:
			return nil, fmt.Errorf("--mode must be %q or %q", model.TimerModeTimer, model.TimerModeSkip)
		}
		changed = true
	}
	if c.Volume != nil {
		settings.Volume = model.ClampVolume(*c.Volume)
		changed = true
	}

	if c.MusicSource != nil || c.MusicURL != nil {
		kind := ""
		if settings.Music != nil {
			kind = string(settings.Music.Kind)
		}
		if c.MusicSource != nil {
			kind = *c.MusicSource
		}
		url := ""
		if c.MusicURL != nil {
			url = *c.MusicURL
		} else if settings.Music != nil && kind == string(settings.Music.Kind) {
			url = settings.Music.URL
		}

		switch kind {
		case "", "none":
			settings.Music = nil
		default:
			source, err := playback.ParseSource(model.SourceKind(kind), url)
			if err != nil {
				return nil, err
			}
			settings.Music = &model.MusicSource{Kind: source.Kind, URL: source.URL}
		}
		changed = true
	}

	if !changed {
		return nil, nil
	}
	return &settings, nil
}

type PrefsResetCmd struct{}

func (c *PrefsResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Clear(); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	fmt.Fprintln(ctx.Out, successStyle.Render("Preferences reset to defaults."))
	return nil
}
