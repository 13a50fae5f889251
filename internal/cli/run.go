package cli

import (
	"fmt"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
	"focusflow/internal/playback"
	"focusflow/internal/session"
	"focusflow/internal/ui/terminal"

	tea "github.com/charmbracelet/bubbletea"
)

// RunCmd runs a focus session in the terminal.
type RunCmd struct {
	Minutes  *int    `help:"Session length in minutes."`
	Pomodoro *bool   `help:"Use Pomodoro cycles (--pomodoro=false disables)."`
	Focus    *int    `help:"Pomodoro focus minutes."`
	Break    *int    `help:"Pomodoro break minutes."`
	Cycles   *int    `help:"Pomodoro cycles."`
	Template *string `help:"Focus template id."`
	Free     bool    `help:"Free play: music without a countdown."`
	Save     bool    `help:"Also save these options as preferences."`
}

func (c *RunCmd) Run(ctx *Context) error {
	settings, err := c.settings(ctx)
	if err != nil {
		return err
	}

	engine := timer.New(timer.Config{Logger: ctx.Logger.Component("timer")})
	player := playback.NewPlayer(settings.Volume, ctx.Logger.Component("playback"))
	fader := playback.NewFader(player, playback.DefaultFaderConfig())
	coordinator := session.New(engine, player, fader, ctx.Logger.Component("session"))
	defer coordinator.Close()

	if err := coordinator.Apply(settings); err != nil {
		return err
	}
	if source := player.Source(); source.EmbedURL != "" {
		fmt.Fprintln(ctx.Out, row("Open your music", source.EmbedURL))
	}

	program := tea.NewProgram(terminal.New(coordinator, engine, engine.Subscribe(16)))
	coordinator.OnComplete(func(summary session.Summary) {
		program.Send(terminal.CompleteMsg(summary))
	})

	coordinator.Start()
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func (c *RunCmd) settings(ctx *Context) (model.Settings, error) {
	settings, err := ctx.Store.Load()
	if err != nil {
		ctx.Logger.Warn("using default preferences", "err", err)
		settings = model.DefaultSettings()
	}

	overrides := PrefsSetCmd{
		Minutes:  c.Minutes,
		Pomodoro: c.Pomodoro,
		Focus:    c.Focus,
		Break:    c.Break,
		Cycles:   c.Cycles,
		Template: c.Template,
	}
	if c.Free {
		mode := string(model.TimerModeSkip)
		overrides.Mode = &mode
	}
	updated, err := overrides.apply(settings)
	if err != nil {
		return settings, err
	}
	if updated == nil {
		return settings, nil
	}
	if c.Save {
		if err := ctx.Store.Save(*updated); err != nil {
			return *updated, fmt.Errorf("failed to save preferences: %w", err)
		}
	}
	return *updated, nil
}
