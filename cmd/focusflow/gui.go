package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"focusflow/internal/cli"
	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
	"focusflow/internal/platform"
	"focusflow/internal/playback"
	"focusflow/internal/session"
	"focusflow/internal/templates"
	"focusflow/internal/ui/display"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/tray"
	"focusflow/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

// GUICmd runs the tray app with its countdown and settings windows.
type GUICmd struct {
	Hidden bool `help:"Start in the tray without showing the timer window."`
}

func (c *GUICmd) Run(ctx *cli.Context) error {
	log := ctx.Logger.Component("app")

	guard, err := platform.AcquireSingleInstance(cli.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.Info("already running, asked the open instance to show itself")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := ctx.Store.Load()
	if err != nil {
		log.Warn("using default preferences", "err", err)
		settings = model.DefaultSettings()
	}

	fyneApp := app.NewWithID("com.focusflow.app")
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	engine := timer.New(timer.Config{Logger: ctx.Logger.Component("timer")})
	player := playback.NewPlayer(settings.Volume, ctx.Logger.Component("playback"))
	fader := playback.NewFader(player, playback.DefaultFaderConfig())
	coordinator := session.New(engine, player, fader, ctx.Logger.Component("session"))
	defer coordinator.Close()

	if err := coordinator.Apply(settings); err != nil {
		log.Warn("apply saved preferences", "err", err)
	}

	countdown := display.New(fyneApp, display.Controls{
		OnStart:  coordinator.Start,
		OnPause:  coordinator.Pause,
		OnResume: coordinator.Resume,
		OnEnd:    func() { coordinator.End() },
		OnVolume: func(volume int) {
			if err := player.SetVolume(volume); err != nil {
				log.Debug("volume", "err", err)
			}
		},
	})

	var trayManager *tray.Manager
	refresh := func() {
		current := coordinator.Settings()
		countdown.SetDescription(coordinator.Describe())
		showTemplate(countdown, current.FocusTemplate)
		countdown.Update(engine.Status())
		countdown.SetVolume(player.Volume())
		fyne.Do(func() {
			trayManager.SetMusicAvailable(player.Source().EmbedURL != "")
			trayManager.SetStatus(engine.Status())
		})
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.Settings) error {
		if err := coordinator.Apply(updated); err != nil {
			if errors.Is(err, timer.ErrInvalidState) {
				return errors.New("end the current session before changing the timer")
			}
			return err
		}
		if err := ctx.Store.Save(updated); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}
		log.Info("preferences saved", "path", ctx.Store.Path())
		refresh()
		return nil
	})

	openMusic := func() {
		source := player.Source()
		if source.EmbedURL == "" {
			return
		}
		link, err := url.Parse(source.EmbedURL)
		if err != nil {
			log.Warn("music link", "err", err)
			return
		}
		if err := fyneApp.OpenURL(link); err != nil {
			log.Warn("open music", "err", err)
		}
	}

	watchCtx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStart: coordinator.Start,
		OnTogglePause: func() {
			switch engine.Status().Phase {
			case timer.PhaseRunning:
				coordinator.Pause()
			case timer.PhasePaused:
				coordinator.Resume()
			}
		},
		OnEnd:         func() { coordinator.End() },
		OnReset:       func() { coordinator.Reset() },
		OnShowTimer:   countdown.Show,
		OnOpenMusic:   openMusic,
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			stopWatching()
			done := coordinator.End()
			go func() {
				<-done
				fyne.Do(fyneApp.Quit)
			}()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.AppIcon())

	guard.OnActivate(func() {
		fyne.Do(countdown.Show)
	})

	coordinator.OnPhaseChange(func(cycle int, isBreak bool) {
		icon := resources.AppIcon()
		if isBreak {
			icon = resources.BreakIcon()
		}
		fyne.Do(func() {
			desktopApp.SetSystemTrayIcon(icon)
		})
	})
	coordinator.OnComplete(func(summary session.Summary) {
		fyne.Do(func() {
			desktopApp.SetSystemTrayIcon(resources.AppIcon())
		})
		fyneApp.SendNotification(fyne.NewNotification("Session complete",
			fmt.Sprintf("You focused for %s. Nice work.", summary.Duration)))
	})
	player.OnChange(func(state playback.State) {
		countdown.SetVolume(state.Volume)
	})

	events := engine.Subscribe(16)
	go func() {
		for event := range events {
			status := engine.Status()
			countdown.Update(status)
			if event.Type != timer.EventTick {
				countdown.SetDescription(coordinator.Describe())
			}
			fyne.Do(func() {
				trayManager.SetStatus(status)
			})
		}
	}()

	err = ctx.Store.Watch(watchCtx, func(reloaded model.Settings, err error) {
		if err != nil {
			log.Warn("reload preferences", "err", err)
			return
		}
		if reloaded.Equal(coordinator.Settings()) {
			return
		}
		if err := coordinator.Apply(reloaded); err != nil {
			log.Info("preferences changed on disk during a session, keeping the current ones", "err", err)
			return
		}
		log.Info("preferences reloaded", "path", ctx.Store.Path())
		fyne.Do(func() {
			prefsWindow.UpdateSettings(reloaded)
		})
		refresh()
	})
	if err != nil {
		log.Warn("preferences will not reload automatically", "err", err)
	}

	refresh()
	if !c.Hidden {
		countdown.Show()
	}
	fyneApp.Run()
	return nil
}

func showTemplate(countdown *display.Window, id string) {
	if id == "" {
		countdown.SetTemplate("", nil)
		return
	}
	template, err := templates.ByID(id)
	if err != nil {
		countdown.SetTemplate("", nil)
		return
	}
	countdown.SetTemplate(template.Title+" · "+template.Intensity.Label(), template.Tips)
}
