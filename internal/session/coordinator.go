package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/core/timer"
	"focusflow/internal/playback"

	"github.com/charmbracelet/log"
)

const (
	// EndFade is the fade-out used when the user ends a session.
	EndFade = 3 * time.Second
	// CompleteFade is the fade-out used when the countdown completes.
	CompleteFade = 5 * time.Second
	// breakVolumePercent is the share of the focus volume kept during breaks.
	breakVolumePercent = 70
)

// Player is the playback surface a session drives.
type Player interface {
	playback.Controller
	Source() playback.Source
	SetSource(source playback.Source)
}

// Fader fades the player out before pausing it.
type Fader interface {
	FadeOutThenPause(ctx context.Context, duration time.Duration) <-chan struct{}
	FadeOutThenRestore(ctx context.Context, duration time.Duration, restore int) <-chan struct{}
	Stop()
}

// Summary describes a completed session.
type Summary struct {
	Duration string
	Template string
	Cycles   int
}

// Coordinator connects engine notifications to playback reactions.
type Coordinator struct {
	mu       sync.Mutex
	engine   *timer.Engine
	player   Player
	fader    Fader
	logger   *log.Logger
	settings model.Settings

	ctx    context.Context
	cancel context.CancelFunc

	breakRestore  int
	volumeLowered bool

	onComplete    func(Summary)
	onPhaseChange func(cycle int, isBreak bool)
}

// New creates a Coordinator and binds it to the engine's completion and phase
// callbacks.
func New(engine *timer.Engine, player Player, fader Fader, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	coordinator := &Coordinator{
		engine:   engine,
		player:   player,
		fader:    fader,
		logger:   logger,
		settings: model.DefaultSettings(),
		ctx:      ctx,
		cancel:   cancel,
	}
	engine.SetOnPhaseChange(coordinator.handlePhaseChange)
	engine.SetOnComplete(coordinator.handleComplete)
	return coordinator
}

// OnComplete registers the listener told about completed sessions.
func (coordinator *Coordinator) OnComplete(listener func(Summary)) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.onComplete = listener
}

// OnPhaseChange registers a listener called after the break volume is applied.
func (coordinator *Coordinator) OnPhaseChange(listener func(cycle int, isBreak bool)) {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	coordinator.onPhaseChange = listener
}

// Apply configures the engine and player from saved settings. It fails with
// timer.ErrInvalidState while a run is active.
func (coordinator *Coordinator) Apply(settings model.Settings) error {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	if err := coordinator.engine.Configure(settings.TimerConfiguration()); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}
	coordinator.settings = settings

	source, err := playback.FromSettings(settings.Music)
	if err != nil {
		coordinator.logger.Warn("music source ignored", "err", err)
		source, _ = playback.ParseSource(model.SourceManual, "")
	}
	coordinator.player.SetSource(source)
	_ = coordinator.player.SetVolume(settings.Volume)
	coordinator.volumeLowered = false
	return nil
}

// Settings returns the settings last applied.
func (coordinator *Coordinator) Settings() model.Settings {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.settings
}

// Start begins or continues a session. The countdown only runs in timer mode;
// music only starts when the source can be controlled.
func (coordinator *Coordinator) Start() {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	coordinator.fader.Stop()
	if coordinator.settings.TimerMode == model.TimerModeTimer {
		coordinator.engine.Start()
	}
	coordinator.playLocked()
	coordinator.logger.Info("session started", "mode", coordinator.settings.TimerMode,
		"source", coordinator.player.Source().Kind)
}

// Pause pauses the countdown and the music.
func (coordinator *Coordinator) Pause() {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	coordinator.engine.Pause()
	if coordinator.player.Source().Controllable() {
		if err := coordinator.player.Pause(); err != nil {
			coordinator.logger.Warn("pause music", "err", err)
		}
	}
}

// Resume continues a paused session.
func (coordinator *Coordinator) Resume() {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	coordinator.engine.Resume()
	coordinator.playLocked()
}

// End fades the music out and stops the countdown.
func (coordinator *Coordinator) End() <-chan struct{} {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	done := coordinator.fadeLocked(EndFade)
	coordinator.engine.Stop()
	coordinator.logger.Info("session ended")
	return done
}

// Reset ends the session and rewinds the countdown to the first focus leg.
func (coordinator *Coordinator) Reset() <-chan struct{} {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()

	done := coordinator.fadeLocked(EndFade)
	coordinator.engine.Reset()
	return done
}

// Describe returns the text shown under the countdown.
func (coordinator *Coordinator) Describe() string {
	coordinator.mu.Lock()
	settings := coordinator.settings
	coordinator.mu.Unlock()

	description := "Your focus session is ready. "
	if settings.TimerMode == model.TimerModeSkip {
		return description + "Music will play continuously until you stop it manually."
	}

	status := coordinator.engine.Status()
	remaining := timer.FormatDuration(status.RemainingSeconds)
	switch {
	case status.PomodoroEnabled && status.IsBreak:
		return description + fmt.Sprintf("Take a %s break. Next focus session starts automatically.", remaining)
	case status.PomodoroEnabled:
		return description + fmt.Sprintf("Focus for %s. Break starts automatically.", remaining)
	default:
		planned := timer.FormatDuration(int(settings.TimerDuration / time.Second))
		return description + fmt.Sprintf("Focus for %s. Music will stop automatically when time is up.", planned)
	}
}

// ModeLabel names the selected timer mode.
func (coordinator *Coordinator) ModeLabel() string {
	coordinator.mu.Lock()
	settings := coordinator.settings
	coordinator.mu.Unlock()

	switch {
	case settings.TimerMode == model.TimerModeSkip:
		return "Free Play (No Timer)"
	case settings.Pomodoro.Enabled:
		return "Pomodoro Mode"
	default:
		return timer.FormatDuration(int(settings.TimerDuration/time.Second)) + " Timer"
	}
}

// Close cancels fades and shuts the engine down.
func (coordinator *Coordinator) Close() {
	coordinator.cancel()
	coordinator.fader.Stop()
	coordinator.engine.Close()
}

func (coordinator *Coordinator) handlePhaseChange(cycle int, isBreak bool) {
	coordinator.mu.Lock()
	if isBreak {
		volume := coordinator.player.Volume()
		coordinator.breakRestore = volume
		coordinator.volumeLowered = true
		_ = coordinator.player.SetVolume(volume * breakVolumePercent / 100)
	} else if coordinator.volumeLowered {
		coordinator.volumeLowered = false
		_ = coordinator.player.SetVolume(coordinator.breakRestore)
	}
	listener := coordinator.onPhaseChange
	volume := coordinator.player.Volume()
	coordinator.mu.Unlock()

	coordinator.logger.Info("phase change", "cycle", cycle, "break", isBreak, "volume", volume)
	if listener != nil {
		listener(cycle, isBreak)
	}
}

func (coordinator *Coordinator) handleComplete() {
	coordinator.mu.Lock()
	coordinator.fadeLocked(CompleteFade)
	summary := coordinator.summaryLocked()
	listener := coordinator.onComplete
	coordinator.mu.Unlock()

	coordinator.logger.Info("session complete", "duration", summary.Duration, "template", summary.Template)
	if listener != nil {
		listener(summary)
	}
}

func (coordinator *Coordinator) playLocked() {
	if !coordinator.player.Source().Controllable() {
		return
	}
	if err := coordinator.player.Play(); err != nil {
		coordinator.logger.Warn("play music", "err", err)
	}
}

// fadeLocked starts a fade-out. A volume lowered for a break is handed to the
// fader as its restore target, which survives fades that cancel this one.
func (coordinator *Coordinator) fadeLocked(duration time.Duration) <-chan struct{} {
	if !coordinator.volumeLowered {
		return coordinator.fader.FadeOutThenPause(coordinator.ctx, duration)
	}
	coordinator.volumeLowered = false
	return coordinator.fader.FadeOutThenRestore(coordinator.ctx, duration, coordinator.breakRestore)
}

func (coordinator *Coordinator) summaryLocked() Summary {
	settings := coordinator.settings
	summary := Summary{Template: settings.FocusTemplate, Cycles: 1}
	planned := settings.TimerDuration
	if settings.Pomodoro.Enabled {
		summary.Cycles = settings.Pomodoro.Cycles
		planned = settings.Pomodoro.Focus * time.Duration(settings.Pomodoro.Cycles)
	}
	summary.Duration = timer.FormatDuration(int(planned / time.Second))
	return summary
}
