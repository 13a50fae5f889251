package playback

import (
	"context"
	"sync"
	"time"
)

// FaderConfig contains fade timing values.
type FaderConfig struct {
	Steps int
	// RestoreDelay is how long after pausing the original volume is restored.
	RestoreDelay time.Duration
}

// DefaultFaderConfig returns the stepping used by the session fade-outs.
func DefaultFaderConfig() FaderConfig {
	return FaderConfig{
		Steps:        20,
		RestoreDelay: 500 * time.Millisecond,
	}
}

// Fader ramps a controller's volume down to zero, pauses it and restores the
// volume. Starting a fade cancels the one in progress.
type Fader struct {
	mu         sync.Mutex
	config     FaderConfig
	controller Controller
	cancel     context.CancelFunc
	restore    int
	fading     bool
}

// NewFader creates a Fader for controller.
func NewFader(controller Controller, config FaderConfig) *Fader {
	if config.Steps <= 0 {
		config.Steps = DefaultFaderConfig().Steps
	}
	if config.RestoreDelay < 0 {
		config.RestoreDelay = 0
	}
	return &Fader{
		config:     config,
		controller: controller,
	}
}

// FadeOutThenPause fades over duration in the background. The returned
// channel is closed when the fade finishes or is cancelled. The volume in place
// before the first of a run of overlapping fades is restored afterwards.
func (fader *Fader) FadeOutThenPause(ctx context.Context, duration time.Duration) <-chan struct{} {
	return fader.fade(ctx, duration, -1)
}

// FadeOutThenRestore is FadeOutThenPause with an explicit volume to restore.
// It also replaces the restore target of a fade in progress, so later fades
// and Stop restore it too.
func (fader *Fader) FadeOutThenRestore(ctx context.Context, duration time.Duration, restore int) <-chan struct{} {
	return fader.fade(ctx, duration, restore)
}

func (fader *Fader) fade(ctx context.Context, duration time.Duration, restore int) <-chan struct{} {
	fader.mu.Lock()
	if fader.cancel != nil {
		fader.cancel()
	}
	switch {
	case restore >= 0:
		fader.restore = restore
		fader.fading = true
	case !fader.fading:
		fader.restore = fader.controller.Volume()
		fader.fading = true
	}
	start := fader.controller.Volume()
	restore = fader.restore
	runCtx, cancel := context.WithCancel(ctx)
	fader.cancel = cancel
	fader.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		fader.run(runCtx, start, restore, duration)
	}()
	return done
}

// Stop cancels a fade in progress and restores its restore target.
func (fader *Fader) Stop() {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	if fader.cancel != nil {
		fader.cancel()
		fader.cancel = nil
	}
	if fader.fading {
		fader.fading = false
		_ = fader.controller.SetVolume(fader.restore)
	}
}

// Fading reports whether a fade is in progress.
func (fader *Fader) Fading() bool {
	fader.mu.Lock()
	defer fader.mu.Unlock()
	return fader.fading
}

func (fader *Fader) run(ctx context.Context, start, restore int, duration time.Duration) {
	if duration > 0 {
		steps := fader.config.Steps
		stepDuration := duration / time.Duration(steps)
		for step := 1; step <= steps; step++ {
			if !sleepWithContext(ctx, stepDuration) {
				return
			}
			_ = fader.controller.SetVolume(start * (steps - step) / steps)
		}
	}
	_ = fader.controller.Pause()

	if !sleepWithContext(ctx, fader.config.RestoreDelay) {
		return
	}
	_ = fader.controller.SetVolume(restore)

	fader.mu.Lock()
	if ctx.Err() == nil {
		fader.fading = false
		fader.cancel = nil
	}
	fader.mu.Unlock()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
