package timer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"focusflow/internal/core/model"

	"github.com/charmbracelet/log"
)

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	// MinDuration and MaxDuration bound every focus, break and plain duration.
	MinDuration time.Duration
	MaxDuration time.Duration
	Logger      *log.Logger
}

// Engine is the countdown and Pomodoro state machine.
//
// Remaining time is always derived from an absolute end time, so delayed or
// missed evaluations never accumulate drift. All transitions are serialized by
// a single mutex; notifications are delivered after it is released, which lets
// callbacks call back into the engine.
type Engine struct {
	mu      sync.Mutex
	options Config
	config  model.TimerConfiguration

	phase        Phase
	isBreak      bool
	currentCycle int
	phaseTotal   int
	remaining    int
	endAt        time.Time
	pausedAt     time.Time

	pending    Timer
	generation uint64
	closed     bool

	onTick        func(remainingSeconds int, progress float64)
	onComplete    func()
	onPhaseChange func(cycle int, isBreak bool)
	events        []chan Event
}

// New creates an idle Engine with the default configuration.
func New(options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.MinDuration <= 0 {
		options.MinDuration = model.MinDuration
	}
	if options.MaxDuration < options.MinDuration {
		options.MaxDuration = model.MaxDuration
	}
	if options.Logger == nil {
		options.Logger = log.New(io.Discard)
	}

	engine := &Engine{
		options: options,
		phase:   PhaseIdle,
	}
	engine.config = engine.clampConfig(model.DefaultSettings().TimerConfiguration())
	engine.resetRunLocked()
	return engine
}

// Configure validates and stores the configuration for the next run.
func (engine *Engine) Configure(config model.TimerConfiguration) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.activeLocked() {
		return fmt.Errorf("configure while %s: %w", engine.phase, ErrInvalidState)
	}
	engine.config = engine.clampConfig(config)
	engine.resetRunLocked()
	engine.options.Logger.Debug("timer configured",
		"duration", engine.config.Duration,
		"pomodoro", engine.config.PomodoroEnabled,
		"focus", engine.config.Pomodoro.Focus,
		"break", engine.config.Pomodoro.Break,
		"cycles", engine.config.Pomodoro.Cycles)
	return nil
}

// SetDuration sets the plain (non-Pomodoro) duration for the next run.
func (engine *Engine) SetDuration(duration time.Duration) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.activeLocked() {
		return fmt.Errorf("set duration while %s: %w", engine.phase, ErrInvalidState)
	}
	engine.config.Duration = engine.clamp(duration)
	if !engine.config.PomodoroEnabled {
		engine.resetRunLocked()
	}
	return nil
}

// SetPomodoro toggles Pomodoro mode. When settings is non-nil it replaces the
// focus/break/cycle configuration.
func (engine *Engine) SetPomodoro(enabled bool, settings *model.PomodoroConfig) error {
	if settings != nil {
		if err := validatePomodoro(*settings); err != nil {
			return err
		}
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.activeLocked() {
		return fmt.Errorf("set pomodoro while %s: %w", engine.phase, ErrInvalidState)
	}
	if settings != nil {
		engine.config.Pomodoro = model.PomodoroConfig{
			Focus:  engine.clamp(settings.Focus),
			Break:  engine.clamp(settings.Break),
			Cycles: settings.Cycles,
		}
	}
	engine.config.PomodoroEnabled = enabled
	engine.resetRunLocked()
	return nil
}

// SetOnTick binds the tick callback, replacing any previous binding.
func (engine *Engine) SetOnTick(handler func(remainingSeconds int, progress float64)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onTick = handler
}

// SetOnComplete binds the run completion callback.
func (engine *Engine) SetOnComplete(handler func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onComplete = handler
}

// SetOnPhaseChange binds the focus/break transition callback.
func (engine *Engine) SetOnPhaseChange(handler func(cycle int, isBreak bool)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onPhaseChange = handler
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than blocking the engine.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start begins or continues the countdown. A completed run restarts from the
// first focus leg.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.phase == PhaseRunning {
		return
	}
	if engine.phase == PhaseCompleted {
		engine.resetRunLocked()
	}
	now := engine.options.Clock.Now()
	engine.phase = PhaseRunning
	engine.pausedAt = time.Time{}
	engine.endAt = now.Add(time.Duration(engine.remaining) * time.Second)
	engine.armLocked()
	engine.emitStateLocked(now)
}

// Pause freezes the countdown at its last computed value.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.phase != PhaseRunning {
		return
	}
	now := engine.options.Clock.Now()
	engine.cancelLocked()
	engine.phase = PhasePaused
	engine.pausedAt = now
	engine.emitStateLocked(now)
}

// Resume continues a paused countdown, shifting the end time by the time
// spent paused.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.phase != PhasePaused {
		return
	}
	now := engine.options.Clock.Now()
	engine.endAt = engine.endAt.Add(now.Sub(engine.pausedAt))
	engine.pausedAt = time.Time{}
	engine.phase = PhaseRunning
	engine.armLocked()
	engine.emitStateLocked(now)
}

// Stop cancels the current run and restores the current phase's full duration.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

// Reset stops the run and returns to the first focus leg.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
	engine.resetRunLocked()
}

// Close stops the engine, drops callbacks and closes subscriber channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopLocked()
	engine.closed = true
	engine.onTick = nil
	engine.onComplete = nil
	engine.onPhaseChange = nil
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Tick evaluates the countdown now instead of waiting for the next scheduled
// evaluation, which it replaces. It is a no-op unless Running and while another
// evaluation is still delivering its notifications.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	if engine.phase != PhaseRunning || engine.pending == nil {
		engine.mu.Unlock()
		return
	}
	engine.cancelLocked()
	engine.deliverLocked()
}

// Status returns a snapshot of the engine.
func (engine *Engine) Status() Status {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.statusLocked()
}

func (engine *Engine) statusLocked() Status {
	totalCycles := 1
	if engine.config.PomodoroEnabled {
		totalCycles = engine.config.Pomodoro.Cycles
	}
	return Status{
		Phase:                engine.phase,
		PomodoroEnabled:      engine.config.PomodoroEnabled,
		IsBreak:              engine.isBreak,
		CurrentCycle:         engine.currentCycle,
		TotalCycles:          totalCycles,
		RemainingSeconds:     engine.remaining,
		TotalSecondsForPhase: engine.phaseTotal,
		ProgressPercentage:   engine.progressLocked(),
	}
}

func (engine *Engine) evaluate(generation uint64) {
	engine.mu.Lock()
	if engine.phase != PhaseRunning || generation != engine.generation {
		engine.mu.Unlock()
		return
	}
	engine.pending = nil
	engine.deliverLocked()
}

// deliverLocked evaluates, dispatches with the lock released and re-arms.
// pending stays nil until the re-arm, so at most one evaluation delivers at a
// time. Called with the lock held; returns with it released.
func (engine *Engine) deliverLocked() {
	events := engine.evaluateLocked(engine.options.Clock.Now())
	engine.mu.Unlock()

	engine.dispatch(events)

	engine.mu.Lock()
	if !engine.closed && engine.phase == PhaseRunning && engine.pending == nil {
		engine.armLocked()
	}
	engine.mu.Unlock()
}

func (engine *Engine) evaluateLocked(now time.Time) []Event {
	remaining := int(engine.endAt.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > engine.phaseTotal {
		remaining = engine.phaseTotal
	}
	engine.remaining = remaining

	events := []Event{engine.eventLocked(EventTick, now)}
	if remaining > 0 {
		return events
	}
	return append(events, engine.completePhaseLocked(now))
}

func (engine *Engine) completePhaseLocked(now time.Time) Event {
	engine.cancelLocked()

	if engine.config.PomodoroEnabled && engine.currentCycle < engine.config.Pomodoro.Cycles {
		if engine.isBreak {
			engine.isBreak = false
			engine.currentCycle++
			engine.setPhaseTotalLocked(engine.config.Pomodoro.Focus)
		} else {
			engine.isBreak = true
			engine.setPhaseTotalLocked(engine.config.Pomodoro.Break)
		}
		engine.endAt = now.Add(time.Duration(engine.remaining) * time.Second)
		engine.options.Logger.Debug("phase change", "cycle", engine.currentCycle, "break", engine.isBreak)
		return engine.eventLocked(EventPhaseChange, now)
	}

	engine.phase = PhaseCompleted
	engine.options.Logger.Debug("run complete", "cycles", engine.currentCycle)
	return engine.eventLocked(EventComplete, now)
}

// dispatch fans each event out to subscribers and invokes the matching callback
// with the lock released.
func (engine *Engine) dispatch(events []Event) {
	for _, event := range events {
		engine.mu.Lock()
		engine.emitLocked(event)
		onTick := engine.onTick
		onComplete := engine.onComplete
		onPhaseChange := engine.onPhaseChange
		engine.mu.Unlock()

		switch event.Type {
		case EventTick:
			if onTick != nil {
				onTick(event.Remaining, event.Progress)
			}
		case EventPhaseChange:
			if onPhaseChange != nil {
				onPhaseChange(event.Cycle, event.IsBreak)
			}
		case EventComplete:
			if onComplete != nil {
				onComplete()
			}
		}
	}
}

func (engine *Engine) stopLocked() {
	engine.cancelLocked()
	engine.pausedAt = time.Time{}
	engine.remaining = engine.phaseTotal
	if engine.phase != PhaseIdle {
		engine.phase = PhaseIdle
		engine.emitStateLocked(engine.options.Clock.Now())
	}
}

// resetRunLocked rewinds to the first focus leg without touching the run phase
// unless the previous run had completed.
func (engine *Engine) resetRunLocked() {
	engine.currentCycle = 1
	engine.isBreak = false
	if engine.config.PomodoroEnabled {
		engine.setPhaseTotalLocked(engine.config.Pomodoro.Focus)
	} else {
		engine.setPhaseTotalLocked(engine.config.Duration)
	}
	if engine.phase == PhaseCompleted {
		engine.phase = PhaseIdle
	}
}

func (engine *Engine) setPhaseTotalLocked(duration time.Duration) {
	engine.phaseTotal = int(duration / time.Second)
	engine.remaining = engine.phaseTotal
}

func (engine *Engine) armLocked() {
	engine.cancelLocked()
	generation := engine.generation
	engine.pending = engine.options.Clock.AfterFunc(engine.options.TickInterval, func() {
		engine.evaluate(generation)
	})
}

func (engine *Engine) cancelLocked() {
	if engine.pending != nil {
		engine.pending.Stop()
		engine.pending = nil
	}
	engine.generation++
}

func (engine *Engine) activeLocked() bool {
	return engine.phase == PhaseRunning || engine.phase == PhasePaused
}

func (engine *Engine) progressLocked() float64 {
	if engine.phaseTotal <= 0 {
		return 0
	}
	progress := float64(engine.phaseTotal-engine.remaining) / float64(engine.phaseTotal) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func (engine *Engine) eventLocked(eventType EventType, now time.Time) Event {
	return Event{
		Type:      eventType,
		Phase:     engine.phase,
		IsBreak:   engine.isBreak,
		Cycle:     engine.currentCycle,
		Remaining: engine.remaining,
		Progress:  engine.progressLocked(),
		At:        now,
	}
}

func (engine *Engine) emitStateLocked(now time.Time) {
	engine.emitLocked(engine.eventLocked(EventStateChange, now))
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (engine *Engine) clamp(duration time.Duration) time.Duration {
	return model.ClampDuration(duration, engine.options.MinDuration, engine.options.MaxDuration)
}

func (engine *Engine) clampConfig(config model.TimerConfiguration) model.TimerConfiguration {
	config.Duration = engine.clamp(config.Duration)
	config.Pomodoro.Focus = engine.clamp(config.Pomodoro.Focus)
	config.Pomodoro.Break = engine.clamp(config.Pomodoro.Break)
	if config.Pomodoro.Cycles < 1 {
		config.Pomodoro.Cycles = 1
	}
	return config
}

func validateConfig(config model.TimerConfiguration) error {
	if !config.PomodoroEnabled {
		return nil
	}
	return validatePomodoro(config.Pomodoro)
}

func validatePomodoro(settings model.PomodoroConfig) error {
	if settings.Cycles < 1 {
		return fmt.Errorf("pomodoro cycles %d: %w", settings.Cycles, ErrInvalidArgument)
	}
	if settings.Break <= 0 {
		return fmt.Errorf("pomodoro break %s: %w", settings.Break, ErrInvalidArgument)
	}
	return nil
}
