package playback

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"focusflow/internal/core/model"

	"github.com/charmbracelet/log"
)

// ErrNotControllable indicates the selected source has no remote playback control.
var ErrNotControllable = errors.New("source does not support playback control")

// Controller is the playback surface the session drives.
type Controller interface {
	Play() error
	Pause() error
	SetVolume(volume int) error
	Volume() int
	Playing() bool
}

// State is a snapshot of the player.
type State struct {
	Source  Source
	Playing bool
	Volume  int
}

// Player tracks playback of the selected music source. Audio itself is
// rendered by the service the source points at.
type Player struct {
	mu        sync.Mutex
	source    Source
	playing   bool
	volume    int
	listeners []func(State)
	logger    *log.Logger
}

// NewPlayer creates a Player at the given volume.
func NewPlayer(volume int, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		volume: model.ClampVolume(volume),
		logger: logger,
	}
}

// SetSource replaces the current source and stops playback.
func (player *Player) SetSource(source Source) {
	player.mu.Lock()
	player.source = source
	player.playing = false
	state := player.stateLocked()
	listeners := player.listeners
	player.mu.Unlock()

	player.logger.Info("music source selected", "kind", source.Kind, "url", source.URL)
	notify(listeners, state)
}

// Source returns the current source.
func (player *Player) Source() Source {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.source
}

// OnChange registers a listener for state changes.
func (player *Player) OnChange(listener func(State)) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.listeners = append(player.listeners, listener)
}

// Play starts playback when the source supports it.
func (player *Player) Play() error {
	return player.setPlaying(true)
}

// Pause stops playback when the source supports it.
func (player *Player) Pause() error {
	return player.setPlaying(false)
}

// SetVolume sets the volume, clamped to [0, 100].
func (player *Player) SetVolume(volume int) error {
	player.mu.Lock()
	player.volume = model.ClampVolume(volume)
	state := player.stateLocked()
	listeners := player.listeners
	player.mu.Unlock()

	notify(listeners, state)
	return nil
}

// Volume returns the current volume.
func (player *Player) Volume() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.volume
}

// Playing reports whether playback is active.
func (player *Player) Playing() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.playing
}

// State returns a snapshot of the player.
func (player *Player) State() State {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.stateLocked()
}

func (player *Player) setPlaying(playing bool) error {
	player.mu.Lock()
	if !player.source.Controllable() {
		kind := player.source.Kind
		player.mu.Unlock()
		return fmt.Errorf("%s: %w", kind, ErrNotControllable)
	}
	if player.playing == playing {
		player.mu.Unlock()
		return nil
	}
	player.playing = playing
	state := player.stateLocked()
	listeners := player.listeners
	player.mu.Unlock()

	player.logger.Debug("playback", "playing", playing, "volume", state.Volume)
	notify(listeners, state)
	return nil
}

func (player *Player) stateLocked() State {
	return State{
		Source:  player.source,
		Playing: player.playing,
		Volume:  player.volume,
	}
}

func notify(listeners []func(State), state State) {
	for _, listener := range listeners {
		listener(state)
	}
}
