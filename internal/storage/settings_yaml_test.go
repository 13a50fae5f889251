package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *YAMLStore {
	t.Helper()
	return NewYAMLStoreAt(filepath.Join(t.TempDir(), "focusflow", settingsFileName), nil)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
	assert.False(t, store.HasSaved())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	saved := model.Settings{
		TimerDuration: 90 * time.Minute,
		TimerMode:     model.TimerModeSkip,
		Pomodoro: model.PomodoroSettings{
			Enabled: true,
			Focus:   50 * time.Minute,
			Break:   10 * time.Minute,
			Cycles:  3,
		},
		Volume:        0,
		Music:         &model.MusicSource{Kind: model.SourceSpotify, URL: "https://open.spotify.com/playlist/abc"},
		FocusTemplate: "deep-work",
	}

	require.NoError(t, store.Save(saved))
	assert.True(t, store.HasSaved())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSavedUnits(t *testing.T) {
	store := newTestStore(t)
	settings := model.DefaultSettings()
	settings.TimerDuration = 45 * time.Minute
	require.NoError(t, store.Save(settings))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, "timer_duration_seconds: 2700")
	assert.Contains(t, text, "focus_minutes: 25")
	assert.Contains(t, text, "break_minutes: 5")
	assert.Contains(t, text, "volume: 70")
	assert.NotContains(t, text, "music:")
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	content := `timer_duration_seconds: -5
timer_mode: stopwatch
pomodoro:
  enabled: true
  focus_minutes: 0
  break_minutes: 15
  cycles: 0
volume: 250
`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	settings, err := store.Load()
	require.NoError(t, err)
	defaults := model.DefaultSettings()
	assert.Equal(t, defaults.TimerDuration, settings.TimerDuration)
	assert.Equal(t, model.TimerModeTimer, settings.TimerMode)
	assert.True(t, settings.Pomodoro.Enabled)
	assert.Equal(t, defaults.Pomodoro.Focus, settings.Pomodoro.Focus)
	assert.Equal(t, 15*time.Minute, settings.Pomodoro.Break)
	assert.Equal(t, defaults.Pomodoro.Cycles, settings.Pomodoro.Cycles)
	assert.Equal(t, 100, settings.Volume)
	assert.Nil(t, settings.Music)
}

func TestLoadMalformedYAML(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("volume: [1, 2"), 0o644))

	settings, err := store.Load()
	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Clear())
	require.NoError(t, store.Save(model.DefaultSettings()))
	require.True(t, store.HasSaved())

	require.NoError(t, store.Clear())
	assert.False(t, store.HasSaved())
}

func TestWatchReportsChanges(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(model.DefaultSettings()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan model.Settings, 8)
	require.NoError(t, store.Watch(ctx, func(settings model.Settings, err error) {
		if err == nil {
			changes <- settings
		}
	}))

	updated := model.DefaultSettings()
	updated.Volume = 35
	require.NoError(t, store.Save(updated))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case settings := <-changes:
			if settings.Volume == 35 {
				return
			}
		case <-deadline:
			t.Fatal("no change notification")
		}
	}
}
