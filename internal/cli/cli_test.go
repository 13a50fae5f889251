package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/playback"
	"focusflow/internal/templates"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	configPath string
	out        bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{configPath: filepath.Join(t.TempDir(), "settings.yaml")}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	var root Root
	parser, err := kong.New(&root, kong.Name("focusflow"), kong.Exit(func(int) { t.Fatal("kong exited") }))
	require.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"--config", h.configPath}, args...))
	if err != nil {
		return err
	}
	ctx, err := root.NewContext(&h.out)
	require.NoError(t, err)
	defer ctx.Close()
	return kctx.Run(ctx)
}

func (h *harness) load(t *testing.T) model.Settings {
	t.Helper()
	var root Root
	root.Config = h.configPath
	ctx, err := root.NewContext(&h.out)
	require.NoError(t, err)
	defer ctx.Close()
	settings, err := ctx.Store.Load()
	require.NoError(t, err)
	return settings
}

func TestPrefsShowDefaults(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "prefs", "show"))

	out := h.out.String()
	assert.Contains(t, out, "25m 0s")
	assert.Contains(t, out, "25 / 5 min")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "nothing saved yet")
}

func TestPrefsSetAndReset(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "prefs", "set",
		"--minutes", "50", "--pomodoro=true", "--focus", "45", "--break", "10", "--cycles", "3",
		"--volume", "40", "--mode", "skip",
		"--music-source", "youtube", "--music-url", "https://www.youtube.com/watch?v=abc&t=1"))
	assert.Contains(t, h.out.String(), "Preferences updated.")

	settings := h.load(t)
	assert.Equal(t, 50*time.Minute, settings.TimerDuration)
	assert.Equal(t, model.PomodoroSettings{Enabled: true, Focus: 45 * time.Minute, Break: 10 * time.Minute, Cycles: 3}, settings.Pomodoro)
	assert.Equal(t, 40, settings.Volume)
	assert.Equal(t, model.TimerModeSkip, settings.TimerMode)
	require.NotNil(t, settings.Music)
	assert.Equal(t, model.SourceYouTube, settings.Music.Kind)

	require.NoError(t, h.run(t, "prefs", "set", "--pomodoro=false", "--music-source", "none"))
	settings = h.load(t)
	assert.False(t, settings.Pomodoro.Enabled)
	assert.Nil(t, settings.Music)

	require.NoError(t, h.run(t, "prefs", "reset"))
	assert.Equal(t, model.DefaultSettings(), h.load(t))
}

func TestPrefsSetWithoutFlags(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "prefs", "set"))
	assert.Contains(t, h.out.String(), "No changes specified")
}

func TestPrefsSetRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "prefs", "set", "--music-source", "spotify", "--music-url", "https://open.spotify.com/")
	assert.True(t, errors.Is(err, playback.ErrInvalidSource))

	err = h.run(t, "prefs", "set", "--template", "nap")
	assert.True(t, errors.Is(err, templates.ErrUnknownTemplate))

	assert.Error(t, h.run(t, "prefs", "set", "--cycles", "0"))
	assert.Error(t, h.run(t, "prefs", "set", "--mode", "stopwatch"))
}

func TestTemplatesListAndApply(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "templates"))
	assert.Contains(t, h.out.String(), "deep-work")
	assert.Contains(t, h.out.String(), "Administrative Tasks")

	h.out.Reset()
	require.NoError(t, h.run(t, "templates", "science-practice", "--apply"))
	assert.Contains(t, h.out.String(), "Nature sounds can complement focus")

	settings := h.load(t)
	assert.Equal(t, "science-practice", settings.FocusTemplate)
	assert.Equal(t, 40*time.Minute, settings.TimerDuration)
}

func TestSourcesParse(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "sources", "parse", "spotify", "https://open.spotify.com/album/xyz?si=1"))
	assert.Contains(t, h.out.String(), "https://open.spotify.com/embed/album/xyz")
	assert.Contains(t, h.out.String(), "false")

	err := h.run(t, "sources", "parse", "youtube", "https://example.com/video")
	assert.True(t, errors.Is(err, playback.ErrInvalidSource))
}

func TestRunOverrides(t *testing.T) {
	h := newHarness(t)
	var root Root
	root.Config = h.configPath
	ctx, err := root.NewContext(&h.out)
	require.NoError(t, err)
	defer ctx.Close()

	minutes := 10
	run := RunCmd{Minutes: &minutes, Free: true}
	settings, err := run.settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, settings.TimerDuration)
	assert.Equal(t, model.TimerModeSkip, settings.TimerMode)
	assert.False(t, ctx.Store.HasSaved())

	run.Save = true
	_, err = run.settings(ctx)
	require.NoError(t, err)
	assert.True(t, ctx.Store.HasSaved())
}
