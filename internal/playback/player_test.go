package playback

import (
	"context"
	"testing"
	"time"

	"focusflow/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func controllablePlayer(t *testing.T, volume int) *Player {
	t.Helper()
	source, err := ParseSource(model.SourceYouTube, "https://youtu.be/jfKfPfyJRdk")
	require.NoError(t, err)
	player := NewPlayer(volume, nil)
	player.SetSource(source)
	return player
}

func TestPlayerControl(t *testing.T) {
	player := controllablePlayer(t, 150)
	assert.Equal(t, 100, player.Volume())

	var states []State
	player.OnChange(func(state State) { states = append(states, state) })

	require.NoError(t, player.Play())
	require.NoError(t, player.Play())
	assert.True(t, player.Playing())
	require.NoError(t, player.SetVolume(-3))
	assert.Equal(t, 0, player.Volume())
	require.NoError(t, player.Pause())
	assert.False(t, player.Playing())

	assert.Len(t, states, 3)
}

func TestPlayerRejectsUncontrollableSource(t *testing.T) {
	player := NewPlayer(70, nil)
	player.SetSource(Source{Kind: model.SourceSpotify})

	assert.ErrorIs(t, player.Play(), ErrNotControllable)
	assert.False(t, player.Playing())
	assert.NoError(t, player.SetVolume(40))
	assert.Equal(t, 40, player.Volume())
}

type volumeLog struct {
	*Player
	volumes []int
}

func (log *volumeLog) SetVolume(volume int) error {
	log.volumes = append(log.volumes, volume)
	return log.Player.SetVolume(volume)
}

func TestFadeOutThenPause(t *testing.T) {
	defer goleak.VerifyNone(t)

	player := controllablePlayer(t, 70)
	require.NoError(t, player.Play())
	recorder := &volumeLog{Player: player}
	fader := NewFader(recorder, FaderConfig{Steps: 20, RestoreDelay: time.Millisecond})

	<-fader.FadeOutThenPause(context.Background(), 40*time.Millisecond)

	require.Len(t, recorder.volumes, 21)
	assert.Equal(t, 66, recorder.volumes[0])
	assert.Equal(t, 0, recorder.volumes[19])
	assert.Equal(t, 70, recorder.volumes[20])
	for i := 1; i < 20; i++ {
		assert.LessOrEqual(t, recorder.volumes[i], recorder.volumes[i-1])
	}
	assert.False(t, player.Playing())
	assert.Equal(t, 70, player.Volume())
	assert.False(t, fader.Fading())
}

func TestFadeWithoutDurationPausesImmediately(t *testing.T) {
	player := controllablePlayer(t, 50)
	require.NoError(t, player.Play())
	fader := NewFader(player, FaderConfig{Steps: 20})

	<-fader.FadeOutThenPause(context.Background(), 0)

	assert.False(t, player.Playing())
	assert.Equal(t, 50, player.Volume())
}

func TestNewFadeCancelsPreviousAndKeepsRestoreTarget(t *testing.T) {
	defer goleak.VerifyNone(t)

	player := controllablePlayer(t, 80)
	require.NoError(t, player.Play())
	fader := NewFader(player, FaderConfig{Steps: 4, RestoreDelay: time.Millisecond})

	first := fader.FadeOutThenPause(context.Background(), time.Hour)
	second := fader.FadeOutThenPause(context.Background(), 4*time.Millisecond)
	<-first
	<-second

	assert.Equal(t, 80, player.Volume())
	assert.False(t, player.Playing())
}

func TestStopRestoresVolume(t *testing.T) {
	defer goleak.VerifyNone(t)

	player := controllablePlayer(t, 60)
	fader := NewFader(player, FaderConfig{Steps: 2, RestoreDelay: time.Millisecond})
	done := fader.FadeOutThenPause(context.Background(), time.Hour)
	fader.Stop()
	<-done

	assert.Equal(t, 60, player.Volume())
	assert.False(t, fader.Fading())
}

func TestExplicitRestoreTargetOutlivesLaterFades(t *testing.T) {
	defer goleak.VerifyNone(t)

	player := controllablePlayer(t, 56)
	require.NoError(t, player.Play())
	fader := NewFader(player, FaderConfig{Steps: 4, RestoreDelay: time.Millisecond})

	first := fader.FadeOutThenRestore(context.Background(), time.Hour, 80)
	second := fader.FadeOutThenPause(context.Background(), 4*time.Millisecond)
	<-first
	<-second

	assert.Equal(t, 80, player.Volume())
	assert.False(t, player.Playing())
	assert.False(t, fader.Fading())

	done := fader.FadeOutThenRestore(context.Background(), time.Hour, 75)
	fader.Stop()
	<-done
	assert.Equal(t, 75, player.Volume())
}
