package model

import "time"

// TimerMode selects whether a session runs a countdown.
type TimerMode string

const (
	TimerModeTimer TimerMode = "timer"
	// TimerModeSkip is free play: music without a countdown.
	TimerModeSkip TimerMode = "skip"
)

// SourceKind identifies a music platform.
type SourceKind string

const (
	SourceYouTube SourceKind = "youtube"
	SourceSpotify SourceKind = "spotify"
	SourceApple   SourceKind = "apple"
	SourceManual  SourceKind = "manual"
)

// MusicSource is the user's selected music platform and link.
type MusicSource struct {
	Kind SourceKind
	URL  string
}

// PomodoroSettings are the persisted Pomodoro preferences.
type PomodoroSettings struct {
	Enabled bool
	Focus   time.Duration
	Break   time.Duration
	Cycles  int
}

// Settings defines persisted user preferences.
type Settings struct {
	TimerDuration time.Duration
	TimerMode     TimerMode
	Pomodoro      PomodoroSettings
	Volume        int
	Music         *MusicSource
	FocusTemplate string
}

// DefaultSettings returns the preferences used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		TimerDuration: 25 * time.Minute,
		TimerMode:     TimerModeTimer,
		Pomodoro: PomodoroSettings{
			Enabled: false,
			Focus:   25 * time.Minute,
			Break:   5 * time.Minute,
			Cycles:  4,
		},
		Volume: 70,
	}
}

// TimerConfiguration converts settings to a TimerConfiguration.
func (settings Settings) TimerConfiguration() TimerConfiguration {
	return TimerConfiguration{
		Duration:        settings.TimerDuration,
		PomodoroEnabled: settings.Pomodoro.Enabled,
		Pomodoro: PomodoroConfig{
			Focus:  settings.Pomodoro.Focus,
			Break:  settings.Pomodoro.Break,
			Cycles: settings.Pomodoro.Cycles,
		},
	}
}

// FormInput converts settings to the minute-based form representation.
func (settings Settings) FormInput() FormInput {
	return FormInput{
		DurationMinutes: int(settings.TimerDuration / time.Minute),
		FocusMinutes:    int(settings.Pomodoro.Focus / time.Minute),
		BreakMinutes:    int(settings.Pomodoro.Break / time.Minute),
		Cycles:          settings.Pomodoro.Cycles,
		PomodoroEnabled: settings.Pomodoro.Enabled,
	}
}

// ApplyForm copies form values into settings.
func (settings Settings) ApplyForm(input FormInput) Settings {
	config := input.TimerConfiguration()
	if config.Duration > 0 {
		settings.TimerDuration = config.Duration
	}
	if config.Pomodoro.Focus > 0 {
		settings.Pomodoro.Focus = config.Pomodoro.Focus
	}
	if config.Pomodoro.Break > 0 {
		settings.Pomodoro.Break = config.Pomodoro.Break
	}
	if config.Pomodoro.Cycles > 0 {
		settings.Pomodoro.Cycles = config.Pomodoro.Cycles
	}
	settings.Pomodoro.Enabled = input.PomodoroEnabled
	return settings
}

// ClampVolume bounds a volume level to [0, 100].
func ClampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// Equal reports whether two settings hold the same values.
func (settings Settings) Equal(other Settings) bool {
	if (settings.Music == nil) != (other.Music == nil) {
		return false
	}
	if settings.Music != nil && *settings.Music != *other.Music {
		return false
	}
	settings.Music, other.Music = nil, nil
	return settings == other
}
