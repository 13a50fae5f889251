package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"focusflow/internal/core/model"
	"focusflow/internal/platform"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Plain timer duration is stored in seconds, Pomodoro legs in minutes.
type yamlSettings struct {
	TimerDurationSeconds int           `yaml:"timer_duration_seconds,omitempty"`
	TimerMode            string        `yaml:"timer_mode,omitempty"`
	Pomodoro             *yamlPomodoro `yaml:"pomodoro,omitempty"`
	Volume               *int          `yaml:"volume,omitempty"`
	Music                *yamlMusic    `yaml:"music,omitempty"`
	FocusTemplate        string        `yaml:"focus_template,omitempty"`
}

type yamlPomodoro struct {
	Enabled      bool `yaml:"enabled"`
	FocusMinutes int  `yaml:"focus_minutes"`
	BreakMinutes int  `yaml:"break_minutes"`
	Cycles       int  `yaml:"cycles"`
}

type yamlMusic struct {
	Source string `yaml:"source"`
	URL    string `yaml:"url,omitempty"`
}

// YAMLStore persists preferences in a YAML file.
type YAMLStore struct {
	path   string
	logger *log.Logger
}

// NewYAMLStoreAt returns a store backed by the given file.
func NewYAMLStoreAt(path string, logger *log.Logger) *YAMLStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &YAMLStore{path: filepath.Clean(path), logger: logger}
}

// Path returns the settings file location.
func (store *YAMLStore) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *YAMLStore) Load() (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *YAMLStore) Save(settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := model.ClampVolume(settings.Volume)
	fileData := yamlSettings{
		TimerDurationSeconds: int(settings.TimerDuration / time.Second),
		TimerMode:            string(settings.TimerMode),
		Pomodoro: &yamlPomodoro{
			Enabled:      settings.Pomodoro.Enabled,
			FocusMinutes: int(settings.Pomodoro.Focus / time.Minute),
			BreakMinutes: int(settings.Pomodoro.Break / time.Minute),
			Cycles:       settings.Pomodoro.Cycles,
		},
		Volume:        &volume,
		FocusTemplate: settings.FocusTemplate,
	}
	if settings.Music != nil {
		fileData.Music = &yamlMusic{Source: string(settings.Music.Kind), URL: settings.Music.URL}
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	store.logger.Debug("settings saved", "path", store.path)
	return nil
}

// Clear removes all saved preferences.
func (store *YAMLStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove settings file: %w", err)
	}
	return nil
}

// HasSaved reports whether any preferences have been saved.
func (store *YAMLStore) HasSaved() bool {
	_, err := os.Stat(store.path)
	return err == nil
}

// DefaultPath returns <user config dir>/<appName>/settings.yaml.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.TimerDurationSeconds > 0 {
		settings.TimerDuration = time.Duration(fileData.TimerDurationSeconds) * time.Second
	}
	switch model.TimerMode(fileData.TimerMode) {
	case model.TimerModeTimer, model.TimerModeSkip:
		settings.TimerMode = model.TimerMode(fileData.TimerMode)
	}

	if pomodoro := fileData.Pomodoro; pomodoro != nil {
		settings.Pomodoro.Enabled = pomodoro.Enabled
		if pomodoro.FocusMinutes > 0 {
			settings.Pomodoro.Focus = time.Duration(pomodoro.FocusMinutes) * time.Minute
		}
		if pomodoro.BreakMinutes > 0 {
			settings.Pomodoro.Break = time.Duration(pomodoro.BreakMinutes) * time.Minute
		}
		if pomodoro.Cycles > 0 {
			settings.Pomodoro.Cycles = pomodoro.Cycles
		}
	}

	if fileData.Volume != nil {
		settings.Volume = model.ClampVolume(*fileData.Volume)
	}
	if fileData.Music != nil && fileData.Music.Source != "" {
		settings.Music = &model.MusicSource{
			Kind: model.SourceKind(fileData.Music.Source),
			URL:  fileData.Music.URL,
		}
	}
	settings.FocusTemplate = fileData.FocusTemplate
}
