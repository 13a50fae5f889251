package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"focusflow/internal/core/model"
	"focusflow/internal/playback"
	"focusflow/internal/templates"
)

// noSource is the music choice that clears the selection.
const noSource = "none"

// Values is the raw content of the preferences form.
type Values struct {
	DurationMinutes string
	FocusMinutes    string
	BreakMinutes    string
	Cycles          string
	PomodoroEnabled bool
	SkipTimer       bool
	Volume          float64
	TemplateID      string
	SourceKind      string
	SourceURL       string
}

// ValuesFromSettings fills the form from saved settings.
func ValuesFromSettings(settings model.Settings) Values {
	input := settings.FormInput()
	values := Values{
		DurationMinutes: strconv.Itoa(input.DurationMinutes),
		FocusMinutes:    strconv.Itoa(input.FocusMinutes),
		BreakMinutes:    strconv.Itoa(input.BreakMinutes),
		Cycles:          strconv.Itoa(input.Cycles),
		PomodoroEnabled: input.PomodoroEnabled,
		SkipTimer:       settings.TimerMode == model.TimerModeSkip,
		Volume:          float64(settings.Volume),
		TemplateID:      settings.FocusTemplate,
		SourceKind:      noSource,
	}
	if settings.Music != nil {
		values.SourceKind = string(settings.Music.Kind)
		values.SourceURL = settings.Music.URL
	}
	return values
}

// Apply merges the form into base. Empty or non-positive numbers keep the
// previous value; a music link that cannot be used is an error.
func (values Values) Apply(base model.Settings) (model.Settings, error) {
	settings := base.ApplyForm(model.FormInput{
		DurationMinutes: parsePositiveInt(values.DurationMinutes),
		FocusMinutes:    parsePositiveInt(values.FocusMinutes),
		BreakMinutes:    parsePositiveInt(values.BreakMinutes),
		Cycles:          parsePositiveInt(values.Cycles),
		PomodoroEnabled: values.PomodoroEnabled,
	})

	settings.TimerMode = model.TimerModeTimer
	if values.SkipTimer {
		settings.TimerMode = model.TimerModeSkip
	}
	settings.Volume = model.ClampVolume(int(values.Volume))

	settings.FocusTemplate = ""
	if values.TemplateID != "" {
		template, err := templates.ByID(values.TemplateID)
		if err != nil {
			return base, err
		}
		settings.FocusTemplate = template.ID
	}

	settings.Music = nil
	if kind := strings.TrimSpace(values.SourceKind); kind != "" && kind != noSource {
		source, err := playback.ParseSource(model.SourceKind(kind), values.SourceURL)
		if err != nil {
			return base, fmt.Errorf("music source: %w", err)
		}
		settings.Music = &model.MusicSource{Kind: source.Kind, URL: source.URL}
	}
	return settings, nil
}

// SuggestedMinutes returns the duration text to show when a template is
// picked, or "" when the id is unknown.
func SuggestedMinutes(templateID string) string {
	template, err := templates.ByID(templateID)
	if err != nil {
		return ""
	}
	return strconv.Itoa(template.SuggestedMinutes)
}

func parsePositiveInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}
