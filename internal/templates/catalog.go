package templates

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"focusflow/internal/core/model"
	"focusflow/resources"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTemplate is returned by ByID for ids outside the catalog.
var ErrUnknownTemplate = errors.New("unknown focus template")

// Intensity ranks how demanding a template's task is.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Label is the display name of the intensity.
func (intensity Intensity) Label() string {
	switch intensity {
	case IntensityLow:
		return "Light Focus"
	case IntensityMedium:
		return "Moderate Focus"
	case IntensityHigh:
		return "Deep Focus"
	default:
		return "Focus"
	}
}

// Template is a task-oriented focus preset.
type Template struct {
	ID               string    `yaml:"id"`
	Title            string    `yaml:"title"`
	Description      string    `yaml:"description"`
	Intensity        Intensity `yaml:"intensity"`
	SuggestedMinutes int       `yaml:"suggested_minutes"`
	Tips             []string  `yaml:"tips"`
}

// SuggestedDuration is the template's recommended session length.
func (template Template) SuggestedDuration() time.Duration {
	return time.Duration(template.SuggestedMinutes) * time.Minute
}

// Apply selects the template in settings and uses its suggested duration for
// the plain timer.
func (template Template) Apply(settings model.Settings) model.Settings {
	settings.FocusTemplate = template.ID
	if template.SuggestedMinutes > 0 {
		settings.TimerDuration = template.SuggestedDuration()
	}
	return settings
}

var (
	loadOnce sync.Once
	catalog  []Template
	loadErr  error
)

// All returns the catalog in display order.
func All() ([]Template, error) {
	loadOnce.Do(func() {
		catalog, loadErr = Parse(resources.TemplateCatalog())
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out, nil
}

// ByID looks up a template.
func ByID(id string) (Template, error) {
	all, err := All()
	if err != nil {
		return Template{}, err
	}
	for _, template := range all {
		if template.ID == id {
			return template, nil
		}
	}
	return Template{}, fmt.Errorf("%q: %w", id, ErrUnknownTemplate)
}

// Parse decodes a YAML template list.
func Parse(data []byte) ([]Template, error) {
	var parsed []Template
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	seen := make(map[string]bool, len(parsed))
	for _, template := range parsed {
		if template.ID == "" {
			return nil, fmt.Errorf("parse template catalog: template %q has no id", template.Title)
		}
		if seen[template.ID] {
			return nil, fmt.Errorf("parse template catalog: duplicate id %q", template.ID)
		}
		seen[template.ID] = true
	}
	return parsed, nil
}
