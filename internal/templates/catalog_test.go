package templates

import (
	"errors"
	"testing"
	"time"

	"focusflow/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all, err := All()
	require.NoError(t, err)
	require.Len(t, all, 8)

	ids := make([]string, 0, len(all))
	for _, template := range all {
		ids = append(ids, template.ID)
		assert.NotEmpty(t, template.Title)
		assert.Positive(t, template.SuggestedMinutes)
		assert.Len(t, template.Tips, 3)
	}
	assert.Equal(t, []string{
		"theory-reading", "maths-numericals", "writing-copying", "science-practice",
		"light-revision", "deep-work", "creative-brainstorm", "administrative",
	}, ids)
}

func TestAllReturnsCopy(t *testing.T) {
	first, err := All()
	require.NoError(t, err)
	first[0].Title = "changed"

	second, err := All()
	require.NoError(t, err)
	assert.Equal(t, "Theory / Reading", second[0].Title)
}

func TestByID(t *testing.T) {
	template, err := ByID("deep-work")
	require.NoError(t, err)
	assert.Equal(t, IntensityHigh, template.Intensity)
	assert.Equal(t, 90*time.Minute, template.SuggestedDuration())
	assert.Equal(t, "Deep Focus", template.Intensity.Label())

	_, err = ByID("nap")
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
}

func TestApply(t *testing.T) {
	template, err := ByID("maths-numericals")
	require.NoError(t, err)

	settings := template.Apply(model.DefaultSettings())
	assert.Equal(t, "maths-numericals", settings.FocusTemplate)
	assert.Equal(t, 30*time.Minute, settings.TimerDuration)
	assert.Equal(t, 25*time.Minute, settings.Pomodoro.Focus)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	_, err := Parse([]byte("- title: nameless\n"))
	assert.ErrorContains(t, err, "has no id")

	_, err = Parse([]byte("- id: a\n- id: a\n"))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = Parse([]byte("{"))
	assert.Error(t, err)
}

func TestIntensityLabelFallback(t *testing.T) {
	assert.Equal(t, "Light Focus", IntensityLow.Label())
	assert.Equal(t, "Moderate Focus", IntensityMedium.Label())
	assert.Equal(t, "Focus", Intensity("extreme").Label())
}
