package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{"focusflow.svg", "break.svg"} {
		resource, err := Icon(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, resource.Content())

		again, err := Icon(name)
		require.NoError(t, err)
		assert.Same(t, resource, again)
	}
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}

func TestTemplateCatalogEmbedded(t *testing.T) {
	assert.Contains(t, string(TemplateCatalog()), "id: deep-work")
}
