package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	packs := catalog.List()
	require.NotEmpty(t, packs)

	seen := make(map[string]struct{})
	for _, p := range packs {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Prompts)

		_, dup := seen[p.ID]
		assert.False(t, dup, "duplicate pack id %q", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestCatalogByID(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	first := catalog.List()[0]

	found := catalog.ByID(first.ID)
	require.NotNil(t, found)
	assert.Equal(t, first.Name, found.Name)

	assert.Nil(t, catalog.ByID("missing-pack"))
}
