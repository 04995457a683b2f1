/*
Package pack serves the static catalog of game content packs the room leader can
pick from before play begins. The catalog is embedded at build time and read-only
at runtime.
*/
package pack

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed packs.json
var embeddedCatalog []byte

// Pack is one selectable set of game content.
type Pack struct {
	// ID is the stable identifier clients send back when the leader selects a pack.
	ID string `json:"id"`

	// Name is the display title of the pack.
	Name string `json:"name"`

	// Description is a short blurb shown under the title.
	Description string `json:"description"`

	// Prompts are the question prompts the game draws from.
	Prompts []string `json:"prompts"`
}

// Catalog holds the loaded content packs.
type Catalog struct {
	packs []Pack
}

// LoadCatalog parses the embedded pack catalog.
func LoadCatalog() (*Catalog, error) {
	var packs []Pack
	if err := json.Unmarshal(embeddedCatalog, &packs); err != nil {
		return nil, fmt.Errorf("failed to parse embedded pack catalog: %w", err)
	}

	return &Catalog{packs: packs}, nil
}

// List returns every pack in the catalog.
func (c *Catalog) List() []Pack {
	return c.packs
}

// ByID returns the pack with the given id, or nil.
func (c *Catalog) ByID(id string) *Pack {
	for i := range c.packs {
		if c.packs[i].ID == id {
			return &c.packs[i]
		}
	}
	return nil
}
