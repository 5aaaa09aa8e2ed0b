package compose

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

const (
	keyGeneral   = "General"
	keyTerrain   = "Terrain"
	keyTemplates = "Templates"
)

// Terrain composes a tileset from the top-level nodes of a tileset file:
// a General section with the tileset fields and a Terrain section with one
// child per terrain type. Templates are not composed.
func (c *Composer) Terrain(nodes []*tree.Node) (*domain.TerrainDescriptor, error) {
	t := domain.NewTerrainDescriptor()
	var types []domain.TerrainType

	for _, n := range nodes {
		switch n.Key {
		case keyGeneral:
			if err := c.fields.Load(t, n); err != nil {
				return nil, fmt.Errorf("tileset: %w", err)
			}
		case keyTerrain:
			for _, entry := range children(n) {
				tt := domain.TerrainType{Type: entry.Key}
				if err := c.fields.Load(&tt, entry); err != nil {
					return nil, fmt.Errorf("tileset: terrain %q: %w", entry.Key, err)
				}
				types = append(types, tt)
			}
		case keyTemplates:
			// Tile templates describe art, not rules.
		default:
			c.logger.Warn("Ignoring unknown tileset section", "section", n.Key, "location", n.Location.String())
		}
	}

	if t.ID == "" {
		return nil, fmt.Errorf("tileset: %s section has no Id", keyGeneral)
	}
	if err := t.SetTerrainTypes(types); err != nil {
		return nil, err
	}
	return t, nil
}
