package domain

import (
	"fmt"
	"slices"
	"strings"
)

// TerrainType is one terrain class of a tileset.
type TerrainType struct {
	Type              string   `mapstructure:"Type"`
	TargetTypes       []string `mapstructure:"TargetTypes"`
	AcceptsSmudgeType []string `mapstructure:"AcceptsSmudgeType"`
	IsWater           bool     `mapstructure:"IsWater"`
	Color             string   `mapstructure:"Color"`
	CustomCursor      string   `mapstructure:"CustomCursor"`
}

// TerrainDescriptor is a composed tileset: general information plus its
// terrain types, sorted by type name.
type TerrainDescriptor struct {
	ID            string   `mapstructure:"Id"`
	Name          string   `mapstructure:"Name"`
	SheetSize     int      `mapstructure:"SheetSize"`
	Palette       string   `mapstructure:"Palette"`
	PlayerPalette string   `mapstructure:"PlayerPalette"`
	Extensions    []string `mapstructure:"Extensions"`

	types []TerrainType
	index map[string]int
}

// NewTerrainDescriptor returns a tileset with default general values.
func NewTerrainDescriptor() *TerrainDescriptor {
	return &TerrainDescriptor{SheetSize: 512}
}

// SetTerrainTypes installs the terrain types sorted by Type. Duplicate type
// names are an error.
func (t *TerrainDescriptor) SetTerrainTypes(types []TerrainType) error {
	sorted := slices.Clone(types)
	slices.SortStableFunc(sorted, func(a, b TerrainType) int {
		return strings.Compare(a.Type, b.Type)
	})
	index := make(map[string]int, len(sorted))
	for i, tt := range sorted {
		if _, dup := index[tt.Type]; dup {
			return fmt.Errorf("tileset %q: duplicate terrain type %q", t.ID, tt.Type)
		}
		index[tt.Type] = i
	}
	t.types = sorted
	t.index = index
	return nil
}

// TerrainTypes returns the terrain types sorted by name.
func (t *TerrainDescriptor) TerrainTypes() []TerrainType {
	return slices.Clone(t.types)
}

// TerrainIndex returns the index of a terrain type.
func (t *TerrainDescriptor) TerrainIndex(typ string) (int, error) {
	if i, ok := t.index[typ]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("tileset %q lacks terrain type %q", t.ID, typ)
}
