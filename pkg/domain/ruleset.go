package domain

import (
	"maps"
	"slices"
	"strings"
)

// Ruleset is the complete set of composed catalogs for one mod or one map.
// Catalog maps are keyed by lower-case name and must not be modified after
// the ruleset is returned by the loader.
type Ruleset struct {
	Entities      map[string]*EntityDescriptor
	Weapons       map[string]*WeaponDescriptor
	Voices        map[string]*SoundDescriptor
	Notifications map[string]*SoundDescriptor
	Music         map[string]*MusicDescriptor
	Terrain       *TerrainDescriptor
	Sequences     *SequenceCatalog
}

// Entity looks up an entity by name, case-insensitively.
func (r *Ruleset) Entity(name string) (*EntityDescriptor, bool) {
	e, ok := r.Entities[strings.ToLower(name)]
	return e, ok
}

// Weapon looks up a weapon by name, case-insensitively.
func (r *Ruleset) Weapon(name string) (*WeaponDescriptor, bool) {
	w, ok := r.Weapons[strings.ToLower(name)]
	return w, ok
}

// Voice looks up a voice set by name, case-insensitively.
func (r *Ruleset) Voice(name string) (*SoundDescriptor, bool) {
	v, ok := r.Voices[strings.ToLower(name)]
	return v, ok
}

// EntityNames returns the entity names, sorted.
func (r *Ruleset) EntityNames() []string {
	return slices.Sorted(maps.Keys(r.Entities))
}

// WeaponNames returns the weapon names, sorted.
func (r *Ruleset) WeaponNames() []string {
	return slices.Sorted(maps.Keys(r.Weapons))
}
