/*
Package ruleforge composes declarative, inheritance-based game rule
definitions into immutable in-memory rulesets.

Definitions are YAML trees (entities, weapons, voices, notifications,
music, sequences and tilesets). Each named entry may inherit from another
with an Inherits key; children of the parent are merged under the child,
and a "-Key" entry removes an inherited child. Every child of an entity
becomes a capability created through a registry, with its fields loaded
from the tree, and each entity resolves a construction order that places
every capability after the capabilities it requires.

# Usage

	eng, err := ruleforge.New("./mods/ra", ruleforge.WithTileset("TEMPERAT"))
	if err != nil {
		log.Fatal(err)
	}

	defaults, err := eng.Defaults(ctx)
	if err != nil {
		log.Fatal(err)
	}

	tank, _ := defaults.Entity("tank")
	order, err := tank.ConstructOrder()

Map rules files override the mod defaults per category; categories a map
does not touch reuse the default catalogs, and entries whose resolved
definition did not change are reused from the composition cache:

	overrides, err := rules.ParseMapOverrides("map.yaml", data)
	mapRules, err := eng.LoadMap(ctx, overrides)

# Packages

  - pkg/tree: definition trees, merging and inheritance
  - pkg/compose and pkg/capabilities: composition and built-in capabilities
  - pkg/ordering: capability construction order
  - pkg/cache: content-addressed composition cache
  - pkg/rules: ruleset loading from a manifest
  - pkg/adapters: definition sources and merged-tree stores
*/
package ruleforge
