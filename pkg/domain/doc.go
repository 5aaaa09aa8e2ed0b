/*
Package domain contains the composed rule objects and the interfaces
capabilities implement.

Everything in this package is produced by the composers in pkg/compose and is
read-only once a Ruleset has been published. Descriptors may be shared by
several rulesets (a map ruleset reuses the mod defaults it did not override).

# Key Entities

  - EntityDescriptor: a named entity and its bag of capabilities, keyed by the
    definition key that produced each one ("Armor", "Armor@left").
  - Capability: a composed behavior descriptor. Optional interfaces declare
    prerequisites (Prerequisiter), extra satisfied tags (Provider) and
    cross-reference validation (RulesetValidator).
  - WeaponDescriptor: weapon fields plus its projectile and warheads.
  - SoundDescriptor, MusicDescriptor, TerrainDescriptor, SequenceCatalog.
  - Ruleset: the complete set of catalogs for one mod or one map.
*/
package domain
