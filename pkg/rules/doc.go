// Package rules assembles complete rulesets from a mod manifest and optional
// map overrides.
//
// A Loader reads definition files through a ports.DefinitionSource, merges
// them per category, composes every entry through the composition cache and
// finally runs the post-load validation hooks of the composed capabilities,
// warheads and projectiles.
//
// Loading the mod defaults once and then loading each map with the defaults
// attached lets categories without overrides pass through untouched:
//
//	defaults, err := loader.Load(ctx, rules.LoadRequest{Manifest: m, Tileset: "TEMPERAT"})
//	mapRules, err := loader.Load(ctx, rules.LoadRequest{Manifest: m, Overrides: o, Defaults: defaults, Tileset: "TEMPERAT"})
package rules
