/*
Package dsl provides a fluent Go builder for mod definitions.

It produces the same definition trees a YAML mod would, without writing
files: useful for tests, generated content and programmatic mods. Build
returns an in-memory definition source and the manifest listing its files,
ready for rules.New. The manifest is also stored in the source as mod.yaml,
so the source can be handed to ruleforge.New with WithSource.

Example usage:

	b := dsl.New()

	b.Entity("^Vehicle").
		Capability("Health", dsl.Fields{"HP": "100"}).
		Capability("HitShape", nil)

	b.Entity("tank").
		Inherits("^Vehicle").
		Capability("Armor", dsl.Fields{"Type": "Heavy"}).
		Capability("Armament", dsl.Fields{"Weapon": "90mm"})

	b.Weapon("90mm").
		Set("Range", "4.75").
		Projectile("Bullet", dsl.Fields{"Speed": "20"}).
		Warhead("", "SpreadDamage", dsl.Fields{"Damage": "40"})

	source, manifest, err := b.Build()
	// ...
	rs, err := rules.New(source).Load(ctx, rules.LoadRequest{Manifest: manifest})
*/
package dsl
