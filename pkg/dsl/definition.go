package dsl

import (
	"maps"
	"slices"

	"github.com/aretw0/ruleforge/pkg/tree"
)

// Fields are the scalar fields of a capability or section. They are written
// in key order.
type Fields map[string]string

func (f Fields) nodes() []*tree.Node {
	out := make([]*tree.Node, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		out = append(out, tree.New(k, f[k]))
	}
	return out
}

// DefinitionBuilder configures one top-level definition.
type DefinitionBuilder struct {
	node *tree.Node
}

func newDefinition(name string) *DefinitionBuilder {
	return &DefinitionBuilder{node: tree.New(name, "")}
}

// Inherits sets the parent definition.
func (d *DefinitionBuilder) Inherits(parent string) *DefinitionBuilder {
	return d.Set(tree.KeyInherits, parent)
}

// Category sets the entity category.
func (d *DefinitionBuilder) Category(category string) *DefinitionBuilder {
	return d.Set(tree.KeyCategory, category)
}

// Set adds a scalar child.
func (d *DefinitionBuilder) Set(key, value string) *DefinitionBuilder {
	d.node.Children = append(d.node.Children, tree.New(key, value))
	return d
}

// Capability adds a capability (or any section) with its fields. Use
// "Name@suffix" keys for several instances of one capability.
func (d *DefinitionBuilder) Capability(key string, fields Fields) *DefinitionBuilder {
	d.node.Children = append(d.node.Children, tree.New(key, "", fields.nodes()...))
	return d
}

// Remove suppresses an inherited child.
func (d *DefinitionBuilder) Remove(key string) *DefinitionBuilder {
	return d.Set(tree.RemovalPrefix+key, "")
}

// Projectile sets the weapon projectile.
func (d *DefinitionBuilder) Projectile(typ string, fields Fields) *DefinitionBuilder {
	return d.typed("Projectile", typ, fields)
}

// Warhead adds a weapon warhead. An empty suffix produces a plain
// "Warhead" key.
func (d *DefinitionBuilder) Warhead(suffix, typ string, fields Fields) *DefinitionBuilder {
	key := "Warhead"
	if suffix != "" {
		key += tree.InstanceSeparator + suffix
	}
	return d.typed(key, typ, fields)
}

// Sequence adds an image sequence.
func (d *DefinitionBuilder) Sequence(name string, fields Fields) *DefinitionBuilder {
	return d.Capability(name, fields)
}

// Title sets the definition value, used as the title of music tracks. A
// definition with a title cannot have children.
func (d *DefinitionBuilder) Title(title string) *DefinitionBuilder {
	d.node.Value = title
	return d
}

// Node returns a copy of the definition tree.
func (d *DefinitionBuilder) Node() *tree.Node {
	return d.node.Clone()
}

func (d *DefinitionBuilder) typed(key, typ string, fields Fields) *DefinitionBuilder {
	children := append([]*tree.Node{tree.New("Type", typ)}, fields.nodes()...)
	d.node.Children = append(d.node.Children, tree.New(key, "", children...))
	return d
}
