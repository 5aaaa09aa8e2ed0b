package domain

import "slices"

// Capability is a composed behavior descriptor attached to an entity.
type Capability interface {
	// Type returns the capability type tag, e.g. "Armor". Instances created
	// from "Armor" and "Armor@left" share the same tag.
	Type() string
}

// Prerequisiter is implemented by capabilities that must be constructed after
// other capability types present on the same entity.
type Prerequisiter interface {
	Prerequisites() []string
}

// Provider is implemented by capabilities that satisfy prerequisites other
// than their own type tag (AttackFrontal provides AttackBase).
type Provider interface {
	Provides() []string
}

// RulesetValidator is implemented by capabilities that cross-check other rule
// data once the whole Ruleset is available.
type RulesetValidator interface {
	RulesetLoaded(rules *Ruleset, owner *EntityDescriptor) error
}

// PrerequisitesOf returns the declared prerequisite tags of c, or nil.
func PrerequisitesOf(c Capability) []string {
	if p, ok := c.(Prerequisiter); ok {
		return p.Prerequisites()
	}
	return nil
}

// Satisfies reports whether c satisfies a prerequisite on tag.
func Satisfies(c Capability, tag string) bool {
	if c.Type() == tag {
		return true
	}
	if p, ok := c.(Provider); ok {
		return slices.Contains(p.Provides(), tag)
	}
	return false
}
