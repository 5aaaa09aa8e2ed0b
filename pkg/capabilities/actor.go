package capabilities

import (
	"errors"
	"fmt"

	"github.com/aretw0/ruleforge/pkg/domain"
)

// Tooltip is the display name of an entity.
type Tooltip struct {
	Name        string `mapstructure:"Name"`
	GenericName string `mapstructure:"GenericName"`
	Description string `mapstructure:"Description"`
}

func (*Tooltip) Type() string { return "Tooltip" }

// Health gives an entity hit points.
type Health struct {
	HP                  int  `mapstructure:"HP"`
	NotifyAppliedDamage bool `mapstructure:"NotifyAppliedDamage"`
}

func (*Health) Type() string { return "Health" }

func (h *Health) RulesetLoaded(_ *domain.Ruleset, owner *domain.EntityDescriptor) error {
	if !owner.Has("HitShape") {
		return errors.New("entities with Health need at least one HitShape")
	}
	return nil
}

// HitShape is the damage footprint of an entity.
type HitShape struct {
	Shape  string `mapstructure:"Type"`
	Radius int    `mapstructure:"Radius"`
}

func (*HitShape) Type() string { return "HitShape" }

// Armor is the armor class used by warhead damage modifiers.
type Armor struct {
	Class string `mapstructure:"Type"`
}

func (*Armor) Type() string { return "Armor" }

// Mobile lets an entity move.
type Mobile struct {
	Speed     int      `mapstructure:"Speed"`
	TurnSpeed int      `mapstructure:"TurnSpeed"`
	Locomotor string   `mapstructure:"Locomotor"`
	Crushes   []string `mapstructure:"Crushes"`
}

func (*Mobile) Type() string { return "Mobile" }

// Turreted is a named rotating turret.
type Turreted struct {
	Turret        string `mapstructure:"Turret"`
	TurnSpeed     int    `mapstructure:"TurnSpeed"`
	InitialFacing int    `mapstructure:"InitialFacing"`
}

func (*Turreted) Type() string { return "Turreted" }

// Valued is the build cost of an entity.
type Valued struct {
	Cost int `mapstructure:"Cost"`
}

func (*Valued) Type() string { return "Valued" }

func (v *Valued) RulesetLoaded(_ *domain.Ruleset, _ *domain.EntityDescriptor) error {
	if v.Cost < 0 {
		return fmt.Errorf("cost must not be negative, got %d", v.Cost)
	}
	return nil
}

// Buildable places an entity in a production queue. Requires lists tech
// tree prerequisites, not construction-order prerequisites.
type Buildable struct {
	Queue             []string `mapstructure:"Queue"`
	Requires          []string `mapstructure:"Prerequisites"`
	BuildPaletteOrder int      `mapstructure:"BuildPaletteOrder"`
	Description       string   `mapstructure:"Description"`
}

func (*Buildable) Type() string { return "Buildable" }

// Voiced references the voice set an entity speaks with.
type Voiced struct {
	VoiceSet string `mapstructure:"VoiceSet"`
}

func (*Voiced) Type() string { return "Voiced" }

func (v *Voiced) RulesetLoaded(rules *domain.Ruleset, _ *domain.EntityDescriptor) error {
	if v.VoiceSet == "" {
		return errors.New("voice set is required")
	}
	if _, ok := rules.Voice(v.VoiceSet); !ok {
		return fmt.Errorf("voice set %q is not defined", v.VoiceSet)
	}
	return nil
}

// Building occupies cells on the map.
type Building struct {
	Footprint  string `mapstructure:"Footprint"`
	Dimensions string `mapstructure:"Dimensions"`
}

func (*Building) Type() string { return "Building" }

// RevealsShroud is the vision radius of an entity, in cells.
type RevealsShroud struct {
	Range float64 `mapstructure:"Range"`
}

func (*RevealsShroud) Type() string { return "RevealsShroud" }

// RenderSprites draws an entity from an image in the sequence catalog.
// Image defaults to the entity name.
type RenderSprites struct {
	Image   string `mapstructure:"Image"`
	Palette string `mapstructure:"Palette"`
}

func (*RenderSprites) Type() string { return "RenderSprites" }

func (r *RenderSprites) RulesetLoaded(rules *domain.Ruleset, owner *domain.EntityDescriptor) error {
	if rules.Sequences == nil {
		return nil
	}
	image := r.Image
	if image == "" {
		image = owner.Name
	}
	if !rules.Sequences.HasImage(image) {
		return fmt.Errorf("image %q has no sequences for tileset %q", image, rules.Sequences.Tileset)
	}
	return nil
}
