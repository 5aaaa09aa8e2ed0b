package capabilities

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/domain"
)

// SpreadDamage damages everything within Spread of the impact.
type SpreadDamage struct {
	Spread      float64        `mapstructure:"Spread"`
	Damage      int            `mapstructure:"Damage"`
	Versus      map[string]int `mapstructure:"Versus"`
	DamageTypes []string       `mapstructure:"DamageTypes"`
}

func (*SpreadDamage) Type() string { return "SpreadDamage" }

func (s *SpreadDamage) RulesetLoaded(_ *domain.Ruleset, _ *domain.WeaponDescriptor) error {
	if s.Spread < 0 {
		return fmt.Errorf("spread must not be negative, got %v", s.Spread)
	}
	return nil
}

// CreateEffect spawns explosion animations and impact sounds.
type CreateEffect struct {
	Explosions       []string `mapstructure:"Explosions"`
	ExplosionPalette string   `mapstructure:"ExplosionPalette"`
	ImpactSounds     []string `mapstructure:"ImpactSounds"`
}

func (*CreateEffect) Type() string { return "CreateEffect" }

// Bullet is a ballistic projectile.
type Bullet struct {
	Speed      int    `mapstructure:"Speed"`
	Inaccuracy int    `mapstructure:"Inaccuracy"`
	Image      string `mapstructure:"Image"`
}

func (*Bullet) Type() string { return "Bullet" }

func (b *Bullet) RulesetLoaded(rules *domain.Ruleset, _ *domain.WeaponDescriptor) error {
	return checkImage(rules, b.Image)
}

// Missile is a guided projectile.
type Missile struct {
	Speed      int    `mapstructure:"Speed"`
	RangeLimit int    `mapstructure:"RangeLimit"`
	Image      string `mapstructure:"Image"`
}

func (*Missile) Type() string { return "Missile" }

func (m *Missile) RulesetLoaded(rules *domain.Ruleset, _ *domain.WeaponDescriptor) error {
	return checkImage(rules, m.Image)
}

// InstantHit hits its target immediately.
type InstantHit struct {
	Blockable bool `mapstructure:"Blockable"`
}

func (*InstantHit) Type() string { return "InstantHit" }

func checkImage(rules *domain.Ruleset, image string) error {
	if image == "" || rules.Sequences == nil {
		return nil
	}
	if !rules.Sequences.HasImage(image) {
		return fmt.Errorf("projectile image %q has no sequences", image)
	}
	return nil
}
