package capabilities

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/domain"
)

// AttackBase is the tag provided by every attack capability.
const AttackBase = "AttackBase"

// Armament mounts a weapon, optionally on a named turret.
type Armament struct {
	Name   string `mapstructure:"Name"`
	Weapon string `mapstructure:"Weapon"`
	Turret string `mapstructure:"Turret"`
	Recoil int    `mapstructure:"Recoil"`
}

func (*Armament) Type() string { return "Armament" }

func (a *Armament) Prerequisites() []string {
	if a.Turret == "" {
		return nil
	}
	return []string{"Turreted"}
}

func (a *Armament) RulesetLoaded(rules *domain.Ruleset, owner *domain.EntityDescriptor) error {
	if a.Weapon == "" {
		return fmt.Errorf("armament %q has no Weapon", a.Name)
	}
	if _, ok := rules.Weapon(a.Weapon); !ok {
		return fmt.Errorf("armament %q: weapon %q is not defined", a.Name, a.Weapon)
	}
	if a.Turret == "" {
		return nil
	}
	for _, c := range owner.OfType("Turreted") {
		if t, ok := c.(*Turreted); ok && t.Turret == a.Turret {
			return nil
		}
	}
	return fmt.Errorf("armament %q: turret %q is not defined", a.Name, a.Turret)
}

// AttackFrontal attacks with armaments facing the target.
type AttackFrontal struct {
	FacingTolerance int `mapstructure:"FacingTolerance"`
}

func (*AttackFrontal) Type() string            { return "AttackFrontal" }
func (*AttackFrontal) Prerequisites() []string { return []string{"Armament"} }
func (*AttackFrontal) Provides() []string      { return []string{AttackBase} }

// AttackTurreted attacks with armaments mounted on turrets.
type AttackTurreted struct {
	Turrets []string `mapstructure:"Turrets"`
}

func (*AttackTurreted) Type() string            { return "AttackTurreted" }
func (*AttackTurreted) Prerequisites() []string { return []string{"Armament", "Turreted"} }
func (*AttackTurreted) Provides() []string      { return []string{AttackBase} }
