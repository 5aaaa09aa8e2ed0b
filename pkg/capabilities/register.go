package capabilities

import (
	"github.com/aretw0/ruleforge/pkg/compose"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/registry"
)

// Register adds every built-in capability to reg.
func Register(reg *registry.Registry[domain.Capability]) {
	reg.Register("Tooltip", func() domain.Capability { return &Tooltip{} })
	reg.Register("Health", func() domain.Capability { return &Health{NotifyAppliedDamage: true} })
	reg.Register("HitShape", func() domain.Capability { return &HitShape{Shape: "Circle"} })
	reg.Register("Armor", func() domain.Capability { return &Armor{} })
	reg.Register("Mobile", func() domain.Capability { return &Mobile{Speed: 1, TurnSpeed: 255} })
	reg.Register("Turreted", func() domain.Capability { return &Turreted{Turret: "primary", TurnSpeed: 255} })
	reg.Register("Armament", func() domain.Capability { return &Armament{Name: "primary"} })
	reg.Register("AttackFrontal", func() domain.Capability { return &AttackFrontal{FacingTolerance: 1} })
	reg.Register("AttackTurreted", func() domain.Capability { return &AttackTurreted{Turrets: []string{"primary"}} })
	reg.Register("Valued", func() domain.Capability { return &Valued{} })
	reg.Register("Buildable", func() domain.Capability { return &Buildable{} })
	reg.Register("Voiced", func() domain.Capability { return &Voiced{} })
	reg.Register("Building", func() domain.Capability { return &Building{Footprint: "x", Dimensions: "1,1"} })
	reg.Register("RevealsShroud", func() domain.Capability { return &RevealsShroud{} })
	reg.Register("RenderSprites", func() domain.Capability { return &RenderSprites{} })
}

// RegisterWarheads adds every built-in warhead to reg.
func RegisterWarheads(reg *registry.Registry[domain.Warhead]) {
	reg.Register("SpreadDamage", func() domain.Warhead { return &SpreadDamage{Spread: 43} })
	reg.Register("CreateEffect", func() domain.Warhead { return &CreateEffect{ExplosionPalette: "effect"} })
}

// RegisterProjectiles adds every built-in projectile to reg.
func RegisterProjectiles(reg *registry.Registry[domain.Projectile]) {
	reg.Register("Bullet", func() domain.Projectile { return &Bullet{Speed: 17} })
	reg.Register("Missile", func() domain.Projectile { return &Missile{Speed: 8} })
	reg.Register("InstantHit", func() domain.Projectile { return &InstantHit{} })
}

// RegisterAll registers the built-ins with all registries of c.
func RegisterAll(c *compose.Composer) {
	Register(c.Capabilities())
	RegisterWarheads(c.Warheads())
	RegisterProjectiles(c.Projectiles())
}
