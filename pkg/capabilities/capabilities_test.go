package capabilities_test

import (
	"testing"

	"github.com/aretw0/ruleforge/pkg/capabilities"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(t *testing.T, caps ...domain.CapabilityEntry) *domain.EntityDescriptor {
	t.Helper()
	e, err := domain.NewEntityDescriptor("tank", "", caps, nil)
	require.NoError(t, err)
	return e
}

func TestRegister(t *testing.T) {
	reg := registry.New[domain.Capability]("capability")
	capabilities.Register(reg)

	for _, name := range reg.Names() {
		c, err := reg.Create(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Type(), "factory %q must produce its own type", name)
	}
	assert.True(t, reg.Has("RenderSprites"))

	warheads := registry.New[domain.Warhead]("warhead")
	capabilities.RegisterWarheads(warheads)
	assert.Equal(t, []string{"CreateEffect", "SpreadDamage"}, warheads.Names())

	projectiles := registry.New[domain.Projectile]("projectile")
	capabilities.RegisterProjectiles(projectiles)
	assert.Equal(t, []string{"Bullet", "InstantHit", "Missile"}, projectiles.Names())
}

func TestHealth_RulesetLoaded(t *testing.T) {
	rules := &domain.Ruleset{}
	health := &capabilities.Health{HP: 100}

	withShape := entity(t,
		domain.CapabilityEntry{Key: "Health", Capability: health},
		domain.CapabilityEntry{Key: "HitShape", Capability: &capabilities.HitShape{}},
	)
	assert.NoError(t, health.RulesetLoaded(rules, withShape))

	withoutShape := entity(t, domain.CapabilityEntry{Key: "Health", Capability: health})
	assert.ErrorContains(t, health.RulesetLoaded(rules, withoutShape), "HitShape")

	unset := &capabilities.Health{}
	assert.NoError(t, unset.RulesetLoaded(rules, withShape), "HP is not checked")
}

func TestArmament(t *testing.T) {
	rules := &domain.Ruleset{
		Weapons: map[string]*domain.WeaponDescriptor{"105mm": domain.NewWeaponDescriptor("105mm")},
	}

	body := &capabilities.Armament{Name: "primary", Weapon: "105MM"}
	assert.Empty(t, body.Prerequisites())

	mounted := &capabilities.Armament{Name: "primary", Weapon: "105mm", Turret: "primary"}
	assert.Equal(t, []string{"Turreted"}, mounted.Prerequisites())

	owner := entity(t,
		domain.CapabilityEntry{Key: "Turreted", Capability: &capabilities.Turreted{Turret: "primary"}},
		domain.CapabilityEntry{Key: "Armament", Capability: mounted},
	)
	assert.NoError(t, body.RulesetLoaded(rules, owner))
	assert.NoError(t, mounted.RulesetLoaded(rules, owner))

	wrongTurret := &capabilities.Armament{Name: "secondary", Weapon: "105mm", Turret: "rear"}
	assert.ErrorContains(t, wrongTurret.RulesetLoaded(rules, owner), `turret "rear"`)

	missing := &capabilities.Armament{Name: "primary", Weapon: "laser"}
	assert.ErrorContains(t, missing.RulesetLoaded(rules, owner), `weapon "laser" is not defined`)
}

func TestAttackProvidesBase(t *testing.T) {
	frontal := &capabilities.AttackFrontal{}
	turreted := &capabilities.AttackTurreted{}

	assert.True(t, domain.Satisfies(frontal, capabilities.AttackBase))
	assert.True(t, domain.Satisfies(turreted, capabilities.AttackBase))
	assert.Equal(t, []string{"Armament", "Turreted"}, domain.PrerequisitesOf(turreted))
}

func TestVoiced_RulesetLoaded(t *testing.T) {
	rules := &domain.Ruleset{
		Voices: map[string]*domain.SoundDescriptor{"vehiclevoice": domain.NewSoundDescriptor("vehiclevoice")},
	}
	owner := entity(t)

	assert.NoError(t, (&capabilities.Voiced{VoiceSet: "VehicleVoice"}).RulesetLoaded(rules, owner))
	assert.ErrorContains(t, (&capabilities.Voiced{VoiceSet: "Tanya"}).RulesetLoaded(rules, owner), "not defined")
	assert.ErrorContains(t, (&capabilities.Voiced{}).RulesetLoaded(rules, owner), "required")
}

func TestRenderSprites_RulesetLoaded(t *testing.T) {
	owner := entity(t)
	render := &capabilities.RenderSprites{}

	assert.NoError(t, render.RulesetLoaded(&domain.Ruleset{}, owner), "no sequences loaded")

	rules := &domain.Ruleset{
		Sequences: domain.NewSequenceCatalog("TEMPERAT", map[string]domain.ImageSequences{
			"tank": {"idle": &domain.SequenceDescriptor{Name: "idle"}},
		}),
	}
	assert.NoError(t, render.RulesetLoaded(rules, owner))

	other := &capabilities.RenderSprites{Image: "jeep"}
	assert.ErrorContains(t, other.RulesetLoaded(rules, owner), `image "jeep"`)
}

func TestWeaponValidators(t *testing.T) {
	rules := &domain.Ruleset{Sequences: domain.NewSequenceCatalog("TEMPERAT", nil)}
	w := domain.NewWeaponDescriptor("gun")

	var v domain.WeaponValidator = &capabilities.SpreadDamage{Spread: -1}
	assert.ErrorContains(t, v.RulesetLoaded(rules, w), "spread")

	v = &capabilities.Bullet{Image: "120mm"}
	assert.ErrorContains(t, v.RulesetLoaded(rules, w), `"120mm"`)

	v = &capabilities.Missile{}
	assert.NoError(t, v.RulesetLoaded(rules, w))
}
