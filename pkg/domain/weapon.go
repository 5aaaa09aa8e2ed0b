package domain

// Warhead is a composed damage or effect descriptor of a weapon.
type Warhead interface {
	Type() string
}

// Projectile is the composed projectile descriptor of a weapon.
type Projectile interface {
	Type() string
}

// WeaponValidator is implemented by warheads and projectiles that cross-check
// other rule data once the whole Ruleset is available.
type WeaponValidator interface {
	RulesetLoaded(rules *Ruleset, weapon *WeaponDescriptor) error
}

// WarheadEntry pairs a warhead with its definition key ("Warhead", "Warhead@effect").
type WarheadEntry struct {
	Key     string
	Warhead Warhead
}

// WeaponDescriptor is a composed weapon.
type WeaponDescriptor struct {
	Name string `mapstructure:"-"`

	Range          float64  `mapstructure:"Range"`
	MinRange       float64  `mapstructure:"MinRange"`
	ReloadDelay    int      `mapstructure:"ReloadDelay"`
	Burst          int      `mapstructure:"Burst"`
	BurstDelay     int      `mapstructure:"BurstDelay"`
	ValidTargets   []string `mapstructure:"ValidTargets"`
	InvalidTargets []string `mapstructure:"InvalidTargets"`
	Report         []string `mapstructure:"Report"`

	Projectile Projectile     `mapstructure:"-"`
	Warheads   []WarheadEntry `mapstructure:"-"`
}

// NewWeaponDescriptor returns a weapon with default field values.
func NewWeaponDescriptor(name string) *WeaponDescriptor {
	return &WeaponDescriptor{
		Name:         name,
		ReloadDelay:  1,
		Burst:        1,
		BurstDelay:   5,
		ValidTargets: []string{"Ground", "Water"},
	}
}
