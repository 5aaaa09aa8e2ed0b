package http

import "github.com/aretw0/ruleforge/pkg/domain"

type capabilityView struct {
	Key           string   `json:"key"`
	Type          string   `json:"type"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Provides      []string `json:"provides,omitempty"`
}

type entityView struct {
	Name         string           `json:"name"`
	Category     string           `json:"category,omitempty"`
	Capabilities []capabilityView `json:"capabilities"`
}

func newEntityView(e *domain.EntityDescriptor) entityView {
	v := entityView{Name: e.Name, Category: e.Category, Capabilities: []capabilityView{}}
	for _, entry := range e.Entries() {
		cv := capabilityView{
			Key:           entry.Key,
			Type:          entry.Capability.Type(),
			Prerequisites: domain.PrerequisitesOf(entry.Capability),
		}
		if p, ok := entry.Capability.(domain.Provider); ok {
			cv.Provides = p.Provides()
		}
		v.Capabilities = append(v.Capabilities, cv)
	}
	return v
}

type warheadView struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

type weaponView struct {
	Name         string        `json:"name"`
	Range        float64       `json:"range"`
	ReloadDelay  int           `json:"reload_delay"`
	Burst        int           `json:"burst"`
	ValidTargets []string      `json:"valid_targets"`
	Projectile   string        `json:"projectile,omitempty"`
	Warheads     []warheadView `json:"warheads"`
}

func newWeaponView(w *domain.WeaponDescriptor) weaponView {
	v := weaponView{
		Name:         w.Name,
		Range:        w.Range,
		ReloadDelay:  w.ReloadDelay,
		Burst:        w.Burst,
		ValidTargets: w.ValidTargets,
		Warheads:     []warheadView{},
	}
	if w.Projectile != nil {
		v.Projectile = w.Projectile.Type()
	}
	for _, wh := range w.Warheads {
		v.Warheads = append(v.Warheads, warheadView{Key: wh.Key, Type: wh.Warhead.Type()})
	}
	return v
}
