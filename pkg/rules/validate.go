package rules

import (
	"github.com/aretw0/ruleforge/pkg/domain"
)

// runHooks calls the post-load hook of every entity capability, projectile
// and warhead in name order. report receives each failure and returns false
// to stop.
func runHooks(rs *domain.Ruleset, report func(*domain.RulesetError) bool) {
	for _, name := range rs.EntityNames() {
		e := rs.Entities[name]
		for _, c := range e.Capabilities() {
			v, ok := c.(domain.RulesetValidator)
			if !ok {
				continue
			}
			if err := v.RulesetLoaded(rs, e); err != nil {
				if !report(&domain.RulesetError{Owner: e.Name, Err: err}) {
					return
				}
			}
		}
	}

	for _, name := range rs.WeaponNames() {
		w := rs.Weapons[name]
		var validators []domain.WeaponValidator
		if v, ok := w.Projectile.(domain.WeaponValidator); ok {
			validators = append(validators, v)
		}
		for _, wh := range w.Warheads {
			if v, ok := wh.Warhead.(domain.WeaponValidator); ok {
				validators = append(validators, v)
			}
		}
		for _, v := range validators {
			if err := v.RulesetLoaded(rs, w); err != nil {
				if !report(&domain.RulesetError{Owner: w.Name, Err: err}) {
					return
				}
			}
		}
	}
}

// Validate runs every post-load hook and resolves the construction order of
// every entity, collecting all failures into a *domain.AggregateError.
func Validate(rs *domain.Ruleset) error {
	var errs []error
	runHooks(rs, func(err *domain.RulesetError) bool {
		errs = append(errs, err)
		return true
	})
	for _, name := range rs.EntityNames() {
		if _, err := rs.Entities[name].ConstructOrder(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}
