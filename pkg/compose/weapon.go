package compose

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

const (
	keyProjectile = "Projectile"
	keyWarhead    = "Warhead"
)

// Weapon resolves name in table and composes the result.
func (c *Composer) Weapon(name string, table *tree.Table) (*domain.WeaponDescriptor, error) {
	merged, err := resolve("weapon", name, table)
	if err != nil {
		return nil, err
	}
	return c.WeaponFromTree(name, merged)
}

// WeaponFromTree composes a weapon from its resolved tree. "Projectile" and
// "Warhead" / "Warhead@suffix" children name their type in their value (or
// in a Type child) and are created through the projectile and warhead
// registries; every other child is a weapon field.
func (c *Composer) WeaponFromTree(name string, merged *tree.Node) (*domain.WeaponDescriptor, error) {
	w := domain.NewWeaponDescriptor(strings.ToLower(name))
	own := &tree.Node{Key: merged.Key, Location: merged.Location, Children: []*tree.Node{}}

	for _, n := range children(merged) {
		base, _ := tree.SplitInstance(n.Key)
		switch base {
		case keyProjectile:
			p, err := c.projectile(n)
			if err != nil {
				return nil, fmt.Errorf("weapon %q: %w", name, err)
			}
			w.Projectile = p
		case keyWarhead:
			wh, err := c.warhead(n)
			if err != nil {
				return nil, fmt.Errorf("weapon %q: %w", name, err)
			}
			w.Warheads = append(w.Warheads, domain.WarheadEntry{Key: n.Key, Warhead: wh})
		default:
			own.Children = append(own.Children, n)
		}
	}

	if err := c.fields.Load(w, own); err != nil {
		return nil, fmt.Errorf("weapon %q: %w", name, err)
	}
	return w, nil
}

func (c *Composer) projectile(n *tree.Node) (domain.Projectile, error) {
	typ, rest := typed(n)
	if typ == "" {
		return nil, fmt.Errorf("%s (%s): projectile type missing", n.Key, n.Location)
	}
	p, err := c.projectiles.Create(typ)
	if err != nil {
		return nil, err
	}
	if err := c.fields.Load(p, rest); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Composer) warhead(n *tree.Node) (domain.Warhead, error) {
	typ, rest := typed(n)
	if typ == "" {
		return nil, fmt.Errorf("%s (%s): warhead type missing", n.Key, n.Location)
	}
	wh, err := c.warheads.Create(typ)
	if err != nil {
		return nil, err
	}
	if err := c.fields.Load(wh, rest); err != nil {
		return nil, err
	}
	return wh, nil
}
