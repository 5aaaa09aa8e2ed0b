// Package compose turns resolved definition trees into domain descriptors.
//
// Every composer has two forms: one that resolves a name against a
// tree.Table first (Entity, Weapon, ...) and one that takes an already
// resolved tree (EntityFromTree, WeaponFromTree, ...), which is what the
// composition cache calls.
package compose

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/fields"
	"github.com/aretw0/ruleforge/pkg/ordering"
	"github.com/aretw0/ruleforge/pkg/registry"
	"github.com/aretw0/ruleforge/pkg/tree"
)

var composerIDs atomic.Uint64

// Composer builds descriptors using its registries and field loader.
type Composer struct {
	id           string
	capabilities *registry.Registry[domain.Capability]
	warheads     *registry.Registry[domain.Warhead]
	projectiles  *registry.Registry[domain.Projectile]
	fields       *fields.Loader
	order        domain.OrderFunc
	logger       *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithCapabilities sets the capability registry.
func WithCapabilities(reg *registry.Registry[domain.Capability]) Option {
	return func(c *Composer) {
		c.capabilities = reg
	}
}

// WithWarheads sets the warhead registry.
func WithWarheads(reg *registry.Registry[domain.Warhead]) Option {
	return func(c *Composer) {
		c.warheads = reg
	}
}

// WithProjectiles sets the projectile registry.
func WithProjectiles(reg *registry.Registry[domain.Projectile]) Option {
	return func(c *Composer) {
		c.projectiles = reg
	}
}

// WithFieldLoader replaces the default Strict field loader.
func WithFieldLoader(l *fields.Loader) Option {
	return func(c *Composer) {
		c.fields = l
	}
}

// WithOrder replaces the construction order function given to entities.
func WithOrder(fn domain.OrderFunc) Option {
	return func(c *Composer) {
		c.order = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// New creates a Composer. Without options the registries are empty and
// fields are loaded with the Strict policy.
func New(opts ...Option) *Composer {
	c := &Composer{
		id:           fmt.Sprintf("composer-%d", composerIDs.Add(1)),
		capabilities: registry.New[domain.Capability]("capability"),
		warheads:     registry.New[domain.Warhead]("warhead"),
		projectiles:  registry.New[domain.Projectile]("projectile"),
		order:        ordering.Order,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fields == nil {
		c.fields = fields.New(fields.Strict, fields.WithLogger(c.logger))
	}
	return c
}

// ID identifies the composer within the process. Caches shared between
// loaders key composed items by it.
func (c *Composer) ID() string {
	return c.id
}

// Capabilities returns the capability registry.
func (c *Composer) Capabilities() *registry.Registry[domain.Capability] {
	return c.capabilities
}

// Warheads returns the warhead registry.
func (c *Composer) Warheads() *registry.Registry[domain.Warhead] {
	return c.warheads
}

// Projectiles returns the projectile registry.
func (c *Composer) Projectiles() *registry.Registry[domain.Projectile] {
	return c.projectiles
}

// children returns the composable children of a resolved tree: reserved keys,
// removal markers and the keys they remove are dropped.
func children(merged *tree.Node, reserved ...string) []*tree.Node {
	skip := make(map[string]bool, len(reserved)+1)
	skip[tree.KeyInherits] = true
	for _, r := range reserved {
		skip[r] = true
	}
	for _, child := range merged.Children {
		if removed, ok := tree.IsRemoval(child.Key); ok {
			skip[removed] = true
		}
	}

	out := make([]*tree.Node, 0, len(merged.Children))
	for _, child := range merged.Children {
		if skip[child.Key] {
			continue
		}
		if _, ok := tree.IsRemoval(child.Key); ok {
			continue
		}
		out = append(out, child)
	}
	return out
}

// typed splits a node of the form "Key: <Type>" (or a "Type" child) into
// the type name and a copy of the node holding only the remaining fields.
func typed(n *tree.Node) (string, *tree.Node) {
	typ := n.Value
	rest := &tree.Node{Key: n.Key, Location: n.Location, Children: make([]*tree.Node, 0, len(n.Children))}
	for _, c := range n.Children {
		if c.Key == "Type" {
			if typ == "" {
				typ = c.Value
			}
			continue
		}
		rest.Children = append(rest.Children, c)
	}
	return typ, rest
}

func resolve(kind, name string, table *tree.Table) (*tree.Node, error) {
	merged, err := table.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, name, err)
	}
	return merged, nil
}
