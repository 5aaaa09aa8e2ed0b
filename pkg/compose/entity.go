package compose

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// Entity resolves name in table and composes the result.
func (c *Composer) Entity(name string, table *tree.Table) (*domain.EntityDescriptor, error) {
	merged, err := resolve("entity", name, table)
	if err != nil {
		return nil, err
	}
	return c.EntityFromTree(name, merged)
}

// EntityFromTree composes an entity from its resolved tree. Every child other
// than Inherits, Category and removal markers becomes one capability; a child
// named by a removal marker is not instantiated.
func (c *Composer) EntityFromTree(name string, merged *tree.Node) (*domain.EntityDescriptor, error) {
	nodes := children(merged, tree.KeyCategory)
	entries := make([]domain.CapabilityEntry, 0, len(nodes))

	for _, n := range nodes {
		capability, err := c.capabilities.Create(n.Key)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
		if err := c.fields.Load(capability, n); err != nil {
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
		entries = append(entries, domain.CapabilityEntry{Key: n.Key, Capability: capability})
	}

	return domain.NewEntityDescriptor(strings.ToLower(name), merged.ChildValue(tree.KeyCategory), entries, c.order)
}
