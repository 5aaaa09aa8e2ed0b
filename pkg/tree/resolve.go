package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/ruleforge/internal/logging"
)

// ErrNotFound is returned when a name is not present in a Table.
var ErrNotFound = errors.New("definition not found")

// ErrInheritanceCycle is returned when an Inherits chain refers back to itself.
var ErrInheritanceCycle = errors.New("inheritance cycle")

// Table maps names (case-insensitively) to top-level definition nodes and
// resolves Inherits chains between them. A Table is built for one
// composition pass and is not safe for concurrent use.
type Table struct {
	nodes    map[string]*Node
	names    []string
	resolved map[string]*Node
	logger   *slog.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithLogger sets the logger used for non-fatal diagnostics (missing parents).
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable indexes the given top-level nodes. Entries whose names differ only
// by case are merged, later over earlier.
func NewTable(nodes []*Node, opts ...TableOption) *Table {
	t := &Table{
		nodes:    make(map[string]*Node, len(nodes)),
		names:    make([]string, 0, len(nodes)),
		resolved: make(map[string]*Node),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, n := range nodes {
		key := strings.ToLower(n.Key)
		if existing, ok := t.nodes[key]; ok {
			t.nodes[key] = Merge(n, existing)
			continue
		}
		t.nodes[key] = n
		t.names = append(t.names, n.Key)
	}
	return t
}

// Get returns the unresolved node for name.
func (t *Table) Get(name string) (*Node, bool) {
	n, ok := t.nodes[strings.ToLower(name)]
	return n, ok
}

// Names returns the top-level names in source order, as written.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of distinct names.
func (t *Table) Len() int {
	return len(t.names)
}

// Resolve returns the fully merged tree for name: the entry merged over its
// resolved parent, recursively. An Inherits reference to a name that is not
// in the table is logged and treated as "no parent".
//
// Results are memoized per Table and shared between callers; treat them as read-only.
func (t *Table) Resolve(name string) (*Node, error) {
	return t.resolve(name, nil)
}

// Resolve is shorthand for table.Resolve(name).
func Resolve(name string, table *Table) (*Node, error) {
	return table.Resolve(name)
}

func (t *Table) resolve(name string, chain []string) (*Node, error) {
	key := strings.ToLower(name)
	if done, ok := t.resolved[key]; ok {
		return done, nil
	}

	node, ok := t.nodes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, seen := range chain {
		if seen == key {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInheritanceCycle, strings.Join(chain, " -> "), key)
		}
	}
	chain = append(chain, key)

	parentName := node.ChildValue(KeyInherits)
	if parentName == "" {
		t.resolved[key] = node
		return node, nil
	}

	if _, ok := t.nodes[strings.ToLower(parentName)]; !ok {
		t.logger.Warn("Parent type not found, resolving without parent",
			"type", node.Key,
			"inherits", parentName,
			"location", node.Location.String(),
		)
		t.resolved[key] = node
		return node, nil
	}

	parent, err := t.resolve(parentName, chain)
	if err != nil {
		return nil, err
	}

	merged := Merge(node, withoutReAdded(parent, node))
	t.resolved[key] = merged
	return merged, nil
}

// withoutReAdded drops inherited removal markers for keys that child defines
// again, together with the entries they removed, so the child's entry starts
// from scratch. Removals apply to ancestors only.
func withoutReAdded(parent, child *Node) *Node {
	own := make(map[string]bool, len(child.Children))
	for _, c := range child.Children {
		if _, ok := IsRemoval(c.Key); !ok {
			own[c.Key] = true
		}
	}

	cleared := make(map[string]bool)
	for _, c := range parent.Children {
		if removed, ok := IsRemoval(c.Key); ok && own[removed] {
			cleared[removed] = true
		}
	}
	if len(cleared) == 0 {
		return parent
	}

	out := &Node{
		Key:      parent.Key,
		Value:    parent.Value,
		Location: parent.Location,
		Children: make([]*Node, 0, len(parent.Children)),
	}
	for _, c := range parent.Children {
		if cleared[c.Key] {
			continue
		}
		if removed, ok := IsRemoval(c.Key); ok && cleared[removed] {
			continue
		}
		out.Children = append(out.Children, c)
	}
	return out
}
