package tree

import (
	"fmt"
	"strings"
)

// Reserved keys and prefixes recognized by the composers.
const (
	KeyInherits = "Inherits"
	KeyCategory = "Category"

	// RemovalPrefix marks a key that suppresses an inherited entry ("-Foo").
	RemovalPrefix = "-"
	// AbstractPrefix marks a top-level entry that only exists to be inherited ("^Vehicle").
	AbstractPrefix = "^"
	// InstanceSeparator separates a capability name from its disambiguation suffix ("Armor@left").
	InstanceSeparator = "@"
)

// Location identifies where a node was defined.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Node is one entry of a definition tree: a key, an optional scalar value and
// an ordered list of children. An empty Value is the null value.
//
// Children is never nil for nodes built by this package; duplicate child keys
// are legal and traversal always follows source order.
type Node struct {
	Key      string   `cbor:"k"`
	Value    string   `cbor:"v,omitempty"`
	Children []*Node  `cbor:"c,omitempty"`
	Location Location `cbor:"-"`
}

// New creates a node with the given children.
func New(key, value string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Key: key, Value: value, Children: children}
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Key:      n.Key,
		Value:    n.Value,
		Location: n.Location,
		Children: make([]*Node, len(n.Children)),
	}
	for i, c := range n.Children {
		out.Children[i] = c.Clone()
	}
	return out
}

// Child returns the first child with the given key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// ChildValue returns the value of the first child with the given key.
func (n *Node) ChildValue(key string) string {
	if c := n.Child(key); c != nil {
		return c.Value
	}
	return ""
}

// IsRemoval reports whether the key is a removal marker and returns the key it removes.
func IsRemoval(key string) (string, bool) {
	if strings.HasPrefix(key, RemovalPrefix) && len(key) > len(RemovalPrefix) {
		return key[len(RemovalPrefix):], true
	}
	return "", false
}

// IsAbstract reports whether a top-level name is an inheritance-only template.
func IsAbstract(name string) bool {
	return strings.HasPrefix(name, AbstractPrefix)
}

// SplitInstance splits "Armor@left" into ("Armor", "left").
func SplitInstance(key string) (name, suffix string) {
	name, suffix, _ = strings.Cut(key, InstanceSeparator)
	return name, suffix
}

// Equal reports structural equality, ignoring locations.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Key != o.Key || n.Value != o.Value || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the node in an indented "Key: Value" form for diagnostics.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("\t", depth))
	sb.WriteString(n.Key)
	sb.WriteString(":")
	if n.Value != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Value)
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}

// Format renders a node list the same way as Node.String.
func Format(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		n.write(&sb, 0)
	}
	return sb.String()
}
