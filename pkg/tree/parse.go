package tree

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/internal/codec"
	"gopkg.in/yaml.v3"
)

// Parse converts a YAML document into an ordered list of top-level nodes.
//
// Mappings become children (order and duplicate keys preserved), scalars
// become values, and sequences of scalars become a comma separated value
// ("a, b, c"). Null scalars produce the empty (null) value. An empty
// document yields an empty list.
func Parse(filename string, data []byte) ([]*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	root := &doc
	if root.Kind == 0 {
		return []*Node{}, nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return []*Node{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return []*Node{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s:%d: top level must be a mapping", filename, root.Line)
	}

	return convertMapping(filename, root)
}

func convertMapping(filename string, m *yaml.Node) ([]*Node, error) {
	nodes := make([]*Node, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		n := &Node{
			Key:      k.Value,
			Children: []*Node{},
			Location: Location{File: filename, Line: k.Line},
		}
		if err := fill(filename, n, v); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func fill(filename string, n *Node, v *yaml.Node) error {
	switch v.Kind {
	case yaml.AliasNode:
		return fill(filename, n, v.Alias)
	case yaml.ScalarNode:
		if v.Tag != "!!null" {
			n.Value = v.Value
		}
	case yaml.MappingNode:
		children, err := convertMapping(filename, v)
		if err != nil {
			return err
		}
		n.Children = children
	case yaml.SequenceNode:
		items := make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind == yaml.AliasNode {
				item = item.Alias
			}
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("%s:%d: key %q: only lists of scalars are supported", filename, item.Line, n.Key)
			}
			items = append(items, item.Value)
		}
		n.Value = strings.Join(items, ", ")
	}
	return nil
}

// Encode serializes nodes deterministically. Locations are not encoded, so
// identical content from different files or lines encodes identically.
func Encode(nodes ...*Node) ([]byte, error) {
	return codec.Marshal(nodes)
}

// Decode is the inverse of Encode.
func Decode(data []byte) ([]*Node, error) {
	var nodes []*Node
	if err := codec.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	for _, n := range nodes {
		normalize(n)
	}
	if nodes == nil {
		nodes = []*Node{}
	}
	return nodes, nil
}

func normalize(n *Node) {
	if n.Children == nil {
		n.Children = []*Node{}
	}
	for _, c := range n.Children {
		normalize(c)
	}
}

// MarshalYAML renders nodes as a YAML document that Parse reads back to the
// same trees. A node cannot carry both a value and children in YAML; such
// nodes are rejected.
func MarshalYAML(nodes []*Node) ([]byte, error) {
	root, err := toMapping(nodes)
	if err != nil {
		return nil, err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return out, nil
}

func toMapping(nodes []*Node) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, n := range nodes {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Key}
		var value *yaml.Node
		switch {
		case len(n.Children) > 0 && n.Value != "":
			return nil, fmt.Errorf("%s: key %q has both a value and children", n.Location, n.Key)
		case len(n.Children) > 0:
			child, err := toMapping(n.Children)
			if err != nil {
				return nil, err
			}
			value = child
		case n.Value == "":
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
		default:
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.Value}
		}
		m.Content = append(m.Content, key, value)
	}
	return m, nil
}
