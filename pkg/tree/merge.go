package tree

// Merge combines overlay over base and returns a new tree; neither input is modified.
//
// Merge rules:
//   - Value: overlay wins if non-empty, otherwise base's value is kept.
//   - Children present in both (matched by key) are merged recursively.
//   - Children only in base are carried through unchanged, in base order.
//   - Children only in overlay are appended after base's children, in overlay order.
//   - An overlay child whose key already exists in the result (including one appended
//     earlier from the same overlay) is merged into that entry where it first appeared.
//
// The merged node takes overlay's key and location.
func Merge(overlay, base *Node) *Node {
	if overlay == nil {
		return base.Clone()
	}
	if base == nil {
		return mergeChildrenInto(&Node{
			Key:      overlay.Key,
			Value:    overlay.Value,
			Location: overlay.Location,
		}, overlay.Children, nil)
	}

	value := base.Value
	if overlay.Value != "" {
		value = overlay.Value
	}

	return mergeChildrenInto(&Node{
		Key:      overlay.Key,
		Value:    value,
		Location: overlay.Location,
	}, overlay.Children, base.Children)
}

func mergeChildrenInto(out *Node, overlay, base []*Node) *Node {
	out.Children = make([]*Node, 0, len(base)+len(overlay))
	index := make(map[string]int, len(base)+len(overlay))

	for _, b := range base {
		if _, seen := index[b.Key]; !seen {
			index[b.Key] = len(out.Children)
		}
		out.Children = append(out.Children, b.Clone())
	}

	for _, o := range overlay {
		if i, ok := index[o.Key]; ok {
			out.Children[i] = Merge(o, out.Children[i])
			continue
		}
		index[o.Key] = len(out.Children)
		out.Children = append(out.Children, Merge(o, nil))
	}

	return out
}

// MergeLists unions several top-level node lists (typically one per source file).
// Later sources override earlier ones for the same name, and duplicate names
// inside a single source are collapsed into their first occurrence.
func MergeLists(sources ...[]*Node) []*Node {
	var root *Node
	for _, src := range sources {
		if src == nil {
			continue
		}
		root = Merge(&Node{Children: src}, root)
	}
	if root == nil {
		return []*Node{}
	}
	return root.Children
}
