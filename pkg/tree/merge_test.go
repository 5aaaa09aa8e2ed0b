package tree_test

import (
	"testing"

	"github.com/aretw0/ruleforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(n *tree.Node) []string {
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Key)
	}
	return out
}

func TestMerge_Override(t *testing.T) {
	overlay := tree.New("e", "", tree.New("X", "2"))
	base := tree.New("e", "", tree.New("X", "1"), tree.New("Y", "3"))

	merged := tree.Merge(overlay, base)

	assert.Equal(t, []string{"X", "Y"}, keys(merged))
	assert.Equal(t, "2", merged.ChildValue("X"))
	assert.Equal(t, "3", merged.ChildValue("Y"))
}

func TestMerge_NullValueKeepsBase(t *testing.T) {
	overlay := tree.New("Armor", "", tree.New("Type", "light"))
	base := tree.New("Armor", "kept", tree.New("Type", "heavy"))

	merged := tree.Merge(overlay, base)

	assert.Equal(t, "kept", merged.Value)
	assert.Equal(t, "light", merged.ChildValue("Type"))
}

func TestMerge_OrderAndAppend(t *testing.T) {
	overlay := tree.New("e", "",
		tree.New("C", "c"),
		tree.New("A", "a2"),
		tree.New("D", "d"),
	)
	base := tree.New("e", "",
		tree.New("A", "a"),
		tree.New("B", "b"),
	)

	merged := tree.Merge(overlay, base)

	assert.Equal(t, []string{"A", "B", "C", "D"}, keys(merged))
	assert.Equal(t, "a2", merged.ChildValue("A"))
}

func TestMerge_DuplicateOverlayKeysCollapse(t *testing.T) {
	overlay := tree.New("e", "",
		tree.New("Health", "", tree.New("HP", "100")),
		tree.New("Mobile", ""),
		tree.New("Health", "", tree.New("Regen", "1")),
	)

	merged := tree.Merge(overlay, tree.New("e", ""))

	require.Equal(t, []string{"Health", "Mobile"}, keys(merged))
	health := merged.Child("Health")
	assert.Equal(t, "100", health.ChildValue("HP"))
	assert.Equal(t, "1", health.ChildValue("Regen"))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	overlay := tree.New("e", "", tree.New("X", "2", tree.New("Z", "z")))
	base := tree.New("e", "", tree.New("X", "1"))
	overlaySnapshot := overlay.Clone()
	baseSnapshot := base.Clone()

	_ = tree.Merge(overlay, base)

	assert.True(t, overlay.Equal(overlaySnapshot))
	assert.True(t, base.Equal(baseSnapshot))
}

func TestMerge_KeepsRemovalMarkers(t *testing.T) {
	overlay := tree.New("tank", "", tree.New("-Armor", ""))
	base := tree.New("^Vehicle", "", tree.New("Armor", "", tree.New("Type", "heavy")))

	merged := tree.Merge(overlay, base)

	assert.Equal(t, "tank", merged.Key)
	assert.Equal(t, []string{"Armor", "-Armor"}, keys(merged))
}

func TestMerge_Associative(t *testing.T) {
	a := tree.New("e", "",
		tree.New("X", "a"),
		tree.New("Deep", "", tree.New("P", "a")),
		tree.New("OnlyA", "1"),
	)
	b := tree.New("e", "b",
		tree.New("Y", "b"),
		tree.New("Deep", "", tree.New("Q", "b"), tree.New("P", "b")),
		tree.New("X", "b"),
	)
	c := tree.New("e", "c",
		tree.New("Deep", "deep", tree.New("R", "c")),
		tree.New("Z", "c"),
		tree.New("Y", "c"),
	)

	left := tree.Merge(a, tree.Merge(b, c))
	right := tree.Merge(tree.Merge(a, b), c)

	assert.True(t, left.Equal(right), "left:\n%s\nright:\n%s", left, right)
}

func TestMergeLists(t *testing.T) {
	first := []*tree.Node{
		tree.New("tank", "", tree.New("Health", "", tree.New("HP", "300"))),
		tree.New("jeep", "", tree.New("Mobile", "")),
	}
	second := []*tree.Node{
		tree.New("tank", "", tree.New("Health", "", tree.New("HP", "400"))),
		tree.New("apc", ""),
	}

	merged := tree.MergeLists(first, nil, second)

	require.Len(t, merged, 3)
	assert.Equal(t, "tank", merged[0].Key)
	assert.Equal(t, "400", merged[0].Child("Health").ChildValue("HP"))
	assert.Equal(t, "jeep", merged[1].Key)
	assert.Equal(t, "apc", merged[2].Key)

	assert.Empty(t, tree.MergeLists())
}
