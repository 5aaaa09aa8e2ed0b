package tree_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/ruleforge/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_InheritanceChain(t *testing.T) {
	table := tree.NewTable([]*tree.Node{
		tree.New("^Unit", "",
			tree.New("Health", "", tree.New("HP", "100")),
			tree.New("Tooltip", "", tree.New("Name", "Unit")),
		),
		tree.New("^Vehicle", "",
			tree.New(tree.KeyInherits, "^Unit"),
			tree.New("Health", "", tree.New("HP", "200")),
			tree.New("Mobile", "", tree.New("Speed", "5")),
		),
		tree.New("Tank", "",
			tree.New(tree.KeyInherits, "^vehicle"),
			tree.New("Tooltip", "", tree.New("Name", "Tank")),
		),
	})

	merged, err := table.Resolve("tank")
	require.NoError(t, err)

	assert.Equal(t, "Tank", merged.Key)
	assert.Equal(t, "200", merged.Child("Health").ChildValue("HP"))
	assert.Equal(t, "Tank", merged.Child("Tooltip").ChildValue("Name"))
	assert.Equal(t, "5", merged.Child("Mobile").ChildValue("Speed"))
	assert.Equal(t, "^vehicle", merged.ChildValue(tree.KeyInherits))
}

func TestResolve_DescendantReAddsRemovedKey(t *testing.T) {
	table := tree.NewTable([]*tree.Node{
		tree.New("^A", "",
			tree.New("Armor", "", tree.New("Type", "heavy"), tree.New("Thickness", "3")),
			tree.New("Mobile", ""),
		),
		tree.New("^B", "",
			tree.New(tree.KeyInherits, "^A"),
			tree.New("-Armor", ""),
			tree.New("-Mobile", ""),
		),
		tree.New("c", "",
			tree.New(tree.KeyInherits, "^B"),
			tree.New("Armor", "", tree.New("Type", "light")),
		),
	})

	b, err := table.Resolve("^B")
	require.NoError(t, err)
	assert.NotNil(t, b.Child("-Armor"), "the removing level keeps its marker")

	c, err := table.Resolve("c")
	require.NoError(t, err)
	assert.Nil(t, c.Child("-Armor"))
	require.NotNil(t, c.Child("Armor"))
	assert.Equal(t, "light", c.Child("Armor").ChildValue("Type"))
	assert.Empty(t, c.Child("Armor").ChildValue("Thickness"), "the removed entry is not merged back")
	assert.NotNil(t, c.Child("-Mobile"), "other removals still apply")
}

func TestResolve_MissingParentIsNotAnError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	table := tree.NewTable([]*tree.Node{
		tree.New("orphan", "",
			tree.New(tree.KeyInherits, "^Ghost"),
			tree.New("Health", ""),
		),
	}, tree.WithLogger(logger))

	merged, err := table.Resolve("orphan")
	require.NoError(t, err)
	assert.NotNil(t, merged.Child("Health"))
	assert.Contains(t, logs.String(), "Parent type not found")
	assert.Contains(t, logs.String(), "^Ghost")
}

func TestResolve_Cycle(t *testing.T) {
	table := tree.NewTable([]*tree.Node{
		tree.New("a", "", tree.New(tree.KeyInherits, "b")),
		tree.New("b", "", tree.New(tree.KeyInherits, "a")),
	})

	_, err := table.Resolve("a")
	assert.ErrorIs(t, err, tree.ErrInheritanceCycle)
}

func TestResolve_NotFound(t *testing.T) {
	table := tree.NewTable(nil)
	_, err := tree.Resolve("nothing", table)
	assert.ErrorIs(t, err, tree.ErrNotFound)
}

func TestTable_CaseInsensitiveMerge(t *testing.T) {
	table := tree.NewTable([]*tree.Node{
		tree.New("Tank", "", tree.New("Health", "", tree.New("HP", "1"))),
		tree.New("TANK", "", tree.New("Health", "", tree.New("HP", "2"))),
	})

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"Tank"}, table.Names())
	n, ok := table.Get("tank")
	require.True(t, ok)
	assert.Equal(t, "2", n.Child("Health").ChildValue("HP"))
}
