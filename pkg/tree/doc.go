/*
Package tree holds the generic definition tree that rule files are parsed into
before any semantic interpretation, and the two pure operations on it that the
composers rely on: Merge (overlay a tree over a base) and Resolve (walk an
Inherits chain through a Table and merge each level over its parent).

	nodes, err := tree.Parse("rules/vehicles.yaml", data)
	table := tree.NewTable(tree.MergeLists(nodes, mapNodes))
	merged, err := table.Resolve("tank")

Removal markers ("-Armor") are not applied here: Merge keeps them as ordinary
keys and the composers skip both the marker and the entry it names.
*/
package tree
