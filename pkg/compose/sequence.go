package compose

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

const keyTilesetFilenames = "TilesetFilenames"

// Image resolves name in table and composes its sequences for a tileset.
func (c *Composer) Image(name, tileset string, table *tree.Table) (domain.ImageSequences, error) {
	merged, err := resolve("image", name, table)
	if err != nil {
		return nil, err
	}
	return c.ImageFromTree(name, tileset, merged)
}

// ImageFromTree composes the sequences of one image. Each child is a
// sequence; its value overrides the file name, which defaults to the image
// name. A TilesetFilenames child maps tileset ids to per-tileset files.
func (c *Composer) ImageFromTree(name, tileset string, merged *tree.Node) (domain.ImageSequences, error) {
	out := make(domain.ImageSequences)
	for _, n := range children(merged) {
		seq := &domain.SequenceDescriptor{
			Name:     n.Key,
			Filename: name,
			Length:   1,
			Facings:  1,
			Tick:     40,
		}
		if n.Value != "" {
			seq.Filename = n.Value
		}

		var tilesetFile string
		fieldsNode := withChildren(n, make([]*tree.Node, 0, len(n.Children)))
		for _, f := range n.Children {
			if f.Key == keyTilesetFilenames {
				tilesetFile = f.ChildValue(tileset)
				continue
			}
			fieldsNode.Children = append(fieldsNode.Children, f)
		}

		if err := c.fields.Load(seq, fieldsNode); err != nil {
			return nil, fmt.Errorf("image %q: sequence %q: %w", name, n.Key, err)
		}
		if tilesetFile != "" {
			seq.Filename = tilesetFile
		}
		out[n.Key] = seq
	}
	return out, nil
}
