package compose

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// Sound resolves name in table and composes a voice or notification set.
func (c *Composer) Sound(name string, table *tree.Table) (*domain.SoundDescriptor, error) {
	merged, err := resolve("sound", name, table)
	if err != nil {
		return nil, err
	}
	return c.SoundFromTree(name, merged)
}

// SoundFromTree composes a voice or notification set from its resolved tree.
func (c *Composer) SoundFromTree(name string, merged *tree.Node) (*domain.SoundDescriptor, error) {
	s := domain.NewSoundDescriptor(strings.ToLower(name))
	if err := c.fields.Load(s, withChildren(merged, children(merged))); err != nil {
		return nil, fmt.Errorf("sound %q: %w", name, err)
	}
	return s, nil
}

// Music resolves name in table and composes a music track.
func (c *Composer) Music(name string, table *tree.Table) (*domain.MusicDescriptor, error) {
	merged, err := resolve("music", name, table)
	if err != nil {
		return nil, err
	}
	return c.MusicFromTree(name, merged)
}

// MusicFromTree composes a music track. The node value is the track title;
// the file name defaults to the track name.
func (c *Composer) MusicFromTree(name string, merged *tree.Node) (*domain.MusicDescriptor, error) {
	m := &domain.MusicDescriptor{
		Name:      strings.ToLower(name),
		Title:     merged.Value,
		Filename:  name,
		Extension: "aud",
	}
	if err := c.fields.Load(m, withChildren(merged, children(merged))); err != nil {
		return nil, fmt.Errorf("music %q: %w", name, err)
	}
	return m, nil
}

func withChildren(n *tree.Node, kids []*tree.Node) *tree.Node {
	return &tree.Node{Key: n.Key, Value: n.Value, Location: n.Location, Children: kids}
}
