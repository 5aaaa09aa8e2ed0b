package dsl

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/adapters/memory"
	"github.com/aretw0/ruleforge/pkg/rules"
	"github.com/aretw0/ruleforge/pkg/tree"
	"gopkg.in/yaml.v3"
)

// File names written by Build.
const (
	FileManifest      = "mod.yaml"
	FileRules         = "rules.yaml"
	FileWeapons       = "weapons.yaml"
	FileVoices        = "voices.yaml"
	FileNotifications = "notifications.yaml"
	FileMusic         = "music.yaml"
	FileSequences     = "sequences.yaml"
)

type section struct {
	defs  []*DefinitionBuilder
	index map[string]*DefinitionBuilder
}

func (s *section) add(name string) *DefinitionBuilder {
	if s.index == nil {
		s.index = make(map[string]*DefinitionBuilder)
	}
	if d, ok := s.index[name]; ok {
		return d
	}
	d := newDefinition(name)
	s.index[name] = d
	s.defs = append(s.defs, d)
	return d
}

func (s *section) nodes() []*tree.Node {
	out := make([]*tree.Node, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, d.Node())
	}
	return out
}

// Builder collects the definitions of a mod.
type Builder struct {
	title         string
	entities      section
	weapons       section
	voices        section
	notifications section
	music         section
	sequences     section
	tilesets      []*TilesetBuilder
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// Title sets the manifest title.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Entity adds an entity definition, or returns the existing one.
func (b *Builder) Entity(name string) *DefinitionBuilder { return b.entities.add(name) }

// Weapon adds a weapon definition, or returns the existing one.
func (b *Builder) Weapon(name string) *DefinitionBuilder { return b.weapons.add(name) }

// Voice adds a voice set, or returns the existing one.
func (b *Builder) Voice(name string) *DefinitionBuilder { return b.voices.add(name) }

// Notification adds a notification set, or returns the existing one.
func (b *Builder) Notification(name string) *DefinitionBuilder { return b.notifications.add(name) }

// Music adds a music track, or returns the existing one.
func (b *Builder) Music(name string) *DefinitionBuilder { return b.music.add(name) }

// Image adds an image with sequences, or returns the existing one.
func (b *Builder) Image(name string) *DefinitionBuilder { return b.sequences.add(name) }

// Tileset adds a tileset.
func (b *Builder) Tileset(id string) *TilesetBuilder {
	t := &TilesetBuilder{id: id}
	b.tilesets = append(b.tilesets, t)
	return t
}

// Build renders every section to YAML and returns an in-memory definition
// source together with the manifest that lists its files. The manifest is
// also written to the source as FileManifest. Empty sections are left out.
func (b *Builder) Build() (*memory.Loader, *rules.Manifest, error) {
	m := &rules.Manifest{Metadata: rules.Metadata{Title: b.title}}
	files := make(map[string][]*tree.Node)

	add := func(s *section, name string, list *[]string) {
		if len(s.defs) == 0 {
			return
		}
		files[name] = s.nodes()
		*list = append(*list, name)
	}
	add(&b.entities, FileRules, &m.Rules)
	add(&b.weapons, FileWeapons, &m.Weapons)
	add(&b.voices, FileVoices, &m.Voices)
	add(&b.notifications, FileNotifications, &m.Notifications)
	add(&b.music, FileMusic, &m.Music)
	add(&b.sequences, FileSequences, &m.Sequences)

	for _, t := range b.tilesets {
		name := fmt.Sprintf("tilesets/%s.yaml", t.id)
		if _, dup := files[name]; dup {
			return nil, nil, fmt.Errorf("duplicate tileset %q", t.id)
		}
		files[name] = t.nodes()
		m.TileSets = append(m.TileSets, name)
	}

	source, err := memory.NewFromNodes(files)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build definition source: %w", err)
	}
	manifest, err := yaml.Marshal(m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	source.WriteFile(FileManifest, manifest)
	return source, m, nil
}

// TilesetBuilder configures a tileset.
type TilesetBuilder struct {
	id      string
	general Fields
	terrain []*tree.Node
}

// General sets fields of the General section other than Id.
func (t *TilesetBuilder) General(fields Fields) *TilesetBuilder {
	t.general = fields
	return t
}

// Terrain adds a terrain type.
func (t *TilesetBuilder) Terrain(typ string, fields Fields) *TilesetBuilder {
	t.terrain = append(t.terrain, tree.New(typ, "", fields.nodes()...))
	return t
}

func (t *TilesetBuilder) nodes() []*tree.Node {
	general := append([]*tree.Node{tree.New("Id", t.id)}, t.general.nodes()...)
	return []*tree.Node{
		tree.New("General", "", general...),
		tree.New("Terrain", "", t.terrain...),
	}
}
