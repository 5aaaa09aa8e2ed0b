package rules

import (
	"fmt"

	"github.com/aretw0/ruleforge/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Manifest lists the definition files of a mod, per category.
type Manifest struct {
	Metadata      Metadata `yaml:"Metadata,omitempty"`
	Rules         []string `yaml:"Rules,omitempty"`
	Weapons       []string `yaml:"Weapons,omitempty"`
	Voices        []string `yaml:"Voices,omitempty"`
	Notifications []string `yaml:"Notifications,omitempty"`
	Music         []string `yaml:"Music,omitempty"`
	Sequences     []string `yaml:"Sequences,omitempty"`
	TileSets      []string `yaml:"TileSets,omitempty"`
}

// Metadata describes the mod.
type Metadata struct {
	Title   string `yaml:"Title,omitempty"`
	Version string `yaml:"Version,omitempty"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and decodes a manifest from a definition source.
func LoadManifest(src ports.DefinitionSource, name string) (*Manifest, error) {
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", name, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}
