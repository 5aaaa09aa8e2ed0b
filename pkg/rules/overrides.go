package rules

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/tree"
)

// Override sections of a map rules file.
const (
	SectionRules         = "Rules"
	SectionWeapons       = "Weapons"
	SectionVoices        = "Voices"
	SectionNotifications = "Notifications"
	SectionMusic         = "Music"
	SectionSequences     = "Sequences"
)

// MapOverrides holds the per-category override trees of a map. A nil field
// means the map does not override that category.
//
// The children of an override node are merged over the manifest files. Its
// value, when set, lists extra comma separated files that are loaded after
// the manifest files of the category.
type MapOverrides struct {
	Rules         *tree.Node
	Weapons       *tree.Node
	Voices        *tree.Node
	Notifications *tree.Node
	Music         *tree.Node
	Sequences     *tree.Node
}

// ParseMapOverrides reads a map rules file whose top-level keys are the
// override sections.
func ParseMapOverrides(filename string, data []byte) (*MapOverrides, error) {
	nodes, err := tree.Parse(filename, data)
	if err != nil {
		return nil, err
	}

	o := &MapOverrides{}
	for _, n := range nodes {
		var slot **tree.Node
		switch n.Key {
		case SectionRules:
			slot = &o.Rules
		case SectionWeapons:
			slot = &o.Weapons
		case SectionVoices:
			slot = &o.Voices
		case SectionNotifications:
			slot = &o.Notifications
		case SectionMusic:
			slot = &o.Music
		case SectionSequences:
			slot = &o.Sequences
		default:
			return nil, fmt.Errorf("%s: unknown override section %q", n.Location, n.Key)
		}
		*slot = tree.Merge(n, *slot)
	}
	return o, nil
}

func (o *MapOverrides) section(name string) *tree.Node {
	if o == nil {
		return nil
	}
	switch name {
	case SectionRules:
		return o.Rules
	case SectionWeapons:
		return o.Weapons
	case SectionVoices:
		return o.Voices
	case SectionNotifications:
		return o.Notifications
	case SectionMusic:
		return o.Music
	case SectionSequences:
		return o.Sequences
	}
	return nil
}

// extraFiles returns the files listed in an override node's value.
func extraFiles(override *tree.Node) []string {
	if override == nil || override.Value == "" {
		return nil
	}
	var files []string
	for _, f := range strings.Split(override.Value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}
