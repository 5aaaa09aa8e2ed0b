package domain

import (
	"maps"
	"slices"
	"strings"
)

// SequenceDescriptor is one animation of an image.
type SequenceDescriptor struct {
	Name     string `mapstructure:"-"`
	Filename string `mapstructure:"Filename"`
	Start    int    `mapstructure:"Start"`
	Length   int    `mapstructure:"Length"`
	Facings  int    `mapstructure:"Facings"`
	Tick     int    `mapstructure:"Tick"`
}

// ImageSequences maps sequence names to sequences for one image.
type ImageSequences map[string]*SequenceDescriptor

// SequenceCatalog holds every image's sequences resolved for one tileset.
// Image names are matched case-insensitively.
type SequenceCatalog struct {
	Tileset string
	images  map[string]ImageSequences
}

// NewSequenceCatalog creates a catalog for the given tileset.
func NewSequenceCatalog(tileset string, images map[string]ImageSequences) *SequenceCatalog {
	lowered := make(map[string]ImageSequences, len(images))
	for name, seqs := range images {
		lowered[strings.ToLower(name)] = seqs
	}
	return &SequenceCatalog{Tileset: tileset, images: lowered}
}

// HasImage reports whether the image has any sequences.
func (c *SequenceCatalog) HasImage(image string) bool {
	_, ok := c.images[strings.ToLower(image)]
	return ok
}

// Sequence returns one sequence of an image.
func (c *SequenceCatalog) Sequence(image, sequence string) (*SequenceDescriptor, bool) {
	s, ok := c.images[strings.ToLower(image)][sequence]
	return s, ok
}

// Images returns the image names, sorted.
func (c *SequenceCatalog) Images() []string {
	return slices.Sorted(maps.Keys(c.images))
}
