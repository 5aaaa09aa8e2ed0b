package memory

import (
	"fmt"
	"io/fs"
	"slices"
	"sort"

	"github.com/aretw0/ruleforge/pkg/tree"
)

// Loader implements ports.DefinitionSource using an in-memory map.
type Loader struct {
	files map[string][]byte
}

// NewLoader creates a new Loader with the provided raw file contents.
func NewLoader(data map[string]string) *Loader {
	files := make(map[string][]byte, len(data))
	for k, v := range data {
		files[k] = []byte(v)
	}
	return &Loader{
		files: files,
	}
}

// NewFromNodes creates a Loader holding one file per entry of files, each
// encoded as YAML from its definition trees.
// This handles serialization automatically, improving DX for tests.
func NewFromNodes(files map[string][]*tree.Node) (*Loader, error) {
	data := make(map[string][]byte, len(files))
	for name, nodes := range files {
		if name == "" {
			return nil, fmt.Errorf("file missing name")
		}
		b, err := tree.MarshalYAML(nodes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal file %s: %w", name, err)
		}
		data[name] = b
	}
	return &Loader{files: data}, nil
}

// ReadFile returns the content of a file.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	content, ok := l.files[name]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", name, fs.ErrNotExist)
	}
	return content, nil
}

// WriteFile adds or replaces a file. It must not be called while the loader
// is being read.
func (l *Loader) WriteFile(name string, data []byte) {
	l.files[name] = slices.Clone(data)
}

// ListFiles returns all file names.
func (l *Loader) ListFiles() ([]string, error) {
	keys := make([]string, 0, len(l.files))
	for k := range l.files {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
