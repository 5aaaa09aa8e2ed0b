package file

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

// Source implements ports.DefinitionSource over an fs.FS, typically a mod
// directory opened with os.DirFS. Only .yaml and .yml files are listed.
type Source struct {
	fsys fs.FS
}

// NewSource creates a Source reading from fsys.
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// NewDirSource creates a Source rooted at a directory on disk.
func NewDirSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open mod directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mod path %s is not a directory", dir)
	}
	return NewSource(os.DirFS(dir)), nil
}

// ReadFile returns the content of a file. Names use forward slashes.
func (s *Source) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// ListFiles walks the tree and returns every definition file, sorted.
func (s *Source) ListFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(p) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list definition files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
