package tests

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/aretw0/ruleforge/pkg/ports"
)

// DefinitionSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionSource.
func DefinitionSourceContractTest(t *testing.T, source ports.DefinitionSource, setupData map[string][]byte) {
	t.Helper()

	// 1. Test ReadFile (Success)
	t.Run("ReadFile_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := source.ReadFile(name)
			if err != nil {
				t.Fatalf("unexpected error reading file %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	// 2. Test ReadFile (NotFound)
	t.Run("ReadFile_NotFound", func(t *testing.T) {
		_, err := source.ReadFile("non-existent.yaml")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist for non-existent file, got %v", err)
		}
	})

	// 3. Test ListFiles
	t.Run("ListFiles", func(t *testing.T) {
		files, err := source.ListFiles()
		if err != nil {
			t.Fatalf("unexpected error listing files: %v", err)
		}

		if len(files) != len(setupData) {
			t.Errorf("expected %d files, got %d", len(setupData), len(files))
		}

		for i := 1; i < len(files); i++ {
			if files[i-1] > files[i] {
				t.Errorf("files not sorted: %q before %q", files[i-1], files[i])
			}
		}

		// Verify all expected names are present
		lookup := make(map[string]bool)
		for _, name := range files {
			lookup[name] = true
		}

		for name := range setupData {
			if !lookup[name] {
				t.Errorf("file %s missing from list", name)
			}
		}
	})
}
