package file_test

import (
	"testing"
	"testing/fstest"

	"github.com/aretw0/ruleforge/pkg/adapters/file"
	contract "github.com/aretw0/ruleforge/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Contract(t *testing.T) {
	fsys := fstest.MapFS{
		"mod.yaml":           {Data: []byte("Metadata:\n  Title: Test\n")},
		"rules/vehicles.yml": {Data: []byte("tank:\n")},
		"rules/README.md":    {Data: []byte("# not a definition file\n")},
	}

	contract.DefinitionSourceContractTest(t, file.NewSource(fsys), map[string][]byte{
		"mod.yaml":           fsys["mod.yaml"].Data,
		"rules/vehicles.yml": fsys["rules/vehicles.yml"].Data,
	})
}

func TestNewDirSource(t *testing.T) {
	_, err := file.NewDirSource("/definitely/not/here")
	assert.Error(t, err)

	dir := t.TempDir()
	src, err := file.NewDirSource(dir)
	require.NoError(t, err)
	files, err := src.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}
