package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
Metadata:
  Title: CLI Mod
Rules:
  - rules.yaml
Weapons:
  - weapons.yaml
`

const testRules = `
tank:
  Turreted:
  Armament:
    Weapon: 90mm
    Turret: primary
  AttackTurreted:
`

func writeMod(t *testing.T, rulesYAML string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"mod.yaml":     testManifest,
		"rules.yaml":   rulesYAML,
		"weapons.yaml": "90mm:\n  Range: 5\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOrderCommand(t *testing.T) {
	dir := writeMod(t, testRules)
	out, err := run(t, "order", "tank", "--dir", dir, "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "1. Turreted\n2. Armament\n3. AttackTurreted\n", out)
}

func TestGraphCommand(t *testing.T) {
	dir := writeMod(t, testRules)
	out, err := run(t, "graph", "tank", "--dir", dir, "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD"), out)
	assert.Contains(t, out, "Turreted --> Armament")
}

func TestValidateCommand(t *testing.T) {
	dir := writeMod(t, testRules)
	out, err := run(t, "validate", "--dir", dir, "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "CLI Mod is valid")

	broken := writeMod(t, "tank:\n  Armament:\n    Weapon: nope\n")
	out, err = run(t, "validate", "--dir", broken, "--config", filepath.Join(broken, "none.yaml"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, `weapon "nope" is not defined`)
}

func TestValidateCommand_MapReportsEveryFailure(t *testing.T) {
	dir := writeMod(t, testRules)
	mapFile := filepath.Join(dir, "map.yaml")
	require.NoError(t, os.WriteFile(mapFile, []byte(`
Rules:
  a:
    Valued:
      Cost: -1
  b:
    Valued:
      Cost: -2
`), 0o644))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("map", "") })

	out, err := run(t, "validate", "--dir", dir, "--config", filepath.Join(dir, "none.yaml"), "--map", mapFile)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "a: cost must not be negative, got -1")
	assert.Contains(t, out, "b: cost must not be negative, got -2")
}

func TestUnknownEntity(t *testing.T) {
	dir := writeMod(t, testRules)
	_, err := run(t, "order", "ghost", "--dir", dir, "--config", filepath.Join(dir, "none.yaml"))
	assert.ErrorContains(t, err, "ghost")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ruleforge version "), out)
}
