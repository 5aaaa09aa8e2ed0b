package registry_test

import (
	"testing"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type armor struct {
	Type string
}

func TestRegistry_Create(t *testing.T) {
	reg := registry.New[*armor]("capability")
	reg.Register("Armor", func() *armor { return &armor{Type: "none"} })

	tests := []struct {
		name string
		key  string
	}{
		{"Plain key", "Armor"},
		{"Suffixed key", "Armor@mapOverride"},
		{"Empty suffix", "Armor@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := reg.Create(tt.key)
			require.NoError(t, err)
			assert.Equal(t, "none", a.Type)
		})
	}
}

func TestRegistry_FreshInstances(t *testing.T) {
	reg := registry.New[*armor]("capability")
	reg.Register("Armor", func() *armor { return &armor{} })

	a, err := reg.Create("Armor")
	require.NoError(t, err)
	b, err := reg.Create("Armor@left")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRegistry_NotRegistered(t *testing.T) {
	reg := registry.New[*armor]("warhead")

	_, err := reg.Create("Nuke@big")
	require.ErrorIs(t, err, domain.ErrNotRegistered)

	var lookup *domain.LookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, "warhead", lookup.Kind)
	assert.Equal(t, "Nuke", lookup.Name)
}

func TestRegistry_Names(t *testing.T) {
	reg := registry.New[*armor]("capability")
	reg.Register("Mobile", func() *armor { return nil })
	reg.Register("Armor", func() *armor { return nil })

	assert.Equal(t, []string{"Armor", "Mobile"}, reg.Names())
	assert.True(t, reg.Has("Mobile"))
	assert.False(t, reg.Has("Mobile@x"))
}
