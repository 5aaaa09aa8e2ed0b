package graph_test

import (
	"testing"

	"github.com/aretw0/ruleforge/internal/presentation/graph"
	"github.com/aretw0/ruleforge/pkg/capabilities"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(t *testing.T, entries ...domain.CapabilityEntry) *domain.EntityDescriptor {
	t.Helper()
	e, err := domain.NewEntityDescriptor("tank", "", entries, nil)
	require.NoError(t, err)
	return e
}

func TestGenerateMermaid(t *testing.T) {
	tank := entity(t,
		domain.CapabilityEntry{Key: "Turreted", Capability: &capabilities.Turreted{Turret: "primary"}},
		domain.CapabilityEntry{Key: "Armament@gun", Capability: &capabilities.Armament{Turret: "primary"}},
		domain.CapabilityEntry{Key: "AttackTurreted", Capability: &capabilities.AttackTurreted{}},
		domain.CapabilityEntry{Key: "AttackFrontal", Capability: &capabilities.AttackFrontal{}},
	)

	out := graph.GenerateMermaid(tank, nil)

	assert.Contains(t, out, "graph TD\n")
	assert.Contains(t, out, `Turreted(("Turreted"))`)
	assert.Contains(t, out, `Armament__gun["Armament@gun <br/> Armament"]`)
	assert.Contains(t, out, `AttackTurreted[["AttackTurreted"]]`)
	assert.Contains(t, out, "Turreted --> Armament__gun")
	assert.Contains(t, out, "Armament__gun --> AttackTurreted")
	assert.Contains(t, out, "Armament__gun --> AttackFrontal")
	assert.Contains(t, out, `AttackFrontal[["AttackFrontal"]]`)
	assert.Contains(t, out, "Turreted --> AttackTurreted")
	assert.NotContains(t, out, "missing")
}

func TestGenerateMermaid_MissingProvider(t *testing.T) {
	jeep := entity(t,
		domain.CapabilityEntry{Key: "AttackFrontal", Capability: &capabilities.AttackFrontal{}},
	)

	out := graph.GenerateMermaid(jeep, nil)

	assert.Contains(t, out, `missing_Armament{{"Armament (missing)"}}`)
	assert.Contains(t, out, "missing_Armament -.-> AttackFrontal")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tank := entity(t,
		domain.CapabilityEntry{Key: "Turreted", Capability: &capabilities.Turreted{}},
		domain.CapabilityEntry{Key: "Armament", Capability: &capabilities.Armament{Turret: "primary"}},
	)

	out := graph.GenerateMermaid(tank, &graph.Overlay{
		Order:      []string{"Turreted", "Armament"},
		Unresolved: []string{"Armament"},
	})

	assert.Contains(t, out, `Turreted(("1. Turreted"))`)
	assert.Contains(t, out, `Armament["2. Armament"]`)
	assert.Contains(t, out, "class Armament unresolved;")
}

type autoTarget struct{}

func (autoTarget) Type() string            { return "AutoTarget" }
func (autoTarget) Prerequisites() []string { return []string{capabilities.AttackBase} }

func TestGenerateMermaid_ProvidedTagIsLabeled(t *testing.T) {
	e := entity(t,
		domain.CapabilityEntry{Key: "Armament", Capability: &capabilities.Armament{}},
		domain.CapabilityEntry{Key: "AttackFrontal", Capability: &capabilities.AttackFrontal{}},
		domain.CapabilityEntry{Key: "AutoTarget", Capability: autoTarget{}},
	)

	out := graph.GenerateMermaid(e, nil)
	assert.Contains(t, out, `AttackFrontal -- "AttackBase" --> AutoTarget`)
}

type chicken struct{}

func (chicken) Type() string            { return "Chicken" }
func (chicken) Prerequisites() []string { return []string{"Egg"} }

type egg struct{}

func (egg) Type() string            { return "Egg" }
func (egg) Prerequisites() []string { return []string{"Chicken"} }

func ordered(t *testing.T, entries ...domain.CapabilityEntry) *domain.EntityDescriptor {
	t.Helper()
	e, err := domain.NewEntityDescriptor("tank", "", entries, ordering.Order)
	require.NoError(t, err)
	return e
}

func TestOverlayFor(t *testing.T) {
	tank := ordered(t,
		domain.CapabilityEntry{Key: "AttackTurreted", Capability: &capabilities.AttackTurreted{}},
		domain.CapabilityEntry{Key: "Armament@gun", Capability: &capabilities.Armament{}},
		domain.CapabilityEntry{Key: "Turreted", Capability: &capabilities.Turreted{}},
	)
	overlay := graph.OverlayFor(tank)
	assert.Equal(t, []string{"Armament@gun", "Turreted", "AttackTurreted"}, overlay.Order)
	assert.Empty(t, overlay.Unresolved)

	loop := ordered(t,
		domain.CapabilityEntry{Key: "Chicken", Capability: chicken{}},
		domain.CapabilityEntry{Key: "Egg", Capability: egg{}},
	)
	overlay = graph.OverlayFor(loop)
	assert.Empty(t, overlay.Order)
	assert.Equal(t, []string{"Chicken", "Egg"}, overlay.Unresolved)
}
