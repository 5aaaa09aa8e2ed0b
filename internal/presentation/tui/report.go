package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/domain"
)

// EntityReport describes an entity in markdown: its capabilities in bag
// order with their prerequisites, followed by the construction order or the
// reason it could not be resolved.
func EntityReport(e *domain.EntityDescriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", e.Name)
	if e.Category != "" {
		fmt.Fprintf(&sb, "Category: **%s**\n\n", e.Category)
	}

	sb.WriteString("| # | Key | Type | Requires | Provides |\n")
	sb.WriteString("|---|-----|------|----------|----------|\n")
	for i, entry := range e.Entries() {
		var provided []string
		if p, ok := entry.Capability.(domain.Provider); ok {
			provided = p.Provides()
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			i+1,
			entry.Key,
			entry.Capability.Type(),
			list(domain.PrerequisitesOf(entry.Capability)),
			list(provided),
		)
	}

	sb.WriteString("\n## Construction order\n\n")
	order, err := e.ConstructOrder()
	if err != nil {
		fmt.Fprintf(&sb, "> %s\n", err)
		return sb.String()
	}
	for i, c := range order {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c.Type())
	}
	return sb.String()
}

// RulesetSummary describes a ruleset in markdown.
func RulesetSummary(title string, rs *domain.Ruleset) string {
	var sb strings.Builder
	if title == "" {
		title = "Ruleset"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| Catalog | Entries |\n|---------|---------|\n")
	fmt.Fprintf(&sb, "| Entities | %d |\n", len(rs.Entities))
	fmt.Fprintf(&sb, "| Weapons | %d |\n", len(rs.Weapons))
	fmt.Fprintf(&sb, "| Voices | %d |\n", len(rs.Voices))
	fmt.Fprintf(&sb, "| Notifications | %d |\n", len(rs.Notifications))
	fmt.Fprintf(&sb, "| Music | %d |\n", len(rs.Music))
	if rs.Terrain != nil {
		fmt.Fprintf(&sb, "| Terrain types (%s) | %d |\n", rs.Terrain.ID, len(rs.Terrain.TerrainTypes()))
	}
	if rs.Sequences != nil {
		fmt.Fprintf(&sb, "| Images (%s) | %d |\n", rs.Sequences.Tileset, len(rs.Sequences.Images()))
	}

	if names := rs.EntityNames(); len(names) > 0 {
		sb.WriteString("\n## Entities\n\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "- %s (%d capabilities)\n", name, rs.Entities[name].Len())
		}
	}
	return sb.String()
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
