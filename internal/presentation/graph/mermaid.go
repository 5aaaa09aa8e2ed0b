package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ordering"
)

// Overlay carries construction results to visualize on the graph.
type Overlay struct {
	// Order lists capability keys in construction order.
	Order []string
	// Unresolved lists capability type tags that could not be ordered.
	Unresolved []string
}

// OverlayFor resolves the entity's construction order and returns it as an
// overlay: the ordered keys on success, the unresolved tags on a cycle.
func OverlayFor(e *domain.EntityDescriptor) *Overlay {
	overlay := &Overlay{}
	order, err := e.ConstructOrder()
	var unresolved *domain.UnresolvedPrerequisiteError
	switch {
	case err == nil:
		entries := e.Entries()
		for _, c := range order {
			for _, entry := range entries {
				if entry.Capability == c {
					overlay.Order = append(overlay.Order, entry.Key)
					break
				}
			}
		}
	case errors.As(err, &unresolved):
		overlay.Unresolved = unresolved.Remaining
	}
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart of an entity's capability
// prerequisites. Edges point from the provider to the dependent.
//
// Shapes:
//   - No prerequisites: ((Circle))
//   - Provides extra tags: [[Subroutine]]
//   - Default: [Rectangle]
//
// A prerequisite nothing on the entity satisfies is drawn as a dotted edge
// from a {{missing}} node; ordering ignores it.
func GenerateMermaid(entity *domain.EntityDescriptor, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	position := make(map[string]int)
	if overlay != nil {
		for i, key := range overlay.Order {
			position[key] = i + 1
		}
	}

	for _, entry := range entity.Entries() {
		id := sanitizeMermaidID(entry.Key)

		opener, closer := "[", "]"
		switch {
		case len(domain.PrerequisitesOf(entry.Capability)) == 0:
			opener, closer = "((", "))"
		case provides(entry.Capability):
			opener, closer = "[[", "]]"
		}

		label := entry.Key
		if entry.Key != entry.Capability.Type() {
			label = fmt.Sprintf("%s <br/> %s", entry.Key, entry.Capability.Type())
		}
		if n, ok := position[entry.Key]; ok {
			label = fmt.Sprintf("%d. %s", n, label)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)
	}

	missing := make(map[string]bool)
	for _, e := range ordering.Graph(entity.Entries()) {
		to := sanitizeMermaidID(e.To)
		if e.From == "" {
			from := "missing_" + sanitizeMermaidID(e.Tag)
			if !missing[from] {
				missing[from] = true
				fmt.Fprintf(&sb, "    %s{{\"%s (missing)\"}}\n", from, e.Tag)
			}
			fmt.Fprintf(&sb, "    %s -.-> %s\n", from, to)
			continue
		}

		from := sanitizeMermaidID(e.From)
		base, _ := splitKey(e.From)
		if base == e.Tag {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
		} else {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, strings.ReplaceAll(e.Tag, "\"", "'"), to)
		}
	}

	if overlay != nil && len(overlay.Unresolved) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef unresolved fill:#ffcdd2,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		for _, entry := range entity.Entries() {
			for _, tag := range overlay.Unresolved {
				if entry.Capability.Type() == tag {
					fmt.Fprintf(&sb, "    class %s unresolved;\n", sanitizeMermaidID(entry.Key))
					break
				}
			}
		}
	}

	return sb.String()
}

func provides(c domain.Capability) bool {
	p, ok := c.(domain.Provider)
	return ok && len(p.Provides()) > 0
}

func splitKey(key string) (string, string) {
	base, suffix, _ := strings.Cut(key, "@")
	return base, suffix
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", "@", "__", "^", "_", " ", "_")
	return r.Replace(id)
}
