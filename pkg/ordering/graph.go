package ordering

import "github.com/aretw0/ruleforge/pkg/domain"

// Edge is one prerequisite relation between two capability keys of an entity.
// From is empty when nothing on the entity satisfies Tag.
type Edge struct {
	From string
	To   string
	Tag  string
}

// Graph returns the prerequisite edges between the entries of an entity, in
// bag order. A prerequisite satisfied by several entries yields one edge per
// provider.
func Graph(entries []domain.CapabilityEntry) []Edge {
	var edges []Edge
	for _, dependent := range entries {
		for _, tag := range domain.PrerequisitesOf(dependent.Capability) {
			found := false
			for _, provider := range entries {
				if provider.Key == dependent.Key || !domain.Satisfies(provider.Capability, tag) {
					continue
				}
				found = true
				edges = append(edges, Edge{From: provider.Key, To: dependent.Key, Tag: tag})
			}
			if !found {
				edges = append(edges, Edge{To: dependent.Key, Tag: tag})
			}
		}
	}
	return edges
}
