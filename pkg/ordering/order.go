// Package ordering computes the construction order of an entity's capabilities.
package ordering

import (
	"slices"

	"github.com/aretw0/ruleforge/pkg/domain"
)

// Order returns caps arranged so that every prerequisite satisfied by some
// capability in the bag is constructed before the capability that declares it.
// Prerequisites that nothing in the bag satisfies are ignored.
//
// The scan keeps a worklist in bag order and a cursor. The capability under
// the cursor is moved to the output as soon as all its prerequisites are
// met, and the scan restarts from the head of the worklist. When the cursor
// runs off the end nothing more can be resolved and an
// *domain.UnresolvedPrerequisiteError lists what is left. Different
// tie-breaks produce different valid orders, so this one must not change.
func Order(entity string, caps []domain.Capability) ([]domain.Capability, error) {
	worklist := slices.Clone(caps)
	resolved := make([]domain.Capability, 0, len(caps))

	cursor := 0
	for len(worklist) > 0 {
		if cursor >= len(worklist) {
			remaining := make([]string, len(worklist))
			for i, c := range worklist {
				remaining[i] = c.Type()
			}
			return nil, &domain.UnresolvedPrerequisiteError{Entity: entity, Remaining: remaining}
		}

		c := worklist[cursor]
		if !ready(c, resolved, caps) {
			cursor++
			continue
		}

		worklist = slices.Delete(worklist, cursor, cursor+1)
		resolved = append(resolved, c)
		cursor = 0
	}
	return resolved, nil
}

func ready(c domain.Capability, resolved, bag []domain.Capability) bool {
	for _, tag := range domain.PrerequisitesOf(c) {
		if !satisfiedBy(bag, tag) {
			continue
		}
		if !satisfiedBy(resolved, tag) {
			return false
		}
	}
	return true
}

func satisfiedBy(caps []domain.Capability, tag string) bool {
	for _, c := range caps {
		if domain.Satisfies(c, tag) {
			return true
		}
	}
	return false
}
