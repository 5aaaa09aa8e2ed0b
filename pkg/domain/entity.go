package domain

import (
	"fmt"
	"sync"
)

// OrderFunc puts the capabilities of an entity in construction order.
// pkg/ordering provides the implementation used by the composers.
type OrderFunc func(entity string, caps []Capability) ([]Capability, error)

// CapabilityEntry pairs a capability with the definition key it was composed from.
type CapabilityEntry struct {
	Key        string
	Capability Capability
}

// EntityDescriptor is a composed entity: a name, an optional category and an
// immutable bag of capabilities.
type EntityDescriptor struct {
	Name     string
	Category string

	entries []CapabilityEntry
	byKey   map[string]int
	order   OrderFunc

	orderOnce sync.Once
	ordered   []Capability
	orderErr  error
}

// NewEntityDescriptor builds a descriptor from entries in bag order. A nil
// order function keeps bag order as construction order.
func NewEntityDescriptor(name, category string, entries []CapabilityEntry, order OrderFunc) (*EntityDescriptor, error) {
	e := &EntityDescriptor{
		Name:     name,
		Category: category,
		entries:  make([]CapabilityEntry, 0, len(entries)),
		byKey:    make(map[string]int, len(entries)),
		order:    order,
	}
	for _, entry := range entries {
		if _, dup := e.byKey[entry.Key]; dup {
			return nil, fmt.Errorf("entity %q: %w: %s", name, ErrDuplicateCapability, entry.Key)
		}
		e.byKey[entry.Key] = len(e.entries)
		e.entries = append(e.entries, entry)
	}
	return e, nil
}

// Len returns the number of capabilities.
func (e *EntityDescriptor) Len() int {
	return len(e.entries)
}

// Keys returns the definition keys in bag order.
func (e *EntityDescriptor) Keys() []string {
	out := make([]string, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.Key
	}
	return out
}

// Capabilities returns the capabilities in bag order.
func (e *EntityDescriptor) Capabilities() []Capability {
	out := make([]Capability, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.Capability
	}
	return out
}

// Entries returns key/capability pairs in bag order.
func (e *EntityDescriptor) Entries() []CapabilityEntry {
	out := make([]CapabilityEntry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Get returns the capability composed from the exact definition key.
func (e *EntityDescriptor) Get(key string) (Capability, bool) {
	i, ok := e.byKey[key]
	if !ok {
		return nil, false
	}
	return e.entries[i].Capability, true
}

// OfType returns every capability that satisfies tag, in bag order.
func (e *EntityDescriptor) OfType(tag string) []Capability {
	var out []Capability
	for _, entry := range e.entries {
		if Satisfies(entry.Capability, tag) {
			out = append(out, entry.Capability)
		}
	}
	return out
}

// Has reports whether any capability satisfies tag.
func (e *EntityDescriptor) Has(tag string) bool {
	for _, entry := range e.entries {
		if Satisfies(entry.Capability, tag) {
			return true
		}
	}
	return false
}

// ConstructOrder returns the capabilities in an order where every
// prerequisite precedes its dependents. The result is computed once.
func (e *EntityDescriptor) ConstructOrder() ([]Capability, error) {
	e.orderOnce.Do(func() {
		caps := e.Capabilities()
		if e.order == nil {
			e.ordered = caps
			return
		}
		e.ordered, e.orderErr = e.order(e.Name, caps)
	})
	if e.orderErr != nil {
		return nil, e.orderErr
	}
	out := make([]Capability, len(e.ordered))
	copy(out, e.ordered)
	return out, nil
}

// CapabilityOf returns the first capability of the entity with concrete type T.
func CapabilityOf[T Capability](e *EntityDescriptor) (T, bool) {
	for _, entry := range e.entries {
		if c, ok := entry.Capability.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}
