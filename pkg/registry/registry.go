package registry

import (
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// Factory creates a zero-configured descriptor ready for field loading.
type Factory[T any] func() T

// Registry maps definition names to descriptor factories. Built-in
// descriptors register themselves at startup; mods may add their own.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// New creates an empty registry. kind names the descriptor family in
// lookup errors ("capability", "warhead", "projectile").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		factories: make(map[string]Factory[T]),
	}
}

// Register adds a factory under name.
// If a factory with the same name exists, it is overwritten.
func (r *Registry[T]) Register(name string, fn Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// Create strips any "@suffix" from key and invokes the matching factory.
// Returns a *domain.LookupError if nothing is registered under the name.
func (r *Registry[T]) Create(key string) (T, error) {
	name, _ := tree.SplitInstance(key)

	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &domain.LookupError{Kind: r.kind, Name: name}
	}
	return fn(), nil
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}
