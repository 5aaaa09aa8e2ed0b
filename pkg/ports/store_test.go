package ports_test

import (
	"context"
	"maps"
	"slices"
	"testing"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ports"
)

// MockStore is a minimal TreeStore used to check the contract suite itself.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Put(_ context.Context, key string, data []byte) error {
	m.data[key] = slices.Clone(data)
	return nil
}

func (m *MockStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, domain.ErrTreeNotFound
	}
	return slices.Clone(data), nil
}

func (m *MockStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockStore) List(_ context.Context) ([]string, error) {
	return slices.Collect(maps.Keys(m.data)), nil
}

func TestTreeStore_Contract(t *testing.T) {
	ports.RunTreeStoreContract(t, NewMockStore())
}
