package memory_test

import (
	"testing"

	"github.com/aretw0/ruleforge/pkg/adapters/memory"
	"github.com/aretw0/ruleforge/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTreeStoreContract(t, store)
}
