package ports

import (
	"context"
)

// TreeStore persists encoded merged definition trees under their cache
// digest. It backs the shared tier of the composition cache, so several
// processes loading the same mod reuse each other's merge results.
type TreeStore interface {
	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the data stored under key.
	// Returns domain.ErrTreeNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys in no particular order.
	List(ctx context.Context) ([]string, error)
}
