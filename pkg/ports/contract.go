package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTreeStoreContract runs a suite of tests to verify that a TreeStore implementation
// adheres to the defined interface contract.
func RunTreeStoreContract(t *testing.T, store TreeStore) {
	ctx := context.Background()
	key := "contract-test-tree-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		data := []byte{0x81, 0xa1, 0x61, 0x6b, 0x64, 't', 'a', 'n', 'k'}

		err := store.Put(ctx, key, data)
		require.NoError(t, err, "Put should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, data, loaded)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("first")))
		require.NoError(t, store.Put(ctx, key, []byte("second")))

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrTreeNotFound)
	})

	t.Run("Stored Data Is Isolated", func(t *testing.T) {
		data := []byte("isolated")
		require.NoError(t, store.Put(ctx, key, data))
		data[0] = 'X'

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("isolated"), loaded)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, []byte("gone")))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrTreeNotFound, "Get after Delete should return ErrTreeNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Put(ctx, k1, []byte("a"))
		_ = store.Put(ctx, k2, []byte("b"))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
