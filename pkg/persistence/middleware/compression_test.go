package middleware_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/ruleforge/pkg/adapters/memory"
	"github.com/aretw0/ruleforge/pkg/persistence/middleware"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionMiddleware_Contract(t *testing.T) {
	ports.RunTreeStoreContract(t, middleware.NewCompressionMiddleware()(memory.NewStore()))
}

func TestCompressionMiddleware_Shrinks(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := middleware.NewCompressionMiddleware()(underlying)

	payload := bytes.Repeat([]byte("Armor:\n  Type: Heavy\n"), 200)
	require.NoError(t, store.Put(ctx, "k", payload))

	raw, err := underlying.Get(ctx, "k")
	require.NoError(t, err)
	assert.Less(t, len(raw), len(payload))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCompressionMiddleware_RejectsForeignPayload(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Put(ctx, "k", []byte{0x7f, 'x'}))
	require.NoError(t, underlying.Put(ctx, "empty", []byte{}))

	store := middleware.NewCompressionMiddleware()(underlying)
	_, err := store.Get(ctx, "k")
	assert.ErrorContains(t, err, "unknown compression tag")

	_, err = store.Get(ctx, "empty")
	assert.ErrorContains(t, err, "empty payload")
}

func TestChain_CompressThenSeal(t *testing.T) {
	ctx := context.Background()
	store := middleware.Chain(memory.NewStore(),
		middleware.NewCompressionMiddleware(),
		mustSeal(t),
	)

	payload := bytes.Repeat([]byte("Health: 100\n"), 100)
	require.NoError(t, store.Put(ctx, "k", payload))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func mustSeal(t *testing.T) middleware.Middleware {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	return mw
}
