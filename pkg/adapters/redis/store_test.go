package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/ruleforge/pkg/adapters/redis"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunTreeStoreContract(t, store)
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	store := redis.NewFromClient(client,
		redis.WithPrefix("mod:ra:"),
		redis.WithTTL(time.Minute),
	)

	require.NoError(t, store.Put(ctx, "abc", []byte("tree")))
	assert.True(t, mr.Exists("mod:ra:abc"))
	assert.Equal(t, time.Minute, mr.TTL("mod:ra:abc"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestRedisLocker(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	locker := redis.NewFromClient(client, redis.WithPrefix("ra:")).Locker()

	unlock, err := locker.Lock(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("ra:lock:k1"))

	waitCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "k1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("ra:lock:k1"))

	unlock, err = locker.Lock(ctx, "k1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	locker := redis.NewLocker(client, "ra:")
	unlock, err := locker.Lock(ctx, "k1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	other, err := locker.Lock(ctx, "k1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("ra:lock:k1"))
	require.NoError(t, other(ctx))
}
