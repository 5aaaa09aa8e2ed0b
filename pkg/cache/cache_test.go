package cache_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/pkg/adapters/memory"
	"github.com/aretw0/ruleforge/pkg/cache"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/aretw0/ruleforge/pkg/tree"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name string
	hp   string
}

type fixture struct {
	base  []*tree.Node
	loads int
	calls map[string]int
}

func newFixture() *fixture {
	return &fixture{
		base: []*tree.Node{
			tree.New("^Vehicle", "", tree.New("Health", "", tree.New("HP", "100"))),
			tree.New("tank", "", tree.New(tree.KeyInherits, "^Vehicle")),
			tree.New("jeep", "", tree.New(tree.KeyInherits, "^Vehicle")),
		},
		calls: map[string]int{},
	}
}

func (f *fixture) request(override *tree.Node) cache.Request {
	return cache.Request{
		Category: "rules",
		Files:    []string{"base.yaml@0001"},
		Override: override,
		Load: func(context.Context) ([]*tree.Node, error) {
			f.loads++
			var extra []*tree.Node
			if override != nil {
				extra = override.Children
			}
			return tree.MergeLists(f.base, extra), nil
		},
		Include: func(name string) bool { return !tree.IsAbstract(name) },
	}
}

func (f *fixture) compose(name string, resolved *tree.Node) (*item, error) {
	f.calls[name]++
	return &item{name: name, hp: resolved.Child("Health").ChildValue("HP")}, nil
}

func override(hp string) *tree.Node {
	return tree.New("rules", "",
		tree.New("tank", "", tree.New("Health", "", tree.New("HP", hp))),
	)
}

func TestGetOrCompose_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New()

	first, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)
	second, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)

	assert.Len(t, first, 2, "abstract entries are filtered")
	assert.Equal(t, first, second)
	assert.Same(t, first["tank"], second["tank"])
	assert.Equal(t, 1, f.loads)
	assert.Equal(t, map[string]int{"tank": 1, "jeep": 1}, f.calls)
}

func TestGetOrCompose_OverrideRecomposesOnlyChangedItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New()

	defaults, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)

	mapA, err := cache.GetOrCompose(ctx, c, f.request(override("500")), f.compose)
	require.NoError(t, err)
	assert.Equal(t, "500", mapA["tank"].hp)
	assert.NotSame(t, defaults["tank"], mapA["tank"])
	assert.Same(t, defaults["jeep"], mapA["jeep"], "unrelated items are reused")

	mapB, err := cache.GetOrCompose(ctx, c, f.request(override("700")), f.compose)
	require.NoError(t, err)
	assert.Equal(t, "700", mapB["tank"].hp)
	assert.Equal(t, "500", mapA["tank"].hp, "earlier results are untouched")

	again, err := cache.GetOrCompose(ctx, c, f.request(override("500")), f.compose)
	require.NoError(t, err)
	assert.Same(t, mapA["tank"], again["tank"])

	assert.Equal(t, map[string]int{"tank": 3, "jeep": 1}, f.calls)
	assert.Equal(t, 3, f.loads)

	trees, items := c.Len()
	assert.Equal(t, 3, trees)
	assert.Equal(t, 4, items)
}

func TestGetOrCompose_ScopesKeepItemsApart(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New()

	req := f.request(nil)
	req.Scope = "composer-a"
	first, err := cache.GetOrCompose(ctx, c, req, f.compose)
	require.NoError(t, err)

	req.Scope = "composer-b"
	second, err := cache.GetOrCompose(ctx, c, req, f.compose)
	require.NoError(t, err)

	assert.NotSame(t, first["tank"], second["tank"])
	assert.Equal(t, 2, f.calls["tank"])
	assert.Equal(t, 1, f.loads, "merged trees are shared between scopes")

	trees, items := c.Len()
	assert.Equal(t, 1, trees)
	assert.Equal(t, 4, items)
}

func TestGetOrCompose_ComposeError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	_, err := cache.GetOrCompose(context.Background(), cache.New(), f.request(nil),
		func(string, *tree.Node) (*item, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestGetOrCompose_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New()

	_, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)

	_, err = cache.GetOrCompose(ctx, c, f.request(nil), func(string, *tree.Node) (string, error) { return "", nil })
	assert.ErrorContains(t, err, "cached item has type")
}

func TestWithCapacity_Evicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New(cache.WithCapacity(1))

	_, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)
	_, err = cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)

	trees, items := c.Len()
	assert.Equal(t, 1, trees)
	assert.Equal(t, 1, items)
	assert.Equal(t, 1, f.loads, "the single table stays cached")
	assert.Equal(t, map[string]int{"tank": 2, "jeep": 2}, f.calls, "each item evicts the other")
}

func TestRemoteTier(t *testing.T) {
	ctx := context.Background()
	remote := memory.NewStore()

	f1 := newFixture()
	_, err := cache.GetOrCompose(ctx, cache.New(cache.WithRemote(remote)), f1.request(override("500")), f1.compose)
	require.NoError(t, err)
	assert.Equal(t, 1, f1.loads)

	keys, err := remote.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	f2 := newFixture()
	got, err := cache.GetOrCompose(ctx, cache.New(cache.WithRemote(remote)), f2.request(override("500")), f2.compose)
	require.NoError(t, err)
	assert.Equal(t, 0, f2.loads, "merged trees come from the remote tier")
	assert.Equal(t, "500", got["tank"].hp)
}

type fakeLocker struct {
	onLock  func()
	err     error
	locked  []string
	unlocks int
}

func (l *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	if l.onLock != nil {
		l.onLock()
	}
	return func(context.Context) error {
		l.unlocks++
		return nil
	}, nil
}

func TestRemoteLock_RechecksAfterWaiting(t *testing.T) {
	ctx := context.Background()
	remote := memory.NewStore()

	peer := newFixture()
	locker := &fakeLocker{onLock: func() {
		_, err := cache.GetOrCompose(ctx, cache.New(cache.WithRemote(remote)), peer.request(nil), peer.compose)
		require.NoError(t, err)
	}}

	f := newFixture()
	c := cache.New(cache.WithRemote(remote), cache.WithRemoteLock(locker, time.Second))
	got, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, peer.loads)
	assert.Equal(t, 0, f.loads, "the tree merged while waiting is read back")
	assert.Len(t, locker.locked, 1)
	assert.Equal(t, 1, locker.unlocks)
}

func TestRemoteLock_FailureFallsBack(t *testing.T) {
	m := metrics.New()
	f := newFixture()
	locker := &fakeLocker{err: errors.New("lock service down")}
	c := cache.New(cache.WithRemote(memory.NewStore()), cache.WithRemoteLock(locker, 0), cache.WithMetrics(m))

	_, err := cache.GetOrCompose(context.Background(), c, f.request(nil), f.compose)
	require.NoError(t, err)
	assert.Equal(t, 1, f.loads)

	expected := `
# HELP ruleforge_remote_store_errors_total Failed operations against the remote merged-tree store
# TYPE ruleforge_remote_store_errors_total counter
ruleforge_remote_store_errors_total{op="lock"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "ruleforge_remote_store_errors_total"))
}

func TestRemoteLock_UnusedWithoutRemote(t *testing.T) {
	f := newFixture()
	locker := &fakeLocker{}
	c := cache.New(cache.WithRemoteLock(locker, time.Second))

	_, err := cache.GetOrCompose(context.Background(), c, f.request(nil), f.compose)
	require.NoError(t, err)
	assert.Empty(t, locker.locked)
}

type brokenStore struct{}

func (brokenStore) Put(context.Context, string, []byte) error   { return errors.New("down") }
func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenStore) Delete(context.Context, string) error        { return errors.New("down") }
func (brokenStore) List(context.Context) ([]string, error)      { return nil, errors.New("down") }

func TestRemoteTier_FailuresAreIgnored(t *testing.T) {
	m := metrics.New()
	f := newFixture()
	c := cache.New(cache.WithRemote(brokenStore{}), cache.WithMetrics(m))

	got, err := cache.GetOrCompose(context.Background(), c, f.request(nil), f.compose)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, f.loads)

	expected := `
# HELP ruleforge_remote_store_errors_total Failed operations against the remote merged-tree store
# TYPE ruleforge_remote_store_errors_total counter
ruleforge_remote_store_errors_total{op="get"} 1
ruleforge_remote_store_errors_total{op="put"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "ruleforge_remote_store_errors_total"))
}

func TestFileIdentity(t *testing.T) {
	a := cache.FileIdentity("rules.yaml", []byte("tank:\n"))
	b := cache.FileIdentity("rules.yaml", []byte("tank:\n  Health:\n"))

	assert.True(t, strings.HasPrefix(a, "rules.yaml@"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cache.FileIdentity("rules.yaml", []byte("tank:\n")))
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := cache.New()

	_, err := cache.GetOrCompose(ctx, c, f.request(nil), f.compose)
	require.NoError(t, err)
	c.Purge()
	trees, items := c.Len()
	assert.Zero(t, trees)
	assert.Zero(t, items)
}
