// Package cache memoizes rule composition across loads.
//
// The cache has two levels. The tree level maps (category, files, override)
// to the merged definition table, so a second load of the same mod or map
// skips parsing and merging. The item level maps (category, files, resolved
// item tree) to the composed descriptor, so items whose resolved trees did
// not change are reused even when a map override touches other items.
//
// A Cache is not safe for concurrent use; callers serialize loads.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// Cache is the two-level composition cache.
type Cache struct {
	trees   store[*tree.Table]
	items   store[any]
	remote  ports.TreeStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// DefaultLockTTL bounds how long a remote lock is held and waited for.
const DefaultLockTTL = 10 * time.Second

// Option configures a Cache.
type Option func(*cacheConfig)

type cacheConfig struct {
	capacity int
	remote   ports.TreeStore
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// WithCapacity bounds each level to n entries with least-recently-used
// eviction. Zero (the default) never evicts.
func WithCapacity(n int) Option {
	return func(c *cacheConfig) {
		c.capacity = n
	}
}

// WithRemote adds a shared tier for merged trees. It is consulted on a tree
// miss and filled after a load; its failures are logged and ignored.
func WithRemote(s ports.TreeStore) Option {
	return func(c *cacheConfig) {
		c.remote = s
	}
}

// WithRemoteLock makes processes sharing the remote tier take a lock before
// merging a tree the tier does not have, so only one of them does the work.
// A ttl of zero uses DefaultLockTTL. Lock failures fall back to merging
// without the lock.
func WithRemoteLock(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *cacheConfig) {
		c.locker = locker
		c.lockTTL = ttl
	}
}

// WithMetrics records hits and misses.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *cacheConfig) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *cacheConfig) {
		c.logger = logger
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	cfg := cacheConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.lockTTL <= 0 {
		cfg.lockTTL = DefaultLockTTL
	}
	return &Cache{
		trees:   newStore[*tree.Table](cfg.capacity),
		items:   newStore[any](cfg.capacity),
		remote:  cfg.remote,
		locker:  cfg.locker,
		lockTTL: cfg.lockTTL,
		metrics: cfg.metrics,
		logger:  cfg.logger,
	}
}

// Len returns the number of cached tables and items.
func (c *Cache) Len() (trees, items int) {
	return c.trees.Len(), c.items.Len()
}

// Purge drops every in-process entry. The remote tier is left untouched.
func (c *Cache) Purge() {
	c.trees.Purge()
	c.items.Purge()
}

// Request describes one category of a load.
type Request struct {
	// Category names the rule category ("rules", "weapons", ...).
	Category string
	// Files are the ordered file identities (see FileIdentity).
	Files []string
	// Override is the map override tree for the category, or nil.
	Override *tree.Node
	// Load produces the merged top-level nodes on a tree-level miss.
	Load func(ctx context.Context) ([]*tree.Node, error)
	// Include filters the names to compose. Nil composes every name.
	Include func(name string) bool
	// Scope identifies what composes the items, typically a composer ID.
	// Items composed under different scopes are cached apart; merged trees
	// are shared.
	Scope string
}

// ComposeFunc composes one item from its resolved tree.
type ComposeFunc[T any] func(name string, resolved *tree.Node) (T, error)

// GetOrCompose returns every composed item of a category keyed by lower-case
// name. Items already composed from an identical resolved tree are returned
// from the cache without calling compose.
func GetOrCompose[T any](ctx context.Context, c *Cache, req Request, compose ComposeFunc[T]) (map[string]T, error) {
	table, err := c.Table(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(map[string]T, table.Len())
	for _, name := range table.Names() {
		if req.Include != nil && !req.Include(name) {
			continue
		}

		resolved, err := table.Resolve(name)
		if err != nil {
			return nil, err
		}
		encoded, err := tree.Encode(resolved)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", req.Category, name, err)
		}
		key := digest(itemDomainKey, req.Category, req.Files, []byte(req.Scope), encoded)

		if cached, ok := c.items.Get(key); ok {
			item, ok := cached.(T)
			if !ok {
				return nil, fmt.Errorf("%s %q: cached item has type %T", req.Category, name, cached)
			}
			c.metrics.CacheHit(req.Category, metrics.LevelItem)
			out[strings.ToLower(name)] = item
			continue
		}

		c.metrics.CacheMiss(req.Category, metrics.LevelItem)
		item, err := compose(name, resolved)
		if err != nil {
			return nil, err
		}
		c.items.Add(key, item)
		out[strings.ToLower(name)] = item
	}
	return out, nil
}

// Table returns the merged definition table for a request, loading it on a
// miss. Callers must treat the table as read-only.
func (c *Cache) Table(ctx context.Context, req Request) (*tree.Table, error) {
	var payload []byte
	if req.Override != nil {
		encoded, err := tree.Encode(req.Override)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode override: %w", req.Category, err)
		}
		payload = encoded
	}
	key := digest(treeDomainKey, req.Category, req.Files, payload)

	if table, ok := c.trees.Get(key); ok {
		c.metrics.CacheHit(req.Category, metrics.LevelTree)
		c.logger.Debug("Tree cache hit", "category", req.Category, "key", key.String())
		return table, nil
	}
	c.metrics.CacheMiss(req.Category, metrics.LevelTree)

	nodes, ok := c.fetchRemote(ctx, req.Category, key)
	if !ok {
		if req.Load == nil {
			return nil, fmt.Errorf("%s: no loader for uncached request", req.Category)
		}
		unlock := c.lockRemote(ctx, req.Category, key)
		if unlock != nil {
			defer unlock()
			nodes, ok = c.fetchRemote(ctx, req.Category, key)
		}
		if !ok {
			loaded, err := req.Load(ctx)
			if err != nil {
				return nil, err
			}
			nodes = loaded
			c.storeRemote(ctx, req.Category, key, nodes)
		}
	}

	table := tree.NewTable(nodes, tree.WithLogger(c.logger))
	c.trees.Add(key, table)
	return table, nil
}

func (c *Cache) fetchRemote(ctx context.Context, category string, key Key) ([]*tree.Node, bool) {
	if c.remote == nil {
		return nil, false
	}
	data, err := c.remote.Get(ctx, key.String())
	if err != nil {
		if !errors.Is(err, domain.ErrTreeNotFound) {
			c.metrics.RemoteError("get")
			c.logger.Warn("Remote tree store unavailable", "category", category, "error", err)
		}
		return nil, false
	}
	nodes, err := tree.Decode(data)
	if err != nil {
		c.metrics.RemoteError("get")
		c.logger.Warn("Discarding undecodable remote tree", "category", category, "key", key.String(), "error", err)
		return nil, false
	}
	c.logger.Debug("Remote tree hit", "category", category, "key", key.String())
	return nodes, true
}

// lockRemote returns nil when there is no remote lock or it cannot be taken.
func (c *Cache) lockRemote(ctx context.Context, category string, key Key) func() {
	if c.remote == nil || c.locker == nil {
		return nil
	}
	lockCtx, cancel := context.WithTimeout(ctx, c.lockTTL)
	defer cancel()

	release, err := c.locker.Lock(lockCtx, key.String(), c.lockTTL)
	if err != nil {
		c.metrics.RemoteError("lock")
		c.logger.Warn("Merging without remote lock", "category", category, "error", err)
		return nil
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			c.metrics.RemoteError("unlock")
			c.logger.Warn("Failed to release remote lock", "category", category, "error", err)
		}
	}
}

func (c *Cache) storeRemote(ctx context.Context, category string, key Key, nodes []*tree.Node) {
	if c.remote == nil {
		return
	}
	data, err := tree.Encode(nodes...)
	if err == nil {
		err = c.remote.Put(ctx, key.String(), data)
	}
	if err != nil {
		c.metrics.RemoteError("put")
		c.logger.Warn("Failed to store tree remotely", "category", category, "error", err)
	}
}
