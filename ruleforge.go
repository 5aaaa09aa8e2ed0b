package ruleforge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/pkg/adapters/file"
	"github.com/aretw0/ruleforge/pkg/cache"
	"github.com/aretw0/ruleforge/pkg/compose"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/aretw0/ruleforge/pkg/rules"
)

// DefaultManifest is the manifest file name looked up in the mod directory.
const DefaultManifest = "mod.yaml"

// Engine is the high-level entry point: it owns the definition source, the
// composition cache and the mod defaults.
type Engine struct {
	source       ports.DefinitionSource
	manifestName string
	tileset      string
	capacity     int
	remote       ports.TreeStore
	locker       ports.DistributedLocker
	lockTTL      time.Duration
	composer     *compose.Composer
	metrics      *metrics.Metrics
	logger       *slog.Logger

	loader   *rules.Loader
	manifest *rules.Manifest

	mu       sync.Mutex
	defaults *domain.Ruleset

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects a definition source, bypassing the mod directory.
func WithSource(src ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithManifest sets the manifest file name (default "mod.yaml").
func WithManifest(name string) Option {
	return func(e *Engine) {
		e.manifestName = name
	}
}

// WithTileset selects the tileset for terrain and sequences.
func WithTileset(id string) Option {
	return func(e *Engine) {
		e.tileset = id
	}
}

// WithCacheCapacity bounds the composition cache (zero is unbounded).
func WithCacheCapacity(n int) Option {
	return func(e *Engine) {
		e.capacity = n
	}
}

// WithRemoteStore adds a shared merged-tree tier to the cache.
func WithRemoteStore(s ports.TreeStore) Option {
	return func(e *Engine) {
		e.remote = s
	}
}

// WithRemoteLock coordinates tree merges between processes sharing the
// remote store.
func WithRemoteLock(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithComposer replaces the default composer (built-in capabilities).
func WithComposer(c *compose.Composer) Option {
	return func(e *Engine) {
		e.composer = c
	}
}

// WithMetrics records cache and load metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine for the mod in modDir and reads its manifest.
// If WithSource is provided, modDir may be empty and is only used as a label.
func New(modDir string, opts ...Option) (*Engine, error) {
	eng := &Engine{manifestName: DefaultManifest}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.source == nil {
		if modDir == "" {
			return nil, errors.New("mod directory is required when no custom source is provided")
		}
		src, err := file.NewDirSource(modDir)
		if err != nil {
			return nil, err
		}
		eng.source = src
	}
	if modDir != "" {
		abs, err := filepath.Abs(modDir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(abs)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("mod", eng.Name)
	}

	manifest, err := rules.LoadManifest(eng.source, eng.manifestName)
	if err != nil {
		return nil, err
	}
	eng.manifest = manifest

	c := cache.New(
		cache.WithCapacity(eng.capacity),
		cache.WithRemote(eng.remote),
		cache.WithRemoteLock(eng.locker, eng.lockTTL),
		cache.WithMetrics(eng.metrics),
		cache.WithLogger(eng.logger),
	)
	loaderOpts := []rules.Option{
		rules.WithCache(c),
		rules.WithMetrics(eng.metrics),
		rules.WithLogger(eng.logger),
	}
	if eng.composer != nil {
		loaderOpts = append(loaderOpts, rules.WithComposer(eng.composer))
	}
	eng.loader = rules.New(eng.source, loaderOpts...)

	return eng, nil
}

// Manifest returns the mod manifest.
func (e *Engine) Manifest() *rules.Manifest {
	return e.manifest
}

// Loader returns the underlying rules loader.
func (e *Engine) Loader() *rules.Loader {
	return e.loader
}

// Source returns the definition source.
func (e *Engine) Source() ports.DefinitionSource {
	return e.source
}

// Tileset returns the selected tileset id.
func (e *Engine) Tileset() string {
	return e.tileset
}

// Defaults loads the mod defaults on first use and returns them afterwards.
func (e *Engine) Defaults(ctx context.Context) (*domain.Ruleset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.defaults != nil {
		return e.defaults, nil
	}
	rs, err := e.loader.Load(ctx, rules.LoadRequest{Manifest: e.manifest, Tileset: e.tileset})
	if err != nil {
		return nil, err
	}
	e.defaults = rs
	return rs, nil
}

// Ruleset returns the mod defaults.
func (e *Engine) Ruleset(ctx context.Context) (*domain.Ruleset, error) {
	return e.Defaults(ctx)
}

// LoadMap loads a map's ruleset over the mod defaults.
func (e *Engine) LoadMap(ctx context.Context, overrides *rules.MapOverrides) (*domain.Ruleset, error) {
	defaults, err := e.Defaults(ctx)
	if err != nil {
		return nil, err
	}
	return e.loader.Load(ctx, e.mapRequest(overrides, defaults))
}

// LoadMapInBackground is LoadMap on a worker goroutine, calling progress
// on the caller's goroutine while it runs.
func (e *Engine) LoadMapInBackground(ctx context.Context, overrides *rules.MapOverrides, progress func(time.Duration)) (*domain.Ruleset, error) {
	defaults, err := e.Defaults(ctx)
	if err != nil {
		return nil, err
	}
	return e.loader.LoadInBackground(ctx, e.mapRequest(overrides, defaults), rules.PollOptions{Progress: progress})
}

func (e *Engine) mapRequest(overrides *rules.MapOverrides, defaults *domain.Ruleset) rules.LoadRequest {
	return rules.LoadRequest{
		Manifest:  e.manifest,
		Overrides: overrides,
		Defaults:  defaults,
		Tileset:   e.tileset,
	}
}

// Validate loads the defaults for every tileset of the manifest (or once
// without terrain when it lists none) and checks every post-load hook and
// construction order. Failures are collected into a *domain.AggregateError.
func (e *Engine) Validate(ctx context.Context) error {
	tilesets, err := e.loader.Tilesets(e.manifest)
	if err != nil {
		return err
	}
	if len(tilesets) == 0 {
		tilesets = []string{""}
	}

	var errs []error
	var prev *domain.Ruleset
	for _, id := range tilesets {
		rs, err := e.loader.Compose(ctx, rules.LoadRequest{Manifest: e.manifest, Defaults: prev, Tileset: id})
		if err != nil {
			errs = append(errs, tilesetError(id, err))
			continue
		}
		prev = rs
		for _, verr := range domain.Errors(rules.Validate(rs)) {
			errs = append(errs, tilesetError(id, verr))
		}
	}
	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// ValidateMap composes a map's ruleset over the mod defaults for the
// selected tileset and collects every post-load hook and construction order
// failure, in the defaults and in the map rules alike.
func (e *Engine) ValidateMap(ctx context.Context, overrides *rules.MapOverrides) error {
	defaults, err := e.loader.Compose(ctx, rules.LoadRequest{Manifest: e.manifest, Tileset: e.tileset})
	if err != nil {
		return err
	}
	rs, err := e.loader.Compose(ctx, e.mapRequest(overrides, defaults))
	if err != nil {
		return err
	}
	return rules.Validate(rs)
}

func tilesetError(id string, err error) error {
	if id == "" {
		return err
	}
	return fmt.Errorf("tileset %s: %w", id, err)
}
