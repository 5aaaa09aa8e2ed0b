package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/ruleforge"
	"github.com/aretw0/ruleforge/internal/config"
	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/pkg/adapters/file"
	"github.com/aretw0/ruleforge/pkg/adapters/redis"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/persistence/middleware"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/aretw0/ruleforge/pkg/rules"
	"github.com/spf13/cobra"
)

// app is the state shared by the subcommands: settings merged with flags,
// the engine and, when --map is set, the parsed map overrides.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	metrics  *metrics.Metrics
	engine   *ruleforge.Engine
	mapFile  string
	closers  []func() error

	once    sync.Once
	ruleset *domain.Ruleset
	err     error
}

func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	debug, _ := flags.GetBool("debug")
	configPath, _ := flags.GetString("config")

	bootstrap := logging.New(slog.LevelWarn)
	settings, err := config.Load(configPath, bootstrap)
	if err != nil {
		return nil, err
	}

	if flags.Changed("dir") {
		settings.Mod.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("tileset") {
		settings.Mod.Tileset, _ = flags.GetString("tileset")
	}
	level := logging.ParseLevel(settings.Log.Level)
	if debug {
		level = slog.LevelDebug
	}

	a := &app{
		settings: settings,
		logger:   logging.NewWithWriter(os.Stderr, level, settings.Log.Format),
		metrics:  metrics.New(),
	}
	a.mapFile, _ = flags.GetString("map")

	opts := []ruleforge.Option{
		ruleforge.WithManifest(settings.Mod.Manifest),
		ruleforge.WithTileset(settings.Mod.Tileset),
		ruleforge.WithCacheCapacity(settings.Cache.Capacity),
		ruleforge.WithMetrics(a.metrics),
		ruleforge.WithLogger(a.logger),
	}
	remote, err := a.remoteOptions()
	if err != nil {
		a.Close()
		return nil, err
	}
	opts = append(opts, remote...)

	eng, err := ruleforge.New(settings.Mod.Dir, opts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize ruleforge: %w", err)
	}
	a.engine = eng
	return a, nil
}

// remoteOptions selects the merged-tree tier: redis when an address is set,
// else the file store when a cache directory is set.
func (a *app) remoteOptions() ([]ruleforge.Option, error) {
	var (
		store ports.TreeStore
		opts  []ruleforge.Option
	)
	switch {
	case a.settings.Redis.Addr != "":
		rs := redis.New(a.settings.Redis.Addr, a.settings.Redis.Password, a.settings.Redis.DB,
			redis.WithPrefix(a.settings.Redis.Prefix),
			redis.WithTTL(a.settings.Redis.TTL),
		)
		a.closers = append(a.closers, rs.Close)
		store = rs
		opts = append(opts, ruleforge.WithRemoteLock(rs.Locker(), 0))
		a.logger.Debug("Using redis tree store", "addr", a.settings.Redis.Addr)
	case a.settings.Cache.Dir != "":
		store = file.NewStore(a.settings.Cache.Dir)
		a.logger.Debug("Using file tree store", "dir", a.settings.Cache.Dir)
	default:
		return nil, nil
	}

	var mws []middleware.Middleware
	if a.settings.Cache.Compress {
		mws = append(mws, middleware.NewCompressionMiddleware())
	}
	active, fallback, err := a.settings.Cache.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		seal, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		mws = append(mws, seal)
	}
	store = middleware.Chain(store, mws...)
	return append(opts, ruleforge.WithRemoteStore(store)), nil
}

// Ruleset returns the map ruleset when --map is set and the mod defaults
// otherwise. The result is loaded once.
func (a *app) Ruleset(ctx context.Context) (*domain.Ruleset, error) {
	a.once.Do(func() {
		if a.mapFile == "" {
			a.ruleset, a.err = a.engine.Defaults(ctx)
			return
		}
		overrides, err := a.overrides()
		if err != nil {
			a.err = err
			return
		}
		a.ruleset, a.err = a.engine.LoadMap(ctx, overrides)
	})
	return a.ruleset, a.err
}

// overrides reads the --map file.
func (a *app) overrides() (*rules.MapOverrides, error) {
	data, err := os.ReadFile(a.mapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read map rules: %w", err)
	}
	return rules.ParseMapOverrides(a.mapFile, data)
}

func (a *app) entity(ctx context.Context, name string) (*domain.EntityDescriptor, error) {
	rs, err := a.Ruleset(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := rs.Entity(name)
	if !ok {
		return nil, &domain.LookupError{Kind: "entity", Name: name}
	}
	return e, nil
}

// Close releases the remote store connections.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("Close failed", "error", err)
		}
	}
}
