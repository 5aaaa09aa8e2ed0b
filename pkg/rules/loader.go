package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/internal/metrics"
	"github.com/aretw0/ruleforge/pkg/cache"
	"github.com/aretw0/ruleforge/pkg/capabilities"
	"github.com/aretw0/ruleforge/pkg/compose"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/ports"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// Cache categories.
const (
	CategoryRules         = "rules"
	CategoryWeapons       = "weapons"
	CategoryVoices        = "voices"
	CategoryNotifications = "notifications"
	CategoryMusic         = "music"
	CategorySequences     = "sequences"
	CategoryTerrain       = "terrain"
)

// Loader composes rulesets. Loads are serialized; the loader may be shared
// between goroutines.
type Loader struct {
	mu       sync.Mutex
	source   ports.DefinitionSource
	composer *compose.Composer
	cache    *cache.Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// tilesets memoizes composed tilesets by file identity.
	tilesets map[string]*domain.TerrainDescriptor
}

// Option configures a Loader.
type Option func(*Loader)

// WithComposer replaces the default composer (built-in capabilities,
// Strict field policy).
func WithComposer(c *compose.Composer) Option {
	return func(l *Loader) {
		l.composer = c
	}
}

// WithCache shares a composition cache. By default each loader owns an
// unbounded one.
func WithCache(c *cache.Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithMetrics records load durations and, for the default cache, lookups.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader reading definition files from source.
func New(source ports.DefinitionSource, opts ...Option) *Loader {
	l := &Loader{
		source:   source,
		logger:   logging.NewNop(),
		tilesets: make(map[string]*domain.TerrainDescriptor),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.composer == nil {
		l.composer = compose.New(compose.WithLogger(l.logger))
		capabilities.RegisterAll(l.composer)
	}
	if l.cache == nil {
		l.cache = cache.New(cache.WithMetrics(l.metrics), cache.WithLogger(l.logger))
	}
	return l
}

// Composer returns the composer used by the loader.
func (l *Loader) Composer() *compose.Composer {
	return l.composer
}

// Cache returns the composition cache used by the loader.
func (l *Loader) Cache() *cache.Cache {
	return l.cache
}

// LoadRequest describes one ruleset load.
type LoadRequest struct {
	Manifest *Manifest
	// Overrides are the map's override trees, nil for the mod defaults.
	Overrides *MapOverrides
	// Defaults is a previously loaded ruleset whose catalogs are reused for
	// categories without an override.
	Defaults *domain.Ruleset
	// Tileset selects terrain and sequences. Empty skips both.
	Tileset string
}

// Load composes a ruleset and runs the post-load hooks. The first hook
// failure is returned as a *domain.RulesetError.
func (l *Loader) Load(ctx context.Context, req LoadRequest) (*domain.Ruleset, error) {
	return l.load(ctx, req, true)
}

// Compose is Load without the post-load hooks. Pass the result to Validate
// to collect every hook failure instead of the first one.
func (l *Loader) Compose(ctx context.Context, req LoadRequest) (*domain.Ruleset, error) {
	return l.load(ctx, req, false)
}

func (l *Loader) load(ctx context.Context, req LoadRequest, hooks bool) (*domain.Ruleset, error) {
	if req.Manifest == nil {
		return nil, errors.New("load request has no manifest")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	m := req.Manifest
	defaults := req.Defaults
	if defaults == nil {
		defaults = &domain.Ruleset{}
	}

	rs := &domain.Ruleset{}
	var err error

	rs.Entities, err = loadCategory(ctx, l, category{
		name: CategoryRules, section: SectionRules, files: m.Rules, skipAbstract: true,
	}, req.Overrides, defaults.Entities, l.composer.EntityFromTree)
	if err != nil {
		return nil, err
	}

	rs.Weapons, err = loadCategory(ctx, l, category{
		name: CategoryWeapons, section: SectionWeapons, files: m.Weapons, skipAbstract: true,
	}, req.Overrides, defaults.Weapons, l.composer.WeaponFromTree)
	if err != nil {
		return nil, err
	}

	rs.Voices, err = loadCategory(ctx, l, category{
		name: CategoryVoices, section: SectionVoices, files: m.Voices,
	}, req.Overrides, defaults.Voices, l.composer.SoundFromTree)
	if err != nil {
		return nil, err
	}

	rs.Notifications, err = loadCategory(ctx, l, category{
		name: CategoryNotifications, section: SectionNotifications, files: m.Notifications,
	}, req.Overrides, defaults.Notifications, l.composer.SoundFromTree)
	if err != nil {
		return nil, err
	}

	rs.Music, err = loadCategory(ctx, l, category{
		name: CategoryMusic, section: SectionMusic, files: m.Music,
	}, req.Overrides, defaults.Music, l.composer.MusicFromTree)
	if err != nil {
		return nil, err
	}

	if req.Tileset != "" {
		rs.Terrain, err = l.terrain(m.TileSets, req.Tileset, defaults.Terrain)
		if err != nil {
			return nil, err
		}
		rs.Sequences, err = l.sequences(ctx, m.Sequences, req.Overrides, defaults.Sequences, rs.Terrain.ID)
		if err != nil {
			return nil, err
		}
	}

	if hooks {
		var failed error
		runHooks(rs, func(err *domain.RulesetError) bool {
			failed = err
			return false
		})
		if failed != nil {
			return nil, failed
		}
	}

	l.logger.Info("Ruleset loaded",
		"entities", len(rs.Entities),
		"weapons", len(rs.Weapons),
		"tileset", req.Tileset,
		"overrides", req.Overrides != nil,
		"hooks", hooks,
		"duration", time.Since(start),
	)
	return rs, nil
}

// Tilesets returns the ids of the tilesets listed in a manifest, in
// manifest order.
func (l *Loader) Tilesets(m *Manifest) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(m.TileSets))
	for _, f := range m.TileSets {
		t, err := l.tileset(f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

type category struct {
	name         string
	section      string
	files        []string
	skipAbstract bool
}

func loadCategory[T any](ctx context.Context, l *Loader, cat category, overrides *MapOverrides, defaults map[string]T, fn cache.ComposeFunc[T]) (map[string]T, error) {
	override := overrides.section(cat.section)
	if override == nil && defaults != nil {
		l.logger.Debug("Reusing default catalog", "category", cat.name)
		return defaults, nil
	}

	start := time.Now()
	files := append(slices.Clone(cat.files), extraFiles(override)...)
	req, err := l.request(cat.name, files, override)
	if err != nil {
		return nil, err
	}
	if cat.skipAbstract {
		req.Include = notAbstract
	}

	out, err := cache.GetOrCompose(ctx, l.cache, req, fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cat.name, err)
	}
	l.metrics.ObserveLoad(cat.name, time.Since(start))
	return out, nil
}

func notAbstract(name string) bool {
	return !tree.IsAbstract(name)
}

// request reads the category files up front so the cache key reflects
// their current content. Parsing only happens on a tree-level miss.
func (l *Loader) request(category string, files []string, override *tree.Node) (cache.Request, error) {
	contents := make([][]byte, len(files))
	ids := make([]string, len(files))
	for i, f := range files {
		data, err := l.source.ReadFile(f)
		if err != nil {
			return cache.Request{}, fmt.Errorf("%s: failed to read %s: %w", category, f, err)
		}
		contents[i] = data
		ids[i] = cache.FileIdentity(f, data)
	}

	return cache.Request{
		Category: category,
		Files:    ids,
		Override: override,
		Scope:    l.composer.ID(),
		Load: func(context.Context) ([]*tree.Node, error) {
			sources := make([][]*tree.Node, 0, len(files)+1)
			for i, f := range files {
				nodes, err := tree.Parse(f, contents[i])
				if err != nil {
					return nil, err
				}
				sources = append(sources, nodes)
			}
			if override != nil {
				sources = append(sources, override.Children)
			}
			return tree.MergeLists(sources...), nil
		},
	}, nil
}

func (l *Loader) terrain(files []string, tileset string, defaults *domain.TerrainDescriptor) (*domain.TerrainDescriptor, error) {
	if defaults != nil && strings.EqualFold(defaults.ID, tileset) {
		return defaults, nil
	}

	start := time.Now()
	for _, f := range files {
		t, err := l.tileset(f)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(t.ID, tileset) {
			l.metrics.ObserveLoad(CategoryTerrain, time.Since(start))
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTileset, tileset)
}

func (l *Loader) tileset(file string) (*domain.TerrainDescriptor, error) {
	data, err := l.source.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s: %w", CategoryTerrain, file, err)
	}
	id := cache.FileIdentity(file, data)
	if t, ok := l.tilesets[id]; ok {
		return t, nil
	}

	nodes, err := tree.Parse(file, data)
	if err != nil {
		return nil, err
	}
	t, err := l.composer.Terrain(nodes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	l.tilesets[id] = t
	return t, nil
}

// sequences composes the image catalog for a tileset. The cache category
// includes the tileset because per-tileset file names change the result.
func (l *Loader) sequences(ctx context.Context, files []string, overrides *MapOverrides, defaults *domain.SequenceCatalog, tileset string) (*domain.SequenceCatalog, error) {
	override := overrides.section(SectionSequences)
	if override == nil && defaults != nil && strings.EqualFold(defaults.Tileset, tileset) {
		l.logger.Debug("Reusing default catalog", "category", CategorySequences)
		return defaults, nil
	}

	start := time.Now()
	files = append(slices.Clone(files), extraFiles(override)...)
	req, err := l.request(CategorySequences+"/"+strings.ToLower(tileset), files, override)
	if err != nil {
		return nil, err
	}
	req.Include = notAbstract

	images, err := cache.GetOrCompose(ctx, l.cache, req, func(name string, resolved *tree.Node) (domain.ImageSequences, error) {
		return l.composer.ImageFromTree(name, tileset, resolved)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CategorySequences, err)
	}
	l.metrics.ObserveLoad(CategorySequences, time.Since(start))
	return domain.NewSequenceCatalog(tileset, images), nil
}
