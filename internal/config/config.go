// Package config loads the ruleforge settings file.
//
// The file is a YAML mapping of sections (Mod, Cache, Redis, Server, Log).
// It is loaded with the Tolerant field policy: unknown keys and invalid
// values are logged and the affected setting keeps its default, so an old
// or hand-edited file never prevents the tool from starting.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/ruleforge/internal/logging"
	"github.com/aretw0/ruleforge/pkg/fields"
	"github.com/aretw0/ruleforge/pkg/tree"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = "ruleforge.yaml"

// Settings holds every configurable value of the CLI.
type Settings struct {
	Mod    Mod
	Cache  Cache
	Redis  Redis
	Server Server
	Log    Log
}

// Mod selects the mod to load.
type Mod struct {
	Dir      string `mapstructure:"Dir"`
	Manifest string `mapstructure:"Manifest"`
	Tileset  string `mapstructure:"Tileset"`
}

// Cache configures the composition cache and its local merged-tree tier.
type Cache struct {
	// Capacity bounds each cache level; zero is unbounded.
	Capacity int `mapstructure:"Capacity"`
	// Dir enables the file tier for merged trees when set.
	Dir string `mapstructure:"Dir"`
	// Compress stores trees in the file or redis tier zstd compressed.
	Compress bool `mapstructure:"Compress"`
	// EncryptionKey seals trees in the file or redis tier when set. It is
	// a base64 encoded 32 byte key.
	EncryptionKey string `mapstructure:"EncryptionKey"`
	// FallbackKeys still decrypt trees sealed with rotated keys.
	FallbackKeys []string `mapstructure:"FallbackKeys"`
}

// Keys decodes the encryption keys. active is nil when encryption is off.
func (c Cache) Keys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid Cache.EncryptionKey: %w", err)
	}
	for i, k := range c.FallbackKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid Cache.FallbackKeys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

// Redis configures the shared merged-tree tier. An empty Addr disables it.
type Redis struct {
	Addr     string        `mapstructure:"Addr"`
	Password string        `mapstructure:"Password"`
	DB       int           `mapstructure:"DB"`
	TTL      time.Duration `mapstructure:"TTL"`
	Prefix   string        `mapstructure:"Prefix"`
}

// Server configures the inspection API.
type Server struct {
	Addr string `mapstructure:"Addr"`
}

// Log configures logging.
type Log struct {
	Level  string `mapstructure:"Level"`
	Format string `mapstructure:"Format"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Mod:    Mod{Dir: ".", Manifest: "mod.yaml"},
		Redis:  Redis{Prefix: "ruleforge:tree:", TTL: 24 * time.Hour},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads the settings file at path over the defaults. A missing file
// yields the defaults.
func Load(path string, logger *slog.Logger) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return Parse(path, data, logger)
}

// Parse decodes settings from a YAML document over the defaults. Only
// malformed YAML is an error.
func Parse(name string, data []byte, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	nodes, err := tree.Parse(name, data)
	if err != nil {
		return Settings{}, err
	}

	s := Default()
	loader := fields.New(fields.Tolerant, fields.WithLogger(logger))
	for _, n := range nodes {
		var target any
		switch n.Key {
		case "Mod":
			target = &s.Mod
		case "Cache":
			target = &s.Cache
		case "Redis":
			target = &s.Redis
		case "Server":
			target = &s.Server
		case "Log":
			target = &s.Log
		default:
			logger.Warn("Ignoring unknown settings section", "section", n.Key, "location", n.Location.String())
			continue
		}
		if err := loader.Load(target, n); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}
