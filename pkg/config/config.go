// Package config loads Piecemaker configuration from a TOML file.
//
// Configuration covers the generation defaults plus backend selection for
// the cache and the batch store. All fields are optional: an absent file or
// an empty file yields the same settings as Default().
//
// Example config file:
//
//	tab_depth_ratio = 0.18
//	tolerance = 2
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// Cache backend names.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Store backend names.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config holds the application configuration.
type Config struct {
	// TabDepthRatio is the default tab depth as a fraction of the shorter
	// piece dimension.
	TabDepthRatio float64 `toml:"tab_depth_ratio"`

	// Tolerance is the default segmentation tolerance in pixels.
	Tolerance int `toml:"tolerance"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the batch store backend.
type StoreConfig struct {
	// Backend is one of "none", "memory", or "mongo".
	Backend string `toml:"backend"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TabDepthRatio: puzzle.DefaultTabDepthRatio,
		Tolerance:     puzzle.DefaultTolerance,
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     defaultCacheDir(),
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Store: StoreConfig{
			Backend: StoreMemory,
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "piecemaker",
				Collection: "batches",
			},
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is consistent.
func (c Config) Validate() error {
	if err := errors.ValidateTabDepthRatio(c.TabDepthRatio); err != nil {
		return err
	}
	if err := errors.ValidateTolerance(c.Tolerance); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend: %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheFile && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.dir is required for the file backend")
	}
	if c.Cache.Backend == CacheRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
	}

	switch c.Store.Backend {
	case StoreNone, StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid store backend: %q (must be one of: none, memory, mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store.mongo.uri is required for the mongo backend")
	}

	return nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "piecemaker.toml"
	}
	return filepath.Join(home, ".config", "piecemaker", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".piecemaker-cache"
	}
	return filepath.Join(dir, "piecemaker")
}
