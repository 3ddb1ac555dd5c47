package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/arborgraph/arbor/pkg/graph"
)

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Member source types selectable in the config file.
const (
	SourceTypeFile  = "file"
	SourceTypeREST  = "rest"
	SourceTypeMongo = "mongo"
)

// Config is the user configuration loaded from ~/.config/arbor/config.toml.
// All fields are optional; flags override config values.
type Config struct {
	// Viewport is the default viewport width for layout computation.
	Viewport float64 `toml:"viewport"`

	// Density is the default spacing density (comfortable or compact).
	// Empty selects by viewport width.
	Density string `toml:"density"`

	Cache  CacheConfig  `toml:"cache"`
	Source SourceConfig `toml:"source"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"` // file (default), redis, none
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SourceConfig selects and configures the default member source.
type SourceConfig struct {
	Type  string      `toml:"type"` // file, rest, mongo
	Path  string      `toml:"path"` // file source
	URL   string      `toml:"url"`  // rest source
	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo member source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Source: SourceConfig{
			Type:  SourceTypeFile,
			Mongo: MongoConfig{Collection: "members"},
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file returns the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Source.Type {
	case "", SourceTypeFile, SourceTypeREST, SourceTypeMongo:
	default:
		return fmt.Errorf("unknown source type %q", c.Source.Type)
	}
	switch c.Density {
	case "", graph.DensityComfortable, graph.DensityCompact:
	default:
		return fmt.Errorf("unknown density %q", c.Density)
	}
	return nil
}
