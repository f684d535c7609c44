package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gitlite/flowgraph/pkg/errors"
	"github.com/gitlite/flowgraph/pkg/pipeline"
)

// =============================================================================
// Config File
// =============================================================================

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendMongo = "mongo"
	CacheBackendNone  = "none"
)

// Config is the TOML config file shape. All sections are optional; zero
// fields fall back to the engine defaults. Flags override config values.
//
// Example:
//
//	[layout]
//	row_height = 26
//	max_width = 220
//
//	[flow]
//	window = 21600
//	max_group_size = 8
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Flow   FlowConfig   `toml:"flow"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig overrides the layout geometry defaults.
type LayoutConfig struct {
	RowHeight   float64 `toml:"row_height"`
	LaneWidth   float64 `toml:"lane_width"`
	LanePadding float64 `toml:"lane_padding"`
	NodeRadius  float64 `toml:"node_radius"`
	MaxWidth    float64 `toml:"max_width"`
}

// FlowConfig overrides the flow-grouping defaults.
type FlowConfig struct {
	FallbackLabel string `toml:"fallback_label"`
	MaxGroupSize  int    `toml:"max_group_size"`
	Window        int64  `toml:"window"` // seconds
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"` // file (default), redis, mongo, none
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// loadConfig reads the config file. An explicit path must exist; the default
// location is optional and an absent file yields the zero Config.
func (c *CLI) loadConfig() (*Config, error) {
	path := c.ConfigPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Cache.Backend {
	case "", CacheBackendFile, CacheBackendNone:
	case CacheBackendRedis:
		if cfg.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	case CacheBackendMongo:
		if cfg.Cache.MongoURI == "" || cfg.Cache.MongoDatabase == "" || cfg.Cache.MongoCollection == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.mongo_uri, mongo_database and mongo_collection are required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
	}
	return nil
}

// applyConfig copies config values onto zero option fields, so flags set by
// the user keep precedence.
func applyConfig(opts *pipeline.Options, cfg *Config) {
	if opts.RowHeight == 0 {
		opts.RowHeight = cfg.Layout.RowHeight
	}
	if opts.LaneWidth == 0 {
		opts.LaneWidth = cfg.Layout.LaneWidth
	}
	if opts.LanePadding == 0 {
		opts.LanePadding = cfg.Layout.LanePadding
	}
	if opts.NodeRadius == 0 {
		opts.NodeRadius = cfg.Layout.NodeRadius
	}
	if opts.MaxWidth == 0 {
		opts.MaxWidth = cfg.Layout.MaxWidth
	}
	if opts.FallbackLabel == "" {
		opts.FallbackLabel = cfg.Flow.FallbackLabel
	}
	if opts.MaxGroupSize == 0 {
		opts.MaxGroupSize = cfg.Flow.MaxGroupSize
	}
	if opts.Window == 0 {
		opts.Window = cfg.Flow.Window
	}
}
