// Package config loads application configuration.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults
//  2. a TOML file (default ~/.config/buoy/config.toml)
//  3. BUOY_* environment variables
//
// A .env file in the working directory is loaded into the environment
// first, so local development setups can keep credentials out of the
// shell profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/swellwatch/buoy/pkg/errors"
	"github.com/swellwatch/buoy/pkg/ndbc"
	"github.com/swellwatch/buoy/pkg/publish"
)

// Duration wraps time.Duration for TOML decoding ("1h", "30m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML values.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// CacheConfig configures the HTTP response cache.
type CacheConfig struct {
	// Backend selects the cache: "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the default.
	Dir string `toml:"dir"`

	// TTL is how long cached pages stay fresh.
	TTL Duration `toml:"ttl"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ArchiveConfig configures local observation storage.
type ArchiveConfig struct {
	// Backend selects the archive: "file" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the file archive directory. Empty means the default.
	Dir string `toml:"dir"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// PublishConfig configures S3 publishing. Credentials come from the
// AWS_ACCESS_KEY and AWS_SECRET_KEY environment variables, never from
// the config file.
type PublishConfig struct {
	Endpoint string `toml:"endpoint"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
}

// SyncConfig configures fleet collection runs.
type SyncConfig struct {
	// Workers bounds concurrent station fetches.
	Workers int `toml:"workers"`
}

// Config is the full application configuration.
type Config struct {
	// BaseURL overrides the NDBC site root, mainly for testing.
	BaseURL string `toml:"base_url"`

	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Publish PublishConfig `toml:"publish"`
	Sync    SyncConfig    `toml:"sync"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: ndbc.DefaultBaseURL,
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       Duration{ndbc.DefaultCacheTTL},
			RedisAddr: "localhost:6379",
		},
		Archive: ArchiveConfig{
			Backend:       "file",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "buoy",
		},
		Publish: PublishConfig{
			Endpoint: publish.DefaultEndpoint,
			Region:   publish.DefaultRegion,
			Bucket:   publish.DefaultBucket,
		},
		Sync: SyncConfig{
			Workers: 20,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "buoy", "config.toml"), nil
}

// Load reads configuration from path, layering defaults, file, and
// environment. An empty path uses the default location; a missing file
// at either is not an error.
func Load(path string) (Config, error) {
	// Best effort: a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"failed to parse config file %s", path)
		}
	case os.IsNotExist(err):
		if explicit {
			return cfg, errors.New(errors.ErrCodeInvalidConfig,
				"config file not found: %s", path)
		}
	default:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides config values from BUOY_* environment variables.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("BUOY_BASE_URL", &cfg.BaseURL)
	setString("BUOY_CACHE_BACKEND", &cfg.Cache.Backend)
	setString("BUOY_CACHE_DIR", &cfg.Cache.Dir)
	setString("BUOY_REDIS_ADDR", &cfg.Cache.RedisAddr)
	setString("BUOY_ARCHIVE_BACKEND", &cfg.Archive.Backend)
	setString("BUOY_ARCHIVE_DIR", &cfg.Archive.Dir)
	setString("BUOY_MONGO_URI", &cfg.Archive.MongoURI)
	setString("BUOY_S3_BUCKET", &cfg.Publish.Bucket)
	setString("BUOY_S3_REGION", &cfg.Publish.Region)

	if v := os.Getenv("BUOY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = Duration{d}
		}
	}
}

// validate rejects backend names the application cannot construct.
func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (expected file, redis, or none)", cfg.Cache.Backend)
	}
	switch cfg.Archive.Backend {
	case "file", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown archive backend %q (expected file or mongo)", cfg.Archive.Backend)
	}
	return nil
}
