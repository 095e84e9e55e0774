package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/swellwatch/buoy/pkg/archive"
	"github.com/swellwatch/buoy/pkg/cache"
	"github.com/swellwatch/buoy/pkg/config"
	"github.com/swellwatch/buoy/pkg/ndbc"
)

// appName is the application name used for directories and display.
const appName = "buoy"

// configKey is the context key for storing the loaded configuration.
const configKey ctxKey = 1

// withConfig returns a new context with the given configuration attached.
func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the configuration from ctx.
// If none is attached, it returns the built-in defaults.
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// newCache builds the HTTP response cache from configuration.
// Falls back to a null cache if the configured backend cannot be created.
func newCache(ctx context.Context, cfg config.Config) cache.Cache {
	logger := loggerFromContext(ctx)
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Warnf("Redis cache unavailable, running uncached: %v", err)
			return cache.NewNullCache()
		}
		return c
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache()
			}
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warnf("File cache unavailable, running uncached: %v", err)
			return cache.NewNullCache()
		}
		return c
	}
}

// newClient builds an NDBC client from configuration.
func newClient(ctx context.Context, cfg config.Config) *ndbc.Client {
	opts := []ndbc.Option{ndbc.WithCacheTTL(cfg.Cache.TTL.Duration)}
	if cfg.BaseURL != "" {
		opts = append(opts, ndbc.WithBaseURL(cfg.BaseURL))
	}
	return ndbc.NewClient(newCache(ctx, cfg), opts...)
}

// newArchive builds the observation archive from configuration.
func newArchive(ctx context.Context, cfg config.Config) (archive.Store, error) {
	if cfg.Archive.Backend == "mongo" {
		return archive.NewMongoStore(ctx, archive.MongoConfig{
			URI:      cfg.Archive.MongoURI,
			Database: cfg.Archive.MongoDatabase,
		})
	}
	return archive.NewFileStore(cfg.Archive.Dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/buoy/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
