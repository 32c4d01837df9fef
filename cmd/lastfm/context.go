package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/sydlexius/lastfm-client/cache"
	"github.com/sydlexius/lastfm-client/internal/config"
	"github.com/sydlexius/lastfm-client/internal/logging"
	"github.com/sydlexius/lastfm-client/lastfm"
)

type globalFlags struct {
	configPath string
	noCache    bool
	json       bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// callOptions returns the per-call options implied by the global flags.
func (c *commandContext) callOptions(extra ...lastfm.Option) []lastfm.Option {
	opts := append([]lastfm.Option(nil), extra...)
	if c.flags.noCache {
		opts = append(opts, lastfm.WithoutCache())
	}
	return opts
}

// withClient builds a client from the configuration, starts it, runs fn and
// closes it again.
func (c *commandContext) withClient(ctx context.Context, fn func(context.Context, *lastfm.Client) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, logCloser := logging.New(cfg.Logging)
	defer logCloser.Close() //nolint:errcheck

	store, err := openStore(cfg.Cache)
	if err != nil {
		return err
	}

	client, err := lastfm.New(lastfm.Options{
		APIKey:    cfg.LastFM.APIKey,
		BaseURL:   cfg.LastFM.BaseURL,
		CacheTTL:  cfg.Cache.TTL,
		CachePath: cfg.Cache.Path,
		Store:     store,
		Headers:   http.Header{"User-Agent": {cfg.LastFM.UserAgent}},
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	logger.Debug("client configured",
		slog.String("logging", cfg.Logging.String()),
		slog.String("base_url", cfg.LastFM.BaseURL),
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.Duration("cache_ttl", cfg.Cache.TTL),
		slog.Bool("no_cache", c.flags.noCache),
	)
	return client.Use(ctx, fn)
}

// openStore returns the store for backends the client does not manage
// itself. For the SQLite backend it returns nil and the client opens the
// database at the configured path on Start.
func openStore(cfg config.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		s, err := cache.NewMemoryStore(cfg.MemorySize)
		if err != nil {
			return nil, fmt.Errorf("creating memory cache: %w", err)
		}
		return s, nil
	case config.BackendFile:
		s, err := cache.NewFileStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("creating file cache: %w", err)
		}
		return s, nil
	default:
		return nil, nil
	}
}
