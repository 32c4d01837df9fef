package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sydlexius/lastfm-client/internal/logging"
)

// Cache backends understood by the command line tool.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	LastFM  LastFMConfig   `yaml:"lastfm"`
	Cache   CacheConfig    `yaml:"cache"`
	Logging logging.Config `yaml:"logging"`
}

// LastFMConfig holds API access settings.
type LastFMConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Backend    string        `yaml:"backend"`
	Path       string        `yaml:"path"`
	TTL        time.Duration `yaml:"ttl"`
	MemorySize int           `yaml:"memory_size"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		LastFM: LastFMConfig{
			BaseURL:   "https://ws.audioscrobbler.com/2.0",
			UserAgent: "lastfm-client/1.0",
		},
		Cache: CacheConfig{
			Backend:    BackendSQLite,
			Path:       "./.cache/lastfm/cache.db",
			TTL:        time.Hour,
			MemorySize: 1024,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator supplied
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() error {
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.LastFM.APIKey = v
	}
	if v := os.Getenv("LASTFM_BASE_URL"); v != "" {
		c.LastFM.BaseURL = v
	}
	if v := os.Getenv("LASTFM_USER_AGENT"); v != "" {
		c.LastFM.UserAgent = v
	}
	if v := os.Getenv("LASTFM_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("LASTFM_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("LASTFM_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LASTFM_CACHE_TTL: %w", err)
		}
		c.Cache.TTL = ttl
	}
	if v := os.Getenv("LASTFM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LASTFM_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("LASTFM_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.LastFM.APIKey == "" {
		return fmt.Errorf("api key is required (set LASTFM_API_KEY)")
	}
	c.LastFM.BaseURL = strings.TrimRight(c.LastFM.BaseURL, "/")
	if c.LastFM.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	switch c.Cache.Backend {
	case BackendSQLite, BackendFile:
		if c.Cache.Path == "" {
			return fmt.Errorf("cache path is required for the %s backend", c.Cache.Backend)
		}
	case BackendMemory:
		if c.Cache.MemorySize <= 0 {
			return fmt.Errorf("invalid memory cache size: %d", c.Cache.MemorySize)
		}
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}
