// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults shared by the CLI and tests.
const (
	// DefaultCacheTTL bounds the age of a cached metadata record.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultGenericTimeout is the hard deadline for fetching a generic web page.
	DefaultGenericTimeout = 5 * time.Second

	// DefaultArxivTimeout is the deadline for one arXiv API query.
	DefaultArxivTimeout = 15 * time.Second

	// DefaultUserAgent identifies the application to upstream servers.
	DefaultUserAgent = "PaperTracker/1.0"

	// DefaultPurgeSchedule is the cron spec for removing expired cache entries.
	DefaultPurgeSchedule = "@every 1h"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the client-wide request timeout. Zero leaves it to the
	// per-request deadlines.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "PaperTracker/1.0").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ResolverConfig holds settings for metadata resolution.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// GenericTimeout is the deadline for fetching a generic URL (default 5s).
	GenericTimeout time.Duration `json:"generic_timeout" yaml:"generic_timeout" mapstructure:"generic_timeout"`

	// ArxivTimeout is the deadline for one arXiv API query (default 15s).
	ArxivTimeout time.Duration `json:"arxiv_timeout" yaml:"arxiv_timeout" mapstructure:"arxiv_timeout"`

	// ArxivMinInterval spaces consecutive arXiv API calls. Zero disables
	// the limiter.
	ArxivMinInterval time.Duration `json:"arxiv_min_interval" yaml:"arxiv_min_interval" mapstructure:"arxiv_min_interval"`
}

// CacheBackend selects the key-value store behind the metadata cache.
type CacheBackend string

const (
	CacheMemory CacheBackend = "memory"
	CacheSQLite CacheBackend = "sqlite"
	CacheBolt   CacheBackend = "bolt"
)

// CacheConfig holds settings for the metadata cache.
type CacheConfig struct {
	// Backend selects the store: memory, sqlite, or bolt.
	Backend CacheBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the database file for the sqlite and bolt backends.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// TTL is how long a resolved record stays cached (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`

	// PurgeSchedule is the cron spec for the expiry janitor (default "@every 1h").
	PurgeSchedule string `json:"purge_schedule" yaml:"purge_schedule" mapstructure:"purge_schedule"`
}

// ServerConfig holds settings for the ingest HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AppName is reported by the health endpoint.
	AppName string `json:"app_name" yaml:"app_name" mapstructure:"app_name"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Env is "prod" for JSON output, anything else for human-readable text.
	Env string `json:"env" yaml:"env" mapstructure:"env"`

	// Level overrides the env-derived level (e.g. "warn").
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all component configurations.
type Config struct {
	Resolver ResolverConfig `json:"resolver" yaml:"resolver" mapstructure:"resolver"`
	Cache    CacheConfig    `json:"cache" yaml:"cache" mapstructure:"cache"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Resolver: ResolverConfig{
			HTTPConfig:     HTTPConfig{UserAgent: DefaultUserAgent},
			GenericTimeout: DefaultGenericTimeout,
			ArxivTimeout:   DefaultArxivTimeout,
		},
		Cache: CacheConfig{
			Backend:       CacheSQLite,
			Path:          ".cache/paper-tracker/metadata.db",
			TTL:           DefaultCacheTTL,
			PurgeSchedule: DefaultPurgeSchedule,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			AppName: "paper-tracker",
		},
		Log: LogConfig{Env: "dev"},
	}
}

// ApplyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Resolver.UserAgent == "" {
		c.Resolver.UserAgent = d.Resolver.UserAgent
	}
	if c.Resolver.GenericTimeout <= 0 {
		c.Resolver.GenericTimeout = d.Resolver.GenericTimeout
	}
	if c.Resolver.ArxivTimeout <= 0 {
		c.Resolver.ArxivTimeout = d.Resolver.ArxivTimeout
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = d.Cache.Backend
	}
	if c.Cache.Path == "" {
		c.Cache.Path = d.Cache.Path
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = d.Cache.TTL
	}
	if c.Cache.PurgeSchedule == "" {
		c.Cache.PurgeSchedule = d.Cache.PurgeSchedule
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.AppName == "" {
		c.Server.AppName = d.Server.AppName
	}
	if c.Log.Env == "" {
		c.Log.Env = d.Log.Env
	}
}
