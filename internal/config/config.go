// Package config loads service and CLI configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML
// file, a .env file, then environment variables. Environment variables use
// the PAYOFF_ prefix with dots replaced by underscores
// (PAYOFF_GRID_LOWER_FACTOR); the bare PORT and REDIS_URL are honoured too.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/atmx/payoff-engine/internal/grid"
	"github.com/atmx/payoff-engine/internal/limits"
	"github.com/atmx/payoff-engine/internal/logging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PAYOFF"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheTiered = "tiered" // memory in front of redis
)

// Config holds all configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Grid      GridConfig      `mapstructure:"grid"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Log       logging.Config  `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GridConfig controls the default spot grid.
type GridConfig struct {
	LowerFactor float64 `mapstructure:"lower_factor"`
	UpperFactor float64 `mapstructure:"upper_factor"`
	Step        float64 `mapstructure:"step"`
	Precision   int32   `mapstructure:"precision"`
	MaxPoints   int     `mapstructure:"max_points"`
}

// LimitsConfig holds per-request limits. Zero disables a limit.
type LimitsConfig struct {
	MaxLots       int64   `mapstructure:"max_lots"`
	MaxMultiplier int64   `mapstructure:"max_multiplier"`
	MaxNotional   float64 `mapstructure:"max_notional"`
	MaxPoints     int     `mapstructure:"max_points"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	Cleanup  time.Duration `mapstructure:"cleanup"`
	RedisURL string        `mapstructure:"redis_url"`
}

// RateLimitConfig configures the global token bucket.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// BatchConfig bounds the batch endpoint.
type BatchConfig struct {
	MaxItems    int `mapstructure:"max_items"`
	Concurrency int `mapstructure:"concurrency"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("grid.lower_factor", 0.85)
	v.SetDefault("grid.upper_factor", 1.15)
	v.SetDefault("grid.step", 1.0)
	v.SetDefault("grid.precision", 0)
	v.SetDefault("grid.max_points", 5000)

	v.SetDefault("limits.max_lots", 10000)
	v.SetDefault("limits.max_multiplier", 10_000_000)
	v.SetDefault("limits.max_notional", 0)
	v.SetDefault("limits.max_points", 5000)

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.cleanup", 15*time.Minute)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("batch.max_items", 20)
	v.SetDefault("batch.concurrency", 4)

	def := logging.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.file", def.File)
	v.SetDefault("log.max_size", def.MaxSize)
	v.SetDefault("log.max_backups", def.MaxBackups)
	v.SetDefault("log.max_age", def.MaxAge)
}

// Load reads configuration. file may be empty, in which case payoff.yaml is
// looked up in the working directory and /etc/payoff and skipped when
// absent. envFiles default to ".env"; missing env files are ignored.
func Load(file string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("cache.redis_url", EnvPrefix+"_CACHE_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	} else {
		v.SetConfigName("payoff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/payoff")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects impossible values.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if err := c.Grid.ToGrid().Validate(); err != nil {
		return err
	}
	if c.Limits.MaxNotional < 0 {
		return fmt.Errorf("limits.max_notional must be non-negative")
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis, CacheTiered:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the %s backend", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("invalid cache backend: %s (must be none, memory, redis or tiered)", c.Cache.Backend)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive when enabled")
	}
	if c.Batch.MaxItems < 1 || c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.max_items and batch.concurrency must be at least 1")
	}
	return nil
}

// ToGrid converts the grid section to a grid.Config.
func (g GridConfig) ToGrid() grid.Config {
	return grid.Config{
		LowerFactor: decimal.NewFromFloat(g.LowerFactor),
		UpperFactor: decimal.NewFromFloat(g.UpperFactor),
		Step:        decimal.NewFromFloat(g.Step),
		Precision:   g.Precision,
		MaxPoints:   g.MaxPoints,
	}
}

// Limiter builds the request limiter.
func (l LimitsConfig) Limiter() *limits.Limiter {
	return limits.NewLimiter(l.MaxLots, l.MaxMultiplier, decimal.NewFromFloat(l.MaxNotional), l.MaxPoints)
}
