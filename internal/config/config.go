// Package config loads pokedex settings from the environment.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/Sternrassler/pokedex/pkg/cache"
	"github.com/Sternrassler/pokedex/pkg/client"
	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/pokeapi"
	"github.com/Sternrassler/pokedex/pkg/ratelimit"
)

// EnvPrefix is prepended to every key, e.g. POKEDEX_BASE_URL.
const EnvPrefix = "POKEDEX"

// DefaultUserAgent identifies the binary to PokeAPI.
const DefaultUserAgent = "pokedex/0.1.0 (+https://github.com/Sternrassler/pokedex)"

// Keys shared by viper, the environment and the CLI flags.
const (
	KeyBaseURL     = "base_url"
	KeyUserAgent   = "user_agent"
	KeyRedisAddr   = "redis_addr"
	KeyLogLevel    = "log_level"
	KeyLogPretty   = "log_pretty"
	KeyRateLimit   = "rate_limit"
	KeyBurst       = "burst"
	KeyTimeout     = "timeout"
	KeyCacheMaxTTL = "cache_max_ttl"
	KeyAddr        = "addr"
)

// Config holds the settings of the pokedex binary.
type Config struct {
	BaseURL   string
	UserAgent string

	// RedisAddr enables the response cache when set.
	RedisAddr string

	LogLevel  logging.LogLevel
	LogPretty bool

	RateLimit   float64
	Burst       int
	Timeout     time.Duration
	CacheMaxTTL time.Duration

	// Addr is the listen address of `pokedex serve`.
	Addr string
}

// New returns a viper instance with defaults and environment binding.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBaseURL, pokeapi.DefaultBaseURL)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyLogLevel, string(logging.LevelInfo))
	v.SetDefault(KeyLogPretty, false)
	v.SetDefault(KeyRateLimit, ratelimit.DefaultRequestsPerSecond)
	v.SetDefault(KeyBurst, ratelimit.DefaultBurst)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyCacheMaxTTL, cache.DefaultMaxTTL)
	v.SetDefault(KeyAddr, ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load builds and validates a Config.
// Priority: bound flags, POKEDEX_* environment variables, defaults.
func Load(v *viper.Viper) (*Config, error) {
	level, err := logging.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:     strings.TrimSpace(v.GetString(KeyBaseURL)),
		UserAgent:   strings.TrimSpace(v.GetString(KeyUserAgent)),
		RedisAddr:   strings.TrimSpace(v.GetString(KeyRedisAddr)),
		LogLevel:    level,
		LogPretty:   v.GetBool(KeyLogPretty),
		RateLimit:   v.GetFloat64(KeyRateLimit),
		Burst:       v.GetInt(KeyBurst),
		Timeout:     v.GetDuration(KeyTimeout),
		CacheMaxTTL: v.GetDuration(KeyCacheMaxTTL),
		Addr:        v.GetString(KeyAddr),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", KeyBaseURL)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("%s must not be empty", KeyUserAgent)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("%s must be > 0 (got %v)", KeyRateLimit, c.RateLimit)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("%s must be > 0 (got %d)", KeyBurst, c.Burst)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s must be >= 0 (got %s)", KeyTimeout, c.Timeout)
	}
	return nil
}

// Logging returns the logger configuration writing to out.
func (c *Config) Logging(out io.Writer) logging.Config {
	return logging.Config{
		Level:  c.LogLevel,
		Pretty: c.LogPretty,
		Output: out,
	}
}

// Client returns the PokeAPI client configuration. rdb may be nil.
func (c *Config) Client(rdb *redis.Client) client.Config {
	cfg := client.DefaultConfig(c.UserAgent)
	cfg.BaseURL = c.BaseURL
	cfg.Redis = rdb
	cfg.CacheMaxTTL = c.CacheMaxTTL
	cfg.RateLimit = c.RateLimit
	cfg.Burst = c.Burst
	cfg.Timeout = c.Timeout
	return cfg
}
