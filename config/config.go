// Package config loads settings from .env, an optional YAML file,
// DEBT_PAYOFF_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"debt-payoff/repository"
	"debt-payoff/service"
)

const EnvPrefix = "DEBT_PAYOFF"

// Plan stores.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

type Config struct {
	Listen         string          `mapstructure:"listen"`
	Store          string          `mapstructure:"store"`
	LogLevel       string          `mapstructure:"log_level"`
	PlansDir       string          `mapstructure:"plans_dir"`
	PassphraseEnv  string          `mapstructure:"passphrase_env"`
	DefaultHorizon int             `mapstructure:"default_horizon"`
	CacheTTL       time.Duration   `mapstructure:"cache_ttl"`
	CacheEntries   int             `mapstructure:"cache_entries"`
	TrustProxy     bool            `mapstructure:"trust_proxy"`
	Redis          RedisConfig     `mapstructure:"redis"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"listen":         "listen",
	"store":          "store",
	"log-level":      "log_level",
	"plans-dir":      "plans_dir",
	"horizon":        "default_horizon",
	"redis-addr":     "redis.addr",
	"redis-password": "redis.password",
	"redis-db":       "redis.db",
	"rate-limit":     "rate_limit.capacity",
	"trust-proxy":    "trust_proxy",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("store", StoreFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("plans_dir", "plans")
	v.SetDefault("passphrase_env", EnvPrefix+"_PASSPHRASE")
	v.SetDefault("default_horizon", service.DefaultHorizonMonths)
	v.SetDefault("cache_ttl", 24*time.Hour)
	v.SetDefault("cache_entries", repository.DefaultMemoryCacheEntries)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.capacity", 60)
	v.SetDefault("rate_limit.window", time.Minute)
}

// Build resolves the configuration. cfgFile may be empty; flags may be nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("store %q needs redis.addr", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.DefaultHorizon < 1 || c.DefaultHorizon > service.MaxHorizonMonths {
		return fmt.Errorf("default_horizon must be between 1 and %d, got %d", service.MaxHorizonMonths, c.DefaultHorizon)
	}
	if c.CacheEntries < 1 {
		return fmt.Errorf("cache_entries must be positive")
	}
	if c.RateLimit.Capacity < 0 {
		return fmt.Errorf("rate_limit.capacity cannot be negative")
	}
	if c.RateLimit.Capacity > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level is the parsed log level. Build has already validated it.
func (c *Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// Passphrase reads the plan-file passphrase from the configured variable.
func (c *Config) Passphrase() string {
	return os.Getenv(c.PassphraseEnv)
}
