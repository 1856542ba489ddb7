// Package config loads the admin shell configuration from a YAML file and
// ADMINSHELL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// ADMINSHELL_STATE_BACKEND=redis.
const EnvPrefix = "ADMINSHELL"

// State backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the shell configuration.
type Config struct {
	Language         string        `mapstructure:"language"`
	FallbackLanguage string        `mapstructure:"fallback_language"`
	Log              LogConfig     `mapstructure:"log"`
	State            StateConfig   `mapstructure:"state"`
	Plugins          PluginsConfig `mapstructure:"plugins"`
	Batch            BatchConfig   `mapstructure:"batch"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// StateConfig selects where activation flags are persisted.
type StateConfig struct {
	Backend string       `mapstructure:"backend"`
	File    string       `mapstructure:"file"`
	Redis   RedisConfig  `mapstructure:"redis"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	DSN string `mapstructure:"dsn"`
}

// PluginsConfig locates extra plugin manifests.
type PluginsConfig struct {
	ManifestsDir string `mapstructure:"manifests_dir"`
}

// BatchConfig bounds batch enable/disable.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("fallback_language", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("state.backend", BackendFile)
	v.SetDefault("state.file", defaultStateFile())
	v.SetDefault("state.redis.addr", "localhost:6379")
	v.SetDefault("state.redis.password", "")
	v.SetDefault("state.redis.db", 0)
	v.SetDefault("state.redis.key", "adminshell:plugin-state")
	v.SetDefault("state.sqlite.dsn", "adminshell.db")
	v.SetDefault("plugins.manifests_dir", "")
	v.SetDefault("batch.concurrency", 4)
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plugin-state.json"
	}
	return filepath.Join(dir, "adminshell", "plugin-state.json")
}

// Load reads path (or, when empty, adminshell.yaml from the working
// directory or the user config directory), applies environment overrides
// and validates the result. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("adminshell")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "adminshell"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
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

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	for _, l := range []string{c.Language, c.FallbackLanguage} {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrInvalid, l, err)
		}
	}

	c.State.Backend = strings.ToLower(strings.TrimSpace(c.State.Backend))
	switch c.State.Backend {
	case BackendFile:
		if c.State.File == "" {
			return fmt.Errorf("%w: state.file is required for the file backend", ErrInvalid)
		}
	case BackendRedis:
		if c.State.Redis.Addr == "" {
			return fmt.Errorf("%w: state.redis.addr is required for the redis backend", ErrInvalid)
		}
	case BackendSQLite:
		if c.State.SQLite.DSN == "" {
			return fmt.Errorf("%w: state.sqlite.dsn is required for the sqlite backend", ErrInvalid)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown state.backend %q", ErrInvalid, c.State.Backend)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("%w: batch.concurrency must be at least 1", ErrInvalid)
	}
	return nil
}
