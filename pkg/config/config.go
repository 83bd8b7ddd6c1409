// Package config loads the kle configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/kle/config.toml, falling back
// to ~/.config/kle/config.toml. A missing file is not an error: [Load] returns
// [Default] values. Command-line flags override whatever the file sets.
//
//	log_level = "debug"
//	format = "yaml"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9090"
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/kle/pkg/cache"
	"github.com/matzehuels/kle/pkg/errors"
	kleio "github.com/matzehuels/kle/pkg/io"
)

const (
	appName  = "kle"
	fileName = "config.toml"
)

// Config is the full configuration file.
type Config struct {
	LogLevel    string `toml:"log_level"`
	Format      string `toml:"format"`
	EditorCarry bool   `toml:"editor_carry"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the decoded-layout cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir,omitempty"`
	RedisURL      string        `toml:"redis_url"`
	RedisPrefix   string        `toml:"redis_prefix,omitempty"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// ServerConfig configures the decode API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Format:   kleio.FormatJSON,
		Cache: CacheConfig{
			Backend:       cache.BackendFile,
			TTL:           cache.DefaultTTL,
			RedisURL:      "redis://localhost:6379/0",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "kle",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: errors.MaxDocumentSize,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over the defaults. An empty path means
// [Path]. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config")
	}
	defer f.Close()

	return Read(f)
}

// Read decodes TOML from r over the defaults and validates the result.
// Unknown keys are rejected so typos surface early.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks field values and normalizes format aliases.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log_level %q", c.LogLevel)
	}

	format, err := kleio.NormalizeFormat(c.Format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "format")
	}
	c.Format = format

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	case cache.BackendMongo:
		if err := errors.ValidateURL(c.Cache.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: none, file, redis, mongo)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	return nil
}

// Level returns the parsed log level, or info when unset.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// CacheConfig converts the [cache] table for cache.Open. defaultDir is used
// by the file backend when the file does not set one.
func (c *Config) CacheConfig(defaultDir string) cache.Config {
	dir := c.Cache.Dir
	if dir == "" {
		dir = defaultDir
	}
	return cache.Config{
		Backend:       c.Cache.Backend,
		Dir:           dir,
		RedisURL:      c.Cache.RedisURL,
		RedisPrefix:   c.Cache.RedisPrefix,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
	}
}
