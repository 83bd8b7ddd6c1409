package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// DefaultTTL is how long decoded layouts stay cached unless configured.
const DefaultTTL = 30 * 24 * time.Hour

// Config selects and configures a backend.
type Config struct {
	Backend       string
	Dir           string // file backend
	RedisURL      string
	RedisPrefix   string
	MongoURI      string
	MongoDatabase string
}

// Open creates the backend named by cfg.Backend. An empty name selects the
// file backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: directory not set")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = "kle:"
		}
		return NewRedisCache(ctx, cfg.RedisURL, prefix)
	case BackendMongo:
		db := cfg.MongoDatabase
		if db == "" {
			db = "kle"
		}
		return NewMongoCache(ctx, cfg.MongoURI, db)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
