// Package cache stores decoded layouts so repeated decodes of the same raw
// document skip the decoder.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a Redis server, for the decode service
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing, used when caching is disabled
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// A [Keyer] derives cache keys from the hash of the raw document and the
// decode options, so the same document decoded with different options never
// shares an entry. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend failed.
// A zero ttl in Set means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear removes every entry from c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	cl, ok := c.(Clearer)
	if !ok {
		return nil
	}
	return cl.Clear(ctx)
}
