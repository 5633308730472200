// Package cache provides the byte-level caches and key scheme used to skip
// repeated work between spritesheet runs.
//
// Two things are cached:
//
//   - Trim margins per image, keyed by the image's pixel hash and the
//     color tolerance. Trimming is the only stage that reads pixels, so
//     this turns a re-run over unchanged inputs into pure geometry.
//   - Complete layouts, keyed by a hash of every sprite's identity and
//     size plus the layout options.
//
// Backends are interchangeable: [FileCache] for the CLI, [RedisCache] for
// the layout service, and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	TTLTrim   = 7 * 24 * time.Hour
	TTLLayout = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// A miss is reported as (nil, false, nil), not as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they hold.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
