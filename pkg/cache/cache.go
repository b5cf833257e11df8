// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry below a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (serve with --redis)
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from a hash of the input description and the
// options that change the output, so identical requests hit the same entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.DiagramKey(cache.Hash(input), cache.DiagramKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
