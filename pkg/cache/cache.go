// Package cache stores rendered artifacts keyed by a hash of what produced
// them.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//
// Keys come from a [Keyer] so the same tree, bounds and render options
// always map to the same entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLNone     = time.Duration(0) // never expires
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Stats describes a cache's current contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// Sizer is implemented by caches that can report their size.
type Sizer interface {
	Stats(ctx context.Context) (Stats, error)
}
