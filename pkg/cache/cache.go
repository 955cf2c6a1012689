// Package cache provides byte-level caching for CMS query results, computed
// layouts and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: caches nothing (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for multi-instance deployments
//
// Every backend can be wrapped with [Instrument] to report hits, misses and
// writes to the observability cache hooks.
//
// # Keys
//
// Keys are built by a [Keyer] so that all callers hash the same inputs the
// same way. Use [NewScopedKeyer] to give a CMS project or dataset its own
// namespace.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLQuery bounds how stale CMS content may be.
	TTLQuery = 5 * time.Minute

	// TTLLayout applies to computed layouts. Layouts are pure functions of
	// their key, so this only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG and JSON output.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// Get reports a miss with (nil, false, nil). Errors are reserved for backend
// failures; callers usually treat them as a miss. A ttl of 0 on Set means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                      { return nil }
func (NullCache) Close() error                                              { return nil }

var _ Cache = NullCache{}
