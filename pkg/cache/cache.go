// Package cache provides the storage layer for laid-out diagrams and
// rendered artifacts.
//
// # Overview
//
// A [Cache] stores opaque byte slices under string keys with an optional
// TTL. A [Keyer] derives those keys from content hashes and options, so the
// same diagram laid out with the same settings always maps to the same key.
//
// Four backends are provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [MongoCache]: a MongoDB collection with a TTL index, for deployments
//     that already run MongoDB
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
//	k := cache.NewDefaultKeyer()
//	layoutKey := k.LayoutKey(cache.Hash(diagramJSON), opts.LayoutKeyOpts())
//	svgKey := k.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "svg"})
//
// Wrap a keyer with [NewScopedKeyer] to isolate tenants sharing one backend.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// TTLLayout is how long a computed layout stays cached. Layouts are a
	// pure function of their key, so this only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key-value store for serialized pipeline results.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
