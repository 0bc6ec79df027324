package cache

import (
	"context"
	"strings"
	"time"
)

// Open returns the cache named by target:
//
//   - "" or "none": a [NullCache]
//   - "redis://..." or "rediss://...": a [RedisCache]
//   - "mongodb://..." or "mongodb+srv://...": a [MongoCache]
//   - anything else: a [FileCache] rooted at that directory
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "" || target == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return NewRedisCache(ctx, target)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		return NewMongoCache(ctx, target)
	default:
		return NewFileCache(target)
	}
}

// NullCache is the "none" target: Set discards and Get always misses.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Clear(context.Context) error                              { return nil }
func (*NullCache) Close() error                                             { return nil }

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)
