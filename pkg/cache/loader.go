package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jeffbulltech/cosmere-api/pkg/logger"
)

// Loader wraps a Cache with read-through semantics. Concurrent misses for
// the same key are collapsed into a single producer invocation.
type Loader struct {
	cache  Cache
	group  singleflight.Group
	Prefix string
	TTL    time.Duration
}

func NewLoader(c Cache, prefix string, ttl time.Duration) *Loader {
	return &Loader{cache: c, Prefix: prefix, TTL: ttl}
}

// Invalidate drops every cached entry under the given name prefix.
// Called after writes so stale list/overview payloads are not served.
func (l *Loader) Invalidate(ctx context.Context, name string) {
	if err := l.cache.DeletePattern(ctx, l.Prefix+":"+name+":*"); err != nil {
		logger.Warn("cache invalidation failed", err)
	}
}

// GetOrSet returns the cached value under key, or runs produce, stores the
// result with the loader's TTL and returns it. Cache failures degrade to
// calling the producer; a value that cannot be serialized is logged and
// treated as a miss on the next read.
func GetOrSet[T any](ctx context.Context, l *Loader, key string, produce func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if l == nil {
		return produce(ctx)
	}

	found, err := l.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("cache read failed", err)
	}
	if found {
		return cached, nil
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		// Re-check after winning the flight: a concurrent caller may have
		// populated the key between our miss and this call.
		var again T
		if found, err := l.cache.Get(ctx, key, &again); err == nil && found {
			return again, nil
		}

		value, err := produce(ctx)
		if err != nil {
			return value, err
		}
		if err := l.cache.Set(ctx, key, value, l.TTL); err != nil {
			logger.Warn("cache write failed", err)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
