package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Cache defines the contract for the key-value cache layer.
// Allows swapping the implementation (Redis, in-memory for tests).
type Cache interface {
	// Get fetches a value and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
}

// Key derives a deterministic cache key from a name and its arguments.
// Arguments are joined in order, keyword pairs sorted, then hashed so keys
// stay bounded regardless of argument size. The readable prefix is kept in
// front of the hash so DeletePattern can invalidate per entity.
func Key(prefix, name string, args ...interface{}) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s:%s", prefix, name, hex.EncodeToString(sum[:]))
}

// KeyFields is like Key but takes named arguments, sorted for determinism.
func KeyFields(prefix, name string, fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("%s:%v", k, fields[k]))
	}
	return Key(prefix, name, args...)
}
