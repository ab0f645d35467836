package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a minimal in-process Cache for loader tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) { return 0, nil }
func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}
func (m *memoryCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (m *memoryCache) TTL(_ context.Context, _ string) (time.Duration, error)   { return 0, nil }
func (m *memoryCache) Ping(_ context.Context) error                             { return nil }

func TestGetOrSetMissThenHit(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(newMemoryCache(), "cosmere", time.Minute)
	calls := 0

	produce := func(ctx context.Context) (string, error) {
		calls++
		return "roshar", nil
	}

	got, err := GetOrSet(ctx, loader, "cosmere:worlds:k1", produce)
	require.NoError(t, err)
	assert.Equal(t, "roshar", got)
	assert.Equal(t, 1, calls)

	// Second read is served from cache.
	got, err = GetOrSet(ctx, loader, "cosmere:worlds:k1", produce)
	require.NoError(t, err)
	assert.Equal(t, "roshar", got)
	assert.Equal(t, 1, calls)
}

func TestGetOrSetProducerError(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(newMemoryCache(), "cosmere", time.Minute)
	boom := errors.New("store down")

	_, err := GetOrSet(ctx, loader, "cosmere:worlds:k2", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	// Failure must not be cached.
	got, err := GetOrSet(ctx, loader, "cosmere:worlds:k2", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestGetOrSetNilLoader(t *testing.T) {
	got, err := GetOrSet(context.Background(), nil, "", func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got)
}

func TestInvalidateDropsScope(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryCache()
	loader := NewLoader(mem, "cosmere", time.Minute)

	require.NoError(t, mem.Set(ctx, "cosmere:worlds:a", "1", 0))
	require.NoError(t, mem.Set(ctx, "cosmere:worlds:b", "2", 0))
	require.NoError(t, mem.Set(ctx, "cosmere:books:c", "3", 0))

	loader.Invalidate(ctx, "worlds")

	exists, _ := mem.Exists(ctx, "cosmere:worlds:a")
	assert.False(t, exists)
	exists, _ = mem.Exists(ctx, "cosmere:books:c")
	assert.True(t, exists, "other scopes must survive invalidation")
}

func TestGetOrSetCollapsesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(newMemoryCache(), "cosmere", time.Minute)

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})

	produce := func(ctx context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := GetOrSet(ctx, loader, "cosmere:worlds:flight", produce)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	// Give the goroutines time to pile onto the same flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
	mu.Lock()
	assert.Equal(t, 1, calls, "concurrent misses should share one producer call")
	mu.Unlock()
}
