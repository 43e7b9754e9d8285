package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
)

func newTestStore(t *testing.T, maxSize int, ttl time.Duration) *MemoryStore {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Backend = "memory"
	cfg.Cache.MaxSize = maxSize
	cfg.Cache.TTL = ttl
	cfg.Cache.CleanupInterval = time.Minute

	s := NewMemoryStore(cfg)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := newTestStore(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "v1"))

	got, ok := s.Get(ctx, "k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", got)

	_, ok = s.Get(ctx, "absent")
	assert.False(t, ok)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	s := newTestStore(t, 10, 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "v1"))
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get(ctx, "k1")
	assert.False(t, ok, "expired entries behave as misses")
}

func TestMemoryStoreLRUEviction(t *testing.T) {
	s := newTestStore(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "old", "v1"))
	require.NoError(t, s.Set(ctx, "hot", "v2"))

	// 提高 hot 的訪問次數，old 成為 LRU 淘汰對象
	_, _ = s.Get(ctx, "hot")

	require.NoError(t, s.Set(ctx, "new", "v3"))

	_, ok := s.Get(ctx, "old")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "new")
	assert.True(t, ok)
}

func TestMemoryStoreStats(t *testing.T) {
	s := newTestStore(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "v1"))
	_, _ = s.Get(ctx, "k1")
	_, _ = s.Get(ctx, "nope")

	stats := s.Stats()
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.InDelta(t, 0.5, stats["hit_ratio"], 1e-9)
}

func TestKeyDeterministic(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("ab"))
	assert.Len(t, Key("anything"), 64)
}

func TestNewStoreFactory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	s, err := NewStore(cfg)
	require.NoError(t, err)
	assert.Nil(t, s, "disabled cache yields a nil store")

	cfg.Cache.Enabled = true
	cfg.Cache.Backend = "carrier-pigeon"
	_, err = NewStore(cfg)
	assert.Error(t, err)
}
