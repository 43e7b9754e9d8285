package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// RedisStore Redis 後端的快取
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	hits   int64
	misses int64
	errors int64
}

// NewRedisStore 建立 Redis 快取並驗證連線
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
		DB:   cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Int("db", cfg.Cache.RedisDB),
	)

	return &RedisStore{
		client: client,
		ttl:    cfg.Cache.TTL,
	}, nil
}

// Get 取得快取值
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, "culinalens:"+key).Result()
	if err != nil {
		if err != redis.Nil {
			atomic.AddInt64(&s.errors, 1)
			common.LogWarn("Redis 讀取失敗", zap.Error(err))
		}
		atomic.AddInt64(&s.misses, 1)
		return "", false
	}

	atomic.AddInt64(&s.hits, 1)
	return value, true
}

// Set 寫入快取值
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, "culinalens:"+key, value, s.ttl).Err(); err != nil {
		atomic.AddInt64(&s.errors, 1)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 回傳快取統計
func (s *RedisStore) Stats() map[string]interface{} {
	hits := atomic.LoadInt64(&s.hits)
	misses := atomic.LoadInt64(&s.misses)

	hitRatio := 0.0
	if hits+misses > 0 {
		hitRatio = float64(hits) / float64(hits+misses)
	}

	return map[string]interface{}{
		"backend":   "redis",
		"hits":      hits,
		"misses":    misses,
		"errors":    atomic.LoadInt64(&s.errors),
		"hit_ratio": hitRatio,
	}
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
