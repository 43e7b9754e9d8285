package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// MemoryStore 行程內的 TTL + LRU 快取
type MemoryStore struct {
	maxSize         int
	ttl             time.Duration
	cleanupInterval time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   memoryStats

	stop chan struct{}
	once sync.Once
}

// memoryEntry 快取條目
type memoryEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// memoryStats 快取統計
type memoryStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewMemoryStore 建立記憶體快取並啟動背景清理協程
func NewMemoryStore(cfg *config.Config) *MemoryStore {
	s := &MemoryStore{
		maxSize:         cfg.Cache.MaxSize,
		ttl:             cfg.Cache.TTL,
		cleanupInterval: cfg.Cache.CleanupInterval,
		entries:         make(map[string]memoryEntry),
		stop:            make(chan struct{}),
	}

	go s.runCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", s.maxSize),
		zap.Duration("存活時間", s.ttl),
		zap.Duration("清理間隔", s.cleanupInterval),
	)
	return s
}

// Get 取得快取值，過期條目視為未命中並立即移除
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[key]
	if !exists {
		s.stats.misses++
		common.LogDebug("快取未命中", zap.String("鍵", key))
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		s.stats.evictions++
		s.stats.misses++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", false
	}

	entry.lastAccess = time.Now()
	entry.accessCount++
	s.entries[key] = entry
	s.stats.hits++

	common.LogDebug("快取命中", zap.String("鍵", key))
	return entry.value, true
}

// Set 寫入快取值。容量已滿時先清過期條目，再做 LRU 淘汰，
// 仍然放不下才回報 ErrCacheFull。
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxSize {
		evicted := s.cleanupLocked()
		common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))

		if len(s.entries) >= s.maxSize {
			s.evictLRULocked()
		}

		if len(s.entries) >= s.maxSize {
			s.stats.errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(s.entries)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	s.entries[key] = memoryEntry{
		value:       value,
		expiresAt:   now.Add(s.ttl),
		createdAt:   now,
		lastAccess:  now,
		accessCount: 0,
	}

	common.LogDebug("快取已儲存", zap.String("鍵", key))
	return nil
}

// runCleanup 週期性清理過期條目
func (s *MemoryStore) runCleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			count := s.cleanupLocked()
			s.mu.Unlock()
			if count > 0 {
				common.LogInfo("已清理過期快取", zap.Int("count", count))
			}
		case <-s.stop:
			return
		}
	}
}

// cleanupLocked 清理過期條目，呼叫端須持有寫鎖
func (s *MemoryStore) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			count++
			s.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰訪問次數最少、最久未使用的條目，呼叫端須持有寫鎖
func (s *MemoryStore) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range s.entries {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(s.entries, oldestKey)
		s.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Stats 回傳快取統計
func (s *MemoryStore) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lookups := s.stats.hits + s.stats.misses
	hitRatio := 0.0
	if lookups > 0 {
		hitRatio = float64(s.stats.hits) / float64(lookups)
	}

	return map[string]interface{}{
		"backend":   "memory",
		"size":      len(s.entries),
		"max_size":  s.maxSize,
		"hits":      s.stats.hits,
		"misses":    s.stats.misses,
		"evictions": s.stats.evictions,
		"errors":    s.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close 停止清理協程並清空快取
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)

	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", s.stats.hits),
		zap.Int64("未命中次數", s.stats.misses),
		zap.Int64("淘汰次數", s.stats.evictions),
	)
	return nil
}
