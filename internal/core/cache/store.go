// Package cache 提供 OCR 與推薦結果的快取層，
// 支援記憶體與 Redis 兩種後端。
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
)

// Store 快取後端介面
type Store interface {
	// Get 依鍵取值，第二個回傳值表示是否命中
	Get(ctx context.Context, key string) (string, bool)
	// Set 寫入快取值，逾期時間由後端設定決定
	Set(ctx context.Context, key, value string) error
	// Stats 回傳後端統計資訊
	Stats() map[string]interface{}
	// Close 釋放後端資源
	Close() error
}

// Key 以 SHA-256 合成快取鍵，避免原始內容（如圖片）進入鍵空間
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// NewStore 依設定建立快取後端。
// 快取停用時回傳 nil，呼叫端以 nil 判斷略過快取。
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return NewMemoryStore(cfg), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
