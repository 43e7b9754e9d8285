package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/core/refdata"
	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Data      *DataStatus            `json:"data,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// DataStatus 參考資料狀態
type DataStatus struct {
	Recipes     int       `json:"recipes"`
	Nutrition   int       `json:"nutrition"`
	Substitutes int       `json:"substitutes"`
	LocalDishes int       `json:"local_dishes"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 參考資料狀態
	if value, exists := c.Get("refdata"); exists {
		if store, ok := value.(*refdata.Store); ok {
			snap := store.Snapshot()
			response.Data = &DataStatus{
				Recipes:     len(snap.Recipes),
				Nutrition:   snap.Nutrition.Len(),
				Substitutes: snap.Substitutes.Len(),
				LocalDishes: len(snap.LocalDishes),
				LoadedAt:    snap.LoadedAt,
			}
		}
	}

	// 快取狀態
	if value, exists := c.Get("cache_store"); exists {
		if store, ok := value.(cache.Store); ok && store != nil {
			response.Cache = store.Stats()
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：語料為空視為未就緒
func ReadinessCheck(c *gin.Context) {
	if value, exists := c.Get("refdata"); exists {
		if store, ok := value.(*refdata.Store); ok {
			if len(store.Snapshot().Recipes) == 0 {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"reason": "recipe corpus is empty",
				})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
