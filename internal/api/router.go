package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/api/handlers/health"
	recipeHandler "github.com/shreyadesai75/CulinaLens/internal/api/handlers/recipe"
	"github.com/shreyadesai75/CulinaLens/internal/api/middleware"
	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/core/detect"
	"github.com/shreyadesai75/CulinaLens/internal/core/image"
	"github.com/shreyadesai75/CulinaLens/internal/core/ocr"
	"github.com/shreyadesai75/CulinaLens/internal/core/pantry"
	"github.com/shreyadesai75/CulinaLens/internal/core/profile"
	"github.com/shreyadesai75/CulinaLens/internal/core/refdata"
	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheStore cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 重複請求去重
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("ocr_enabled", cfg.OCR.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 參考資料
	refdataStore := refdata.NewStore(cfg.Data)

	// 圖片服務與偵測器
	imageService := image.NewService(cfg.Image.MaxSizeBytes)
	detector := detect.NewDetector(imageService)

	// 文字辨識服務，未啟用時引擎為 nil
	var engine ocr.Engine
	if cfg.OCR.Enabled {
		engine = ocr.NewRemoteEngine(cfg)
	}
	ocrService := ocr.NewService(engine, cacheStore, cfg.Suggest.FuzzyCutoff)

	// 使用者資料與購物清單
	profileStore := profile.NewStore(cfg.Data.ProfilePath)
	shoppingStore := pantry.NewStore(cfg.Data.ShoppingListPath)

	handler := recipeHandler.NewHandler(
		cfg,
		refdataStore,
		ocrService,
		imageService,
		detector,
		profileStore,
		shoppingStore,
		cacheStore,
	)

	// 全局中間件：設置超時與服務注入
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("refdata", refdataStore)
		c.Set("cache_store", cacheStore)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 食譜推薦
		api.POST("/suggest", handler.HandleSuggest)
		api.POST("/suggest/match", handler.HandleMatch)
		api.GET("/recipes/:title", handler.HandleRecipeDetail)

		// 圖片入口
		api.POST("/ocr/ingredients", handler.HandleOCRIngredients)
		api.POST("/detect/fridge", handler.HandleDetectFridge)

		// 使用者資料
		api.POST("/favorites", handler.HandleAddFavorite)
		api.GET("/favorites", handler.HandleListFavorites)
		api.DELETE("/favorites/:title", handler.HandleRemoveFavorite)
		api.GET("/history", handler.HandleHistory)

		// 購物清單
		api.POST("/shopping-list", handler.HandleAddToShoppingList)
		api.GET("/shopping-list", handler.HandleGetShoppingList)
		api.DELETE("/shopping-list", handler.HandleClearShoppingList)

		// 地方特色菜
		api.GET("/local-dishes", handler.HandleLocalDishes)

		// 管理端
		api.POST("/admin/reload", handler.HandleReload)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int("食譜數", len(refdataStore.Snapshot().Recipes)),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
