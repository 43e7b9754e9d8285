// Package recipe 提供食譜推薦相關的 HTTP 處理程序。
package recipe

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/core/detect"
	"github.com/shreyadesai75/CulinaLens/internal/core/image"
	"github.com/shreyadesai75/CulinaLens/internal/core/ocr"
	"github.com/shreyadesai75/CulinaLens/internal/core/pantry"
	"github.com/shreyadesai75/CulinaLens/internal/core/profile"
	"github.com/shreyadesai75/CulinaLens/internal/core/refdata"
	"github.com/shreyadesai75/CulinaLens/internal/core/suggest"
	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Handler 食譜處理程序
type Handler struct {
	cfg      *config.Config
	refdata  *refdata.Store
	ocr      *ocr.Service
	images   *image.Service
	detector *detect.Detector
	profile  *profile.Store
	shopping *pantry.Store
	store    cache.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(
	cfg *config.Config,
	refdataStore *refdata.Store,
	ocrService *ocr.Service,
	imageService *image.Service,
	detector *detect.Detector,
	profileStore *profile.Store,
	shoppingStore *pantry.Store,
	cacheStore cache.Store,
) *Handler {
	return &Handler{
		cfg:      cfg,
		refdata:  refdataStore,
		ocr:      ocrService,
		images:   imageService,
		detector: detector,
		profile:  profileStore,
		shopping: shoppingStore,
		store:    cacheStore,
	}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// suggester 以目前的資料快照建立評分引擎
func (h *Handler) suggester(snap *refdata.Snapshot) *suggest.Service {
	return suggest.NewService(snap.Nutrition, snap.Substitutes)
}

// findRecipe 依標題在快照中找食譜，不分大小寫
func findRecipe(snap *refdata.Snapshot, title string) (*suggest.Recipe, bool) {
	for i := range snap.Recipes {
		if strings.EqualFold(snap.Recipes[i].Title, title) {
			return &snap.Recipes[i], true
		}
	}
	return nil, false
}

// respondError 依錯誤類型回覆對應的狀態碼
func respondError(c *gin.Context, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, gin.H{"error": custom.Message, "code": custom.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// getImageType 獲取圖片類型（用於日誌記錄）
func getImageType(image string) string {
	if image == "" {
		return "empty"
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return "url"
	}
	if strings.HasPrefix(image, "data:image/") {
		parts := strings.Split(image, ";base64,")
		if len(parts) == 2 {
			return "base64_data_uri_" + strings.TrimPrefix(parts[0], "data:image/")
		}
		return "invalid_data_uri"
	}
	if _, err := base64.StdEncoding.DecodeString(image); err == nil {
		return "base64"
	}
	return "unknown_format"
}
