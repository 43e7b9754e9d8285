package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// OCRRequest 圖片轉食材請求，image 接受 data URI、裸 base64 或 URL
type OCRRequest struct {
	Image string   `json:"image,omitempty"`
	URL   string   `json:"image_url,omitempty"`
	Known []string `json:"known,omitempty"`
}

// HandleOCRIngredients 從購物收據或食材照片萃取食材清單
func (h *Handler) HandleOCRIngredients(c *gin.Context) {
	reqID := requestID(c)

	var req OCRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	imageData := req.Image
	if imageData == "" {
		imageData = req.URL
	}
	if imageData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image or image_url is required"})
		return
	}

	common.LogInfo("開始處理圖片食材萃取",
		zap.String("request_id", reqID),
		zap.String("image_type", getImageType(imageData)),
		zap.String("client_ip", c.ClientIP()),
	)

	processed, err := h.images.ProcessImage(c.Request.Context(), imageData)
	if err != nil {
		common.LogError("圖片處理失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		respondError(c, err)
		return
	}

	// 語料中的食材名稱與請求附帶的詞彙一起餵給解析器
	known := append([]string{}, h.refdata.Snapshot().Known...)
	known = append(known, req.Known...)

	result, err := h.ocr.ImageToIngredients(c.Request.Context(), processed, known, reqID)
	if err != nil {
		common.LogError("圖片食材萃取失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
