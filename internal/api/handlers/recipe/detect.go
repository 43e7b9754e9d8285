package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// DetectRequest 冰箱照片偵測請求
type DetectRequest struct {
	Image string `json:"image" binding:"required"`
}

// HandleDetectFridge 從冰箱照片偵測現有食材
func (h *Handler) HandleDetectFridge(c *gin.Context) {
	reqID := requestID(c)

	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ingredients, err := h.detector.DetectIngredients(c.Request.Context(), req.Image)
	if err != nil {
		common.LogError("冰箱食材偵測失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("image_type", getImageType(req.Image)),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
