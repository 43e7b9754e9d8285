package recipe

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// FavoriteRequest 新增收藏請求
type FavoriteRequest struct {
	Title  string `json:"title" binding:"required"`
	Note   string `json:"note,omitempty"`
	Rating int    `json:"rating,omitempty"`
}

// HandleAddFavorite 收藏一道食譜；重複收藏會以新資料取代舊收藏
func (h *Handler) HandleAddFavorite(c *gin.Context) {
	reqID := requestID(c)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Rating < 0 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	fav := h.profile.AddFavorite(req.Title, req.Note, req.Rating)

	common.LogInfo("已收藏食譜",
		zap.String("title", fav.Title),
		zap.String("request_id", reqID),
	)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("'%s' added to favorites", fav.Title),
	})
}

// HandleListFavorites 回傳收藏清單，新到舊排列
func (h *Handler) HandleListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": h.profile.Favorites()})
}

// HandleRemoveFavorite 依標題移除收藏
func (h *Handler) HandleRemoveFavorite(c *gin.Context) {
	title := c.Param("title")

	if !h.profile.RemoveFavorite(title) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("'%s' removed from favorites", title),
	})
}
