package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// HandleRecipeDetail 依標題回傳食譜全文與每份營養估算，
// 並記入瀏覽紀錄
func (h *Handler) HandleRecipeDetail(c *gin.Context) {
	reqID := requestID(c)
	title := c.Param("title")

	snap := h.refdata.Snapshot()
	recipe, ok := findRecipe(snap, title)
	if !ok {
		common.LogWarn("找不到食譜",
			zap.String("title", title),
			zap.String("request_id", reqID),
		)
		respondError(c, common.ErrRecipeNotFound)
		return
	}

	h.profile.RecordView(recipe.Title)

	est := snap.Nutrition.PerServing(recipe.Ingredients, recipe.Servings)

	c.JSON(http.StatusOK, gin.H{
		"title":       recipe.Title,
		"ingredients": recipe.Ingredients,
		"steps":       recipe.Steps,
		"image_url":   recipe.ImageURL,
		"cuisine":     recipe.Cuisine,
		"diet":        recipe.Diet,
		"time":        recipe.TimeMinutes,
		"skill":       recipe.Skill,
		"servings":    recipe.Servings,
		"taste_tags":  recipe.TasteTags,
		"detailed_nutrition": gin.H{
			"total":       est.Total,
			"per_serving": est.PerServing,
		},
	})
}

// HandleHistory 回傳瀏覽紀錄，新到舊排列
func (h *Handler) HandleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.profile.History()})
}
