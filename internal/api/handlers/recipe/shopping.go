package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// ShoppingListRequest 依選定食譜產生購物清單的請求
type ShoppingListRequest struct {
	Recipes []string `json:"recipes" binding:"required"`
}

// HandleAddToShoppingList 將選定食譜的食材分類合併進購物清單
func (h *Handler) HandleAddToShoppingList(c *gin.Context) {
	reqID := requestID(c)

	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	snap := h.refdata.Snapshot()

	var ingredientSets [][]string
	for _, title := range req.Recipes {
		if recipe, ok := findRecipe(snap, title); ok {
			ingredientSets = append(ingredientSets, recipe.Ingredients)
		}
	}
	if len(ingredientSets) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No matching recipes found"})
		return
	}

	merged := h.shopping.AddIngredients(ingredientSets...)

	common.LogInfo("購物清單已更新",
		zap.String("request_id", reqID),
		zap.Int("食譜數", len(ingredientSets)),
		zap.Int("分類數", len(merged)),
	)
	c.JSON(http.StatusOK, gin.H{"shopping_list": merged})
}

// HandleGetShoppingList 回傳目前的購物清單
func (h *Handler) HandleGetShoppingList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shopping_list": h.shopping.Current()})
}

// HandleClearShoppingList 清空購物清單
func (h *Handler) HandleClearShoppingList(c *gin.Context) {
	h.shopping.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Shopping list cleared"})
}
