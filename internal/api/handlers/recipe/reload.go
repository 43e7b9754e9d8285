package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// HandleReload 重新載入所有參考資料檔並原子替換快照。
// 進行中的請求繼續使用舊快照，不受影響
func (h *Handler) HandleReload(c *gin.Context) {
	reqID := requestID(c)

	snap := h.refdata.Reload()

	common.LogInfo("管理端觸發資料重載",
		zap.String("request_id", reqID),
		zap.String("client_ip", c.ClientIP()),
	)
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"recipes":      len(snap.Recipes),
		"nutrition":    snap.Nutrition.Len(),
		"substitutes":  snap.Substitutes.Len(),
		"local_dishes": len(snap.LocalDishes),
		"loaded_at":    snap.LoadedAt,
	})
}
