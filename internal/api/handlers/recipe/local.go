package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shreyadesai75/CulinaLens/internal/core/discovery"
)

// 未指定地區時的預設值
const defaultLocation = "Mumbai"

// HandleLocalDishes 回傳指定地區的地方特色菜
func (h *Handler) HandleLocalDishes(c *gin.Context) {
	location := c.DefaultQuery("location", defaultLocation)

	dishes := discovery.ByLocation(h.refdata.Snapshot().LocalDishes, location)

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"dishes":   dishes,
	})
}
