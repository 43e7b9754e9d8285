package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/core/suggest"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// SuggestRequest 加權推薦請求
type SuggestRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Taste       string   `json:"taste,omitempty"`
	Diet        string   `json:"diet,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	MaxTime     int      `json:"max_time,omitempty"`
	SkillLevel  string   `json:"skill_level,omitempty"`
	Servings    int      `json:"servings,omitempty"`
	TopN        int      `json:"top_n,omitempty"`
}

// MatchRequest 門檻版推薦請求
type MatchRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Threshold   float64  `json:"threshold,omitempty"`
}

// HandleSuggest 依食材與偏好回傳加權排序的食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	reqID := requestID(c)

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = h.cfg.Suggest.TopN
	}

	prefs := suggest.Preferences{
		Cuisine:    req.Cuisine,
		Taste:      req.Taste,
		Diet:       req.Diet,
		Allergies:  req.Allergies,
		MaxTime:    req.MaxTime,
		SkillLevel: req.SkillLevel,
		Servings:   req.Servings,
	}

	// 同參數的推薦結果直接取快取；資料重載後鍵帶入載入時間而失效
	snap := h.refdata.Snapshot()
	var cacheKey string
	if h.store != nil {
		reqJSON, err := common.ToJSON(req)
		if err == nil {
			cacheKey = cache.Key("suggest", reqJSON, snap.LoadedAt.String())
			if value, ok := h.store.Get(c.Request.Context(), cacheKey); ok {
				common.LogCacheHit("suggest", cacheKey)
				var cached []suggest.ScoredRecipe
				if err := common.ParseJSONBytes([]byte(value), &cached); err == nil {
					c.JSON(http.StatusOK, cached)
					return
				}
			}
		}
	}

	ranked := h.suggester(snap).Rank(req.Ingredients, snap.Recipes, prefs, topN)

	if h.store != nil && cacheKey != "" {
		if value, err := common.ToJSON(ranked); err == nil {
			_ = h.store.Set(c.Request.Context(), cacheKey, value)
		}
	}

	common.LogInfo("食譜推薦完成",
		zap.String("request_id", reqID),
		zap.Int("食材數", len(req.Ingredients)),
		zap.Int("結果數", len(ranked)),
	)
	c.JSON(http.StatusOK, ranked)
}

// HandleMatch 依食材比例門檻回傳符合的食譜
func (h *Handler) HandleMatch(c *gin.Context) {
	reqID := requestID(c)

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = h.cfg.Suggest.MatchThreshold
	}

	snap := h.refdata.Snapshot()
	matches := h.suggester(snap).MatchByThreshold(req.Ingredients, snap.Recipes, threshold)

	common.LogInfo("門檻推薦完成",
		zap.String("request_id", reqID),
		zap.Float64("threshold", threshold),
		zap.Int("結果數", len(matches)),
	)
	c.JSON(http.StatusOK, matches)
}
