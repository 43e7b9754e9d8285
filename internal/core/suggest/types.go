// Package suggest 實作多因子加權的食譜推薦引擎。
package suggest

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/ingredient"
	"github.com/shreyadesai75/CulinaLens/internal/core/nutrition"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// 未命名食譜的佔位標題
const untitledRecipe = "Untitled Recipe"

// Recipe 正規化後的食譜，載入後唯讀
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImageURL    string   `json:"image_url"`
	Cuisine     string   `json:"cuisine"`
	Diet        []string `json:"diet"`
	TimeMinutes int      `json:"time"`
	Skill       string   `json:"skill"`
	Servings    int      `json:"servings"`
	TasteTags   []string `json:"taste_tags"`
}

// IngredientSet 回傳食譜食材的集合形式
func (r *Recipe) IngredientSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		set[ing] = struct{}{}
	}
	return set
}

// rawRecipe 對應語料檔的原始欄位，time 與 cook_time 擇一
type rawRecipe struct {
	Title     string        `json:"title"`
	Ings      []string      `json:"ingredients"`
	Steps     []string      `json:"steps"`
	ImageURL  string        `json:"image_url"`
	Cuisine   string        `json:"cuisine"`
	Diet      []string      `json:"diet"`
	Time      *json.Number  `json:"time"`
	CookTime  *json.Number  `json:"cook_time"`
	Skill     string        `json:"skill"`
	Servings  *json.Number  `json:"servings"`
	TasteTags []string      `json:"taste_tags"`
}

func numberToInt(n *json.Number) int {
	if n == nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

// normalizeRecipe 套用預設值並逐欄位正規化
func normalizeRecipe(raw rawRecipe) Recipe {
	title := raw.Title
	if title == "" {
		title = untitledRecipe
	}

	timeMin := numberToInt(raw.Time)
	if raw.Time == nil {
		timeMin = numberToInt(raw.CookTime)
	}

	skill := ingredient.Normalize(raw.Skill)
	if skill == "" {
		skill = "intermediate"
	}

	servings := numberToInt(raw.Servings)
	if servings < 1 {
		servings = 1
	}

	return Recipe{
		Title:       title,
		Ingredients: ingredient.NormalizeAll(raw.Ings),
		Steps:       raw.Steps,
		ImageURL:    raw.ImageURL,
		Cuisine:     ingredient.Normalize(raw.Cuisine),
		Diet:        ingredient.NormalizeAll(raw.Diet),
		TimeMinutes: timeMin,
		Skill:       skill,
		Servings:    servings,
		TasteTags:   ingredient.NormalizeAll(raw.TasteTags),
	}
}

// LoadRecipes 從 JSON 語料載入並正規化全部食譜
func LoadRecipes(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []rawRecipe
	if err := common.ParseJSONBytes(data, &raws); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(raws))
	for _, raw := range raws {
		recipes = append(recipes, normalizeRecipe(raw))
	}

	common.LogInfo("食譜語料載入完成",
		zap.String("path", path),
		zap.Int("筆數", len(recipes)),
	)
	return recipes, nil
}

// Preferences 單次查詢的偏好條件，不被核心保存
type Preferences struct {
	Cuisine    string   `json:"cuisine"`
	Taste      string   `json:"taste"`
	Diet       string   `json:"diet"`
	Allergies  []string `json:"allergies"`
	MaxTime    int      `json:"max_time"`
	SkillLevel string   `json:"skill_level"`
	Servings   int      `json:"servings"`
}

// RecipeMeta 評分輸出附帶的偏好相關欄位快照
type RecipeMeta struct {
	Cuisine   string   `json:"cuisine"`
	Diet      []string `json:"diet"`
	Time      int      `json:"time"`
	Skill     string   `json:"skill"`
	Servings  int      `json:"servings"`
	TasteTags []string `json:"taste_tags"`
}

// ScoredRecipe 評分後的食譜，僅存在於單次查詢的輸出
type ScoredRecipe struct {
	Title         string              `json:"title"`
	ImageURL      string              `json:"image_url"`
	Score         float64             `json:"score"`
	Matched       []string            `json:"matched"`
	Missing       []string            `json:"missing"`
	MatchRatio    float64             `json:"match_ratio"`
	MatchCount    int                 `json:"match_count"`
	TotalRequired int                 `json:"total_required"`
	Ingredients   []string            `json:"ingredients"`
	Steps         []string            `json:"steps"`
	Nutrition     nutrition.Record    `json:"nutrition"`
	Substitutes   map[string][]string `json:"substitutes"`
	Meta          RecipeMeta          `json:"meta"`
}

// Match 門檻版推薦的輸出，不含偏好加權
type Match struct {
	Title         string   `json:"title"`
	ImageURL      string   `json:"image_url"`
	MatchCount    int      `json:"match_count"`
	TotalRequired int      `json:"total_required"`
	MatchRatio    float64  `json:"match_ratio"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
	Ingredients   []string `json:"ingredients"`
	Steps         []string `json:"steps"`
}
