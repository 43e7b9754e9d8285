package suggest

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/ingredient"
	"github.com/shreyadesai75/CulinaLens/internal/core/nutrition"
	"github.com/shreyadesai75/CulinaLens/internal/core/substitute"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// DefaultMatchThreshold 門檻版推薦的預設比例
const DefaultMatchThreshold = 0.6

// 各評分因子的權重，總分 = 加權和 - 缺料懲罰
const (
	weightIngredient     = 0.55
	weightCuisine        = 0.12
	weightTaste          = 0.08
	weightDiet           = 0.08
	weightTime           = 0.05
	weightSkill          = 0.02
	weightMissingPenalty = 0.20
)

// Service 食譜評分引擎。本身無狀態，參考表以依賴注入傳入，
// 可安全併發使用。
type Service struct {
	nutrition   *nutrition.Table
	substitutes *substitute.Table
}

// NewService 建立評分引擎
func NewService(nutritionTable *nutrition.Table, substituteTable *substitute.Table) *Service {
	if nutritionTable == nil {
		nutritionTable = nutrition.Empty()
	}
	if substituteTable == nil {
		substituteTable = substitute.Empty()
	}
	return &Service{
		nutrition:   nutritionTable,
		substitutes: substituteTable,
	}
}

// skillRank 技能等級排名，未知值視為 intermediate
func skillRank(skill string) int {
	switch strings.ToLower(skill) {
	case "beginner":
		return 1
	case "intermediate":
		return 2
	case "expert":
		return 3
	default:
		return 2
	}
}

// matchSets 計算命中與缺少的食材，皆按字典序排序
func matchSets(userSet map[string]struct{}, recipeIngs map[string]struct{}) (matched, missing []string) {
	for ing := range recipeIngs {
		if _, ok := userSet[ing]; ok {
			matched = append(matched, ing)
		} else {
			missing = append(missing, ing)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

// containsAllergen 只要任何過敏原字串是食譜食材名稱的子字串就算命中
func containsAllergen(allergies map[string]struct{}, recipeIngs map[string]struct{}) bool {
	for allergen := range allergies {
		if allergen == "" {
			continue
		}
		for ing := range recipeIngs {
			if strings.Contains(ing, allergen) {
				return true
			}
		}
	}
	return false
}

// Rank 依使用者食材與偏好為語料庫評分，回傳前 topN 名。
// 過敏原是硬性排除；總分 <= 0 的食譜也會被剔除。
// 排序鍵為 (score, match_ratio, match_count) 遞減，同分保留語料順序。
func (s *Service) Rank(userIngredients []string, recipes []Recipe, prefs Preferences, topN int) []ScoredRecipe {
	prefsCuisine := ingredient.Normalize(prefs.Cuisine)
	prefsTaste := ingredient.Normalize(prefs.Taste)
	prefsDiet := ingredient.Normalize(prefs.Diet)
	prefsAllergies := ingredient.NormalizeSet(prefs.Allergies)
	prefsMaxTime := prefs.MaxTime
	prefsSkill := ingredient.Normalize(prefs.SkillLevel)
	if prefsSkill == "" {
		prefsSkill = "intermediate"
	}

	userSet := ingredient.NormalizeSet(userIngredients)

	out := make([]ScoredRecipe, 0, len(recipes))
	for i := range recipes {
		recipe := &recipes[i]
		recipeIngs := recipe.IngredientSet()

		// 過敏原硬性過濾，不進入評分
		if len(prefsAllergies) > 0 && containsAllergen(prefsAllergies, recipeIngs) {
			continue
		}

		total := len(recipeIngs)
		if total == 0 {
			total = 1
		}
		matched, missing := matchSets(userSet, recipeIngs)
		matchCount := len(matched)
		matchRatio := float64(matchCount) / float64(total)

		cuisineScore := 1.0
		if prefsCuisine != "" && prefsCuisine != recipe.Cuisine {
			cuisineScore = 0.0
		}

		tasteScore := 1.0
		if prefsTaste != "" && !containsString(recipe.TasteTags, prefsTaste) {
			tasteScore = 0.0
		}

		dietScore := 1.0
		if prefsDiet != "" && !containsString(recipe.Diet, prefsDiet) {
			dietScore = 0.0
		}

		// 時間適配：只有同時設定了偏好上限與食譜時間才評分，
		// 超時部分按上限比例線性折減，下限 0
		timeScore := 1.0
		if prefsMaxTime > 0 && recipe.TimeMinutes > 0 {
			overrun := recipe.TimeMinutes - prefsMaxTime
			if overrun < 0 {
				overrun = 0
			}
			maxTime := prefsMaxTime
			if maxTime < 1 {
				maxTime = 1
			}
			timeScore = 1.0 - float64(overrun)/float64(maxTime)
			if timeScore < 0 {
				timeScore = 0
			}
		}

		userRank := skillRank(prefsSkill)
		recipeRank := skillRank(recipe.Skill)
		skillScore := 1.0
		if userRank < recipeRank {
			skillScore = float64(userRank) / float64(recipeRank)
		}

		missingPenalty := float64(len(missing)) / float64(total)

		score := weightIngredient*matchRatio +
			weightCuisine*cuisineScore +
			weightTaste*tasteScore +
			weightDiet*dietScore +
			weightTime*timeScore +
			weightSkill*skillScore -
			weightMissingPenalty*missingPenalty

		if score <= 0 {
			continue
		}

		// 營養與替代建議只為存活的食譜計算
		est := s.nutrition.PerServing(recipe.Ingredients, recipe.Servings)
		subs := s.substitutes.Suggest(missing, userIngredients)

		out = append(out, ScoredRecipe{
			Title:         recipe.Title,
			ImageURL:      recipe.ImageURL,
			Score:         score,
			Matched:       matched,
			Missing:       missing,
			MatchRatio:    matchRatio,
			MatchCount:    matchCount,
			TotalRequired: total,
			Ingredients:   recipe.Ingredients,
			Steps:         recipe.Steps,
			Nutrition:     est.PerServing,
			Substitutes:   subs,
			Meta: RecipeMeta{
				Cuisine:   recipe.Cuisine,
				Diet:      recipe.Diet,
				Time:      recipe.TimeMinutes,
				Skill:     recipe.Skill,
				Servings:  recipe.Servings,
				TasteTags: recipe.TasteTags,
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].MatchRatio != out[j].MatchRatio {
			return out[i].MatchRatio > out[j].MatchRatio
		}
		return out[i].MatchCount > out[j].MatchCount
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}

	common.LogDebug("食譜評分完成",
		zap.Int("語料數", len(recipes)),
		zap.Int("輸出數", len(out)),
	)
	return out
}

// MatchByThreshold 只看食材比例的簡化推薦：
// match_ratio >= threshold 即入選，按 (match_ratio, match_count) 遞減排序。
func (s *Service) MatchByThreshold(userIngredients []string, recipes []Recipe, threshold float64) []Match {
	userSet := ingredient.NormalizeSet(userIngredients)

	out := make([]Match, 0)
	for i := range recipes {
		recipe := &recipes[i]
		recipeIngs := recipe.IngredientSet()
		total := len(recipeIngs)
		if total == 0 {
			continue
		}

		matched, missing := matchSets(userSet, recipeIngs)
		matchCount := len(matched)
		ratio := float64(matchCount) / float64(total)
		if ratio < threshold {
			continue
		}

		out = append(out, Match{
			Title:         recipe.Title,
			ImageURL:      recipe.ImageURL,
			MatchCount:    matchCount,
			TotalRequired: total,
			MatchRatio:    ratio,
			Matched:       matched,
			Missing:       missing,
			Ingredients:   recipe.Ingredients,
			Steps:         recipe.Steps,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchRatio != out[j].MatchRatio {
			return out[i].MatchRatio > out[j].MatchRatio
		}
		return out[i].MatchCount > out[j].MatchCount
	})
	return out
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
