package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyadesai75/CulinaLens/internal/core/nutrition"
	"github.com/shreyadesai75/CulinaLens/internal/core/substitute"
)

func newTestService() *Service {
	nut := nutrition.NewTable(map[string]nutrition.Record{
		"onion":  {Calories: 40},
		"tomato": {Calories: 18},
		"eggs":   {Calories: 155},
	})
	subs := substitute.NewTable(map[string][]string{
		"butter": {"ghee", "margarine"},
	})
	return NewService(nut, subs)
}

func recipeWith(title string, ings ...string) Recipe {
	return Recipe{
		Title:       title,
		Ingredients: ings,
		Skill:       "intermediate",
		Servings:    1,
	}
}

func TestRankOrdersByScore(t *testing.T) {
	svc := newTestService()
	recipes := []Recipe{
		recipeWith("Partial", "onion", "tomato", "butter", "paneer"),
		recipeWith("Full Match", "onion", "tomato"),
	}

	out := svc.Rank([]string{"onion", "tomato"}, recipes, Preferences{}, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "Full Match", out[0].Title)
	assert.InDelta(t, 1.0, out[0].MatchRatio, 1e-9)
	assert.Greater(t, out[0].Score, out[1].Score)
}

func TestRankMissingPenaltyMonotonic(t *testing.T) {
	svc := newTestService()
	// B 的缺料集合是 A 的真子集，其餘條件相同，B 的分數不得低於 A
	recipes := []Recipe{
		recipeWith("A", "onion", "tomato", "butter", "paneer"),
		recipeWith("B", "onion", "tomato", "butter"),
	}

	out := svc.Rank([]string{"onion", "tomato"}, recipes, Preferences{}, 10)
	require.Len(t, out, 2)

	var scoreA, scoreB float64
	for _, r := range out {
		switch r.Title {
		case "A":
			scoreA = r.Score
		case "B":
			scoreB = r.Score
		}
	}
	assert.GreaterOrEqual(t, scoreB, scoreA)
}

func TestRankAllergyHardFilter(t *testing.T) {
	svc := newTestService()
	recipes := []Recipe{
		recipeWith("Peanut Dish", "peanut butter", "onion"),
		recipeWith("Safe Dish", "onion", "tomato"),
	}

	out := svc.Rank([]string{"onion", "tomato", "peanut butter"}, recipes, Preferences{
		Allergies: []string{"peanut"},
	}, 10)

	require.Len(t, out, 1)
	assert.Equal(t, "Safe Dish", out[0].Title, "allergen substring excludes the recipe regardless of score")
}

func TestRankTopNTruncation(t *testing.T) {
	svc := newTestService()
	recipes := []Recipe{
		recipeWith("R1", "onion"),
		recipeWith("R2", "onion"),
		recipeWith("R3", "onion"),
		recipeWith("R4", "onion"),
		recipeWith("R5", "onion"),
	}

	out := svc.Rank([]string{"onion"}, recipes, Preferences{}, 2)
	assert.Len(t, out, 2)
}

func TestRankScoreWeights(t *testing.T) {
	svc := newTestService()
	recipes := []Recipe{recipeWith("Exact", "onion", "tomato")}

	out := svc.Rank([]string{"onion", "tomato"}, recipes, Preferences{}, 10)
	require.Len(t, out, 1)
	// 全命中且無偏好：0.55 + 0.12 + 0.08 + 0.08 + 0.05 + 0.02 - 0
	assert.InDelta(t, 0.90, out[0].Score, 1e-9)
}

func TestRankCuisinePreference(t *testing.T) {
	svc := newTestService()
	indian := recipeWith("Indian", "onion")
	indian.Cuisine = "indian"
	italian := recipeWith("Italian", "onion")
	italian.Cuisine = "italian"

	out := svc.Rank([]string{"onion"}, []Recipe{indian, italian}, Preferences{Cuisine: "Indian"}, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "Indian", out[0].Title)
	assert.InDelta(t, weightCuisine, out[0].Score-out[1].Score, 1e-9)
}

func TestRankTimeFit(t *testing.T) {
	svc := newTestService()
	quick := recipeWith("Quick", "onion")
	quick.TimeMinutes = 20
	slow := recipeWith("Slow", "onion")
	slow.TimeMinutes = 60

	out := svc.Rank([]string{"onion"}, []Recipe{quick, slow}, Preferences{MaxTime: 30}, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "Quick", out[0].Title)

	// Slow 超時 30 分鐘，time score = 1 - 30/30 = 0
	assert.InDelta(t, weightTime, out[0].Score-out[1].Score, 1e-9)
}

func TestRankSkillFit(t *testing.T) {
	svc := newTestService()
	expert := recipeWith("Expert Dish", "onion")
	expert.Skill = "expert"

	out := svc.Rank([]string{"onion"}, []Recipe{expert}, Preferences{SkillLevel: "beginner"}, 10)
	require.Len(t, out, 1)
	// 使用者等級 1、食譜等級 3，skill score = 1/3
	expected := weightIngredient + weightCuisine + weightTaste + weightDiet + weightTime + weightSkill/3.0
	assert.InDelta(t, expected, out[0].Score, 1e-9)
}

func TestRankEnrichment(t *testing.T) {
	svc := newTestService()
	r := recipeWith("Omelette", "eggs", "onion", "butter")
	r.Servings = 2

	out := svc.Rank([]string{"eggs", "onion", "ghee"}, []Recipe{r}, Preferences{}, 10)
	require.Len(t, out, 1)

	// eggs 155 + onion 40，butter 不在營養表中被跳過；除以 2 份
	assert.InDelta(t, 97.5, out[0].Nutrition.Calories, 1e-9)

	require.Contains(t, out[0].Substitutes, "butter")
	assert.Equal(t, []string{"ghee"}, out[0].Substitutes["butter"], "available substitute is preferred")
}

func TestRankStableTieOrder(t *testing.T) {
	svc := newTestService()
	recipes := []Recipe{
		recipeWith("First", "onion"),
		recipeWith("Second", "onion"),
	}

	out := svc.Rank([]string{"onion"}, recipes, Preferences{}, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title, "ties keep corpus order")
	assert.Equal(t, "Second", out[1].Title)
}

func TestMatchByThreshold(t *testing.T) {
	svc := newTestService()
	five := recipeWith("FiveIngredients", "a", "b", "c", "d", "e")

	t.Run("ratio at threshold is included", func(t *testing.T) {
		out := svc.MatchByThreshold([]string{"a", "b", "c"}, []Recipe{five}, DefaultMatchThreshold)
		require.Len(t, out, 1)
		assert.InDelta(t, 0.6, out[0].MatchRatio, 1e-9)
		assert.Equal(t, 3, out[0].MatchCount)
	})

	t.Run("ratio below threshold is excluded", func(t *testing.T) {
		out := svc.MatchByThreshold([]string{"a", "b"}, []Recipe{five}, DefaultMatchThreshold)
		assert.Empty(t, out)
	})

	t.Run("sorted by ratio then count", func(t *testing.T) {
		small := recipeWith("Small", "a", "b")
		big := recipeWith("Big", "a", "b", "c")
		out := svc.MatchByThreshold([]string{"a", "b", "c"}, []Recipe{small, big}, 0.5)
		require.Len(t, out, 2)
		assert.Equal(t, "Big", out[0].Title, "equal ratio breaks ties on match count")
		assert.Equal(t, "Small", out[1].Title)
	})
}
