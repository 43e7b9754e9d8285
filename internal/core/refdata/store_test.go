package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func testPaths(t *testing.T) config.DataConfig {
	dir := t.TempDir()
	return config.DataConfig{
		RecipesPath: writeFile(t, dir, "recipes.json", `[
			{"title": "Omelette", "ingredients": ["Eggs", "Onion"], "steps": ["beat", "fry"]},
			{"title": "Salad", "ingredients": ["onion", "tomato"]}
		]`),
		NutritionPath: writeFile(t, dir, "nutrition.csv",
			"ingredient_name,calories_100g,protein_100g,carbs_100g,fat_100g\nonion,40,1.1,9.3,0.1\n"),
		SubstitutionsPath: writeFile(t, dir, "substitutions.json", `{"butter": ["ghee"]}`),
		LocalDishesPath: writeFile(t, dir, "local_dishes.json",
			`[{"name": "Vada Pav", "location": "Mumbai", "description": "street food"}]`),
	}
}

func TestNewStoreLoadsSnapshot(t *testing.T) {
	store := NewStore(testPaths(t))

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Recipes, 2)
	assert.Equal(t, 1, snap.Nutrition.Len())
	assert.Equal(t, 1, snap.Substitutes.Len())
	assert.Len(t, snap.LocalDishes, 1)
	assert.False(t, snap.LoadedAt.IsZero())

	// Known 是語料食材的去重聯集，保持首次出現順序
	assert.Equal(t, []string{"eggs", "onion", "tomato"}, snap.Known)
}

func TestStoreDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(config.DataConfig{
		RecipesPath:       filepath.Join(dir, "none.json"),
		NutritionPath:     filepath.Join(dir, "none.csv"),
		SubstitutionsPath: filepath.Join(dir, "none.json"),
		LocalDishesPath:   filepath.Join(dir, "none.json"),
	})

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Recipes)
	assert.Equal(t, 0, snap.Nutrition.Len())
	assert.Equal(t, 0, snap.Substitutes.Len())
	assert.Empty(t, snap.LocalDishes)
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	paths := testPaths(t)
	store := NewStore(paths)
	before := store.Snapshot()

	require.NoError(t, os.WriteFile(paths.RecipesPath, []byte(`[
		{"title": "Only One", "ingredients": ["rice"]}
	]`), 0644))

	after := store.Reload()
	assert.Len(t, after.Recipes, 1)
	assert.Len(t, before.Recipes, 2, "old snapshot keeps serving in-flight readers")
	assert.Same(t, after, store.Snapshot())
}
