package pantry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCategory(t *testing.T) {
	cases := map[string]string{
		"red onion":     "Produce",
		"paneer":        "Dairy & Eggs",
		"chicken thigh": "Meat & Protein",
		"basmati rice":  "Pantry & Dry Goods",
		"garam masala":  "Spices & Seasoning",
		"saffron":       "Other",
	}

	for ingredient, want := range cases {
		assert.Equal(t, want, FindCategory(ingredient), ingredient)
	}
}

func TestFindCategoryFirstMatchWins(t *testing.T) {
	// chili 在 Produce，powder 在 Spices；分類按固定順序比對
	assert.Equal(t, "Produce", FindCategory("chili powder"))
}

func TestGenerate(t *testing.T) {
	list := Generate(
		[]string{"onion", "paneer", "rice"},
		[]string{"tomato", "onion", "saffron"},
	)

	assert.Equal(t, []string{"onion", "tomato"}, list["Produce"], "duplicates collapse, items sorted")
	assert.Equal(t, []string{"paneer"}, list["Dairy & Eggs"])
	assert.Equal(t, []string{"rice"}, list["Pantry & Dry Goods"])
	assert.Equal(t, []string{"saffron"}, list["Other"])
}

func TestStoreAddIngredientsMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping_list_cache.json")
	s := NewStore(path)

	first := s.AddIngredients([]string{"onion", "rice"})
	assert.Equal(t, []string{"onion"}, first["Produce"])

	second := s.AddIngredients([]string{"tomato", "rice"})
	assert.Equal(t, []string{"onion", "tomato"}, second["Produce"])
	assert.Equal(t, []string{"rice"}, second["Pantry & Dry Goods"])
}

func TestStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping_list_cache.json")
	NewStore(path).AddIngredients([]string{"onion"})

	reloaded := NewStore(path)
	assert.Equal(t, []string{"onion"}, reloaded.Current()["Produce"])
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping_list_cache.json")
	s := NewStore(path)
	s.AddIngredients([]string{"onion"})

	s.Clear()
	assert.Empty(t, s.Current())

	require.Empty(t, NewStore(path).Current(), "cleared state persists")
}
