package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReceiptText(t *testing.T) {
	raw := `GROCERY MART
2 kg Onion Rs.50
Tomatoes 1 kg 30.00
Wheat Flour 5kg Rs.210
SUBTOTAL 290.00
TOTAL 290.00`

	// 店名 "grocery mart" 是純字母片語，會被新食材放行規則收進來。
	// 這是已知的誤收行為，門檻策略刻意偏向召回。
	got := ParseToIngredients(raw, nil)
	assert.Equal(t, []string{"grocery mart", "onion", "tomato", "wheat flour"}, got)
}

func TestParseIngredientList(t *testing.T) {
	raw := "- 2 cups wheat flour\n- 1/2 tsp turmeric\n- 3 green chillies, 1 onion"

	got := ParseToIngredients(raw, nil)
	assert.Equal(t, []string{"wheat flour", "turmeric", "green chili", "onion"}, got)
}

func TestParseRegionalSpelling(t *testing.T) {
	got := ParseToIngredients("chilli powder", nil)
	assert.Equal(t, []string{"chili powder"}, got)
}

func TestParseDeduplicatesPreservingOrder(t *testing.T) {
	raw := "onion\ntomato\nonion\ntomato\nonion"
	got := ParseToIngredients(raw, nil)
	assert.Equal(t, []string{"onion", "tomato"}, got)
}

func TestParseFuzzyRecovery(t *testing.T) {
	got := ParseToIngredients("onionn", nil)
	assert.Equal(t, []string{"onion"}, got)
}

func TestParseWithKnownIngredients(t *testing.T) {
	got := ParseToIngredients("panner 200 g", []string{"paneer"})
	assert.Equal(t, []string{"paneer"}, got)
}

func TestParseEmptyAndNoise(t *testing.T) {
	assert.Empty(t, ParseToIngredients("", nil))
	assert.Empty(t, ParseToIngredients("MRP 120.00\nTOTAL 450.00\nCASH", nil))
	assert.Empty(t, ParseToIngredients("!!! ### 123", nil))
}

func TestParserCustomCutoff(t *testing.T) {
	// 門檻拉滿後，單一字母錯字不再被模糊匹配救回；
	// 但 onionn 仍是純字母片語，會以新食材的身分放行。
	p := NewParser(nil, 1.0)
	assert.Equal(t, []string{"onionn"}, p.Parse("onionn"))
}
