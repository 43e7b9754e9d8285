package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Tomato", "tomato"},
		{"trims whitespace", "tomato ", "tomato"},
		{"collapses inner whitespace", "green   \t chili", "green chili"},
		{"trims edge punctuation", `"onion",`, "onion"},
		{"trims curly quotes", "“butter”", "butter"},
		{"removes zero width characters", "on\u200Bion", "onion"},
		{"converts nbsp to space", "olive\u00A0oil", "olive oil"},
		{"fullwidth digits via nfkc", "１２ eggs", "12 eggs"},
		{"empty input", "", ""},
		{"punctuation only", "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tomato", " green  chili ", "“Olive Oil”", "on\u200Bion", "Rs. 50",
		"", "   ", "ＡＢＣ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", in)
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"Tomato", "", "  ", "Onion "})
	assert.Equal(t, []string{"tomato", "onion"}, got)
}

func TestNormalizeSet(t *testing.T) {
	set := NormalizeSet([]string{"Tomato", "tomato", "ONION"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "tomato")
	assert.Contains(t, set, "onion")
}
