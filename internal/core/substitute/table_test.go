package substitute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestPrefersAvailable(t *testing.T) {
	table := NewTable(map[string][]string{
		"butter": {"ghee", "margarine"},
	})

	out := table.Suggest([]string{"butter"}, []string{"ghee"})
	require.Contains(t, out, "butter")
	assert.Equal(t, []string{"ghee"}, out["butter"], "available substitutes shadow the rest")
}

func TestSuggestFallsBackToCandidates(t *testing.T) {
	table := NewTable(map[string][]string{
		"butter": {"ghee", "margarine"},
	})

	out := table.Suggest([]string{"butter"}, []string{"onion"})
	assert.Equal(t, []string{"ghee", "margarine"}, out["butter"])
}

func TestSuggestUnregisteredIngredient(t *testing.T) {
	table := Empty()

	out := table.Suggest([]string{"saffron"}, nil)
	require.Contains(t, out, "saffron")
	assert.Empty(t, out["saffron"])
}

func TestSuggestNormalizesBothSides(t *testing.T) {
	table := NewTable(map[string][]string{
		"Butter ": {" Ghee", "Margarine"},
	})

	out := table.Suggest([]string{"BUTTER"}, []string{"GHEE "})
	assert.Equal(t, []string{"ghee"}, out["BUTTER"])
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "substitutions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"butter": ["ghee", 42, "margarine"],
		"milk": ["almond milk"]
	}`), 0644))

	table := LoadTable(path)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"ghee", "margarine"}, table.Lookup("butter"), "non-string entries are dropped")
}

func TestLoadTableMissingOrMalformed(t *testing.T) {
	assert.Equal(t, 0, LoadTable(filepath.Join(t.TempDir(), "nope.json")).Len())

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
	assert.Equal(t, 0, LoadTable(path).Len())
}
