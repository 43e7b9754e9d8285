package profile

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	return NewStore(path), path
}

func TestAddFavorite(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddFavorite("Paneer Butter Masala", "family favourite", 5)
	s.AddFavorite("Omelette", "", 0)

	favs := s.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, "Omelette", favs[0].Title, "newest favorite is on top")
	assert.Equal(t, "Paneer Butter Masala", favs[1].Title)
	assert.NotEmpty(t, favs[1].AddedOn)
}

func TestAddFavoriteReplacesSameTitle(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddFavorite("Omelette", "old note", 3)
	s.AddFavorite("omelette", "new note", 5)

	favs := s.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "new note", favs[0].Note)
	assert.Equal(t, 5, favs[0].Rating)
}

func TestRemoveFavorite(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddFavorite("Omelette", "", 0)

	assert.True(t, s.RemoveFavorite("OMELETTE"))
	assert.Empty(t, s.Favorites())
	assert.False(t, s.RemoveFavorite("Omelette"), "second removal finds nothing")
}

func TestRecordViewDedupAndOrder(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordView("Omelette")
	s.RecordView("Salad")
	s.RecordView("Omelette")

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "Omelette", history[0].Title, "revisits move the entry back to the top")
	assert.Equal(t, "Salad", history[1].Title)
}

func TestRecordViewCap(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < historyLimit+10; i++ {
		s.RecordView(fmt.Sprintf("Recipe %d", i))
	}

	history := s.History()
	assert.Len(t, history, historyLimit)
	assert.Equal(t, fmt.Sprintf("Recipe %d", historyLimit+9), history[0].Title)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	s.AddFavorite("Omelette", "note", 4)
	s.RecordView("Salad")

	reloaded := NewStore(path)
	favs := reloaded.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, "Omelette", favs[0].Title)
	assert.Equal(t, 4, favs[0].Rating)

	history := reloaded.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Salad", history[0].Title)
}
