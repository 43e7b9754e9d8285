package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
)

// fakeEngine 回傳固定文字或錯誤的測試引擎
type fakeEngine struct {
	text  string
	err   error
	calls int
}

func (f *fakeEngine) ExtractText(ctx context.Context, imageData string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestImageToIngredients(t *testing.T) {
	engine := &fakeEngine{text: "2 onions, 3 tomatoes\n500g paneer"}
	svc := NewService(engine, nil, 0)

	result, err := svc.ImageToIngredients(context.Background(), "img", nil, "req-1")
	require.NoError(t, err)
	assert.Empty(t, result.Reason)
	assert.Equal(t, []string{"onion", "tomato", "paneer"}, result.Ingredients)
}

func TestImageToIngredientsEngineFailureIsSoft(t *testing.T) {
	engine := &fakeEngine{err: errors.New("connection refused")}
	svc := NewService(engine, nil, 0)

	result, err := svc.ImageToIngredients(context.Background(), "img", nil, "req-1")
	require.NoError(t, err)
	assert.Equal(t, ReasonNoText, result.Reason)
	assert.Empty(t, result.Ingredients)
}

func TestImageToIngredientsBlankTextIsSoft(t *testing.T) {
	engine := &fakeEngine{text: "   \n\t  "}
	svc := NewService(engine, nil, 0)

	result, err := svc.ImageToIngredients(context.Background(), "img", nil, "req-1")
	require.NoError(t, err)
	assert.Equal(t, ReasonNoText, result.Reason)
}

func TestImageToIngredientsNoReadableIngredients(t *testing.T) {
	engine := &fakeEngine{text: "!!! ### 12345"}
	svc := NewService(engine, nil, 0)

	result, err := svc.ImageToIngredients(context.Background(), "img", nil, "req-1")
	require.NoError(t, err)
	assert.Equal(t, ReasonNoIngredients, result.Reason)
	assert.Empty(t, result.Ingredients)
}

func TestImageToIngredientsNilEngine(t *testing.T) {
	svc := NewService(nil, nil, 0)

	_, err := svc.ImageToIngredients(context.Background(), "img", nil, "req-1")
	assert.Error(t, err)
}

func TestImageToIngredientsKnownWords(t *testing.T) {
	engine := &fakeEngine{text: "500g panee"}
	svc := NewService(engine, nil, 0)

	result, err := svc.ImageToIngredients(context.Background(), "img", []string{"Paneer"}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"paneer"}, result.Ingredients)
}

func TestImageToIngredientsCaching(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 10
	cfg.Cache.TTL = time.Minute
	cfg.Cache.CleanupInterval = time.Minute
	store := cache.NewMemoryStore(cfg)
	t.Cleanup(func() { _ = store.Close() })

	engine := &fakeEngine{text: "2 onions"}
	svc := NewService(engine, store, 0)
	ctx := context.Background()

	first, err := svc.ImageToIngredients(ctx, "img", nil, "req-1")
	require.NoError(t, err)

	second, err := svc.ImageToIngredients(ctx, "img", nil, "req-2")
	require.NoError(t, err)

	assert.Equal(t, first.Ingredients, second.Ingredients)
	assert.Equal(t, 1, engine.calls, "second call is served from cache")

	// 不同的額外詞彙不共用快取
	_, err = svc.ImageToIngredients(ctx, "img", []string{"paneer"}, "req-3")
	require.NoError(t, err)
	assert.Equal(t, 2, engine.calls)
}
