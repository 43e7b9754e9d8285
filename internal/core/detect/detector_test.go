package detect

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagesvc "github.com/shreyadesai75/CulinaLens/internal/core/image"
)

func testImage(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDetectIngredients(t *testing.T) {
	d := NewDetector(imagesvc.NewService(1 << 20))

	labels, err := d.DetectIngredients(context.Background(), testImage(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"eggs", "milk", "spinach", "lettuce"}, labels)
}

func TestDetectIngredientsInvalidImage(t *testing.T) {
	d := NewDetector(imagesvc.NewService(1 << 20))

	_, err := d.DetectIngredients(context.Background(), "not an image at all")
	assert.Error(t, err)
}
