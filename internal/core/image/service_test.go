package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestProcessImageDataURI(t *testing.T) {
	svc := NewService(1 << 20)

	out, err := svc.ProcessImage(context.Background(), "data:image/png;base64,"+pngBase64(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"), "output is normalized to a JPEG data URI")

	payload := strings.TrimPrefix(out, "data:image/jpeg;base64,")
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	_, format, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestProcessImageBareBase64(t *testing.T) {
	svc := NewService(1 << 20)

	out, err := svc.ProcessImage(context.Background(), pngBase64(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))
}

func TestValidateImage(t *testing.T) {
	svc := NewService(1 << 20)
	ctx := context.Background()

	assert.NoError(t, svc.ValidateImage(ctx, "data:image/png;base64,"+pngBase64(t)))
	assert.Error(t, svc.ValidateImage(ctx, "data:image/png;base64,not-base64!!"))
	assert.Error(t, svc.ValidateImage(ctx, "data:image/png;base64,extra,comma"))

	// 可解碼的 base64 但不是圖片
	garbage := base64.StdEncoding.EncodeToString([]byte("definitely not an image"))
	assert.Error(t, svc.ValidateImage(ctx, garbage))
}

func TestValidateImageSizeLimit(t *testing.T) {
	svc := NewService(8)

	err := svc.ValidateImage(context.Background(), pngBase64(t))
	assert.Error(t, err, "payload above the byte limit is rejected")
}
