// Package image 負責輸入圖片的取得、驗證與標準化。
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Service 圖片處理服務
type Service struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// fetch 取得原始圖片位元組。接受 http(s) URL、data URI 與裸 base64
func (s *Service) fetch(ctx context.Context, imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageData, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build image request: %w", err)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
		}

		imageBytes, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSizeBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return imageBytes, nil
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.Split(imageData, ",")
		if len(parts) != 2 {
			return nil, common.ErrInvalidImageFormat
		}
		payload = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, common.ErrInvalidImageFormat
	}
	return decoded, nil
}

// decode 驗證大小與格式並解碼圖片
func (s *Service) decode(raw []byte) (image.Image, error) {
	if int64(len(raw)) > s.maxSizeBytes {
		return nil, common.ErrInvalidImageSize
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, common.ErrInvalidImageFormat
	}

	if !isSupportedFormat(format) {
		return nil, common.ErrInvalidImageType
	}
	return img, nil
}

// ProcessImage 取得並標準化圖片：統一轉成 JPEG data URI，
// 下游的辨識引擎與快取鍵因此只需要處理單一格式
func (s *Service) ProcessImage(ctx context.Context, imageData string) (string, error) {
	raw, err := s.fetch(ctx, imageData)
	if err != nil {
		return "", err
	}

	img, err := s.decode(raw)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encodedData := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encodedData), nil
}

// ValidateImage 只驗證圖片可解碼且符合限制，不做轉換
func (s *Service) ValidateImage(ctx context.Context, imageData string) error {
	raw, err := s.fetch(ctx, imageData)
	if err != nil {
		return err
	}
	_, err = s.decode(raw)
	return err
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"jpg":  true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
