// Package ocr 將圖片轉為文字、再從文字萃取食材清單。
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
)

// Engine 文字辨識引擎介面
type Engine interface {
	// ExtractText 從圖片資料（base64 或 data URI）辨識文字
	ExtractText(ctx context.Context, imageData string) (string, error)
}

// RemoteEngine 透過 HTTP 呼叫外部 OCR 服務的引擎
type RemoteEngine struct {
	client *resty.Client
}

// NewRemoteEngine 建立遠端 OCR 引擎
func NewRemoteEngine(cfg *config.Config) *RemoteEngine {
	client := resty.New().
		SetBaseURL(cfg.OCR.Endpoint).
		SetTimeout(cfg.OCR.Timeout)

	if cfg.OCR.APIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OCR.APIKey))
	}

	return &RemoteEngine{client: client}
}

// ExtractText 呼叫遠端服務辨識圖片文字
func (e *RemoteEngine) ExtractText(ctx context.Context, imageData string) (string, error) {
	req := map[string]interface{}{
		"image": imageData,
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/ocr")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OCR service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OCR service returned status %d", resp.StatusCode())
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OCR response: %w", err)
	}

	return result.Text, nil
}
