// Package detect 提供冰箱照片的食材偵測。
package detect

import (
	"context"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/image"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// 佔位的偵測結果。
// TODO: 接上真正的物件偵測模型後改為回傳模型輸出
var placeholderLabels = []string{"eggs", "milk", "spinach", "lettuce"}

// Detector 冰箱照片偵測器
type Detector struct {
	images *image.Service
}

// NewDetector 建立偵測器
func NewDetector(images *image.Service) *Detector {
	return &Detector{images: images}
}

// DetectIngredients 驗證圖片後回傳偵測到的食材標籤。
// 圖片無效時回傳錯誤；目前的標籤為固定清單。
func (d *Detector) DetectIngredients(ctx context.Context, imageData string) ([]string, error) {
	if err := d.images.ValidateImage(ctx, imageData); err != nil {
		return nil, err
	}

	labels := make([]string, len(placeholderLabels))
	copy(labels, placeholderLabels)

	common.LogDebug("冰箱食材偵測完成", zap.Int("標籤數", len(labels)))
	return labels, nil
}
