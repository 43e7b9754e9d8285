package ocr

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/cache"
	"github.com/shreyadesai75/CulinaLens/internal/core/ingredient"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// 軟性失敗原因：辨識流程本身成功，但沒有可用的產出
const (
	ReasonNoText        = "OCR failed to extract any text from the image."
	ReasonNoIngredients = "No readable ingredients found in the image text."
)

// Result 圖片轉食材的結果。Reason 非空代表軟性失敗：
// 流程已完成但沒有食材可回報。
type Result struct {
	Ingredients []string `json:"ingredients"`
	Reason      string   `json:"reason,omitempty"`
}

// Service 圖片轉食材服務，組合辨識引擎、食材解析與快取
type Service struct {
	engine      Engine
	store       cache.Store
	fuzzyCutoff float64
}

// NewService 建立服務。engine 可為 nil，表示辨識功能未啟用；
// store 可為 nil，表示不使用快取。
func NewService(engine Engine, store cache.Store, fuzzyCutoff float64) *Service {
	return &Service{
		engine:      engine,
		store:       store,
		fuzzyCutoff: fuzzyCutoff,
	}
}

// ImageToIngredients 對圖片執行文字辨識並解析出食材清單。
// known 是本次請求額外認得的食材詞彙。
// 引擎錯誤與空白文字都視為軟性失敗，不回傳 error；
// 只有引擎未設定時回報 ErrOCRServiceError。
func (s *Service) ImageToIngredients(ctx context.Context, imageData string, known []string, requestID string) (*Result, error) {
	if s.engine == nil {
		return nil, common.ErrOCRServiceError
	}

	cacheKey := s.cacheKey(imageData, known)
	if s.store != nil {
		if value, ok := s.store.Get(ctx, cacheKey); ok {
			common.LogCacheHit("ocr", cacheKey)
			if cached, err := decodeResult(value); err == nil {
				return cached, nil
			}
		} else {
			common.LogCacheMiss("ocr", cacheKey)
		}
	}

	start := time.Now()
	text, err := s.engine.ExtractText(ctx, imageData)
	common.LogOCRCall(time.Since(start), err, requestID)

	if err != nil || strings.TrimSpace(text) == "" {
		return &Result{Ingredients: []string{}, Reason: ReasonNoText}, nil
	}

	parser := ingredient.NewParser(known, s.fuzzyCutoff)
	ingredients := parser.Parse(text)
	if len(ingredients) == 0 {
		return &Result{Ingredients: []string{}, Reason: ReasonNoIngredients}, nil
	}

	result := &Result{Ingredients: ingredients}
	if s.store != nil {
		if value, err := common.ToJSON(result); err == nil {
			if err := s.store.Set(ctx, cacheKey, value); err != nil {
				common.LogWarn("OCR 結果快取寫入失敗", zap.Error(err))
			}
		}
	}

	common.LogDebug("圖片食材萃取完成",
		zap.Int("食材數", len(ingredients)),
		zap.String("request_id", requestID),
	)
	return result, nil
}

// cacheKey 以圖片內容與額外詞彙合成快取鍵，詞彙先正規化排序，
// 確保同義請求共用同一份快取
func (s *Service) cacheKey(imageData string, known []string) string {
	words := ingredient.NormalizeAll(known)
	sort.Strings(words)
	return cache.Key("ocr", imageData, strings.Join(words, ","))
}

func decodeResult(value string) (*Result, error) {
	var result Result
	if err := common.ParseJSONBytes([]byte(value), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
