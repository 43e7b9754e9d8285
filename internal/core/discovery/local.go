// Package discovery 提供地方特色菜的查詢。
package discovery

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Dish 一道地方特色菜
type Dish struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// LoadDishes 從 JSON 載入地方菜清單。
// 檔案缺失或格式錯誤時退化為空清單並記錄。
func LoadDishes(path string) []Dish {
	data, err := os.ReadFile(path)
	if err != nil {
		common.LogError("地方菜資料載入失敗", zap.String("path", path), zap.Error(err))
		return nil
	}

	var dishes []Dish
	if err := common.ParseJSONBytes(data, &dishes); err != nil {
		common.LogError("地方菜資料格式錯誤", zap.String("path", path), zap.Error(err))
		return nil
	}

	common.LogInfo("地方菜資料載入完成",
		zap.String("path", path),
		zap.Int("筆數", len(dishes)),
	)
	return dishes
}

// ByLocation 篩選指定地區的菜色，地區名稱比對不分大小寫並忽略前後空白
func ByLocation(dishes []Dish, location string) []Dish {
	want := strings.ToLower(strings.TrimSpace(location))

	out := make([]Dish, 0)
	for _, d := range dishes {
		if strings.ToLower(strings.TrimSpace(d.Location)) == want {
			out = append(out, d)
		}
	}
	return out
}
