// Package pantry 依食材分類產生並保存購物清單。
package pantry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// 未命中任何分類時的預設分類
const defaultCategory = "Other"

// category 分類與其關鍵字，依序比對、先命中先贏
type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{"Produce", []string{
		"onion", "tomato", "garlic", "ginger", "potato", "spinach",
		"lettuce", "coriander", "parsley", "lemon", "avocado", "chili",
		"carrot", "peas", "apple", "banana", "orange", "grapes", "capsicum",
	}},
	{"Dairy & Eggs", []string{
		"eggs", "milk", "cheese", "butter", "yogurt", "cream", "ghee", "paneer",
	}},
	{"Meat & Protein", []string{
		"chicken", "tofu", "chickpeas", "dal", "beef", "pork", "fish",
	}},
	{"Pantry & Dry Goods", []string{
		"spaghetti", "pasta", "quinoa", "rice", "flour", "bread", "oil",
		"sauce", "peanut butter", "honey", "sugar", "noodles", "water",
	}},
	{"Spices & Seasoning", []string{
		"salt", "pepper", "powder", "flakes", "spices", "masala", "cumin",
		"turmeric", "mustard seeds", "curry leaves",
	}},
}

// FindCategory 依關鍵字子字串歸類食材
func FindCategory(ingredient string) string {
	lower := strings.ToLower(ingredient)
	for _, c := range categories {
		for _, keyword := range c.keywords {
			if strings.Contains(lower, keyword) {
				return c.name
			}
		}
	}
	return defaultCategory
}

// Generate 將多份食材清單合併去重後分類，各分類內按字典序排列
func Generate(ingredientSets ...[]string) map[string][]string {
	all := make(map[string]struct{})
	for _, set := range ingredientSets {
		for _, ing := range set {
			all[ing] = struct{}{}
		}
	}

	out := make(map[string][]string)
	for ing := range all {
		c := FindCategory(ing)
		out[c] = append(out[c], ing)
	}
	for c := range out {
		sort.Strings(out[c])
	}
	return out
}

// mergeLists 合併兩份分類清單，同分類取聯集後排序
func mergeLists(a, b map[string][]string) map[string][]string {
	merged := make(map[string]map[string]struct{})
	for _, list := range []map[string][]string{a, b} {
		for c, items := range list {
			if merged[c] == nil {
				merged[c] = make(map[string]struct{})
			}
			for _, item := range items {
				merged[c][item] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(merged))
	for c, items := range merged {
		list := make([]string, 0, len(items))
		for item := range items {
			list = append(list, item)
		}
		sort.Strings(list)
		out[c] = list
	}
	return out
}

// Store 持久化的購物清單。所有變更立即寫回磁碟
type Store struct {
	path string

	mu   sync.Mutex
	list map[string][]string
}

// NewStore 建立存放區並載入既有清單，檔案缺失或損壞時從空白開始
func NewStore(path string) *Store {
	s := &Store{path: path, list: map[string][]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			common.LogWarn("購物清單讀取失敗", zap.String("path", path), zap.Error(err))
		}
		return s
	}

	var list map[string][]string
	if err := common.ParseJSONBytes(data, &list); err != nil {
		common.LogWarn("購物清單格式錯誤", zap.String("path", path), zap.Error(err))
		return s
	}

	s.list = list
	return s
}

// AddIngredients 將新的食材清單分類合併進目前的購物清單並保存，
// 回傳合併後的完整清單
func (s *Store) AddIngredients(ingredientSets ...[]string) map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = mergeLists(s.list, Generate(ingredientSets...))
	s.saveLocked()
	return copyList(s.list)
}

// Current 回傳目前購物清單的複本
func (s *Store) Current() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyList(s.list)
}

// Clear 清空購物清單並保存
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = map[string][]string{}
	s.saveLocked()
}

func copyList(list map[string][]string) map[string][]string {
	out := make(map[string][]string, len(list))
	for c, items := range list {
		copied := make([]string, len(items))
		copy(copied, items)
		out[c] = copied
	}
	return out
}

// saveLocked 寫回磁碟，呼叫端須持有鎖
func (s *Store) saveLocked() {
	payload, err := common.ToJSON(s.list)
	if err != nil {
		common.LogError("購物清單序列化失敗", zap.Error(err))
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(s.path, []byte(payload), 0644); err != nil {
		common.LogError("購物清單寫入失敗", zap.String("path", s.path), zap.Error(err))
	}
}
