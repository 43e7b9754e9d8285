// Package refdata 統一載入並持有所有參考資料表，
// 支援不中斷服務的熱重載。
package refdata

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/discovery"
	"github.com/shreyadesai75/CulinaLens/internal/core/nutrition"
	"github.com/shreyadesai75/CulinaLens/internal/core/substitute"
	"github.com/shreyadesai75/CulinaLens/internal/core/suggest"
	"github.com/shreyadesai75/CulinaLens/internal/infrastructure/config"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Snapshot 單一時點的全部參考資料，載入後唯讀
type Snapshot struct {
	Recipes     []suggest.Recipe
	Nutrition   *nutrition.Table
	Substitutes *substitute.Table
	LocalDishes []discovery.Dish
	Known       []string
	LoadedAt    time.Time
}

// Store 以原子交換持有目前的資料快照。
// 讀取端拿到的快照在單次請求內保持一致，重載不影響進行中的請求。
type Store struct {
	paths   config.DataConfig
	current atomic.Value // *Snapshot
}

// NewStore 建立資料存放區並載入初始快照。
// 個別資料檔缺失或損壞時退化為空表，不會使啟動失敗。
func NewStore(paths config.DataConfig) *Store {
	s := &Store{paths: paths}
	s.current.Store(s.load())
	return s
}

// Snapshot 取得目前快照
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load().(*Snapshot)
}

// Reload 重新載入所有資料檔並原子替換快照
func (s *Store) Reload() *Snapshot {
	snap := s.load()
	s.current.Store(snap)
	common.LogInfo("參考資料已重載",
		zap.Int("食譜數", len(snap.Recipes)),
		zap.Int("營養項目數", snap.Nutrition.Len()),
		zap.Int("替代規則數", snap.Substitutes.Len()),
		zap.Int("地方菜數", len(snap.LocalDishes)),
	)
	return snap
}

// load 讀入全部資料檔並建立快照
func (s *Store) load() *Snapshot {
	recipes, err := suggest.LoadRecipes(s.paths.RecipesPath)
	if err != nil {
		common.LogError("食譜語料載入失敗",
			zap.String("path", s.paths.RecipesPath),
			zap.Error(err),
		)
		recipes = nil
	}

	return &Snapshot{
		Recipes:     recipes,
		Nutrition:   nutrition.LoadTable(s.paths.NutritionPath),
		Substitutes: substitute.LoadTable(s.paths.SubstitutionsPath),
		LocalDishes: discovery.LoadDishes(s.paths.LocalDishesPath),
		Known:       knownIngredients(recipes),
		LoadedAt:    time.Now().UTC(),
	}
}

// knownIngredients 彙整語料中出現過的食材名稱，
// 作為文字辨識解析時的額外詞彙
func knownIngredients(recipes []suggest.Recipe) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			if _, ok := seen[ing]; ok {
				continue
			}
			seen[ing] = struct{}{}
			out = append(out, ing)
		}
	}
	return out
}
