// Package profile 保存使用者的收藏與瀏覽紀錄。
package profile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// 瀏覽紀錄的保留上限
const historyLimit = 50

// Favorite 一筆收藏，以標題為鍵
type Favorite struct {
	Title   string `json:"title"`
	Note    string `json:"note,omitempty"`
	Rating  int    `json:"rating,omitempty"`
	AddedOn string `json:"added_on"`
}

// HistoryEntry 一筆食譜瀏覽紀錄
type HistoryEntry struct {
	Title    string `json:"title"`
	ViewedAt string `json:"viewed_at"`
}

// fileFormat 磁碟上的儲存格式
type fileFormat struct {
	Favorites      []Favorite     `json:"favorites"`
	CookingHistory []HistoryEntry `json:"cooking_history"`
}

// Store 使用者資料存放區。所有變更立即寫回磁碟，
// 以互斥鎖保證單一行程內的一致性。
type Store struct {
	path string

	mu        sync.Mutex
	favorites []Favorite
	history   []HistoryEntry
}

// NewStore 建立存放區並載入既有資料。
// 檔案缺失時從空白狀態開始，損壞時記錄後同樣從空白開始。
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			common.LogWarn("使用者資料讀取失敗", zap.String("path", path), zap.Error(err))
		}
		return s
	}

	var file fileFormat
	if err := common.ParseJSONBytes(data, &file); err != nil {
		common.LogWarn("使用者資料格式錯誤", zap.String("path", path), zap.Error(err))
		return s
	}

	s.favorites = file.Favorites
	s.history = file.CookingHistory
	common.LogInfo("使用者資料載入完成",
		zap.Int("收藏數", len(s.favorites)),
		zap.Int("紀錄數", len(s.history)),
	)
	return s
}

// AddFavorite 新增收藏並置頂；同標題的舊收藏會被取代。
// 標題比對不分大小寫
func (s *Store) AddFavorite(title, note string, rating int) Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav := Favorite{
		Title:   title,
		Note:    note,
		Rating:  rating,
		AddedOn: time.Now().UTC().Format("2006-01-02"),
	}

	kept := make([]Favorite, 0, len(s.favorites)+1)
	kept = append(kept, fav)
	for _, f := range s.favorites {
		if !strings.EqualFold(f.Title, title) {
			kept = append(kept, f)
		}
	}
	s.favorites = kept

	s.saveLocked()
	return fav
}

// RemoveFavorite 依標題移除收藏，回傳是否有移除任何項目
func (s *Store) RemoveFavorite(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Favorite, 0, len(s.favorites))
	removed := false
	for _, f := range s.favorites {
		if strings.EqualFold(f.Title, title) {
			removed = true
			continue
		}
		kept = append(kept, f)
	}

	if removed {
		s.favorites = kept
		s.saveLocked()
	}
	return removed
}

// Favorites 回傳收藏清單的複本，新到舊排列
func (s *Store) Favorites() []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// RecordView 記錄一次食譜瀏覽並置頂；同標題的舊紀錄會被移除，
// 總筆數超過上限時淘汰最舊的
func (s *Store) RecordView(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{
		Title:    title,
		ViewedAt: time.Now().UTC().Format(time.RFC3339),
	}

	kept := make([]HistoryEntry, 0, len(s.history)+1)
	kept = append(kept, entry)
	for _, h := range s.history {
		if !strings.EqualFold(h.Title, title) {
			kept = append(kept, h)
		}
	}
	if len(kept) > historyLimit {
		kept = kept[:historyLimit]
	}
	s.history = kept

	s.saveLocked()
}

// History 回傳瀏覽紀錄的複本，新到舊排列
func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// saveLocked 將目前狀態寫回磁碟，呼叫端須持有鎖。
// 寫入失敗只記錄不回傳，記憶體內的狀態仍然有效
func (s *Store) saveLocked() {
	payload, err := common.ToJSON(fileFormat{
		Favorites:      s.favorites,
		CookingHistory: s.history,
	})
	if err != nil {
		common.LogError("使用者資料序列化失敗", zap.Error(err))
		return
	}

	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(s.path, []byte(payload), 0644); err != nil {
		common.LogError("使用者資料寫入失敗", zap.String("path", s.path), zap.Error(err))
	}
}
