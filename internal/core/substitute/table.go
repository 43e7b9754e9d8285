// Package substitute 管理食材替代規則與推薦。
package substitute

import (
	"os"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/ingredient"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Table 唯讀的替代規則表：正規化食材名稱 → 有序替代清單
type Table struct {
	rules map[string][]string
}

// NewTable 以現成的映射建表，鍵與值都會正規化，非字串項目已由呼叫端過濾
func NewTable(rules map[string][]string) *Table {
	normalized := make(map[string][]string, len(rules))
	for key, subs := range rules {
		k := ingredient.Normalize(key)
		if k == "" {
			continue
		}
		values := make([]string, 0, len(subs))
		for _, s := range subs {
			if n := ingredient.Normalize(s); n != "" {
				values = append(values, n)
			}
		}
		normalized[k] = values
	}
	return &Table{rules: normalized}
}

// Empty 回傳空表
func Empty() *Table {
	return &Table{rules: map[string][]string{}}
}

// LoadTable 從 JSON 載入替代規則。
// 檔案缺失或格式錯誤時退化為空表並記錄，不會中斷程序；
// 替代清單中的非字串項目直接丟棄。
func LoadTable(path string) *Table {
	data, err := os.ReadFile(path)
	if err != nil {
		common.LogError("替代規則載入失敗", zap.String("path", path), zap.Error(err))
		return Empty()
	}

	var raw map[string][]interface{}
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		common.LogError("替代規則格式錯誤", zap.String("path", path), zap.Error(err))
		return Empty()
	}

	rules := make(map[string][]string, len(raw))
	for key, values := range raw {
		subs := make([]string, 0, len(values))
		for _, v := range values {
			if s, ok := v.(string); ok {
				subs = append(subs, s)
			}
		}
		rules[key] = subs
	}

	table := NewTable(rules)
	common.LogInfo("替代規則載入完成",
		zap.String("path", path),
		zap.Int("規則數", table.Len()),
	)
	return table
}

// Len 回傳規則數
func (t *Table) Len() int {
	return len(t.rules)
}

// Lookup 回傳某食材的全部已登錄替代品
func (t *Table) Lookup(name string) []string {
	return t.rules[ingredient.Normalize(name)]
}

// Suggest 為每個缺少的食材推薦替代品。
// 替代品分成「使用者已有」與「其他候選」兩組：已有者優先，
// 沒有已有者才退回完整候選清單，兩者皆無則給空清單。
func (t *Table) Suggest(missing []string, available []string) map[string][]string {
	out := make(map[string][]string, len(missing))
	availSet := ingredient.NormalizeSet(available)

	for _, miss := range missing {
		subs := t.Lookup(miss)

		var provided, candidates []string
		for _, s := range subs {
			if _, ok := availSet[s]; ok {
				provided = append(provided, s)
			} else {
				candidates = append(candidates, s)
			}
		}

		switch {
		case len(provided) > 0:
			out[miss] = provided
		case len(candidates) > 0:
			out[miss] = candidates
		default:
			out[miss] = []string{}
		}
	}
	return out
}
