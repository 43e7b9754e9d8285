// Package nutrition 提供每 100 克為基準的食材營養查詢表。
package nutrition

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shreyadesai75/CulinaLens/internal/core/ingredient"
	"github.com/shreyadesai75/CulinaLens/internal/pkg/common"
)

// Record 每 100 克的營養素
type Record struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add 逐項累加
func (r *Record) Add(other Record) {
	r.Calories += other.Calories
	r.Protein += other.Protein
	r.Carbs += other.Carbs
	r.Fat += other.Fat
}

// DivideBy 逐項除以份數
func (r Record) DivideBy(servings float64) Record {
	return Record{
		Calories: r.Calories / servings,
		Protein:  r.Protein / servings,
		Carbs:    r.Carbs / servings,
		Fat:      r.Fat / servings,
	}
}

// Table 唯讀的營養查詢表，以正規化食材名稱為鍵
type Table struct {
	records map[string]Record
}

// requiredColumns CSV 必備欄位，缺一不可
var requiredColumns = []string{
	"ingredient_name", "calories_100g", "protein_100g", "carbs_100g", "fat_100g",
}

// NewTable 以現成的映射建表，鍵會先正規化
func NewTable(records map[string]Record) *Table {
	normalized := make(map[string]Record, len(records))
	for name, rec := range records {
		if n := ingredient.Normalize(name); n != "" {
			normalized[n] = rec
		}
	}
	return &Table{records: normalized}
}

// Empty 回傳空表
func Empty() *Table {
	return &Table{records: map[string]Record{}}
}

// LoadTable 從 CSV 載入營養表。
// 載入失敗屬於參考資料缺失：記錄錯誤並退化為空表，不會中斷程序。
// 必備欄位缺失時整張表作廢，避免載入語意錯亂的資料。
func LoadTable(path string) *Table {
	f, err := os.Open(path)
	if err != nil {
		common.LogError("營養表載入失敗", zap.String("path", path), zap.Error(err))
		return Empty()
	}
	defer f.Close()

	table, err := parseCSV(f)
	if err != nil {
		common.LogError("營養表格式錯誤，整表作廢", zap.String("path", path), zap.Error(err))
		return Empty()
	}

	common.LogInfo("營養表載入完成",
		zap.String("path", path),
		zap.Int("筆數", table.Len()),
	)
	return table
}

func parseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	// 去除 UTF-8 BOM 後建立欄位索引
	columns := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(col, "\uFEFF")
		columns[strings.TrimSpace(col)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, &common.CustomError{
				Code:    common.ErrCodeInvalidRequest,
				Message: "nutrition csv missing required column: " + required,
			}
		}
	}

	records := make(map[string]Record)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 單列壞掉就跳過，資料缺失不是致命錯誤
			common.LogWarn("營養表資料列無法解析，已跳過", zap.Error(err))
			continue
		}

		name := ingredient.Normalize(cell(row, columns["ingredient_name"]))
		if name == "" {
			continue
		}

		records[name] = Record{
			Calories: parseFloat(cell(row, columns["calories_100g"])),
			Protein:  parseFloat(cell(row, columns["protein_100g"])),
			Carbs:    parseFloat(cell(row, columns["carbs_100g"])),
			Fat:      parseFloat(cell(row, columns["fat_100g"])),
		}
	}

	return &Table{records: records}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseFloat 非數值儲存格一律視為 0.0
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return v
}

// Len 回傳表中筆數
func (t *Table) Len() int {
	return len(t.records)
}

// Lookup 查詢食材的每 100 克營養素。
// 直接查不到時依序嘗試單數形（去尾 s）、複數形（加尾 s）。
func (t *Table) Lookup(name string) (Record, bool) {
	key := ingredient.Normalize(name)
	if key == "" {
		return Record{}, false
	}

	if rec, ok := t.records[key]; ok {
		return rec, true
	}

	if strings.HasSuffix(key, "s") {
		if rec, ok := t.records[key[:len(key)-1]]; ok {
			return rec, true
		}
	} else {
		if rec, ok := t.records[key+"s"]; ok {
			return rec, true
		}
	}

	return Record{}, false
}

// Summarize 逐項加總可解析的食材，查不到的靜默跳過
func (t *Table) Summarize(ingredients []string) Record {
	var totals Record
	for _, ing := range ingredients {
		rec, ok := t.Lookup(ing)
		if !ok {
			continue
		}
		totals.Add(rec)
	}
	return totals
}

// Estimate 食譜的營養估算結果
type Estimate struct {
	Total      Record `json:"total"`
	PerServing Record `json:"per_serving"`
}

// PerServing 回傳總量與每份營養，份數下限為 1
func (t *Table) PerServing(ingredients []string, servings int) Estimate {
	if servings < 1 {
		servings = 1
	}
	total := t.Summarize(ingredients)
	return Estimate{
		Total:      total,
		PerServing: total.DivideBy(float64(servings)),
	}
}
