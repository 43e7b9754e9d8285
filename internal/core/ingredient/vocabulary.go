package ingredient

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// DefaultFuzzyCutoff 模糊匹配的預設相似度門檻
const DefaultFuzzyCutoff = 0.84

// baseVocabulary 內建的已知食材集合
var baseVocabulary = []string{
	"eggs", "onion", "tomato", "green chili", "salt", "pepper", "oil",
	"potato", "wheat flour", "chili powder", "ghee", "coriander",
	"bread", "peanut butter",
	"garlic", "ginger", "butter", "milk", "sugar", "turmeric", "cumin",
	"cilantro", "spinach", "cheddar cheese", "olive oil", "chicken breast",
	"green chilli", "green chilies", "green chillies",
}

// stopwords 單位、貨幣與收據常見雜訊詞
var stopwords = map[string]struct{}{
	"mrp": {}, "amount": {}, "subtotal": {}, "tax": {}, "total": {}, "balance": {}, "cash": {}, "tender": {},
	"qty": {}, "quantity": {}, "price": {}, "rs": {}, "usd": {}, "inr": {}, "each": {}, "pcs": {}, "pc": {},
	"kg": {}, "g": {}, "gm": {}, "gram": {}, "grams": {}, "ml": {}, "l": {}, "ltr": {}, "litre": {}, "liter": {},
	"bottle": {}, "pack": {}, "dozen": {}, "net": {}, "wt": {}, "weight": {}, "discount": {}, "saved": {},
}

var (
	// 價格樣式：貨幣符號/代碼接數字，或兩位小數金額
	priceRE = regexp.MustCompile(`(?i)(?:rs\.?|₹|\$|usd|inr)\s*\d+(?:[.,]\d+)?|\b\d+[.,]\d{2}\b`)

	// 數量＋單位，涵蓋「數量在前」與「單位在後」兩種表層順序
	qtyUnitRE = regexp.MustCompile(`(?i)(?:(?:^|\s)(?:x\s*)?\d+(?:\.\d+)?\s*(?:kg|g|gm|grams?|ml|l|liters?|litres?|pcs?|pc|pack|dozen)\b)|(?:\b\d+(?:\.\d+)?\s*(?:kg|g|gm|grams?|ml|l|liters?|litres?|pcs?|pc|pack|dozen)(?:$|\s))`)

	// 行首的廚房計量詞，可帶整數或分數
	leadingKitchenUnitsRE = regexp.MustCompile(`(?i)^\s*(?:\d+\s*\d*/\d+|\d+(?:\.\d+)?|\d*/\d+)?\s*(?:cups?|cup|tsp|tsps|teaspoons?|tbsp|tbsps|tablespoons?)\b`)

	// 行首的項目符號
	leadingBulletsRE = regexp.MustCompile(`^[-*•‣▪]+`)

	parentheticalRE = regexp.MustCompile(`\([^)]*\)`)
	bareNumberRE    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

	// 僅由英文字母與空格組成的片語，作為新食材的放行條件
	alphaPhraseRE = regexp.MustCompile(`^[a-z][a-z\s]+$`)
)

// pluralExceptions 複數轉單數的例外表，先查表再套用通用字尾規則。
// 注意 "egg" 刻意映射回 "eggs"，與詞彙表中的慣用形一致。
var pluralExceptions = map[string]string{
	"tomatoes":       "tomato",
	"potatoes":       "potato",
	"chilies":        "chili",
	"chillies":       "chili",
	"green chilli":   "green chili",
	"green chilies":  "green chili",
	"green chillies": "green chili",
	"chillie":        "chili",
	"olive oils":     "olive oil",
	"breads":         "bread",
	"peppers":        "pepper",
	"corriander":     "coriander",
	"egg":            "eggs",
	"eggs":           "eggs",
}

// SingularToken 將單一 token 由複數折疊為單數
func SingularToken(token string) string {
	if mapped, ok := pluralExceptions[token]; ok {
		return mapped
	}
	if strings.HasSuffix(token, "ies") && len(token) > 3 {
		return token[:len(token)-3] + "y"
	}
	if strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") {
		return token[:len(token)-1]
	}
	return token
}

// StripNoise 去除項目符號、價格、數量單位、廚房計量、括號附註與裸數字
func StripNoise(s string) string {
	s = strings.TrimSpace(leadingBulletsRE.ReplaceAllString(s, ""))
	s = priceRE.ReplaceAllString(s, " ")
	s = qtyUnitRE.ReplaceAllString(s, " ")
	s = leadingKitchenUnitsRE.ReplaceAllString(s, " ")
	s = parentheticalRE.ReplaceAllString(s, " ")
	s = bareNumberRE.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// IsStopword 檢查 token 是否為雜訊詞
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// Vocabulary 已知食材詞彙表，支援精確與模糊匹配。
// 建構後唯讀，可安全併發使用。
type Vocabulary struct {
	entries map[string]struct{}
	sorted  []string
}

// NewVocabulary 以內建詞彙與呼叫端提供的已知食材建立詞彙表（取聯集、正規化）
func NewVocabulary(known []string) *Vocabulary {
	entries := NormalizeSet(baseVocabulary)
	for _, k := range known {
		if n := Normalize(k); n != "" {
			entries[n] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(entries))
	for e := range entries {
		sorted = append(sorted, e)
	}
	sort.Strings(sorted)

	return &Vocabulary{entries: entries, sorted: sorted}
}

// Contains 檢查正規化後的名稱是否在詞彙表中
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.entries[name]
	return ok
}

// Entries 回傳排序後的全部詞彙
func (v *Vocabulary) Entries() []string {
	return v.sorted
}

// similarity 綜合 Jaro-Winkler 與 Levenshtein 的相似度，取較高者。
// Jaro-Winkler 對前綴一致的拼寫錯誤寬容，Levenshtein 比率補足其餘情況。
func similarity(a, b string) float64 {
	score := matchr.JaroWinkler(a, b, false)

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen > 0 {
		dist := levenshtein.ComputeDistance(a, b)
		if lev := 1.0 - float64(dist)/float64(maxLen); lev > score {
			score = lev
		}
	}
	return score
}

// BestMatch 在詞彙表中找出與候選字串最相似的單一詞條。
// 相似度達 cutoff 才算命中；同分時取字典序較小者，結果可重現。
func (v *Vocabulary) BestMatch(cand string, cutoff float64) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, entry := range v.sorted {
		if s := similarity(cand, entry); s > bestScore {
			best = entry
			bestScore = s
		}
	}
	if best != "" && bestScore >= cutoff {
		return best, true
	}
	return "", false
}

// Resolve 套用候選字串的三段放行規則：
//  1. 與詞彙表精確匹配
//  2. 模糊匹配達門檻（取最佳單一匹配）
//  3. 僅由字母與空格組成且長度 >= 3，視為新食材照單全收
//
// 三者皆不符則靜默丟棄，這是刻意的召回/精確度取捨，不是錯誤。
func (v *Vocabulary) Resolve(cand string, cutoff float64) (string, bool) {
	if cand == "" {
		return "", false
	}
	if v.Contains(cand) {
		return cand, true
	}
	if match, ok := v.BestMatch(cand, cutoff); ok {
		return match, true
	}
	if len(cand) >= 3 && alphaPhraseRE.MatchString(cand) {
		return cand, true
	}
	return "", false
}
