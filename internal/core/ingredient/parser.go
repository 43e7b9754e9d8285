package ingredient

import (
	"regexp"
	"strings"
)

// 逗號與分號都是清單分隔符
var chunkSplitRE = regexp.MustCompile(`[,;]+`)

// Parser 把 OCR 原始文字解析為規範化食材清單
type Parser struct {
	vocab  *Vocabulary
	cutoff float64
}

// NewParser 以呼叫端提供的已知食材建立解析器。
// cutoff <= 0 時使用預設模糊匹配門檻。
func NewParser(known []string, cutoff float64) *Parser {
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}
	return &Parser{
		vocab:  NewVocabulary(known),
		cutoff: cutoff,
	}
}

// Parse 將原始文字拆解為去重後的規範化食材清單，保留首次出現順序。
// 文字處理是全函數：格式再糟也只會得到（可能為空的）清單，不會失敗。
func (p *Parser) Parse(rawText string) []string {
	if rawText == "" {
		return nil
	}

	// 先按行、再按逗號/分號切塊，逐塊正規化並去除雜訊
	var chunks []string
	for _, line := range strings.Split(rawText, "\n") {
		for _, chunk := range chunkSplitRE.Split(line, -1) {
			s := Normalize(chunk)
			if s == "" {
				continue
			}
			s = StripNoise(s)
			if s == "" {
				continue
			}
			chunks = append(chunks, s)
		}
	}

	var cleaned []string
	for _, ch := range chunks {
		// 區域拼法統一：chilli -> chili
		ch = strings.ReplaceAll(ch, "chilli", "chili")

		var tokens []string
		for _, t := range strings.Fields(ch) {
			t = Normalize(t)
			if t == "" || IsStopword(t) || len(t) <= 1 {
				continue
			}
			tokens = append(tokens, t)
		}
		if len(tokens) == 0 {
			continue
		}

		// 逐 token 折疊複數後重組、再正規化
		folded := make([]string, len(tokens))
		for i, t := range tokens {
			folded[i] = SingularToken(t)
		}
		cand := Normalize(strings.Join(folded, " "))

		if cand == "" || IsStopword(cand) {
			continue
		}

		if resolved, ok := p.vocab.Resolve(cand, p.cutoff); ok {
			cleaned = append(cleaned, resolved)
		}
	}

	// 去重並保留首次出現順序
	seen := make(map[string]struct{}, len(cleaned))
	result := make([]string, 0, len(cleaned))
	for _, x := range cleaned {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		result = append(result, x)
	}
	return result
}

// ParseToIngredients 一次性解析的便利函數，使用預設模糊匹配門檻
func ParseToIngredients(rawText string, known []string) []string {
	return NewParser(known, DefaultFuzzyCutoff).Parse(rawText)
}
