package ingredient

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 零寬字元與 BOM，OCR 輸出常夾帶這類不可見字元
var invisibleReplacer = strings.NewReplacer(
	"\u200B", "",
	"\u200C", "",
	"\u200D", "",
	"\uFEFF", "",
)

// 頭尾要修剪的標點（含全形引號）
const edgeCutset = " \t\n\r\"'“”‘’.,;:()[]"

// Normalize 將任意文字轉為可比較的小寫鍵。
// 處理順序：NFKC 相容性正規化 → 移除零寬字元 → NBSP 轉空格 →
// 連續空白收斂為單一空格 → 修剪頭尾標點 → 轉小寫。
// 純函數且冪等：Normalize(Normalize(x)) == Normalize(x)。
func Normalize(text string) string {
	s := norm.NFKC.String(text)
	s = invisibleReplacer.Replace(s)
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, edgeCutset)
	return strings.ToLower(s)
}

// NormalizeAll 批次正規化，略過結果為空的項目
func NormalizeAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// NormalizeSet 正規化後轉為集合，略過空字串
func NormalizeSet(texts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if n := Normalize(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
