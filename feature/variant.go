// Package feature 把目录条目的文本元数据变成可检索的数值特征：
// 按语料变体取文本 → TF-IDF 向量化 → 不可变的余弦近邻索引。
//
// 两个变体共用同一条参数化构建流水线，但各自独立决定存活条目集合：
// 某个变体缺字段的条目只从该变体的可检索集合中剔除，不做填补。
package feature

import (
	"strings"

	"github.com/flixanalytics/flixrec/catalog"
)

// Variant 是语料变体：决定用条目的哪些字段拼接出相似度文本基底。
type Variant int

const (
	// VariantBroad 宽口径：演员 + 标签 + 简介，三者缺一即剔除该条目。
	VariantBroad Variant = iota

	// VariantNarrow 窄口径：仅简介，缺简介即剔除该条目。
	VariantNarrow
)

// Variants 返回全部语料变体（构建顺序即此顺序）。
func Variants() []Variant {
	return []Variant{VariantBroad, VariantNarrow}
}

func (v Variant) String() string {
	switch v {
	case VariantBroad:
		return "broad"
	case VariantNarrow:
		return "narrow"
	default:
		return "unknown"
	}
}

// Text 计算条目在该变体下的文本基底。
// 任一来源字段缺失（空串）时返回 ok=false，该条目不进入此变体的索引。
func (v Variant) Text(it catalog.Item) (string, bool) {
	switch v {
	case VariantBroad:
		if it.Actors == "" || it.Tags == "" || it.Summary == "" {
			return "", false
		}
		return strings.Join([]string{it.Actors, it.Tags, it.Summary}, " "), true
	case VariantNarrow:
		if it.Summary == "" {
			return "", false
		}
		return it.Summary, true
	default:
		return "", false
	}
}
