package feature

import (
	"sort"

	"github.com/flixanalytics/flixrec/catalog"
	"github.com/flixanalytics/flixrec/core"
)

// Row 是索引中的一行：存活条目及其文档向量。行序继承目录行序。
type Row struct {
	Item catalog.Item
	Vec  Vector
}

// Neighbor 是一次近邻查询的结果项。
type Neighbor struct {
	Title    string
	Distance float64 // 余弦距离，越小越相似
	Item     catalog.Item
}

// Index 是某个语料变体的不可变相似度索引：
// 存活条目的有序列表 + 各自的 TF-IDF 向量 + 共享词表。
//
// 生命周期：目录加载时构建一次，之后只读；并发查询无需加锁。
// 目录重载时整体重建，不支持增量更新。
type Index struct {
	variant    Variant
	rows       []Row
	byTitle    map[string]int // Title -> 行号，重复 Title 先见先存
	vectorizer *Vectorizer
}

// Build 用目录在 variant 变体下构建索引。
//
// 纯函数：同一目录快照必然得到同一词表与向量值（推荐顺序可复现）。
// 若没有任何条目在该变体下存活，返回 EMPTY_CORPUS 领域错误。
func Build(cat *catalog.Catalog, variant Variant) (*Index, error) {
	var (
		survivors []catalog.Item
		docs      []string
	)
	for _, it := range cat.Items() {
		text, ok := variant.Text(it)
		if !ok {
			continue
		}
		survivors = append(survivors, it)
		docs = append(docs, text)
	}
	if len(survivors) == 0 {
		return nil, core.NewEmptyCorpusError(variant.String())
	}

	vectorizer := FitVectorizer(docs)

	idx := &Index{
		variant:    variant,
		rows:       make([]Row, len(survivors)),
		byTitle:    make(map[string]int, len(survivors)),
		vectorizer: vectorizer,
	}
	for i, it := range survivors {
		idx.rows[i] = Row{Item: it, Vec: vectorizer.Transform(docs[i])}
		if _, ok := idx.byTitle[it.Title]; !ok {
			idx.byTitle[it.Title] = i
		}
	}
	return idx, nil
}

// Variant 返回索引对应的语料变体。
func (idx *Index) Variant() Variant {
	return idx.variant
}

// Len 返回索引中存活条目数。
func (idx *Index) Len() int {
	return len(idx.rows)
}

// Contains 报告 title 是否在该变体的存活集合中。
func (idx *Index) Contains(title string) bool {
	_, ok := idx.byTitle[title]
	return ok
}

// Terms 返回该变体的共享词表（排序后）。
func (idx *Index) Terms() []string {
	return idx.vectorizer.Terms
}

// Neighbors 返回 title 的 k+1 个最近邻（多出的一个名额给距离 0 的自身），
// 按余弦距离升序排列；同距离并列按目录行序（先到先得）打破，保证确定性。
//
// 暴力精确检索：目录量级在数千条以内，正确性与确定性优先于吞吐。
// title 不在该变体的存活集合中时返回 UNKNOWN_ITEM 领域错误。
func (idx *Index) Neighbors(title string, k int) ([]Neighbor, error) {
	src, ok := idx.byTitle[title]
	if !ok {
		return nil, core.NewUnknownItemError(title, idx.variant.String())
	}

	srcVec := idx.rows[src].Vec
	out := make([]Neighbor, len(idx.rows))
	for i, row := range idx.rows {
		out[i] = Neighbor{
			Title:    row.Item.Title,
			Distance: srcVec.CosineDistance(row.Vec),
			Item:     row.Item,
		}
	}

	// 稳定排序：out 初始即目录行序，等距并列保持行序。
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	if k < 0 {
		k = 0
	}
	if k+1 < len(out) {
		out = out[:k+1]
	}
	return out, nil
}
