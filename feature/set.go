package feature

import (
	"golang.org/x/sync/errgroup"

	"github.com/flixanalytics/flixrec/catalog"
	"github.com/flixanalytics/flixrec/core"
)

// Set 持有全部语料变体的索引。某个变体构建失败（EMPTY_CORPUS）时
// 对应槽位为 nil，系统继续依靠存活的变体工作。
type Set struct {
	indexes map[Variant]*Index
}

// BuildSet 并发构建全部变体的索引。
//
// 错误语义：
//   - 单个变体 EMPTY_CORPUS → 该变体缺席，不算失败
//   - 所有变体都无法构建 → 返回 EMPTY_CORPUS 领域错误
//
// 构建在返回前全部完成（build-then-publish）：返回后的 Set 只读，
// 可被任意多个 goroutine 并发查询。
func BuildSet(cat *catalog.Catalog) (*Set, error) {
	variants := Variants()
	built := make([]*Index, len(variants))

	var eg errgroup.Group
	for i, v := range variants {
		i, v := i, v
		eg.Go(func() error {
			idx, err := Build(cat, v)
			if err != nil {
				if core.IsEmptyCorpus(err) {
					return nil
				}
				return err
			}
			built[i] = idx
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s := &Set{indexes: make(map[Variant]*Index, len(variants))}
	for i, v := range variants {
		if built[i] != nil {
			s.indexes[v] = built[i]
		}
	}
	if len(s.indexes) == 0 {
		return nil, core.NewEmptyCorpusError("all")
	}
	return s, nil
}

// Index 返回某变体的索引；该变体构建失败时返回 nil。
func (s *Set) Index(v Variant) *Index {
	return s.indexes[v]
}

// Available 返回存活变体列表（按 Variants() 的固定顺序）。
func (s *Set) Available() []Variant {
	var out []Variant
	for _, v := range Variants() {
		if s.indexes[v] != nil {
			out = append(out, v)
		}
	}
	return out
}
