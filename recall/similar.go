// Package recall 提供基于相似度索引的召回（推荐引擎）。
package recall

import (
	"context"
	"strconv"

	"github.com/flixanalytics/flixrec/core"
	"github.com/flixanalytics/flixrec/feature"
	"github.com/flixanalytics/flixrec/pipeline"
	"github.com/flixanalytics/flixrec/pkg/conv"
	"github.com/flixanalytics/flixrec/pkg/utils"
)

// ParamSeedTitle 是 RecommendContext.Params 中种子条目的 key。
const ParamSeedTitle = "seed_title"

// ParamTopN 是 RecommendContext.Params 中期望返回数量的 key。
const ParamTopN = "n"

// Similar 是基于内容相似度的召回源（推荐引擎）。
//
// 核心思想：给定种子条目，在其所属变体的索引中做余弦近邻检索，
// 剔除种子自身后返回最相似的 N 个条目。
type Similar struct {
	// Index 是某个语料变体的相似度索引
	Index *feature.Index

	// TopK 是 Node 形态下的默认返回数量（Recommend 方法以参数为准）
	TopK int
}

func (r *Similar) Name() string {
	return "recall.similar." + r.Index.Variant().String()
}

func (r *Similar) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

// Recommend 返回与 seed 最相似的至多 n 个条目标题（距离升序）。
//
// 行为约定：
//   - 种子自身永远不出现在结果中
//   - n 被钳制到 [1, 索引条目数-1]；候选不足时返回现有数量，不报错
//   - 只读查询，不产生任何副作用
//
// seed 不在该变体的存活集合中时返回 UNKNOWN_ITEM 领域错误。
func (r *Similar) Recommend(ctx context.Context, seed string, n int) ([]string, error) {
	neighbors, err := r.recommend(ctx, seed, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(neighbors))
	for _, nb := range neighbors {
		out = append(out, nb.Title)
	}
	return out, nil
}

func (r *Similar) recommend(_ context.Context, seed string, n int) ([]feature.Neighbor, error) {
	n = r.clamp(n)
	if n == 0 {
		// 索引里只有种子自己，除它之外无可推荐
		if !r.Index.Contains(seed) {
			return nil, core.NewUnknownItemError(seed, r.Index.Variant().String())
		}
		return nil, nil
	}

	// 多取一个名额：第一位是距离 0 的种子自身
	neighbors, err := r.Index.Neighbors(seed, n)
	if err != nil {
		return nil, err
	}

	out := make([]feature.Neighbor, 0, n)
	for _, nb := range neighbors {
		if nb.Title == seed {
			continue
		}
		out = append(out, nb)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// clamp 把 n 钳制进 [1, 索引条目数-1]；对 UI 驱动的调用方保持宽容。
func (r *Similar) clamp(n int) int {
	max := r.Index.Len() - 1
	if max < 0 {
		max = 0
	}
	if n > max {
		return max
	}
	if n < 1 {
		if max == 0 {
			return 0
		}
		return 1
	}
	return n
}

// Process 实现 pipeline.Node：从 rctx.Params 取种子条目与数量，
// 产出带解释标签与目录元数据的候选集。
func (r *Similar) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

var _ Source = (*Similar)(nil)

func (r *Similar) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, nil
	}
	seed, ok := conv.ToString(rctx.Params[ParamSeedTitle])
	if !ok || seed == "" {
		return nil, nil
	}
	n := int(conv.ConfigGetInt64(rctx.Params, ParamTopN, int64(r.TopK)))

	neighbors, err := r.recommend(ctx, seed, n)
	if err != nil {
		return nil, err
	}

	variant := r.Index.Variant().String()
	out := make([]*core.Item, 0, len(neighbors))
	for _, nb := range neighbors {
		it := core.NewItem(nb.Title)
		it.Score = 1 - nb.Distance
		it.Meta["rating"] = nb.Item.Rating
		it.Meta["genre"] = nb.Item.Genre
		it.Meta["category"] = nb.Item.Category
		it.Meta["image"] = nb.Item.ImageRef
		it.Meta["trailer"] = nb.Item.TrailerRef
		it.PutLabel("recall_source", utils.Label{Value: "similar", Source: "recall"})
		it.PutLabel("variant", utils.Label{Value: variant, Source: "recall"})
		it.PutLabel("distance", utils.Label{
			Value:  strconv.FormatFloat(nb.Distance, 'f', 4, 64),
			Source: "recall",
		})
		out = append(out, it)
	}
	return out, nil
}
