package pipeline

import (
	"context"

	"github.com/flixanalytics/flixrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：按相似度生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选（类别/评分/黑名单）
	KindReRank      Kind = "rerank"      // 重排阶段：截断/调序
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元数据或口味标签
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据 map 形式的配置构建 Node（配置驱动时使用）。
type NodeBuilder = func(map[string]interface{}) (Node, error)
