// Package filter 提供候选集过滤：类别/评分约束、标题黑名单、CEL 表达式。
package filter

import (
	"context"

	"github.com/flixanalytics/flixrec/core"
)

// Filter 判断单个候选是否应被剔除。
type Filter interface {
	Name() string

	// ShouldFilter 返回 true 表示剔除该候选。
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
