package filter

import (
	"context"

	"github.com/flixanalytics/flixrec/core"
	"github.com/flixanalytics/flixrec/pkg/dsl"
)

// Expr 是 CEL 表达式过滤器：表达式描述“保留条件”，
// 求值为 false 的候选被剔除。
//
// 示例（UI 侧的类别/评分过滤落到引擎即为此类表达式）：
//   - `item.meta.rating >= 6.0 && item.meta.rating <= 9.0`
//   - `item.meta.category == "Movie"`
//   - `item.meta.genre.contains("Comedy")`
type Expr struct {
	// Keep 是保留条件表达式；为空时不过滤任何候选
	Keep string
}

// NewExpr 创建一个表达式过滤器。
func NewExpr(keep string) *Expr {
	return &Expr{Keep: keep}
}

func (f *Expr) Name() string {
	return "filter.expr"
}

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Keep == "" || item == nil {
		return false, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Keep)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
