package recall

import (
	"context"

	"github.com/flixanalytics/flixrec/core"
)

// Source 表示一个可复用的召回源。
// 相似召回（broad/narrow 变体）是本引擎的主力；接口留给后续扩展。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
