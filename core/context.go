package core

import "github.com/flixanalytics/flixrec/pkg/utils"

// RecommendContext 承载当前用户/请求信息，贯穿整个 Pipeline 透传。
// 登录态不放全局变量，而是由调用方显式传入（Username 为空表示未登录）。
type RecommendContext struct {
	Username string // 当前用户，未登录时为空

	// User 是已加载的用户档案（可选；为空时各 Node 按未登录处理）
	User *UserProfile

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数，例如：
	// - seed_title: 相似召回的种子条目
	// - n: 期望返回的推荐数量
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
