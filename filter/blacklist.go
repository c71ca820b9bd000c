package filter

import (
	"context"
	"encoding/json"

	"github.com/flixanalytics/flixrec/core"
)

// Blacklist 是标题黑名单过滤器：剔除运营下架/版权受限的条目。
type Blacklist struct {
	// Titles 是内存中的黑名单标题列表
	Titles []string

	// Store 用于从存储中读取黑名单（可选，value 为 JSON 字符串数组）
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// NewBlacklist 创建一个标题黑名单过滤器。
func NewBlacklist(titles []string, store core.Store, key string) *Blacklist {
	return &Blacklist{
		Titles: titles,
		Store:  store,
		Key:    key,
	}
}

func (f *Blacklist) Name() string {
	return "filter.blacklist"
}

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, title := range f.Titles {
		if item.ID == title {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		raw, err := f.Store.Get(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		var titles []string
		if err := json.Unmarshal(raw, &titles); err != nil {
			return false, nil
		}
		for _, title := range titles {
			if item.ID == title {
				return true, nil
			}
		}
	}
	return false, nil
}
