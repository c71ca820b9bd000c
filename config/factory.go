package config

import (
	"fmt"

	"github.com/flixanalytics/flixrec/filter"
	"github.com/flixanalytics/flixrec/pipeline"
	"github.com/flixanalytics/flixrec/pkg/conv"
	"github.com/flixanalytics/flixrec/rerank"
)

func init() {
	Register("filter", buildFilterNode)
	Register("rerank.topn", buildTopNNode)
}

// buildFilterNode 根据配置构建过滤 Node。
//
// 配置示例：
//
//	type: filter
//	config:
//	  filters:
//	    - type: expr
//	      keep: 'item.meta.rating >= 6.0'
//	    - type: blacklist
//	      titles: ["Some Title"]
func buildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet[string](filterMap, "type", ""); filterType {
		case "expr":
			keep := conv.ConfigGet[string](filterMap, "keep", "")
			filters = append(filters, filter.NewExpr(keep))
		case "blacklist":
			titles := conv.SliceAnyToString(filterMap["titles"])
			if titles == nil {
				titles = []string{}
			}
			filters = append(filters, filter.NewBlacklist(titles, nil, ""))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.Node{Filters: filters}, nil
}

// buildTopNNode 根据配置构建 Top-N 截断 Node。
func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(cfg, "n", 0))
	return &rerank.TopNNode{N: n}, nil
}

// 相似召回 Node（recall.similar.*）依赖构建完成的特征索引，无法从纯
// 配置构建；由 service 在索引集就绪后以代码方式拼装进 Pipeline。
