// Package flixrec 是一个基于内容的影视推荐引擎（Content-Based Recommender）。
//
// 设计要点：
// - 内容相似：对目录条目的文本元数据做 TF-IDF 向量化，余弦距离暴力精确检索
// - 双模型变体：broad（演员+标签+简介）与 narrow（仅简介）各自独立建索引
// - 个性化：基于用户最近一次检索 + 随机模型选择生成 Top Picks
// - Pipeline 可组合：召回结果可经 Filter / ReRank 节点再加工
package flixrec

import "github.com/flixanalytics/flixrec/pipeline"

// 轻量 facade：便于用户直接 import "flixrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
