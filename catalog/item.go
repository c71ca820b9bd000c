package catalog

// Item 是一条目录条目（电影/剧集）。Title 在目录内作为唯一键使用，
// 其余字段是相似度计算与展示所需的元数据。
type Item struct {
	Title      string  // 唯一键，非空
	Genre      string  // 类型（自由文本，逗号分隔）
	Summary    string  // 剧情简介（自由文本）
	Actors     string  // 演员表（自由文本）
	Tags       string  // 标签（自由文本）
	Rating     float64 // 评分，[0,10]
	ImageRef   string  // 海报 URI
	TrailerRef string  // 预告片 URI，可缺失
	Category   string  // "Movie" / "Series"，用于过滤
}
