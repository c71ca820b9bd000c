// Package service 是引擎的组装层：加载目录、构建特征索引集、
// 打开档案存储，并对外提供注册/登录/检索推荐/Top Picks/高分榜操作。
package service

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/flixanalytics/flixrec/catalog"
	"github.com/flixanalytics/flixrec/config"
	"github.com/flixanalytics/flixrec/core"
	"github.com/flixanalytics/flixrec/feast"
	"github.com/flixanalytics/flixrec/feature"
	"github.com/flixanalytics/flixrec/filter"
	"github.com/flixanalytics/flixrec/personalize"
	"github.com/flixanalytics/flixrec/pipeline"
	"github.com/flixanalytics/flixrec/pkg/trailer"
	"github.com/flixanalytics/flixrec/pkg/utils"
	"github.com/flixanalytics/flixrec/profile"
	"github.com/flixanalytics/flixrec/recall"
	"github.com/flixanalytics/flixrec/store"
)

// boardKey 是高分榜在 KV 后端中的有序集合 key。
const boardKey = "board:top_rated"

// Recommender 是推荐服务门面。
//
// 并发模型：目录与索引集在 New 返回前构建完毕（build-then-publish），
// 之后只读，可被多 goroutine 并发查询；唯一的可变共享状态是档案存储，
// 由 profile.Store 按 username 串行化。
type Recommender struct {
	cfg      *config.Config
	cat      *catalog.Catalog
	set      *feature.Set
	kv       core.Store
	profiles *profile.Store
	selector *personalize.Selector
	taste    feast.Client
	post     []pipeline.Node // 召回之后的公共节点：过滤
}

// Option 自定义 Recommender 的装配。
type Option func(*Recommender)

// WithStore 注入 KV 后端（覆盖配置中的 backend）。
func WithStore(kv core.Store) Option {
	return func(r *Recommender) { r.kv = kv }
}

// WithCatalog 注入已构建的目录，跳过文件/HTTP 加载（示例与测试常用）。
func WithCatalog(cat *catalog.Catalog) Option {
	return func(r *Recommender) { r.cat = cat }
}

// WithPicker 注入变体选择的随机源（测试注入确定性实现）。
func WithPicker(p personalize.Picker) Option {
	return func(r *Recommender) { r.selector = &personalize.Selector{Picker: p} }
}

// WithTasteClient 注入口味特征客户端（可选；只影响解释标签）。
func WithTasteClient(c feast.Client) Option {
	return func(r *Recommender) { r.taste = c }
}

// New 装配推荐服务：加载目录快照、并发构建两个变体的索引、
// 打开存储后端并灌入高分榜。返回后服务即可并发提供查询。
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Recommender, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Recommender{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}

	if r.cat == nil {
		cat, err := loadCatalog(ctx, cfg)
		if err != nil {
			return nil, err
		}
		r.cat = cat
	}

	set, err := feature.BuildSet(r.cat)
	if err != nil {
		return nil, err
	}
	r.set = set

	if r.kv == nil {
		kv, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		r.kv = kv
	}
	r.profiles = profile.NewStore(r.kv)

	if r.selector == nil {
		r.selector = &personalize.Selector{Picker: personalize.NewPicker(time.Now().UnixNano())}
	}
	r.selector.Set = set

	r.post = postNodes(cfg)

	if r.taste == nil && cfg.Feast.Endpoint != "" {
		taste, err := openTasteClient(cfg)
		if err != nil {
			return nil, err
		}
		r.taste = taste
	}

	if err := r.seedBoard(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// openTasteClient 按配置连接口味特征服务（endpoint 形如 host:port）。
func openTasteClient(cfg *config.Config) (feast.Client, error) {
	host, portStr, err := net.SplitHostPort(cfg.Feast.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("feast endpoint %q: %w", cfg.Feast.Endpoint, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("feast endpoint %q: %w", cfg.Feast.Endpoint, err)
	}
	return feast.NewGrpcClient(host, port, cfg.Feast.Project)
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	var loader catalog.Loader
	switch {
	case cfg.Catalog.Path != "":
		loader = &catalog.FileLoader{Path: cfg.Catalog.Path}
	case cfg.Catalog.URL != "":
		loader = &catalog.HTTPLoader{URL: cfg.Catalog.URL}
	default:
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			"service: catalog source not configured")
	}
	return loader.Load(ctx)
}

func openStore(cfg *config.Config) (core.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Store.Path)
	case "redis":
		return store.NewRedisStore(cfg.Store.Addr, cfg.Store.DB)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// postNodes 构建召回之后的公共节点链（类别/评分过滤 + 黑名单）。
func postNodes(cfg *config.Config) []pipeline.Node {
	var filters []filter.Filter
	if cfg.Recommend.KeepExpr != "" {
		filters = append(filters, filter.NewExpr(cfg.Recommend.KeepExpr))
	}
	if len(cfg.Recommend.Blacklist) > 0 {
		filters = append(filters, filter.NewBlacklist(cfg.Recommend.Blacklist, nil, ""))
	}
	if len(filters) == 0 {
		return nil
	}
	return []pipeline.Node{&filter.Node{Filters: filters}}
}

// seedBoard 把目录评分灌入高分榜有序集合（后端支持 zset 时）。
// 重复 Title 与目录的查找约定一致：首行生效，后续行跳过，
// 避免 ZAdd 覆盖让末行评分反超。
func (r *Recommender) seedBoard(ctx context.Context) error {
	kv, ok := r.kv.(core.KeyValueStore)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, r.cat.Len())
	for _, it := range r.cat.Items() {
		if it.Title == "" || seen[it.Title] {
			continue
		}
		seen[it.Title] = true
		if err := kv.ZAdd(ctx, boardKey, it.Rating, it.Title); err != nil {
			return err
		}
	}
	return nil
}

// Catalog 返回已加载的目录（只读）。
func (r *Recommender) Catalog() *catalog.Catalog {
	return r.cat
}

// Register 注册新用户。
func (r *Recommender) Register(ctx context.Context, username, pin string) error {
	return r.profiles.Register(ctx, username, pin)
}

// Login 校验凭证并返回用户档案。
func (r *Recommender) Login(ctx context.Context, username, pin string) (*core.UserProfile, error) {
	return r.profiles.Login(ctx, username, pin)
}

// SearchResult 是一次检索推荐的结果。
type SearchResult struct {
	// Item 是被检索的条目
	Item catalog.Item

	// TrailerEmbed 是可播放预告片的嵌入地址；不可识别时为空串
	TrailerEmbed string

	// Broad 是宽口径模型（演员+标签+简介）的相似推荐
	Broad []*core.Item

	// Narrow 是窄口径模型（仅简介）的相似推荐
	Narrow []*core.Item
}

// Search 对 title 做两个模型的相似推荐，并把这次检索记入用户历史。
//
// 行为约定：
//   - title 不在目录中 → NOT_FOUND 领域错误
//   - title 被某个变体剔除（缺字段）→ 该变体的结果为空，不算失败
//   - username 为空（未登录）→ 正常推荐，只是不记历史
func (r *Recommender) Search(ctx context.Context, username, title string, n int) (*SearchResult, error) {
	it, ok := r.cat.Get(title)
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			"catalog: item not found: "+title)
	}

	out := &SearchResult{Item: it}
	if embed, ok := trailer.EmbedURL(it.TrailerRef); ok {
		out.TrailerEmbed = embed
	}

	rctx := &core.RecommendContext{
		Username: username,
		Params: map[string]any{
			recall.ParamSeedTitle: title,
			recall.ParamTopN:      r.topN(n),
		},
	}

	for _, v := range r.set.Available() {
		items, err := r.runVariant(ctx, rctx, v)
		if err != nil {
			return nil, err
		}
		switch v {
		case feature.VariantBroad:
			out.Broad = items
		case feature.VariantNarrow:
			out.Narrow = items
		}
	}

	r.enrichTaste(ctx, username, append(append([]*core.Item{}, out.Broad...), out.Narrow...))

	if username != "" {
		if err := r.profiles.AppendSearch(ctx, username, title); err != nil && !core.IsNotFound(err) {
			return nil, err
		}
	}
	return out, nil
}

// runVariant 在单个变体上执行 召回 → 过滤 的节点链。
// 种子被该变体剔除时返回空结果（可恢复，不上抛）。
func (r *Recommender) runVariant(
	ctx context.Context,
	rctx *core.RecommendContext,
	v feature.Variant,
) ([]*core.Item, error) {
	nodes := append([]pipeline.Node{
		&recall.Similar{Index: r.set.Index(v), TopK: r.cfg.Recommend.TopN},
	}, r.post...)

	items, err := (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, nil)
	if err != nil {
		if core.IsUnknownItem(err) {
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

// TopPicks 基于用户最近一次检索生成个性化推荐。
// 引擎层的任何可恢复失败都收敛为空结果，不会让调用方崩溃。
func (r *Recommender) TopPicks(ctx context.Context, username string, n int) ([]*core.Item, error) {
	p, err := r.profiles.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		n = r.cfg.Recommend.TopPicks
	}
	titles, err := r.selector.TopPicks(ctx, p, n)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(titles))
	for _, title := range titles {
		item := core.NewItem(title)
		if it, ok := r.cat.Get(title); ok {
			item.Meta["rating"] = it.Rating
			item.Meta["genre"] = it.Genre
			item.Meta["category"] = it.Category
			item.Meta["image"] = it.ImageRef
			item.Meta["trailer"] = it.TrailerRef
		}
		item.PutLabel("recall_source", utils.Label{Value: "top_picks", Source: "personalize"})
		out = append(out, item)
	}
	r.enrichTaste(ctx, username, out)
	return out, nil
}

// TopRated 返回评分最高的 n 个条目。
// 后端支持有序集合时走高分榜，否则直接在目录上排序（同分按行序）。
func (r *Recommender) TopRated(ctx context.Context, n int) ([]catalog.Item, error) {
	if n <= 0 {
		return nil, nil
	}

	if kv, ok := r.kv.(core.KeyValueStore); ok {
		titles, err := kv.ZRange(ctx, boardKey, 0, int64(n)-1)
		if err == nil && len(titles) > 0 {
			out := make([]catalog.Item, 0, len(titles))
			for _, title := range titles {
				if it, ok := r.cat.Get(title); ok {
					out = append(out, it)
				}
			}
			return out, nil
		}
	}

	items := append([]catalog.Item{}, r.cat.Items()...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rating > items[j].Rating
	})
	if len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// enrichTaste 拉取用户口味特征并附加为解释标签；失败只是少了标签。
func (r *Recommender) enrichTaste(ctx context.Context, username string, items []*core.Item) {
	if r.taste == nil || username == "" || len(items) == 0 {
		return
	}
	features := r.cfg.Feast.Features
	if len(features) == 0 {
		features = []string{"user_taste:genre_affinity"}
	}

	resp, err := r.taste.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{"username": username}},
		Project:    r.cfg.Feast.Project,
	})
	if err != nil || len(resp.FeatureVectors) == 0 {
		return
	}

	for name, value := range resp.FeatureVectors[0].Values {
		lbl := utils.Label{Value: fmt.Sprintf("%v", value), Source: "taste"}
		for _, item := range items {
			item.PutLabel("taste:"+name, lbl)
		}
	}
}

// topN 把请求数量收敛到配置默认值。
func (r *Recommender) topN(n int) int {
	if n > 0 {
		return n
	}
	return r.cfg.Recommend.TopN
}

// Close 释放存储与特征服务连接。
func (r *Recommender) Close() error {
	var firstErr error
	if r.taste != nil {
		if err := r.taste.Close(); err != nil {
			firstErr = err
		}
	}
	if r.kv != nil {
		if err := r.kv.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
