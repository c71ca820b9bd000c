package service

import (
	"context"
	"testing"

	"github.com/flixanalytics/flixrec/catalog"
	"github.com/flixanalytics/flixrec/config"
	"github.com/flixanalytics/flixrec/core"
	"github.com/flixanalytics/flixrec/personalize"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{
			Title: "Stellar Voyage", Genre: "Sci-Fi", Category: "Movie", Rating: 8.4,
			Summary:    "A crew drifts across dead space searching for a new home world",
			Actors:     "Mara Lin, Devon Cole", Tags: "space survival",
			TrailerRef: "https://www.youtube.com/watch?v=abc123XYZ_0",
		},
		{
			Title: "Last Orbit", Genre: "Sci-Fi", Category: "Movie", Rating: 7.9,
			Summary: "Stranded in dead space a pilot fights to reach home world alive",
			Actors:  "Devon Cole, Priya Nair", Tags: "space survival",
		},
		{
			Title: "Kitchen Stories", Genre: "Documentary", Category: "Series", Rating: 7.1,
			Summary: "Street cooks share family recipes and markets behind them",
			Actors:  "Luca Bram", Tags: "food travel",
		},
		{
			// 缺 Actors/Tags：只在窄口径模型存活
			Title: "Silent Summary", Genre: "Drama", Category: "Movie", Rating: 6.5,
			Summary: "A pilot returns to home world and learns to live again",
		},
	})
}

func newTestRecommender(t *testing.T, opts ...Option) *Recommender {
	t.Helper()
	opts = append([]Option{
		WithCatalog(testCatalog()),
		WithPicker(personalize.PickFunc(func(n int) int { return 0 })),
	}, opts...)
	rec, err := New(context.Background(), config.Default(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestRecommender_Search(t *testing.T) {
	ctx := context.Background()
	rec := newTestRecommender(t)

	if err := rec.Register(ctx, "alice", "1234"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := rec.Search(ctx, "alice", "Stellar Voyage", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Item.Title != "Stellar Voyage" {
		t.Errorf("Item = %+v", res.Item)
	}
	if res.TrailerEmbed != "https://www.youtube.com/embed/abc123XYZ_0" {
		t.Errorf("TrailerEmbed = %q", res.TrailerEmbed)
	}

	// 两个模型各自出一份推荐；种子不得出现在任何一份里
	if len(res.Broad) == 0 || len(res.Narrow) == 0 {
		t.Fatalf("Broad=%d Narrow=%d, want both non-empty", len(res.Broad), len(res.Narrow))
	}
	for _, it := range append(append([]*core.Item{}, res.Broad...), res.Narrow...) {
		if it.ID == "Stellar Voyage" {
			t.Fatal("seed leaked into recommendations")
		}
	}
	if res.Broad[0].ID != "Last Orbit" {
		t.Errorf("top broad pick = %q, want Last Orbit", res.Broad[0].ID)
	}

	// 检索写入历史
	p, err := rec.Login(ctx, "alice", "1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if last, ok := p.LastSearch(); !ok || last != "Stellar Voyage" {
		t.Errorf("LastSearch = (%q, %v)", last, ok)
	}
}

func TestRecommender_Search_UnknownTitle(t *testing.T) {
	rec := newTestRecommender(t)
	_, err := rec.Search(context.Background(), "", "Ghost Title", 3)
	if !core.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestRecommender_Search_Anonymous(t *testing.T) {
	// 未登录也能检索，只是不记历史
	rec := newTestRecommender(t)
	res, err := rec.Search(context.Background(), "", "Last Orbit", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Broad) == 0 {
		t.Error("anonymous search should still recommend")
	}
}

func TestRecommender_Search_NarrowOnlySeed(t *testing.T) {
	// 种子被宽口径剔除：Broad 为空，Narrow 正常，整体不算失败
	rec := newTestRecommender(t)
	res, err := rec.Search(context.Background(), "", "Silent Summary", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Broad) != 0 {
		t.Errorf("Broad = %d items, want 0 (seed dropped by variant)", len(res.Broad))
	}
	if len(res.Narrow) == 0 {
		t.Error("Narrow should still produce recommendations")
	}
}

func TestRecommender_TopPicks(t *testing.T) {
	ctx := context.Background()
	rec := newTestRecommender(t)

	if err := rec.Register(ctx, "bob", "0007"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 历史为空：空结果
	picks, err := rec.TopPicks(ctx, "bob", 3)
	if err != nil {
		t.Fatalf("TopPicks: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("empty history picks = %v", picks)
	}

	if _, err := rec.Search(ctx, "bob", "Stellar Voyage", 2); err != nil {
		t.Fatalf("Search: %v", err)
	}

	picks, err = rec.TopPicks(ctx, "bob", 3)
	if err != nil {
		t.Fatalf("TopPicks: %v", err)
	}
	if len(picks) == 0 {
		t.Fatal("picks should follow last search")
	}
	for _, it := range picks {
		if it.ID == "Stellar Voyage" {
			t.Fatal("seed leaked into top picks")
		}
	}
	// 目录元数据已补全
	if picks[0].Meta["genre"] == "" {
		t.Errorf("picks missing catalog meta: %+v", picks[0].Meta)
	}
}

func TestRecommender_TopPicks_UnknownUser(t *testing.T) {
	rec := newTestRecommender(t)
	_, err := rec.TopPicks(context.Background(), "ghost", 3)
	if !core.IsNotFound(err) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestRecommender_TopRated(t *testing.T) {
	rec := newTestRecommender(t)

	top, err := rec.TopRated(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopRated: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d items, want 2", len(top))
	}
	if top[0].Title != "Stellar Voyage" || top[1].Title != "Last Orbit" {
		t.Errorf("TopRated = [%s, %s]", top[0].Title, top[1].Title)
	}

	if got, err := rec.TopRated(context.Background(), 0); err != nil || got != nil {
		t.Errorf("TopRated(0) = (%v, %v), want empty", got, err)
	}
}

func TestRecommender_TopRated_DuplicateTitleFirstRowWins(t *testing.T) {
	// 重复 Title：高分榜必须用首行评分，末行不得经 ZAdd 覆盖反超
	cat := catalog.New([]catalog.Item{
		{Title: "Twin", Genre: "Drama", Rating: 9.5, Summary: "first row of the pair"},
		{Title: "Twin", Genre: "Comedy", Rating: 1.0, Summary: "second row of the pair"},
		{Title: "Other", Genre: "Drama", Rating: 5.0, Summary: "an unrelated item"},
	})
	rec, err := New(context.Background(), config.Default(),
		WithCatalog(cat),
		WithPicker(personalize.PickFunc(func(n int) int { return 0 })),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rec.Close()

	top, err := rec.TopRated(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopRated: %v", err)
	}
	if len(top) != 2 || top[0].Title != "Twin" || top[1].Title != "Other" {
		t.Fatalf("TopRated = %+v, want [Twin Other]", top)
	}
	// 目录解析重复 Title 也取首行
	if top[0].Genre != "Drama" {
		t.Errorf("Twin resolved to %q, want first row (Drama)", top[0].Genre)
	}
}

func TestRecommender_KeepExprFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Recommend.KeepExpr = `item.meta.rating >= 7.0`

	rec, err := New(context.Background(), cfg,
		WithCatalog(testCatalog()),
		WithPicker(personalize.PickFunc(func(n int) int { return 0 })),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rec.Close()

	res, err := rec.Search(context.Background(), "", "Kitchen Stories", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, it := range res.Narrow {
		if rating, ok := it.Meta["rating"].(float64); ok && rating < 7.0 {
			t.Errorf("low-rated item %q passed keep filter", it.ID)
		}
	}
}

func TestRecommender_Blacklist(t *testing.T) {
	cfg := config.Default()
	cfg.Recommend.Blacklist = []string{"Last Orbit"}

	rec, err := New(context.Background(), cfg,
		WithCatalog(testCatalog()),
		WithPicker(personalize.PickFunc(func(n int) int { return 0 })),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rec.Close()

	res, err := rec.Search(context.Background(), "", "Stellar Voyage", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, it := range append(append([]*core.Item{}, res.Broad...), res.Narrow...) {
		if it.ID == "Last Orbit" {
			t.Fatal("blacklisted title leaked into results")
		}
	}
}

func TestNew_NoCatalogSource(t *testing.T) {
	_, err := New(context.Background(), config.Default())
	if err == nil {
		t.Fatal("missing catalog source should fail")
	}
}
