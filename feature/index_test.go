package feature

import (
	"reflect"
	"testing"

	"github.com/flixanalytics/flixrec/catalog"
	"github.com/flixanalytics/flixrec/core"
)

func summaryOnlyCatalog(pairs ...string) *catalog.Catalog {
	items := make([]catalog.Item, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, catalog.Item{Title: pairs[i], Summary: pairs[i+1]})
	}
	return catalog.New(items)
}

func TestIndex_Neighbors(t *testing.T) {
	cat := summaryOnlyCatalog(
		"A", "space adventure heroes",
		"B", "space heroes battle",
		"C", "cooking show recipes",
	)
	idx, err := Build(cat, VariantNarrow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := idx.Neighbors("A", 1)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	// k=1 返回 k+1 个：自身（距离 0）排第一
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(got))
	}
	if got[0].Title != "A" || got[0].Distance != 0 {
		t.Errorf("first neighbor = %v, want self at distance 0", got[0])
	}
	if got[1].Title != "B" {
		t.Errorf("second neighbor = %q, want B", got[1].Title)
	}
	if got[1].Distance <= 0 || got[1].Distance >= 1 {
		t.Errorf("neighbor distance = %v, want in (0, 1)", got[1].Distance)
	}
}

func TestIndex_Neighbors_Deterministic(t *testing.T) {
	cat := summaryOnlyCatalog(
		"A", "space adventure heroes",
		"B", "space heroes battle",
		"C", "space heroes battle", // 与 B 等距并列
		"D", "cooking show recipes",
	)

	var prev []string
	for run := 0; run < 5; run++ {
		idx, err := Build(cat, VariantNarrow)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		got, err := idx.Neighbors("A", 3)
		if err != nil {
			t.Fatalf("Neighbors: %v", err)
		}
		titles := make([]string, len(got))
		for i, nb := range got {
			titles[i] = nb.Title
		}
		if prev != nil && !reflect.DeepEqual(titles, prev) {
			t.Fatalf("run %d order %v differs from %v", run, titles, prev)
		}
		prev = titles
	}
	// 等距并列按目录行序：B 在 C 之前
	if !reflect.DeepEqual(prev, []string{"A", "B", "C", "D"}) {
		t.Errorf("order = %v, want [A B C D]", prev)
	}
}

func TestIndex_Neighbors_UnknownItem(t *testing.T) {
	cat := summaryOnlyCatalog("A", "space adventure heroes")
	idx, err := Build(cat, VariantNarrow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = idx.Neighbors("Missing", 1)
	if !core.IsUnknownItem(err) {
		t.Errorf("err = %v, want UNKNOWN_ITEM", err)
	}
}

func TestIndex_Neighbors_KExceedsRows(t *testing.T) {
	cat := summaryOnlyCatalog(
		"A", "space adventure heroes",
		"B", "space heroes battle",
	)
	idx, err := Build(cat, VariantNarrow)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := idx.Neighbors("A", 100)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d neighbors, want all 2 rows", len(got))
	}
}

func TestBuild_VariantSurvival(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{Title: "Full", Summary: "space crew drifts", Actors: "Mara Lin", Tags: "space"},
		{Title: "NoActors", Summary: "pilot fights home", Tags: "space"},
		{Title: "NoSummary", Actors: "Devon Cole", Tags: "thriller"},
	})

	broad, err := Build(cat, VariantBroad)
	if err != nil {
		t.Fatalf("Build broad: %v", err)
	}
	// 宽口径：三个字段缺一即剔除
	if broad.Len() != 1 || !broad.Contains("Full") {
		t.Errorf("broad survivors = %d, want only Full", broad.Len())
	}

	narrow, err := Build(cat, VariantNarrow)
	if err != nil {
		t.Fatalf("Build narrow: %v", err)
	}
	if narrow.Len() != 2 || narrow.Contains("NoSummary") {
		t.Errorf("narrow survivors = %d, want Full and NoActors", narrow.Len())
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	cat := catalog.New([]catalog.Item{
		{Title: "NoText"},
	})
	_, err := Build(cat, VariantNarrow)
	if !core.IsEmptyCorpus(err) {
		t.Errorf("err = %v, want EMPTY_CORPUS", err)
	}
}
