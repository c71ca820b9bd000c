package feature

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercase and split on non-alnum",
			text: "Space Adventure, Heroes!",
			want: []string{"space", "adventure", "heroes"},
		},
		{
			name: "drop single-char runs",
			text: "a I x42 b",
			want: []string{"x42"},
		},
		{
			name: "digits kept",
			text: "top 10 picks of 2024",
			want: []string{"top", "10", "picks", "of", "2024"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "punctuation only",
			text: "!?—...",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFitVectorizer_IDF(t *testing.T) {
	// 3 篇文档：space 出现在 2 篇，cooking 出现在 1 篇
	docs := []string{
		"space adventure heroes",
		"space heroes battle",
		"cooking show recipes",
	}
	v := FitVectorizer(docs)

	// 词表必须排序（确定性）
	for i := 1; i < len(v.Terms); i++ {
		if v.Terms[i-1] >= v.Terms[i] {
			t.Fatalf("terms not sorted: %v", v.Terms)
		}
	}

	wantIDF := func(df int) float64 {
		return math.Log((1.0+3.0)/(1.0+float64(df))) + 1
	}
	checks := map[string]float64{
		"space":   wantIDF(2),
		"heroes":  wantIDF(2),
		"cooking": wantIDF(1),
	}
	for term, want := range checks {
		i, ok := v.Vocab[term]
		if !ok {
			t.Fatalf("term %q missing from vocab", term)
		}
		if got := v.IDF[i]; math.Abs(got-want) > 1e-12 {
			t.Errorf("IDF[%q] = %v, want %v", term, got, want)
		}
	}
}

func TestVectorizer_Transform_Normalized(t *testing.T) {
	docs := []string{
		"space adventure heroes",
		"space heroes battle",
	}
	v := FitVectorizer(docs)

	for _, doc := range docs {
		vec := v.Transform(doc)
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		if math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("Transform(%q) L2 norm = %v, want 1.0", doc, math.Sqrt(norm))
		}
	}
}

func TestVectorizer_Transform_UnknownTerms(t *testing.T) {
	v := FitVectorizer([]string{"space heroes"})
	vec := v.Transform("cooking recipes")
	if len(vec) != 0 {
		t.Errorf("out-of-vocab doc should yield empty vector, got %v", vec)
	}
}

func TestVector_CosineDistance(t *testing.T) {
	v := FitVectorizer([]string{
		"space adventure heroes",
		"space heroes battle",
		"cooking show recipes",
	})
	a := v.Transform("space adventure heroes")
	b := v.Transform("space heroes battle")
	c := v.Transform("cooking show recipes")

	// 同文档距离精确为 0：归一化舍入的残差必须被收敛掉
	if d := a.CosineDistance(a); d != 0 {
		t.Errorf("self distance = %v, want exactly 0", d)
	}
	if d := b.CosineDistance(b); d != 0 {
		t.Errorf("self distance = %v, want exactly 0", d)
	}
	// 无共享词项距离为 1
	if d := a.CosineDistance(c); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("disjoint distance = %v, want 1", d)
	}
	// 部分重叠落在 (0, 1)
	if d := a.CosineDistance(b); d <= 0 || d >= 1 {
		t.Errorf("overlap distance = %v, want in (0, 1)", d)
	}
	// 对称
	if d1, d2 := a.CosineDistance(b), b.CosineDistance(a); math.Abs(d1-d2) > 1e-12 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}
