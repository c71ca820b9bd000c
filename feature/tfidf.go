package feature

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector 是稀疏的文档向量：词表下标 -> 权重。
// 构建完成后各向量均已 L2 归一化，两向量的余弦相似度即点积。
type Vector map[int]float64

// Dot 计算两个稀疏向量的点积（迭代较小的一方）。
func (v Vector) Dot(other Vector) float64 {
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for i, w := range a {
		if w2, ok := b[i]; ok {
			dot += w * w2
		}
	}
	return dot
}

// CosineDistance 返回 1 - 余弦相似度（向量已归一化，直接用点积）。
// 归一化的舍入会让 1-Dot(v,v) 残留 1e-16 量级的正值，
// 这里把 |d| < 1e-12 一并收敛为 0：自距离必须精确为 0。
func (v Vector) CosineDistance(other Vector) float64 {
	d := 1.0 - v.Dot(other)
	if d < 1e-12 {
		return 0
	}
	return d
}

// Tokenize 把文本切成小写词项：字母/数字连续段，且长度 >= 2。
// 规则保持稳定：词表与向量值必须是语料的确定性函数。
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() >= 2 {
			tokens = append(tokens, b.String())
		}
		b.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// Vectorizer 是 TF-IDF 向量化器：在一个变体的存活语料上拟合出
// 共享词表与 IDF 权重，然后把每篇文档变换为 L2 归一化稀疏向量。
//
// IDF 采用平滑公式 ln((1+N)/(1+df)) + 1，TF 为词项原始计数。
type Vectorizer struct {
	// Terms 是排序后的词表（保证确定性：同一语料总得到同一词表）。
	Terms []string

	// Vocab 词项 -> 词表下标
	Vocab map[string]int

	// IDF 按词表下标对齐的逆文档频率
	IDF []float64
}

// FitVectorizer 在语料上拟合词表与 IDF。docs 不能为空（调用方保证）。
func FitVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range Tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Terms: terms,
		Vocab: make(map[string]int, len(terms)),
		IDF:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.Vocab[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// Transform 把单篇文档变换为 L2 归一化的 TF-IDF 稀疏向量。
// 不在词表中的词项被忽略（查询文档与语料文档同源，通常不会发生）。
func (v *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]float64)
	for _, term := range Tokenize(doc) {
		if i, ok := v.Vocab[term]; ok {
			counts[i]++
		}
	}

	vec := make(Vector, len(counts))
	var norm float64
	for i, tf := range counts {
		w := tf * v.IDF[i]
		vec[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
