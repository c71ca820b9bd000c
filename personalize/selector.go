// Package personalize 基于用户的滚动检索历史生成 Top Picks：
// 以最近一次检索为种子，随机选择一个语料变体做相似召回。
package personalize

import (
	"context"
	"math/rand"

	"github.com/flixanalytics/flixrec/core"
	"github.com/flixanalytics/flixrec/feature"
	"github.com/flixanalytics/flixrec/recall"
)

// Picker 决定本次调用使用哪个变体：返回 [0, n) 内的下标。
// 随机性作为显式依赖注入，测试可注入确定性实现覆盖两条分支。
type Picker interface {
	Pick(n int) int
}

// randPicker 是默认实现：每次调用独立均匀随机。
// 相同历史的多次调用可能得到不同变体，属于有意的结果多样性。
type randPicker struct {
	rng *rand.Rand
}

func (p *randPicker) Pick(n int) int {
	return p.rng.Intn(n)
}

// NewPicker 返回基于 math/rand 的均匀随机 Picker。
func NewPicker(seed int64) Picker {
	return &randPicker{rng: rand.New(rand.NewSource(seed))}
}

// PickFunc 便于用函数字面量实现 Picker（测试常用）。
type PickFunc func(n int) int

func (f PickFunc) Pick(n int) int { return f(n) }

// Selector 是个性化选择器。
type Selector struct {
	// Set 是全部存活变体的索引集合
	Set *feature.Set

	// Picker 选择变体；为 nil 时 TopPicks 返回错误（显式注入，无隐式全局随机源）
	Picker Picker
}

// NewSelector 创建个性化选择器；picker 为 nil 时使用 seed 随机源。
func NewSelector(set *feature.Set, picker Picker) *Selector {
	return &Selector{Set: set, Picker: picker}
}

// TopPicks 为用户生成至多 n 条个性化推荐。
//
// 行为约定：
//   - 检索历史为空 → 返回空序列（正常结果，非错误）
//   - 种子取最近一次检索；变体由 Picker 在存活变体中等概率选择
//   - 种子不在被选变体的存活集合中 → 换另一个变体重试一次；
//     两个变体都没有该种子 → 返回空序列（调用方不感知为失败）
func (s *Selector) TopPicks(ctx context.Context, profile *core.UserProfile, n int) ([]string, error) {
	if profile == nil {
		return nil, nil
	}
	seed, ok := profile.LastSearch()
	if !ok {
		return nil, nil
	}

	variants := s.Set.Available()
	if len(variants) == 0 {
		return nil, nil
	}
	if s.Picker == nil {
		return nil, core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput,
			"personalize: picker is required")
	}

	first := s.Picker.Pick(len(variants))
	order := make([]feature.Variant, 0, len(variants))
	order = append(order, variants[first])
	for i, v := range variants {
		if i != first {
			order = append(order, v)
		}
	}

	for _, v := range order {
		engine := &recall.Similar{Index: s.Set.Index(v)}
		picks, err := engine.Recommend(ctx, seed, n)
		if err != nil {
			if core.IsUnknownItem(err) {
				continue // 该变体剔除了种子条目，回退另一变体
			}
			return nil, err
		}
		return picks, nil
	}
	return nil, nil
}
