// Package feature_selection は目的変数との関連の強さで説明変数を評価します。
package feature_selection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PearsonPairwise は両方の値が揃っている行だけを使ってピアソン相関係数を計算する。
// 有効なペアが 2 未満、またはどちらかの分散がゼロの場合は NaN。
func PearsonPairwise(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// AbsCorrelations は各説明変数と目的変数の |r| を返す（未定義は NaN のまま）
func AbsCorrelations(target []float64, predictors [][]float64) []float64 {
	out := make([]float64, len(predictors))
	for j, p := range predictors {
		out[j] = math.Abs(PearsonPairwise(p, target))
	}
	return out
}

// SelectKBest はスコアの高い順に最大 k 個のインデックスを返す。
// NaN は 0 として扱い、同点は元の順序を保つ。
func SelectKBest(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	key := func(i int) float64 {
		if math.IsNaN(scores[i]) {
			return 0
		}
		return scores[i]
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(idx[a]) > key(idx[b])
	})
	if k >= 0 && k < len(idx) {
		idx = idx[:k]
	}
	return idx
}

// TopKFinite は NaN を除いた値のうち大きい順に最大 k 個を返す
func TopKFinite(values []float64, k int) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
