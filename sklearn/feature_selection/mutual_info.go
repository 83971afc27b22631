package feature_selection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// DefaultNeighbors は k 近傍推定で使う近傍数（scikit-learn と同じ 3）
const DefaultNeighbors = 3

// MutualInfoClassif は各列（連続値）と離散ラベル y の相互情報量を推定する。
//
// Ross (2014) の k 近傍推定量:
//
//	I = ψ(N) + <ψ(k)> − <ψ(N_c)> − <ψ(m)>
//
// サンプル数 1 のクラスは推定から除外し、結果は 0 以上に切り上げる。
// 入力に NaN を含む列はエラー。
func MutualInfoClassif(X mat.Matrix, y []int, nNeighbors int) ([]float64, error) {
	rows, cols := X.Dims()
	if rows != len(y) {
		return nil, errors.NewDimensionError("MutualInfoClassif", rows, len(y), 0)
	}
	if nNeighbors < 1 {
		return nil, errors.NewValidationError("n_neighbors", "must be positive", nNeighbors)
	}
	out := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		mi, err := MutualInfoContinuousDiscrete(col, y, nNeighbors)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", j)
		}
		out[j] = mi
	}
	return out, nil
}

// MutualInfoContinuousDiscrete は 1 次元の連続変数 x と離散変数 y の相互情報量（nat）
func MutualInfoContinuousDiscrete(x []float64, y []int, nNeighbors int) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("MutualInfoContinuousDiscrete", len(x), len(y), 0)
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return 0, errors.NewValueError("MutualInfoContinuousDiscrete", "x contains NaN")
		}
	}

	byLabel := make(map[int][]float64)
	for i, label := range y {
		byLabel[label] = append(byLabel[label], x[i])
	}
	for _, vals := range byLabel {
		sort.Float64s(vals)
	}

	// サンプル数 1 のクラスを除いた集合で半径内の点を数える
	all := make([]float64, 0, len(x))
	for i, label := range y {
		if len(byLabel[label]) > 1 {
			all = append(all, x[i])
		}
	}
	n := len(all)
	if n == 0 {
		return 0, nil
	}
	sort.Float64s(all)

	var sumK, sumNc, sumM float64
	for i, label := range y {
		same := byLabel[label]
		count := len(same)
		if count <= 1 {
			continue
		}
		k := nNeighbors
		if k > count-1 {
			k = count - 1
		}
		d := kthNeighborDistance(same, x[i], k)
		radius := math.Nextafter(d, 0)

		xi := x[i]
		lo := sort.Search(n, func(p int) bool { return xi-all[p] <= radius })
		hi := sort.Search(n, func(p int) bool { return all[p]-xi > radius })
		m := hi - lo // 自分自身を含む

		sumK += mathext.Digamma(float64(k))
		sumNc += mathext.Digamma(float64(count))
		sumM += mathext.Digamma(float64(m))
	}

	fn := float64(n)
	mi := mathext.Digamma(fn) + sumK/fn - sumNc/fn - sumM/fn
	return math.Max(0, mi), nil
}

// kthNeighborDistance は昇順の vals の中で v（vals に含まれる）から k 番目に近い点までの距離。
// v 自身は 1 回だけ除外する。
func kthNeighborDistance(vals []float64, v float64, k int) float64 {
	pos := sort.SearchFloat64s(vals, v)
	left, right := pos-1, pos+1
	var d float64
	for step := 0; step < k; step++ {
		var dl, dr = math.Inf(1), math.Inf(1)
		if left >= 0 {
			dl = v - vals[left]
		}
		if right < len(vals) {
			dr = vals[right] - v
		}
		if dl <= dr {
			d = dl
			left--
		} else {
			d = dr
			right++
		}
	}
	return d
}
