// Package tree は CART アルゴリズムによる決定木分類器を提供します。
package tree

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// node は配列に格納された木のノード
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	leaf      bool
	depth     int
	nSamples  int
	impurity  float64
	counts    []float64 // クラスごとのサンプル数
}

// DecisionTreeClassifier は scikit-learn 互換の決定木分類器
//
// 分割候補は特徴量の昇順・閾値の昇順に走査し、不純度の減少量が最大の
// 最初の候補を採用するため、同じ入力に対して常に同じ木ができる。
type DecisionTreeClassifier struct {
	state *model.StateManager

	// Hyperparameters
	criterion       string // "gini" または "entropy"
	maxDepth        int    // -1 は無制限
	minSamplesSplit int
	minSamplesLeaf  int

	// Learned parameters
	classes_            []float64
	nClasses_           int
	nFeatures_          int
	nodes_              []node
	featureImportances_ []float64
}

// Option は DecisionTreeClassifier の設定オプション
type Option func(*DecisionTreeClassifier)

// WithCriterion は不純度の基準を設定（"gini" / "entropy"）
func WithCriterion(criterion string) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.criterion = criterion
	}
}

// WithMaxDepth は木の最大深さを設定（-1 で無制限）
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.maxDepth = depth
	}
}

// WithMinSamplesSplit は分割に必要な最小サンプル数を設定
func WithMinSamplesSplit(n int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.minSamplesSplit = n
	}
}

// WithMinSamplesLeaf は葉に必要な最小サンプル数を設定
func WithMinSamplesLeaf(n int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.minSamplesLeaf = n
	}
}

// NewDecisionTreeClassifier は新しい決定木分類器を作成
func NewDecisionTreeClassifier(options ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		state:           model.NewStateManager("DecisionTreeClassifier"),
		criterion:       "gini",
		maxDepth:        -1,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	}
	for _, opt := range options {
		opt(dt)
	}
	return dt
}

func (dt *DecisionTreeClassifier) validate() error {
	if dt.criterion != "gini" && dt.criterion != "entropy" {
		return errors.NewValidationError("criterion", "must be 'gini' or 'entropy'", dt.criterion)
	}
	if dt.maxDepth == 0 || dt.maxDepth < -1 {
		return errors.NewValidationError("max_depth", "must be positive or -1", dt.maxDepth)
	}
	if dt.minSamplesSplit < 2 {
		return errors.NewValidationError("min_samples_split", "must be at least 2", dt.minSamplesSplit)
	}
	if dt.minSamplesLeaf < 1 {
		return errors.NewValidationError("min_samples_leaf", "must be at least 1", dt.minSamplesLeaf)
	}
	return nil
}

// Fit は訓練データから木を構築する。y はクラスラベルの n×1 行列。
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeClassifier.Fit")

	if err := dt.validate(); err != nil {
		return err
	}
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("DecisionTreeClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewDimensionError("DecisionTreeClassifier.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("DecisionTreeClassifier.Fit", "y must be a column vector")
	}

	// クラスラベルを昇順に並べてコード化
	labelSet := make(map[float64]struct{})
	for i := 0; i < rows; i++ {
		v := y.At(i, 0)
		if math.IsNaN(v) {
			return errors.NewValueError("DecisionTreeClassifier.Fit", "y contains NaN")
		}
		labelSet[v] = struct{}{}
	}
	dt.classes_ = make([]float64, 0, len(labelSet))
	for v := range labelSet {
		dt.classes_ = append(dt.classes_, v)
	}
	sort.Float64s(dt.classes_)
	dt.nClasses_ = len(dt.classes_)
	codeOf := make(map[float64]int, dt.nClasses_)
	for i, v := range dt.classes_ {
		codeOf[v] = i
	}

	b := &builder{
		dt:     dt,
		x:      mat.DenseCopyOf(X),
		codes:  make([]int, rows),
		nCols:  cols,
		scores: make([]float64, cols),
	}
	for i := 0; i < rows; i++ {
		b.codes[i] = codeOf[y.At(i, 0)]
	}

	dt.nFeatures_ = cols
	dt.nodes_ = dt.nodes_[:0]
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}
	b.grow(indices, 0)

	total := 0.0
	for _, s := range b.scores {
		total += s
	}
	dt.featureImportances_ = make([]float64, cols)
	if total > 0 {
		for j, s := range b.scores {
			dt.featureImportances_[j] = s / total
		}
	}

	dt.state.SetDimensions(cols, rows)
	dt.state.SetFitted()
	return nil
}

// builder は木の構築中の作業領域
type builder struct {
	dt     *DecisionTreeClassifier
	x      *mat.Dense
	codes  []int
	nCols  int
	scores []float64 // 特徴量ごとの重み付き不純度減少量
	nTotal int
}

func (b *builder) countClasses(indices []int) []float64 {
	counts := make([]float64, b.dt.nClasses_)
	for _, i := range indices {
		counts[b.codes[i]]++
	}
	return counts
}

// grow はノードを追加し、そのインデックスを返す
func (b *builder) grow(indices []int, depth int) int {
	if b.nTotal == 0 {
		b.nTotal = len(indices)
	}
	dt := b.dt
	counts := b.countClasses(indices)
	n := len(indices)
	imp := impurity(dt.criterion, counts, float64(n))

	id := len(dt.nodes_)
	dt.nodes_ = append(dt.nodes_, node{
		leaf:     true,
		depth:    depth,
		nSamples: n,
		impurity: imp,
		counts:   counts,
	})

	if imp <= 1e-12 ||
		n < dt.minSamplesSplit ||
		n < 2*dt.minSamplesLeaf ||
		(dt.maxDepth > 0 && depth >= dt.maxDepth) {
		return id
	}

	feature, threshold, gain, ok := b.bestSplit(indices, counts, imp)
	if !ok {
		return id
	}

	left := make([]int, 0, n)
	right := make([]int, 0, n)
	for _, i := range indices {
		if b.x.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	b.scores[feature] += gain * float64(n) / float64(b.nTotal)

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	dt.nodes_[id].leaf = false
	dt.nodes_[id].feature = feature
	dt.nodes_[id].threshold = threshold
	dt.nodes_[id].left = l
	dt.nodes_[id].right = r
	return id
}

// bestSplit は全特徴量・全閾値を走査して最良の分割を探す
func (b *builder) bestSplit(indices []int, parent []float64, parentImp float64) (feature int, threshold, gain float64, ok bool) {
	dt := b.dt
	n := len(indices)
	best := math.Inf(-1)
	sorted := make([]int, n)
	leftCounts := make([]float64, dt.nClasses_)
	rightCounts := make([]float64, dt.nClasses_)

	for f := 0; f < b.nCols; f++ {
		copy(sorted, indices)
		sort.SliceStable(sorted, func(a, c int) bool {
			return b.x.At(sorted[a], f) < b.x.At(sorted[c], f)
		})
		if b.x.At(sorted[0], f) == b.x.At(sorted[n-1], f) {
			continue // 定数特徴量
		}

		for k := range leftCounts {
			leftCounts[k] = 0
			rightCounts[k] = parent[k]
		}
		for pos := 0; pos < n-1; pos++ {
			code := b.codes[sorted[pos]]
			leftCounts[code]++
			rightCounts[code]--

			cur := b.x.At(sorted[pos], f)
			next := b.x.At(sorted[pos+1], f)
			if cur == next {
				continue
			}
			nLeft := pos + 1
			nRight := n - nLeft
			if nLeft < dt.minSamplesLeaf || nRight < dt.minSamplesLeaf {
				continue
			}

			childImp := (float64(nLeft)*impurity(dt.criterion, leftCounts, float64(nLeft)) +
				float64(nRight)*impurity(dt.criterion, rightCounts, float64(nRight))) / float64(n)
			g := parentImp - childImp
			if g > best+1e-12 {
				best = g
				feature = f
				threshold = cur + (next-cur)/2
				if threshold >= next {
					threshold = cur
				}
				ok = true
			}
		}
	}
	if ok && best < 0 {
		best = 0
	}
	return feature, threshold, best, ok
}

func impurity(criterion string, counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	switch criterion {
	case "entropy":
		h := 0.0
		for _, c := range counts {
			if c > 0 {
				p := c / n
				h -= p * math.Log2(p)
			}
		}
		return h
	default:
		g := 1.0
		for _, c := range counts {
			p := c / n
			g -= p * p
		}
		return g
	}
}

func (dt *DecisionTreeClassifier) leafFor(row []float64) *node {
	nd := &dt.nodes_[0]
	for !nd.leaf {
		if row[nd.feature] <= nd.threshold {
			nd = &dt.nodes_[nd.left]
		} else {
			nd = &dt.nodes_[nd.right]
		}
	}
	return nd
}

// PredictProba は各クラスの確率（葉のクラス比率）を返す
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if err := dt.state.RequireFitted("PredictProba"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if err := dt.state.RequireFeatures("DecisionTreeClassifier.PredictProba", cols); err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, dt.nClasses_, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, X)
		leaf := dt.leafFor(row)
		for k, c := range leaf.counts {
			out.Set(i, k, c/float64(leaf.nSamples))
		}
	}
	return out, nil
}

// Predict は確率が最大のクラスラベルを返す（同率の場合は小さいラベル）
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := dt.PredictProba(X)
	if err != nil {
		return nil, err
	}
	rows, _ := proba.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		bestK := 0
		for k := 1; k < dt.nClasses_; k++ {
			if proba.At(i, k) > proba.At(i, bestK) {
				bestK = k
			}
		}
		out.Set(i, 0, dt.classes_[bestK])
	}
	return out, nil
}

// Score は正解率を返す。予測できない場合は 0
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) float64 {
	pred, err := dt.Predict(X)
	if err != nil {
		return 0
	}
	rows, _ := y.Dims()
	if rows == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < rows; i++ {
		if pred.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rows)
}

// Classes は学習されたクラスラベルを昇順で返す
func (dt *DecisionTreeClassifier) Classes() []float64 {
	out := make([]float64, len(dt.classes_))
	copy(out, dt.classes_)
	return out
}

// GetFeatureImportances は正規化された不純度減少量を返す
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	out := make([]float64, len(dt.featureImportances_))
	copy(out, dt.featureImportances_)
	return out
}

// GetDepth は木の深さを返す
func (dt *DecisionTreeClassifier) GetDepth() int {
	depth := 0
	for _, nd := range dt.nodes_ {
		if nd.depth > depth {
			depth = nd.depth
		}
	}
	return depth
}

// GetNLeaves は葉の数を返す
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	n := 0
	for _, nd := range dt.nodes_ {
		if nd.leaf {
			n++
		}
	}
	return n
}

// GetParams はハイパーパラメータを返す
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"criterion":         dt.criterion,
		"max_depth":         dt.maxDepth,
		"min_samples_split": dt.minSamplesSplit,
		"min_samples_leaf":  dt.minSamplesLeaf,
	}
}

// SetParams はハイパーパラメータを設定する。数値は int / float64 / 文字列を受け付ける
func (dt *DecisionTreeClassifier) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "criterion":
			s, err := cast.ToStringE(value)
			if err != nil {
				return errors.NewValidationError(key, err.Error(), value)
			}
			dt.criterion = s
		case "max_depth", "min_samples_split", "min_samples_leaf":
			v, err := cast.ToIntE(value)
			if err != nil {
				return errors.NewValidationError(key, err.Error(), value)
			}
			switch key {
			case "max_depth":
				dt.maxDepth = v
			case "min_samples_split":
				dt.minSamplesSplit = v
			default:
				dt.minSamplesLeaf = v
			}
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return dt.validate()
}

// String は分類器の文字列表現を返す
func (dt *DecisionTreeClassifier) String() string {
	return fmt.Sprintf("DecisionTreeClassifier(criterion=%s, max_depth=%d)", dt.criterion, dt.maxDepth)
}
