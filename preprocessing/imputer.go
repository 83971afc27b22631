package preprocessing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ImputeStrategy は欠損値（NaN）の補完方法
type ImputeStrategy string

const (
	// StrategyMean は列の平均で補完
	StrategyMean ImputeStrategy = "mean"
	// StrategyMedian は列の中央値で補完
	StrategyMedian ImputeStrategy = "median"
	// StrategyConstant は固定値で補完
	StrategyConstant ImputeStrategy = "constant"
)

// SimpleImputer はscikit-learn互換の単純な欠損値補完器
//
// 学習データで全て欠損の列は補完値 FillValue を使う（scikit-learn は列を
// 落とすが、ここでは列数を保つ）。
type SimpleImputer struct {
	state *model.StateManager

	Strategy  ImputeStrategy
	FillValue float64

	// Statistics は各列の補完値
	Statistics []float64
}

// NewSimpleImputer は新しいSimpleImputerを作成する
func NewSimpleImputer(strategy ImputeStrategy, fillValue float64) *SimpleImputer {
	return &SimpleImputer{
		state:     model.NewStateManager("SimpleImputer"),
		Strategy:  strategy,
		FillValue: fillValue,
	}
}

// Fit は各列の補完値を計算する
func (s *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}
	switch s.Strategy {
	case StrategyMean, StrategyMedian, StrategyConstant:
	default:
		return errors.NewValidationError("strategy", "must be mean, median or constant", s.Strategy)
	}

	s.Statistics = make([]float64, c)
	col := make(stats.Float64Data, 0, r)
	for j := 0; j < c; j++ {
		if s.Strategy == StrategyConstant {
			s.Statistics[j] = s.FillValue
			continue
		}
		col = col[:0]
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				col = append(col, v)
			}
		}
		if len(col) == 0 {
			s.Statistics[j] = s.FillValue
			continue
		}
		var (
			v   float64
			err error
		)
		if s.Strategy == StrategyMedian {
			v, err = stats.Median(col)
		} else {
			v, err = stats.Mean(col)
		}
		if err != nil {
			return errors.NewModelError("SimpleImputer.Fit", string(s.Strategy), err)
		}
		s.Statistics[j] = v
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は NaN を学習済みの補完値で置き換える
func (s *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := s.state.RequireFeatures("SimpleImputer.Transform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = s.Statistics[j]
			}
			result.Set(i, j, v)
		}
	}
	return result, nil
}

// FitTransform は学習と変換を同時に実行する
func (s *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// String は補完器の文字列表現を返す
func (s *SimpleImputer) String() string {
	return fmt.Sprintf("SimpleImputer(strategy=%s)", s.Strategy)
}
