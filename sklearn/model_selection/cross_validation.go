package model_selection

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/metrics"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// Scorer は予測値を評価する関数。大きいほど良い。
type Scorer func(yTrue, yPred mat.Matrix) (float64, error)

// CVResult stores cross-validation results
type CVResult struct {
	TestScores []float64 // 評価不能な fold は NaN
	FitTimes   []float64 // 秒
}

// GetMeanScore returns mean of the finite test scores, or NaN if there are none
func (cv *CVResult) GetMeanScore() float64 {
	finite := cv.finiteScores()
	if len(finite) == 0 {
		return math.NaN()
	}
	return stat.Mean(finite, nil)
}

// GetStdScore returns standard deviation of the finite test scores
func (cv *CVResult) GetStdScore() float64 {
	finite := cv.finiteScores()
	if len(finite) <= 1 {
		return 0.0
	}
	return stat.StdDev(finite, nil)
}

// NValid returns the number of folds that produced a finite score
func (cv *CVResult) NValid() int {
	return len(cv.finiteScores())
}

func (cv *CVResult) finiteScores() []float64 {
	out := make([]float64, 0, len(cv.TestScores))
	for _, s := range cv.TestScores {
		if !math.IsNaN(s) && !math.IsInf(s, 0) {
			out = append(out, s)
		}
	}
	return out
}

// CrossValidate は各 fold で factory から新しいモデルを作って学習・評価する。
//
// 評価指標が定義できない fold（テスト側の目的変数が定数で R² が計算できない等）は
// NaN として記録し、警告を出して次の fold に進む。それ以外のエラーは即座に返す。
func CrossValidate(factory model.EstimatorFactory, X, y mat.Matrix, splitter KFoldSplitter, scorer Scorer) (*CVResult, error) {
	folds, err := splitter.Split(X, y)
	if err != nil {
		return nil, err
	}
	nFolds := len(folds)

	result := &CVResult{
		TestScores: make([]float64, nFolds),
		FitTimes:   make([]float64, nFolds),
	}

	for idx, fold := range folds {
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		testX, testY := extractSubset(X, y, fold.TestIndices)

		est := factory()
		start := time.Now()
		if err := est.Fit(trainX, trainY); err != nil {
			return nil, errors.Wrapf(err, "fold %d training failed", idx)
		}
		result.FitTimes[idx] = time.Since(start).Seconds()

		pred, err := est.Predict(testX)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d test prediction failed", idx)
		}

		score, err := scorer(testY, pred)
		if err != nil {
			if errors.Is(err, metrics.ErrZeroVariance) {
				errors.Warn(errors.NewUndefinedMetricWarning("score", "constant target in test fold", math.NaN()))
				result.TestScores[idx] = math.NaN()
				continue
			}
			return nil, errors.Wrapf(err, "fold %d scoring failed", idx)
		}
		result.TestScores[idx] = score
	}

	return result, nil
}

// CrossValScore は各 fold のテストスコアを返す
func CrossValScore(factory model.EstimatorFactory, X, y mat.Matrix, splitter KFoldSplitter, scorer Scorer) ([]float64, error) {
	res, err := CrossValidate(factory, X, y, splitter, scorer)
	if err != nil {
		return nil, err
	}
	return res.TestScores, nil
}

// extractSubset extracts subset of data based on indices
func extractSubset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	xSubset := mat.NewDense(rows, xCols, nil)
	ySubset := mat.NewDense(rows, yCols, nil)

	for i, idx := range indices {
		for j := 0; j < xCols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySubset.Set(i, j, y.At(idx, j))
		}
	}

	return xSubset, ySubset
}
