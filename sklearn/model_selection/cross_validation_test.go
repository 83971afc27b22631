package model_selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/metrics"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/sklearn/linear_model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/sklearn/tree"
)

func TestCrossValScoreRidge(t *testing.T) {
	n := 60
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		a := float64(i % 13)
		b := float64((i * 7) % 11)
		X.Set(i, 0, a)
		X.Set(i, 1, b)
		y.Set(i, 0, 3*a-2*b+1)
	}

	factory := func() model.Estimator { return linear_model.NewRidge(linear_model.WithAlpha(1e-6)) }
	scores, err := CrossValScore(factory, X, y, NewKFold(3, true, 42), metrics.R2ScoreMatrix)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.InDelta(t, 1.0, s, 1e-6)
	}
}

func TestCrossValidateTree(t *testing.T) {
	n := 40
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		if i >= 20 {
			y.Set(i, 0, 1)
		}
	}

	factory := func() model.Estimator { return tree.NewDecisionTreeClassifier(tree.WithMaxDepth(4)) }
	res, err := CrossValidate(factory, X, y, NewStratifiedKFold(4, true, 42), metrics.BalancedAccuracyMatrix)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NValid())
	assert.Greater(t, res.GetMeanScore(), 0.9)
	assert.GreaterOrEqual(t, res.GetStdScore(), 0.0)
}

func TestCrossValidateSkipsUndefinedFolds(t *testing.T) {
	prev := func(error) {}
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(func() { errors.SetWarningHandler(prev) })

	// テスト側 fold の目的変数が定数になる
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(6, 1, []float64{5, 5, 7, 8, 9, 9})

	factory := func() model.Estimator { return linear_model.NewRidge() }
	res, err := CrossValidate(factory, X, y, NewKFold(3, false, 0), metrics.R2ScoreMatrix)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(res.TestScores[0]))
	assert.False(t, math.IsNaN(res.TestScores[1]))
	assert.True(t, math.IsNaN(res.TestScores[2]))
	assert.Equal(t, 1, res.NValid())
	assert.Len(t, warnings, 2)
}

func TestCVResultEmpty(t *testing.T) {
	res := &CVResult{TestScores: []float64{math.NaN()}}
	assert.True(t, math.IsNaN(res.GetMeanScore()))
	assert.Equal(t, 0.0, res.GetStdScore())
}

func TestCrossValidatePropagatesFitErrors(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})

	factory := func() model.Estimator { return linear_model.NewRidge(linear_model.WithAlpha(-1)) }
	_, err := CrossValScore(factory, X, y, NewKFold(3, false, 0), metrics.R2ScoreMatrix)
	assert.Error(t, err)
}
