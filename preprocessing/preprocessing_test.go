package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScalerDefault()
	out, err := s.FitTransform(X)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, s.Mean[0], 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), s.Scale[0], 1e-12)
	// 定数列はスケール1で0に揃う
	assert.Equal(t, 1.0, s.Scale[1])
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.0, out.At(i, 1), 1e-12)
	}

	var mean, sq float64
	for i := 0; i < 4; i++ {
		mean += out.At(i, 0)
		sq += out.At(i, 0) * out.At(i, 0)
	}
	assert.InDelta(t, 0.0, mean/4, 1e-12)
	assert.InDelta(t, 1.0, sq/4, 1e-12)

	back, err := s.InverseTransform(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=true, n_features=2)", s.String())
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, nil))
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))
}

func TestSimpleImputerMedian(t *testing.T) {
	nan := math.NaN()
	X := mat.NewDense(4, 3, []float64{
		1, nan, nan,
		nan, 2, nan,
		3, 4, nan,
		10, 9, nan,
	})

	imp := NewSimpleImputer(StrategyMedian, 0)
	out, err := imp.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 4, 0}, imp.Statistics)
	assert.Equal(t, 3.0, out.At(1, 0))
	assert.Equal(t, 4.0, out.At(0, 1))
	assert.Equal(t, 0.0, out.At(2, 2))
	assert.Equal(t, 10.0, out.At(3, 0))
}

func TestSimpleImputerMeanAndConstant(t *testing.T) {
	nan := math.NaN()
	X := mat.NewDense(3, 1, []float64{1, nan, 5})

	mean := NewSimpleImputer(StrategyMean, 0)
	out, err := mean.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.At(1, 0))

	constant := NewSimpleImputer(StrategyConstant, -1)
	out, err = constant.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, -1.0, out.At(1, 0))
	assert.Equal(t, 1.0, out.At(0, 0))
}

func TestSimpleImputerInvalidStrategy(t *testing.T) {
	err := NewSimpleImputer("mode", 0).Fit(mat.NewDense(1, 1, []float64{1}))
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}
