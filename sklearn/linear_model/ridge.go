package linear_model

import (
	"fmt"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/parallel"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Ridge は L2 正則化付きの線形回帰モデル
// scikit-learn の Ridge と同じく切片は正則化しない（X と y を中心化して解く）
type Ridge struct {
	state *model.StateManager

	// Hyperparameters
	alpha        float64 // 正則化の強さ
	fitIntercept bool    // 切片を学習するかどうか

	// Learned parameters
	coef_      []float64
	intercept_ float64
	nFeatures_ int
}

// RidgeOption は Ridge の設定オプション
type RidgeOption func(*Ridge)

// WithAlpha は正則化の強さを設定
func WithAlpha(alpha float64) RidgeOption {
	return func(r *Ridge) {
		r.alpha = alpha
	}
}

// WithFitIntercept は切片の学習有無を設定
func WithFitIntercept(fit bool) RidgeOption {
	return func(r *Ridge) {
		r.fitIntercept = fit
	}
}

// NewRidge は新しい Ridge モデルを作成（デフォルト alpha=1.0）
func NewRidge(options ...RidgeOption) *Ridge {
	r := &Ridge{
		state:        model.NewStateManager("Ridge"),
		alpha:        1.0,
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Fit は正規方程式 (XᵀX + αI) w = Xᵀy を解いてモデルを学習
func (r *Ridge) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	if rows == 0 || cols == 0 {
		return errors.NewModelError("Ridge.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewDimensionError("Ridge.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("Ridge.Fit", "y must be a column vector")
	}
	if r.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", r.alpha)
	}

	xMean := make([]float64, cols)
	var yMean float64
	if r.fitIntercept {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				xMean[j] += X.At(i, j)
			}
			yMean += y.At(i, 0)
		}
		for j := range xMean {
			xMean[j] /= float64(rows)
		}
		yMean /= float64(rows)
	}

	// 中心化した X と y
	Xc := mat.NewDense(rows, cols, nil)
	yc := mat.NewVecDense(rows, nil)

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < cols; j++ {
				Xc.Set(i, j, X.At(i, j)-xMean[j])
			}
			yc.SetVec(i, y.At(i, 0)-yMean)
		}
	})

	var gram mat.Dense
	gram.Mul(Xc.T(), Xc)
	for j := 0; j < cols; j++ {
		gram.Set(j, j, gram.At(j, j)+r.alpha)
	}

	var xty mat.VecDense
	xty.MulVec(Xc.T(), yc)

	w := mat.NewVecDense(cols, nil)
	var chol mat.Cholesky
	if chol.Factorize(mat.NewSymDense(cols, gram.RawMatrix().Data)) {
		if err := chol.SolveVecTo(w, &xty); err != nil {
			return errors.NewModelError("Ridge.Fit", "cholesky solve", err)
		}
	} else if err := w.SolveVec(&gram, &xty); err != nil {
		return errors.NewModelError("Ridge.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	r.coef_ = make([]float64, cols)
	intercept := yMean
	for j := 0; j < cols; j++ {
		r.coef_[j] = w.AtVec(j)
		intercept -= xMean[j] * r.coef_[j]
	}
	if !r.fitIntercept {
		intercept = 0
	}
	r.intercept_ = intercept
	r.nFeatures_ = cols

	if err := errors.CheckNumericalStability("Ridge.Fit", r.coef_, 0); err != nil {
		return err
	}

	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()
	return nil
}

// Predict は入力データに対する予測を行う
func (r *Ridge) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := r.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	rows, cols := X.Dims()
	if err := r.state.RequireFeatures("Ridge.Predict", cols); err != nil {
		return nil, err
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := r.intercept_
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * r.coef_[j]
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Coef は学習された重み係数を返す
func (r *Ridge) Coef() []float64 {
	if r.coef_ == nil {
		return nil
	}
	coef := make([]float64, len(r.coef_))
	copy(coef, r.coef_)
	return coef
}

// Intercept は学習された切片を返す
func (r *Ridge) Intercept() float64 {
	return r.intercept_
}

// GetParams はハイパーパラメータを返す
func (r *Ridge) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"alpha":         r.alpha,
		"fit_intercept": r.fitIntercept,
	}
}

// String はモデルの文字列表現を返す
func (r *Ridge) String() string {
	return fmt.Sprintf("Ridge(alpha=%g, fit_intercept=%t)", r.alpha, r.fitIntercept)
}
