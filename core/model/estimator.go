// Package model は推定器が満たすべき最小限のインターフェースを定義します。
// 予測可能性プローブはこれらのインターフェースのみに依存し、
// 決定木やリッジ回帰の具体的な型を知りません。
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は教師あり学習モデルの基本インターフェース
type Estimator interface {
	Fitter
	Predictor
}

// Classifier は分類器のインターフェース
type Classifier interface {
	Estimator

	// PredictProba は各クラスの確率を予測
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// ParamsGetter はハイパーパラメータを公開するモデルのインターフェース
type ParamsGetter interface {
	GetParams() map[string]interface{}
}

// ParamsSetter はハイパーパラメータの変更を許すモデルのインターフェース
type ParamsSetter interface {
	SetParams(params map[string]interface{}) error
}

// EstimatorFactory は交差検証の各分割で新しい未学習モデルを生成します。
type EstimatorFactory func() Estimator
