package metrics

import (
	"sort"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := vecLen(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if vecLen(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, vecLen(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// BalancedAccuracy はクラスごとの再現率の平均を計算する
//
// yTrue に現れるクラスのみを平均の対象とし、yPred にしか現れないラベルは
// 無視される（scikit-learn の balanced_accuracy_score と同じ）。
// クラスが一つしかない場合、その再現率がそのまま返る。
func BalancedAccuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := vecLen(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("BalancedAccuracy", "empty vector")
	}
	if vecLen(yPred) != n {
		return 0, errors.NewDimensionError("BalancedAccuracy", n, vecLen(yPred), 0)
	}

	support := make(map[float64]int)
	hits := make(map[float64]int)
	for i := 0; i < n; i++ {
		label := yTrue.AtVec(i)
		support[label]++
		if yPred.AtVec(i) == label {
			hits[label]++
		}
	}

	// 合計順序を固定して浮動小数点の結果を決定的にする
	labels := make([]float64, 0, len(support))
	for label := range support {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	var sum float64
	for _, label := range labels {
		sum += float64(hits[label]) / float64(support[label])
	}
	return sum / float64(len(labels)), nil
}

// BalancedAccuracyMatrix は n×1 行列形式の入力に対して BalancedAccuracy を計算する
func BalancedAccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := columnVector("BalancedAccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := columnVector("BalancedAccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return BalancedAccuracy(t, p)
}
