// Package pipeline は前処理と推定器を一つの推定器として連結します。
package pipeline

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/core/model"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// Pipeline は変換器を順に適用し、最後に推定器で学習・予測する。
// 交差検証の各 fold で新しく作れば、前処理の統計量は訓練側だけから学習される。
type Pipeline struct {
	state *model.StateManager

	steps []model.Transformer
	final model.Estimator
}

// NewPipeline creates a pipeline ending in the given estimator
func NewPipeline(final model.Estimator, steps ...model.Transformer) *Pipeline {
	return &Pipeline{
		state: model.NewStateManager("Pipeline"),
		steps: steps,
		final: final,
	}
}

// Fit は各変換器を FitTransform し、変換後のデータで推定器を学習する
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	if p.final == nil {
		return errors.NewValueError("Pipeline.Fit", "final estimator is nil")
	}
	Xt := X
	for i, step := range p.steps {
		out, err := step.FitTransform(Xt)
		if err != nil {
			return errors.Wrapf(err, "pipeline step %d (%T)", i, step)
		}
		Xt = out
	}
	if err := p.final.Fit(Xt, y); err != nil {
		return errors.Wrapf(err, "pipeline final estimator (%T)", p.final)
	}
	rows, cols := X.Dims()
	p.state.SetDimensions(cols, rows)
	p.state.SetFitted()
	return nil
}

// Predict は学習済みの変換を適用して推定器で予測する
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	Xt := X
	for i, step := range p.steps {
		out, err := step.Transform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline step %d (%T)", i, step)
		}
		Xt = out
	}
	return p.final.Predict(Xt)
}

// Final returns the final estimator
func (p *Pipeline) Final() model.Estimator {
	return p.final
}

func (p *Pipeline) String() string {
	names := make([]string, 0, len(p.steps)+1)
	for _, s := range p.steps {
		names = append(names, fmt.Sprint(s))
	}
	names = append(names, fmt.Sprint(p.final))
	return "Pipeline(" + strings.Join(names, " -> ") + ")"
}
