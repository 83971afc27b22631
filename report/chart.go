// Package report renders detection results as charts.
package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

// Chart size.
var (
	ChartWidth  = 6 * vg.Inch
	ChartHeight = 4 * vg.Inch
)

// CandidateChart は候補列ごとに最終スコアと予測可能性 P を並べた棒グラフを作成し、
// confirm_score を水平線で示します。
func CandidateChart(d target.Decision, th target.Thresholds) (*plot.Plot, error) {
	if len(d.Candidates) == 0 {
		return nil, errors.NewValidationError("candidates", "nothing to plot", 0)
	}

	names := make([]string, len(d.Candidates))
	scores := make(plotter.Values, len(d.Candidates))
	preds := make(plotter.Values, len(d.Candidates))
	for i, c := range d.Candidates {
		names[i] = c.Column
		scores[i] = c.Score
		preds[i] = c.Components.P
	}

	p := plot.New()
	p.Title.Text = "Target candidates"
	if d.JobID != "" {
		p.Title.Text += " (" + d.JobID + ")"
	}
	p.Y.Label.Text = "score"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	w := vg.Points(14)
	scoreBars, err := plotter.NewBarChart(scores, w)
	if err != nil {
		return nil, errors.Wrap(err, "score bars")
	}
	scoreBars.Color = plotutil.Color(0)
	scoreBars.Offset = -w / 2

	predBars, err := plotter.NewBarChart(preds, w)
	if err != nil {
		return nil, errors.Wrap(err, "predictability bars")
	}
	predBars.Color = plotutil.Color(1)
	predBars.Offset = w / 2

	confirm, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: th.ConfirmScore},
		{X: float64(len(names)) - 0.5, Y: th.ConfirmScore},
	})
	if err != nil {
		return nil, errors.Wrap(err, "confirm line")
	}
	confirm.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), scoreBars, predBars, confirm)
	p.Legend.Add("score", scoreBars)
	p.Legend.Add("P", predBars)
	p.Legend.Add("confirm_score", confirm)
	p.NominalX(names...)
	return p, nil
}

// WriteCandidateChart renders the chart in format ("png", "svg", "pdf", ...).
func WriteCandidateChart(w io.Writer, d target.Decision, th target.Thresholds, format string) error {
	p, err := CandidateChart(d, th)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, ChartHeight, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported chart format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write chart")
	}
	return nil
}

// SaveCandidateChart writes the chart to path; the format follows the extension.
func SaveCandidateChart(path string, d target.Decision, th target.Thresholds) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return errors.NewValidationError("path", "missing file extension", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := WriteCandidateChart(f, d, th, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
