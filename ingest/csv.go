// Package ingest は CSV を型付きの dataset.Dataset に変換します。
//
// 列の型は欠損以外の全セルから推論します:
//   - 全て数値として解釈できる → numeric
//   - 全て日時として解釈できる → datetime
//   - それ以外 → categorical
//
// 空セルと NA/null 等のトークンは欠損として扱います。
package ingest

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/dataset"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/log"
)

// DefaultMissingTokens are the cell values read as missing (compared case-insensitively).
var DefaultMissingTokens = []string{"", "na", "n/a", "nan", "null", "none"}

type options struct {
	comma   rune
	missing map[string]struct{}
	logger  log.Logger
}

// Option configures ReadCSV.
type Option func(*options)

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(o *options) { o.comma = r }
}

// WithMissingTokens replaces the set of tokens read as missing.
func WithMissingTokens(tokens ...string) Option {
	return func(o *options) {
		o.missing = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			o.missing[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for inference diagnostics.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ReadFile opens path and reads it with ReadCSV.
func ReadFile(path string, opts ...Option) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCSV(f, opts...)
}

// ReadCSV reads a header row followed by data rows. Every row must have as
// many fields as the header.
func ReadCSV(r io.Reader, opts ...Option) (*dataset.Dataset, error) {
	o := &options{comma: ','}
	WithMissingTokens(DefaultMissingTokens...)(o)
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("ingest")
	}

	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("csv", "missing header row", nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cells := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv row")
		}
		for j, v := range rec {
			cells[j] = append(cells[j], strings.TrimSpace(v))
		}
	}

	cols := make([]dataset.Column, len(header))
	for j, name := range header {
		cols[j] = o.buildColumn(name, cells[j])
		o.logger.Debug("Column kind inferred",
			log.ColumnKey, name,
			"kind", cols[j].Kind().String(),
		)
	}

	ds, err := dataset.New(cols...)
	if err != nil {
		return nil, err
	}
	o.logger.Info("CSV loaded",
		log.SamplesKey, ds.NumRows(),
		log.FeaturesKey, ds.NumColumns(),
	)
	return ds, nil
}

func (o *options) isMissing(v string) bool {
	_, ok := o.missing[strings.ToLower(v)]
	return ok
}

// buildColumn は numeric → datetime → categorical の順に型を試します。
// 全セル欠損の列は numeric になります。
func (o *options) buildColumn(name string, raw []string) dataset.Column {
	if nums, ok := o.parseNumeric(raw); ok {
		return dataset.NewNumeric(name, nums)
	}
	if times, valid, ok := o.parseDatetime(raw); ok {
		return dataset.NewDatetime(name, times, valid)
	}
	valid := make([]bool, len(raw))
	for i, v := range raw {
		valid[i] = !o.isMissing(v)
	}
	return dataset.NewCategorical(name, raw, valid)
}

func (o *options) parseNumeric(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	for i, v := range raw {
		if o.isMissing(v) {
			out[i] = math.NaN()
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func (o *options) parseDatetime(raw []string) ([]time.Time, []bool, bool) {
	times := make([]time.Time, len(raw))
	valid := make([]bool, len(raw))
	for i, v := range raw {
		if o.isMissing(v) {
			continue
		}
		t, err := cast.ToTimeE(v)
		if err != nil {
			return nil, nil, false
		}
		times[i] = t.UTC()
		valid[i] = true
	}
	return times, valid, true
}
