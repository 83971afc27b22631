// Package dataset はターゲット検出エンジンへの入力となる、型付けされた
// インメモリの表形式データを提供します。
//
// 列は数値・カテゴリ・日時の三種類に閉じており、Column インターフェースは
// パッケージ外から実装できません。構築後の Dataset は読み取り専用です。
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind は列の推論済みの型です。
type Kind int

const (
	// KindNumeric は float64 の列（NaN は欠損）
	KindNumeric Kind = iota
	// KindCategorical は文字列の列
	KindCategorical
	// KindDatetime は時刻の列
	KindDatetime
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	case KindDatetime:
		return "datetime"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindNumeric, KindCategorical, KindDatetime:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("dataset: unknown kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses "numeric", "categorical" or "datetime".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric":
		return KindNumeric, nil
	case "categorical":
		return KindCategorical, nil
	case "datetime":
		return KindDatetime, nil
	}
	return KindNumeric, fmt.Errorf("dataset: unknown kind %q", s)
}

// Column は一列分のデータです。実装は NumericColumn, CategoricalColumn,
// DatetimeColumn の三つに限られます。
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	// IsMissing reports whether cell i holds no value.
	IsMissing(i int) bool
	// Key returns a canonical string for a present cell. It is used for
	// distinct counting, factorizing and hashing; the result for a missing
	// cell is the empty string.
	Key(i int) string

	sealed()
}

// NumericColumn is a float64 column. NaN marks a missing cell.
type NumericColumn struct {
	name   string
	values []float64
}

// NewNumeric copies values into a new numeric column.
func NewNumeric(name string, values []float64) *NumericColumn {
	v := make([]float64, len(values))
	copy(v, values)
	return &NumericColumn{name: name, values: v}
}

func (c *NumericColumn) Name() string         { return c.name }
func (c *NumericColumn) Kind() Kind           { return KindNumeric }
func (c *NumericColumn) Len() int             { return len(c.values) }
func (c *NumericColumn) IsMissing(i int) bool { return math.IsNaN(c.values[i]) }
func (c *NumericColumn) At(i int) float64     { return c.values[i] }
func (c *NumericColumn) sealed()              {}

// Values exposes the backing slice. Callers must not modify it.
func (c *NumericColumn) Values() []float64 { return c.values }

func (c *NumericColumn) Key(i int) string {
	v := c.values[i]
	if math.IsNaN(v) {
		return ""
	}
	if v == 0 {
		v = 0 // -0 と 0 を同一視
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Present returns the observed (non-NaN) values in row order.
func (c *NumericColumn) Present() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// CategoricalColumn is a string column with an explicit validity mask.
type CategoricalColumn struct {
	name   string
	values []string
	valid  []bool
}

// NewCategorical copies values into a new categorical column. A nil valid
// mask marks every cell present; otherwise it must have the same length.
func NewCategorical(name string, values []string, valid []bool) *CategoricalColumn {
	v := make([]string, len(values))
	copy(v, values)
	m := make([]bool, len(values))
	for i := range m {
		m[i] = valid == nil || (i < len(valid) && valid[i])
	}
	return &CategoricalColumn{name: name, values: v, valid: m}
}

func (c *CategoricalColumn) Name() string         { return c.name }
func (c *CategoricalColumn) Kind() Kind           { return KindCategorical }
func (c *CategoricalColumn) Len() int             { return len(c.values) }
func (c *CategoricalColumn) IsMissing(i int) bool { return !c.valid[i] }
func (c *CategoricalColumn) sealed()              {}

func (c *CategoricalColumn) Key(i int) string {
	if !c.valid[i] {
		return ""
	}
	return c.values[i]
}

// Value returns the cell and whether it is present.
func (c *CategoricalColumn) Value(i int) (string, bool) {
	return c.values[i], c.valid[i]
}

// DatetimeColumn is a time column with an explicit validity mask.
type DatetimeColumn struct {
	name   string
	values []time.Time
	valid  []bool
}

// NewDatetime copies values into a new datetime column. A nil valid mask
// marks every non-zero time present.
func NewDatetime(name string, values []time.Time, valid []bool) *DatetimeColumn {
	v := make([]time.Time, len(values))
	copy(v, values)
	m := make([]bool, len(values))
	for i := range m {
		if valid == nil {
			m[i] = !values[i].IsZero()
		} else {
			m[i] = i < len(valid) && valid[i]
		}
	}
	return &DatetimeColumn{name: name, values: v, valid: m}
}

func (c *DatetimeColumn) Name() string         { return c.name }
func (c *DatetimeColumn) Kind() Kind           { return KindDatetime }
func (c *DatetimeColumn) Len() int             { return len(c.values) }
func (c *DatetimeColumn) IsMissing(i int) bool { return !c.valid[i] }
func (c *DatetimeColumn) sealed()              {}

func (c *DatetimeColumn) Key(i int) string {
	if !c.valid[i] {
		return ""
	}
	return c.values[i].UTC().Format(time.RFC3339Nano)
}

// Value returns the cell and whether it is present.
func (c *DatetimeColumn) Value(i int) (time.Time, bool) {
	return c.values[i], c.valid[i]
}
