package dataset

import (
	"unicode/utf8"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// ColumnProfile は列の派生統計量です。
type ColumnProfile struct {
	Name            string  `json:"name"`
	Kind            Kind    `json:"kind"`
	UniqueCount     int     `json:"unique_count"`
	MissingFraction float64 `json:"missing_fraction"`
}

// Profile computes the profile of a column. Missing cells are not counted
// as a distinct value; the missing fraction of an empty column is 0.
func Profile(col Column) ColumnProfile {
	n := col.Len()
	seen := make(map[string]struct{})
	missing := 0
	for i := 0; i < n; i++ {
		if col.IsMissing(i) {
			missing++
			continue
		}
		seen[col.Key(i)] = struct{}{}
	}
	return ColumnProfile{
		Name:            col.Name(),
		Kind:            col.Kind(),
		UniqueCount:     len(seen),
		MissingFraction: errors.SafeDivide(float64(missing), float64(n)),
	}
}

// Profiles computes the profile of every column in order.
func Profiles(ds *Dataset) []ColumnProfile {
	out := make([]ColumnProfile, ds.NumColumns())
	for i := range out {
		out[i] = Profile(ds.Column(i))
	}
	return out
}

// ValueCounts counts present cells by canonical key.
func ValueCounts(col Column) (counts map[string]int, present int) {
	counts = make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		counts[col.Key(i)]++
		present++
	}
	return counts, present
}

// MeanRuneLength returns the mean length in runes of the present values of
// a categorical column, and 0 when no value is present.
func MeanRuneLength(col *CategoricalColumn) float64 {
	total, present := 0, 0
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Value(i)
		if !ok {
			continue
		}
		total += utf8.RuneCountInString(v)
		present++
	}
	if present == 0 {
		return 0
	}
	return float64(total) / float64(present)
}

// Factorize encodes a column as integer codes in order of first appearance.
// Missing cells form their own class, numbered like any other value.
func Factorize(col Column, rows []int) (codes []int, nClasses int) {
	const missingKey = "\x00missing"
	seen := make(map[string]int)
	codes = make([]int, len(rows))
	for j, i := range rows {
		key := missingKey
		if !col.IsMissing(i) {
			key = "v:" + col.Key(i)
		}
		code, ok := seen[key]
		if !ok {
			code = len(seen)
			seen[key] = code
		}
		codes[j] = code
	}
	return codes, len(seen)
}
