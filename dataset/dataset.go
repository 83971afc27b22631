package dataset

import (
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// Dataset は名前付き列の順序付き集合です。行は列間で位置により揃っています。
type Dataset struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New validates the columns and builds a dataset. Column names must be
// unique and non-empty, and every column must have the same length.
// A dataset with no columns has zero rows.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c == nil {
			return nil, errors.NewValidationError("columns", "nil column", i)
		}
		name := c.Name()
		if name == "" {
			return nil, errors.NewValidationError("columns", "empty column name", i)
		}
		if _, dup := ds.index[name]; dup {
			return nil, errors.NewValidationError("columns", "duplicate column name", name)
		}
		if i == 0 {
			ds.rows = c.Len()
		} else if c.Len() != ds.rows {
			return nil, errors.NewDimensionError("dataset.New("+name+")", ds.rows, c.Len(), 0)
		}
		ds.index[name] = i
		ds.cols = append(ds.cols, c)
	}
	return ds, nil
}

// MustNew is New that panics on error. Intended for tests and fixtures.
func MustNew(cols ...Column) *Dataset {
	ds, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return d.rows }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.cols) }

// Column returns the i-th column.
func (d *Dataset) Column(i int) Column { return d.cols[i] }

// Columns returns the columns in order. The slice is a copy.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// Lookup returns the column with the given name.
func (d *Dataset) Lookup(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// IndexOf returns the position of the named column, or -1.
func (d *Dataset) IndexOf(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Numeric returns the numeric columns in dataset order.
func (d *Dataset) Numeric() []*NumericColumn {
	var out []*NumericColumn
	for _, c := range d.cols {
		if nc, ok := c.(*NumericColumn); ok {
			out = append(out, nc)
		}
	}
	return out
}
