// Package dataset provides the column-oriented Table that flows through the
// pipeline and the Frame (dense feature matrix plus ordered schema) handed
// to estimators.
//
// Tables are immutable from the caller's point of view: every operation
// returns a new Table and leaves its input untouched, so fitted train-side
// state can never alias into the test partition.
package dataset

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// ColumnType discriminates numeric from categorical columns.
type ColumnType int

const (
	// Numeric columns hold float64 values; NaN marks a missing cell.
	Numeric ColumnType = iota
	// Categorical columns hold string labels; "" marks a missing cell.
	Categorical
)

// String returns the column type name.
func (ct ColumnType) String() string {
	if ct == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Column is a named homogeneous sequence of values. Exactly one of Floats
// or Strings is populated, according to Type.
type Column struct {
	Name    string
	Type    ColumnType
	Floats  []float64
	Strings []string
}

// NumericColumn builds a numeric column. NaN entries are missing values.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Type: Numeric, Floats: values}
}

// CategoricalColumn builds a categorical column. Empty strings are missing
// values.
func CategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Type: Categorical, Strings: values}
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	if c.Type == Categorical {
		return len(c.Strings)
	}
	return len(c.Floats)
}

// IsMissing reports whether the cell at row is missing.
func (c Column) IsMissing(row int) bool {
	if c.Type == Categorical {
		return c.Strings[row] == ""
	}
	return math.IsNaN(c.Floats[row])
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	if c.Type == Categorical {
		out.Strings = make([]string, len(c.Strings))
		copy(out.Strings, c.Strings)
	} else {
		out.Floats = make([]float64, len(c.Floats))
		copy(out.Floats, c.Floats)
	}
	return out
}

func (c Column) cellKey(row int) string {
	if c.Type == Categorical {
		return c.Strings[row]
	}
	v := c.Floats[row]
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Table is an ordered collection of equal-length named columns. Rows are
// aligned across columns by position.
type Table struct {
	cols []Column
}

// New builds a Table from columns, validating that names are unique and all
// columns have the same length.
func New(cols ...Column) (*Table, error) {
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			return nil, errors.NewInvalidInputError("dataset.New", "", "column name must not be empty")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, errors.NewInvalidInputError("dataset.New", c.Name, "duplicate column name")
		}
		seen[c.Name] = struct{}{}
		if c.Len() != cols[0].Len() {
			return nil, errors.NewDimensionError("dataset.New", cols[0].Len(), c.Len(), 0)
		}
		_ = i
	}
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c.clone()
	}
	return &Table{cols: out}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Column returns the named column. The returned value shares no storage
// with the Table.
func (t *Table) Column(name string) (Column, error) {
	for _, c := range t.cols {
		if c.Name == name {
			return c.clone(), nil
		}
	}
	return Column{}, errors.NewInvalidInputError("Table.Column", name, "no such column")
}

// Clone returns a deep copy of the Table.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.clone()
	}
	return &Table{cols: cols}
}

// Drop returns a new Table without the named column.
func (t *Table) Drop(name string) (*Table, error) {
	if !t.HasColumn(name) {
		return nil, errors.NewInvalidInputError("Table.Drop", name, "no such column")
	}
	cols := make([]Column, 0, len(t.cols)-1)
	for _, c := range t.cols {
		if c.Name == name {
			continue
		}
		cols = append(cols, c.clone())
	}
	return &Table{cols: cols}, nil
}

// WithColumn returns a new Table with col appended. The column length must
// match the Table's row count and the name must be unused.
func (t *Table) WithColumn(col Column) (*Table, error) {
	if t.HasColumn(col.Name) {
		return nil, errors.NewInvalidInputError("Table.WithColumn", col.Name, "column already exists")
	}
	if len(t.cols) > 0 && col.Len() != t.NumRows() {
		return nil, errors.NewDimensionError("Table.WithColumn", t.NumRows(), col.Len(), 0)
	}
	cols := make([]Column, 0, len(t.cols)+1)
	for _, c := range t.cols {
		cols = append(cols, c.clone())
	}
	cols = append(cols, col.clone())
	return &Table{cols: cols}, nil
}

// ReplaceColumn returns a new Table with the named column replaced in
// place, keeping its position.
func (t *Table) ReplaceColumn(col Column) (*Table, error) {
	if !t.HasColumn(col.Name) {
		return nil, errors.NewInvalidInputError("Table.ReplaceColumn", col.Name, "no such column")
	}
	if col.Len() != t.NumRows() {
		return nil, errors.NewDimensionError("Table.ReplaceColumn", t.NumRows(), col.Len(), 0)
	}
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		if c.Name == col.Name {
			cols[i] = col.clone()
			continue
		}
		cols[i] = c.clone()
	}
	return &Table{cols: cols}, nil
}

// Select returns a new Table containing the given rows, in the given order.
func (t *Table) Select(rows []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		out := Column{Name: c.Name, Type: c.Type}
		if c.Type == Categorical {
			out.Strings = make([]string, len(rows))
			for j, r := range rows {
				out.Strings[j] = c.Strings[r]
			}
		} else {
			out.Floats = make([]float64, len(rows))
			for j, r := range rows {
				out.Floats[j] = c.Floats[r]
			}
		}
		cols[i] = out
	}
	return &Table{cols: cols}
}

// RowHasMissing reports whether any cell in the given row is missing.
func (t *Table) RowHasMissing(row int) bool {
	for _, c := range t.cols {
		if c.IsMissing(row) {
			return true
		}
	}
	return false
}

// RowKey returns a canonical string for the row, used for exact-duplicate
// detection. Two rows have the same key iff every cell compares equal
// (NaN cells compare equal to each other).
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for i, c := range t.cols {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(c.cellKey(row))
	}
	return b.String()
}

// Features splits the Table column-wise into a Frame of predictors and the
// designated target vector. All non-target columns must be numeric (encode
// categoricals first) and no missing values may remain.
func (t *Table) Features(target string) (*Frame, *mat.VecDense, error) {
	if !t.HasColumn(target) {
		return nil, nil, errors.NewInvalidInputError("Table.Features", target, "no such column")
	}
	rows := t.NumRows()
	if rows == 0 || t.NumCols() < 2 {
		return nil, nil, errors.NewInvalidInputError("Table.Features", "", "need at least one predictor column and one row")
	}

	names := make([]string, 0, len(t.cols)-1)
	var targetCol Column
	for _, c := range t.cols {
		if c.Name == target {
			if c.Type != Numeric {
				return nil, nil, errors.NewInvalidInputError("Table.Features", target, "target column must be numeric")
			}
			targetCol = c
			continue
		}
		if c.Type != Numeric {
			return nil, nil, errors.NewInvalidInputError("Table.Features", c.Name, "categorical column must be encoded before extracting features")
		}
		names = append(names, c.Name)
	}

	data := mat.NewDense(rows, len(names), nil)
	j := 0
	for _, c := range t.cols {
		if c.Name == target {
			continue
		}
		for i := 0; i < rows; i++ {
			if math.IsNaN(c.Floats[i]) {
				return nil, nil, errors.NewInvalidInputError("Table.Features", c.Name, "missing values remain; impute or drop them first")
			}
			data.Set(i, j, c.Floats[i])
		}
		j++
	}

	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		if math.IsNaN(targetCol.Floats[i]) {
			return nil, nil, errors.NewInvalidInputError("Table.Features", target, "missing values remain in target")
		}
		y.SetVec(i, targetCol.Floats[i])
	}

	frame, err := NewFrame(names, data)
	if err != nil {
		return nil, nil, err
	}
	return frame, y, nil
}
