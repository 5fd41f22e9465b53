package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// OneHotEncoder expands one categorical column into one 0/1 numeric
// indicator column per category observed during Fit, named
// "<column>=<category>", and removes the original column. The indicator
// columns take the position of the original column, so the Table schema
// stays deterministic across partitions.
//
// A non-missing category seen at Transform time that was absent at Fit
// time is a SchemaError: silently dropping unknown categories would hide
// train/test drift. Missing cells produce all-zero indicators.
type OneHotEncoder struct {
	model.BaseEstimator

	// Column is the name of the categorical column to encode.
	Column string

	// DropFirst omits the indicator for the first (sorted) category, making
	// it the reference level. Required when the downstream model carries an
	// intercept, since a full indicator set sums to the intercept column and
	// leaves the normal equations singular.
	DropFirst bool

	// Categories holds the distinct non-missing categories observed during
	// Fit, sorted for a stable output schema.
	Categories []string
}

// NewOneHotEncoder creates an encoder for the named column.
func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{Column: column}
}

// Fit records the sorted distinct categories of the column.
func (e *OneHotEncoder) Fit(t *dataset.Table) error {
	col, err := t.Column(e.Column)
	if err != nil {
		return err
	}
	if col.Type != dataset.Categorical {
		return errors.NewInvalidInputError("OneHotEncoder.Fit", e.Column, "column must be categorical")
	}

	seen := make(map[string]struct{})
	for i, v := range col.Strings {
		if col.IsMissing(i) {
			continue
		}
		seen[v] = struct{}{}
	}
	if len(seen) == 0 {
		return errors.NewInvalidInputError("OneHotEncoder.Fit", e.Column, "column is entirely missing")
	}

	categories := make([]string, 0, len(seen))
	for v := range seen {
		categories = append(categories, v)
	}
	sort.Strings(categories)

	e.Categories = categories
	e.SetFitted()
	return nil
}

// Transform replaces the column with the fitted indicator columns.
func (e *OneHotEncoder) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	col, err := t.Column(e.Column)
	if err != nil {
		return nil, err
	}
	if col.Type != dataset.Categorical {
		return nil, errors.NewInvalidInputError("OneHotEncoder.Transform", e.Column, "column must be categorical")
	}

	index := make(map[string]int, len(e.Categories))
	for i, c := range e.Categories {
		index[c] = i
	}

	indicators := make([][]float64, len(e.Categories))
	for i := range indicators {
		indicators[i] = make([]float64, col.Len())
	}
	for row, v := range col.Strings {
		if col.IsMissing(row) {
			continue
		}
		k, known := index[v]
		if !known {
			return nil, errors.NewSchemaError("OneHotEncoder.Transform", e.Categories, []string{v})
		}
		indicators[k][row] = 1
	}

	first := 0
	if e.DropFirst {
		first = 1
	}

	// Splice the indicator columns in at the position of the original.
	cols := make([]dataset.Column, 0, t.NumCols()-1+len(e.Categories)-first)
	for _, name := range t.Names() {
		if name != e.Column {
			c, cerr := t.Column(name)
			if cerr != nil {
				return nil, cerr
			}
			cols = append(cols, c)
			continue
		}
		for k := first; k < len(e.Categories); k++ {
			cols = append(cols, dataset.NumericColumn(e.Column+"="+e.Categories[k], indicators[k]))
		}
	}
	return dataset.New(cols...)
}

// FitTransform fits on t and transforms the same Table.
func (e *OneHotEncoder) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}
