package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// MeanImputer fills missing values of one designated numeric column with
// the column mean. The mean is computed over the non-missing training rows
// in Fit and is never recomputed: Transform on the held-out partition uses
// the stored training mean, which is the pipeline's no-leakage guarantee.
type MeanImputer struct {
	model.BaseEstimator

	// Column is the name of the numeric column to impute.
	Column string

	// Mean is the fitted imputation value.
	Mean float64
}

// NewMeanImputer creates an imputer for the named column.
func NewMeanImputer(column string) *MeanImputer {
	return &MeanImputer{Column: column}
}

// Fit computes the mean of the column over non-missing rows of t.
func (m *MeanImputer) Fit(t *dataset.Table) error {
	col, err := t.Column(m.Column)
	if err != nil {
		return err
	}
	if col.Type != dataset.Numeric {
		return errors.NewInvalidInputError("MeanImputer.Fit", m.Column, "column must be numeric")
	}

	var sum float64
	var n int
	for i, v := range col.Floats {
		if col.IsMissing(i) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return errors.NewInvalidInputError("MeanImputer.Fit", m.Column, "column is entirely missing")
	}

	m.Mean = sum / float64(n)
	m.SetFitted()
	return nil
}

// Transform returns a new Table with missing cells of the column replaced
// by the fitted mean. Values in t never influence the imputation value.
func (m *MeanImputer) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MeanImputer", "Transform")
	}
	col, err := t.Column(m.Column)
	if err != nil {
		return nil, err
	}
	if col.Type != dataset.Numeric {
		return nil, errors.NewInvalidInputError("MeanImputer.Transform", m.Column, "column must be numeric")
	}

	filled := make([]float64, len(col.Floats))
	for i, v := range col.Floats {
		if math.IsNaN(v) {
			filled[i] = m.Mean
			continue
		}
		filled[i] = v
	}

	return t.ReplaceColumn(dataset.NumericColumn(m.Column, filled))
}

// FitTransform fits on t and transforms the same Table.
func (m *MeanImputer) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := m.Fit(t); err != nil {
		return nil, err
	}
	return m.Transform(t)
}
