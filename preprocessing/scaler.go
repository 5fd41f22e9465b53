package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// StandardScaler rescales designated numeric columns to zero mean and unit
// standard deviation. Fit learns the mean and population standard
// deviation of each column from the training rows only; Transform applies
// (x - mean) / std with the stored statistics, on either partition.
type StandardScaler struct {
	model.BaseEstimator

	// Columns are the names of the numeric columns to scale.
	Columns []string

	// Mean and Std hold the fitted statistics per column.
	Mean map[string]float64
	Std  map[string]float64
}

// NewStandardScaler creates a scaler for the named columns.
func NewStandardScaler(columns ...string) *StandardScaler {
	return &StandardScaler{Columns: columns}
}

// Fit computes mean and population standard deviation per column. A
// zero-variance column cannot be scaled and yields a ZeroVarianceError.
func (s *StandardScaler) Fit(t *dataset.Table) error {
	if t.NumRows() == 0 {
		return errors.NewInvalidInputError("StandardScaler.Fit", "", "empty table")
	}

	mean := make(map[string]float64, len(s.Columns))
	std := make(map[string]float64, len(s.Columns))
	for _, name := range s.Columns {
		col, err := t.Column(name)
		if err != nil {
			return err
		}
		if col.Type != dataset.Numeric {
			return errors.NewInvalidInputError("StandardScaler.Fit", name, "column must be numeric")
		}
		values := make([]float64, 0, col.Len())
		for i, v := range col.Floats {
			if col.IsMissing(i) {
				continue
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			return errors.NewInvalidInputError("StandardScaler.Fit", name, "column is entirely missing")
		}

		m := stat.Mean(values, nil)
		var sumSquares float64
		for _, v := range values {
			diff := v - m
			sumSquares += diff * diff
		}
		sd := math.Sqrt(sumSquares / float64(len(values)))
		if sd == 0 {
			return errors.NewZeroVarianceError("StandardScaler.Fit", name)
		}

		mean[name] = m
		std[name] = sd
	}

	s.Mean = mean
	s.Std = std
	s.SetFitted()
	return nil
}

// Transform returns a new Table with the fitted columns standardized using
// the stored training statistics. Missing cells stay missing.
func (s *StandardScaler) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	out := t
	for _, name := range s.Columns {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Type != dataset.Numeric {
			return nil, errors.NewInvalidInputError("StandardScaler.Transform", name, "column must be numeric")
		}

		m := s.Mean[name]
		sd := s.Std[name]
		scaled := make([]float64, len(col.Floats))
		for i, v := range col.Floats {
			scaled[i] = (v - m) / sd // NaN stays NaN
		}
		out, err = out.ReplaceColumn(dataset.NumericColumn(name, scaled))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FitTransform fits on t and transforms the same Table.
func (s *StandardScaler) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := s.Fit(t); err != nil {
		return nil, err
	}
	return s.Transform(t)
}
