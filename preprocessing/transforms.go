// Package preprocessing implements the cleaning and encoding stages of the
// pipeline. Stateless transforms are plain functions from Table to Table;
// train-fitted transforms (MeanImputer, OneHotEncoder, StandardScaler) are
// estimators that learn their statistics from the training partition in
// Fit and reuse them verbatim in Transform. No transform mutates its input.
package preprocessing

import (
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Dedup removes exact-duplicate rows. The first occurrence of each row
// survives and the surviving rows keep their original relative order.
// NaN cells compare equal to each other, so duplicated rows with the same
// missing cells are collapsed too.
func Dedup(t *dataset.Table) *dataset.Table {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	return t.Select(keep)
}

// DropMissingRows removes every row that still has a missing value in any
// column. It runs after targeted imputation, on both partitions.
func DropMissingRows(t *dataset.Table) *dataset.Table {
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if t.RowHasMissing(i) {
			continue
		}
		keep = append(keep, i)
	}
	return t.Select(keep)
}

// FilterOutliers removes rows whose value in the named numeric column is
// strictly greater than threshold. Rows equal to the threshold are
// retained. The threshold is configuration, not a learned statistic, so
// the filter applies identically to both partitions.
func FilterOutliers(t *dataset.Table, column string, threshold float64) (*dataset.Table, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Type != dataset.Numeric {
		return nil, errors.NewInvalidInputError("preprocessing.FilterOutliers", column, "column must be numeric")
	}
	keep := make([]int, 0, t.NumRows())
	for i, v := range col.Floats {
		if v > threshold {
			continue
		}
		keep = append(keep, i)
	}
	return t.Select(keep), nil
}

// NonzeroIndicator appends a numeric 0/1 column named dst that is 1 where
// the source column is nonzero. Missing source cells stay missing in the
// indicator. Pure row-wise; nothing is learned.
func NonzeroIndicator(t *dataset.Table, src, dst string) (*dataset.Table, error) {
	col, err := t.Column(src)
	if err != nil {
		return nil, err
	}
	if col.Type != dataset.Numeric {
		return nil, errors.NewInvalidInputError("preprocessing.NonzeroIndicator", src, "column must be numeric")
	}
	values := make([]float64, len(col.Floats))
	for i, v := range col.Floats {
		switch {
		case col.IsMissing(i):
			values[i] = col.Floats[i] // propagate NaN
		case v != 0:
			values[i] = 1
		default:
			values[i] = 0
		}
	}
	return t.WithColumn(dataset.NumericColumn(dst, values))
}
