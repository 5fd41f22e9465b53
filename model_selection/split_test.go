package model_selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/tablepipe/dataset"
	pkgerrors "github.com/YuminosukeSato/tablepipe/pkg/errors"
)

func idTable(t *testing.T, n int) *dataset.Table {
	t.Helper()
	ids := make([]float64, n)
	for i := range ids {
		ids[i] = float64(i)
	}
	tbl, err := dataset.New(dataset.NumericColumn("id", ids))
	require.NoError(t, err)
	return tbl
}

func ids(t *testing.T, tbl *dataset.Table) []float64 {
	t.Helper()
	col, err := tbl.Column("id")
	require.NoError(t, err)
	return col.Floats
}

func TestTrainTestSplit(t *testing.T) {
	t.Run("partitions are disjoint and cover the table", func(t *testing.T) {
		tbl := idTable(t, 10)
		train, test, err := TrainTestSplit(tbl, 0.2, 42)
		require.NoError(t, err)

		assert.Equal(t, 8, train.NumRows())
		assert.Equal(t, 2, test.NumRows())

		seen := map[float64]bool{}
		for _, v := range ids(t, train) {
			seen[v] = true
		}
		for _, v := range ids(t, test) {
			assert.False(t, seen[v], "row %v appears in both partitions", v)
			seen[v] = true
		}
		assert.Len(t, seen, 10)
	})

	t.Run("same seed reproduces the same split", func(t *testing.T) {
		tbl := idTable(t, 20)
		_, test1, err := TrainTestSplit(tbl, 0.25, 7)
		require.NoError(t, err)
		_, test2, err := TrainTestSplit(tbl, 0.25, 7)
		require.NoError(t, err)
		assert.Equal(t, ids(t, test1), ids(t, test2))
	})

	t.Run("different seeds produce different splits", func(t *testing.T) {
		tbl := idTable(t, 50)
		_, test1, err := TrainTestSplit(tbl, 0.2, 1)
		require.NoError(t, err)
		_, test2, err := TrainTestSplit(tbl, 0.2, 2)
		require.NoError(t, err)
		assert.NotEqual(t, ids(t, test1), ids(t, test2))
	})

	t.Run("test size rounds to nearest integer", func(t *testing.T) {
		// 0.2 * 7 = 1.4 rounds to 1; 0.25 * 10 = 2.5 rounds to 3.
		_, test, err := TrainTestSplit(idTable(t, 7), 0.2, 42)
		require.NoError(t, err)
		assert.Equal(t, 1, test.NumRows())

		_, test, err = TrainTestSplit(idTable(t, 10), 0.25, 42)
		require.NoError(t, err)
		assert.Equal(t, 3, test.NumRows())
	})

	t.Run("rows keep their original order within each partition", func(t *testing.T) {
		tbl := idTable(t, 30)
		train, test, err := TrainTestSplit(tbl, 0.3, 42)
		require.NoError(t, err)

		assert.IsNonDecreasing(t, ids(t, train))
		assert.IsNonDecreasing(t, ids(t, test))
	})

	t.Run("fraction out of range is an InvalidInputError", func(t *testing.T) {
		tbl := idTable(t, 10)
		for _, frac := range []float64{0, 1, -0.5, 1.5} {
			_, _, err := TrainTestSplit(tbl, frac, 42)
			var iie *pkgerrors.InvalidInputError
			require.True(t, pkgerrors.As(err, &iie), "fraction %v", frac)
		}
	})

	t.Run("split leaving a partition empty is rejected", func(t *testing.T) {
		_, _, err := TrainTestSplit(idTable(t, 2), 0.1, 42)
		var iie *pkgerrors.InvalidInputError
		require.True(t, pkgerrors.As(err, &iie))
	})

	t.Run("empty table is rejected", func(t *testing.T) {
		tbl, err := dataset.New(dataset.NumericColumn("id", nil))
		require.NoError(t, err)
		_, _, err = TrainTestSplit(tbl, 0.2, 42)
		assert.True(t, pkgerrors.Is(err, pkgerrors.ErrEmptyData))
	})
}
