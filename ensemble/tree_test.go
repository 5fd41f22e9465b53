package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/dataset"
	pkgerrors "github.com/YuminosukeSato/tablepipe/pkg/errors"
)

func frame(t *testing.T, names []string, rows int, values []float64) *dataset.Frame {
	t.Helper()
	f, err := dataset.NewFrame(names, mat.NewDense(rows, len(names), values))
	require.NoError(t, err)
	return f
}

func TestDecisionTreeRegressorFit(t *testing.T) {
	t.Run("fits a step function exactly", func(t *testing.T) {
		X := frame(t, []string{"x"}, 6, []float64{1, 2, 3, 10, 11, 12})
		y := mat.NewVecDense(6, []float64{5, 5, 5, 20, 20, 20})

		dt := NewDecisionTreeRegressor(3)
		require.NoError(t, dt.Fit(X, y))

		pred, err := dt.Predict(frame(t, []string{"x"}, 2, []float64{2, 11}))
		require.NoError(t, err)
		assert.InDelta(t, 5.0, pred.AtVec(0), 1e-12)
		assert.InDelta(t, 20.0, pred.AtVec(1), 1e-12)
	})

	t.Run("constant target yields a single leaf", func(t *testing.T) {
		X := frame(t, []string{"x"}, 4, []float64{1, 2, 3, 4})
		y := mat.NewVecDense(4, []float64{7, 7, 7, 7})

		dt := NewDecisionTreeRegressor(5)
		require.NoError(t, dt.Fit(X, y))
		assert.Equal(t, 0, dt.Depth())

		pred, err := dt.Predict(frame(t, []string{"x"}, 1, []float64{99}))
		require.NoError(t, err)
		assert.InDelta(t, 7.0, pred.AtVec(0), 1e-12)
	})

	t.Run("max depth caps the tree", func(t *testing.T) {
		X := frame(t, []string{"x"}, 8, []float64{1, 2, 3, 4, 5, 6, 7, 8})
		y := mat.NewVecDense(8, []float64{1, 2, 3, 4, 5, 6, 7, 8})

		dt := NewDecisionTreeRegressor(2)
		require.NoError(t, dt.Fit(X, y))
		assert.LessOrEqual(t, dt.Depth(), 2)
	})

	t.Run("row count mismatch is a DimensionError", func(t *testing.T) {
		X := frame(t, []string{"x"}, 3, []float64{1, 2, 3})
		y := mat.NewVecDense(2, []float64{1, 2})

		dt := NewDecisionTreeRegressor(2)
		err := dt.Fit(X, y)
		var de *pkgerrors.DimensionError
		require.True(t, pkgerrors.As(err, &de))
	})

	t.Run("refit on identical data is deterministic", func(t *testing.T) {
		X := frame(t, []string{"a", "b"}, 5, []float64{
			1, 9,
			2, 8,
			3, 7,
			4, 6,
			5, 5,
		})
		y := mat.NewVecDense(5, []float64{2, 4, 8, 16, 32})

		first := NewDecisionTreeRegressor(4)
		require.NoError(t, first.Fit(X, y))
		second := NewDecisionTreeRegressor(4)
		require.NoError(t, second.Fit(X, y))

		probe := frame(t, []string{"a", "b"}, 3, []float64{1.5, 8.5, 3.5, 6.5, 4.5, 5.5})
		p1, err := first.Predict(probe)
		require.NoError(t, err)
		p2, err := second.Predict(probe)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.Equal(t, p1.AtVec(i), p2.AtVec(i))
		}
	})
}

func TestDecisionTreeRegressorPredict(t *testing.T) {
	t.Run("before fit is a NotFittedError", func(t *testing.T) {
		dt := NewDecisionTreeRegressor(2)
		_, err := dt.Predict(frame(t, []string{"x"}, 1, []float64{1}))
		var nfe *pkgerrors.NotFittedError
		require.True(t, pkgerrors.As(err, &nfe))
	})

	t.Run("schema mismatch is a SchemaError", func(t *testing.T) {
		X := frame(t, []string{"x"}, 2, []float64{1, 2})
		y := mat.NewVecDense(2, []float64{1, 2})

		dt := NewDecisionTreeRegressor(2)
		require.NoError(t, dt.Fit(X, y))

		_, err := dt.Predict(frame(t, []string{"z"}, 1, []float64{1}))
		var se *pkgerrors.SchemaError
		require.True(t, pkgerrors.As(err, &se))
	})
}

func TestDecisionTreeRegressorScore(t *testing.T) {
	X := frame(t, []string{"x"}, 6, []float64{1, 2, 3, 10, 11, 12})
	y := mat.NewVecDense(6, []float64{5, 5, 5, 20, 20, 20})

	dt := NewDecisionTreeRegressor(3)
	require.NoError(t, dt.Fit(X, y))

	r2, err := dt.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12)
}
