package model_selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/ensemble"
	pkgerrors "github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// offsetRegressor predicts the first feature plus a fixed offset. With a
// feature column equal to the target, each fold's MSE is exactly offset².
type offsetRegressor struct {
	offset float64
}

func (o *offsetRegressor) Fit(X *dataset.Frame, y *mat.VecDense) error { return nil }

func (o *offsetRegressor) Predict(X *dataset.Frame) (*mat.VecDense, error) {
	r, _ := X.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, X.At(i, 0)+o.offset)
	}
	return out, nil
}

func (o *offsetRegressor) Score(X *dataset.Frame, y *mat.VecDense) (float64, error) {
	return 0, nil
}

func gridFrame(t *testing.T, values []float64) (*dataset.Frame, *mat.VecDense) {
	t.Helper()
	f, err := dataset.NewFrame([]string{"x"}, mat.NewDense(len(values), 1, values))
	require.NoError(t, err)
	return f, mat.NewVecDense(len(values), values)
}

func TestGridSearchRun(t *testing.T) {
	t.Run("RMSE is the root of the mean fold MSE", func(t *testing.T) {
		X, y := gridFrame(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

		// One model per fold; fold k predicts with offset k+1, so the five
		// fold MSEs are 1, 4, 9, 16, 25.
		foldCount := 0
		gs := &GridSearch{
			Factory: func(trees, depth int) model.Regressor {
				foldCount++
				return &offsetRegressor{offset: float64(foldCount)}
			},
			TreeGrid:  []int{1},
			DepthGrid: []int{1},
			Folds:     5,
			Seed:      42,
		}

		results, err := gs.Run(X, y)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, math.Sqrt((1.0+4+9+16+25)/5), results[0].RMSE, 1e-12)
	})

	t.Run("sweeps the full grid in order", func(t *testing.T) {
		X, y := gridFrame(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

		gs := &GridSearch{
			Factory: func(trees, depth int) model.Regressor {
				return &offsetRegressor{}
			},
			TreeGrid:  []int{10, 50},
			DepthGrid: []int{2, 4, 8},
			Folds:     5,
			Seed:      42,
		}

		results, err := gs.Run(X, y)
		require.NoError(t, err)
		require.Len(t, results, 6)
		assert.Equal(t, 10, results[0].Trees)
		assert.Equal(t, 2, results[0].Depth)
		assert.Equal(t, 10, results[2].Trees)
		assert.Equal(t, 8, results[2].Depth)
		assert.Equal(t, 50, results[5].Trees)
		assert.Equal(t, 8, results[5].Depth)
	})

	t.Run("same seed reproduces identical sweeps with real forests", func(t *testing.T) {
		values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4}
		X, y := gridFrame(t, values)

		run := func() []SweepResult {
			gs := &GridSearch{
				Factory: func(trees, depth int) model.Regressor {
					return ensemble.NewRandomForestRegressor(trees, depth, 42)
				},
				TreeGrid:  []int{5, 10},
				DepthGrid: []int{2, 3},
				Folds:     4,
				Seed:      7,
			}
			results, err := gs.Run(X, y)
			require.NoError(t, err)
			return results
		}

		assert.Equal(t, run(), run())
	})

	t.Run("empty grid is rejected", func(t *testing.T) {
		X, y := gridFrame(t, []float64{0, 1, 2, 3, 4})
		gs := &GridSearch{
			Factory:   func(trees, depth int) model.Regressor { return &offsetRegressor{} },
			TreeGrid:  nil,
			DepthGrid: []int{2},
			Folds:     5,
			Seed:      42,
		}
		_, err := gs.Run(X, y)
		var iie *pkgerrors.InvalidInputError
		require.True(t, pkgerrors.As(err, &iie))
	})

	t.Run("nil factory is rejected", func(t *testing.T) {
		X, y := gridFrame(t, []float64{0, 1, 2, 3, 4})
		gs := &GridSearch{TreeGrid: []int{1}, DepthGrid: []int{1}, Folds: 5, Seed: 42}
		_, err := gs.Run(X, y)
		var iie *pkgerrors.InvalidInputError
		require.True(t, pkgerrors.As(err, &iie))
	})
}

func TestBest(t *testing.T) {
	t.Run("picks the highest mean R²", func(t *testing.T) {
		results := []SweepResult{
			{Trees: 10, Depth: 2, MeanR2: 0.71},
			{Trees: 10, Depth: 4, MeanR2: 0.85},
			{Trees: 50, Depth: 4, MeanR2: 0.82},
		}
		best, err := Best(results)
		require.NoError(t, err)
		assert.Equal(t, 10, best.Trees)
		assert.Equal(t, 4, best.Depth)
	})

	t.Run("ties keep grid order", func(t *testing.T) {
		results := []SweepResult{
			{Trees: 10, Depth: 2, MeanR2: 0.8},
			{Trees: 50, Depth: 2, MeanR2: 0.8},
		}
		best, err := Best(results)
		require.NoError(t, err)
		assert.Equal(t, 10, best.Trees)
	})

	t.Run("empty results are rejected", func(t *testing.T) {
		_, err := Best(nil)
		assert.True(t, pkgerrors.Is(err, pkgerrors.ErrEmptyData))
	})
}
