package model_selection

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/metrics"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// SweepResult is the cross-validated outcome of one hyperparameter pair.
// MeanR2 is the mean of the per-fold R² scores; RMSE is the square root of
// the mean of the per-fold MSEs.
type SweepResult struct {
	Trees  int
	Depth  int
	MeanR2 float64
	RMSE   float64
}

// GridSearch cross-validates every (trees, depth) pair from the two grids.
// Factory must return a fresh unfitted model for each pair and fold.
type GridSearch struct {
	Factory   func(trees, depth int) model.Regressor
	TreeGrid  []int
	DepthGrid []int
	Folds     int
	Seed      uint64
}

// Run evaluates the full grid on (X, y) and returns one SweepResult per
// pair, in grid order (trees outer, depth inner). All pairs share the same
// fold assignment.
func (gs *GridSearch) Run(X *dataset.Frame, y *mat.VecDense) ([]SweepResult, error) {
	if gs.Factory == nil {
		return nil, errors.NewInvalidInputError("GridSearch.Run", "", "nil model factory")
	}
	if len(gs.TreeGrid) == 0 || len(gs.DepthGrid) == 0 {
		return nil, errors.NewInvalidInputError("GridSearch.Run", "", "empty hyperparameter grid")
	}

	r, _ := X.Dims()
	if y.Len() != r {
		return nil, errors.NewDimensionError("GridSearch.Run", r, y.Len(), 0)
	}

	folds, err := NewKFold(gs.Folds, gs.Seed).Split(r)
	if err != nil {
		return nil, errors.Wrap(err, "GridSearch.Run")
	}

	results := make([]SweepResult, 0, len(gs.TreeGrid)*len(gs.DepthGrid))
	for _, trees := range gs.TreeGrid {
		for _, depth := range gs.DepthGrid {
			var sumR2, sumMSE float64
			for _, fold := range folds {
				reg := gs.Factory(trees, depth)
				if err := reg.Fit(X.Rows(fold.Train), vecRows(y, fold.Train)); err != nil {
					return nil, errors.Wrap(err, "GridSearch.Run")
				}

				yTest := vecRows(y, fold.Test)
				yPred, err := reg.Predict(X.Rows(fold.Test))
				if err != nil {
					return nil, errors.Wrap(err, "GridSearch.Run")
				}

				r2, err := metrics.R2Score(yTest, yPred)
				if err != nil {
					return nil, errors.Wrap(err, "GridSearch.Run")
				}
				mse, err := metrics.MSE(yTest, yPred)
				if err != nil {
					return nil, errors.Wrap(err, "GridSearch.Run")
				}
				sumR2 += r2
				sumMSE += mse
			}

			nFolds := float64(len(folds))
			results = append(results, SweepResult{
				Trees:  trees,
				Depth:  depth,
				MeanR2: sumR2 / nFolds,
				RMSE:   math.Sqrt(sumMSE / nFolds),
			})
		}
	}
	return results, nil
}

// Best returns the result with the highest mean R². Ties keep the earliest
// result in grid order.
func Best(results []SweepResult) (SweepResult, error) {
	if len(results) == 0 {
		return SweepResult{}, errors.Wrap(errors.ErrEmptyData, "model_selection.Best")
	}
	best := results[0]
	for _, res := range results[1:] {
		if res.MeanR2 > best.MeanR2 {
			best = res
		}
	}
	return best, nil
}

func vecRows(y *mat.VecDense, indices []int) *mat.VecDense {
	out := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		out.SetVec(i, y.AtVec(idx))
	}
	return out
}
