package ensemble

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/core/parallel"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/metrics"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// RandomForestRegressor bags NumTrees regression trees, each grown on a
// bootstrap sample of the training rows, and predicts the mean of the tree
// predictions. Tree i draws its bootstrap from a PCG stream seeded with
// Seed+i, so a given (data, config, seed) triple always yields the same
// forest regardless of goroutine scheduling.
type RandomForestRegressor struct {
	model.BaseEstimator

	NumTrees int
	MaxDepth int
	Seed     uint64

	trees        []*DecisionTreeRegressor
	featureNames []string
}

// NewRandomForestRegressor creates an unfitted forest.
func NewRandomForestRegressor(numTrees, maxDepth int, seed uint64) *RandomForestRegressor {
	return &RandomForestRegressor{
		NumTrees: numTrees,
		MaxDepth: maxDepth,
		Seed:     seed,
	}
}

// Fit grows the forest. Refitting overwrites all prior state.
func (rf *RandomForestRegressor) Fit(X *dataset.Frame, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "RandomForestRegressor.Fit")
	}
	if y.Len() != r {
		return errors.NewDimensionError("RandomForestRegressor.Fit", r, y.Len(), 0)
	}
	if rf.NumTrees <= 0 {
		return errors.NewInvalidInputError("RandomForestRegressor.Fit", "", "NumTrees must be positive")
	}

	trees := make([]*DecisionTreeRegressor, rf.NumTrees)
	errs := make([]error, rf.NumTrees)

	parallel.Parallelize(rf.NumTrees, func(start, end int) {
		for i := start; i < end; i++ {
			// Bootstrap seeds are derived from the tree index, not from a
			// shared stream, so parallel growth stays deterministic.
			rng := rand.New(rand.NewPCG(rf.Seed+uint64(i), rf.Seed+uint64(i)))

			sample := make([]int, r)
			for k := range sample {
				sample[k] = rng.IntN(r)
			}

			sampleY := mat.NewVecDense(r, nil)
			for k, idx := range sample {
				sampleY.SetVec(k, y.AtVec(idx))
			}

			tree := NewDecisionTreeRegressor(rf.MaxDepth)
			errs[i] = tree.Fit(X.Rows(sample), sampleY)
			trees[i] = tree
		}
	})

	for _, err := range errs {
		if err != nil {
			return errors.Wrap(err, "RandomForestRegressor.Fit")
		}
	}

	rf.trees = trees
	rf.featureNames = X.Names()
	rf.SetFitted()
	return nil
}

// Predict averages the per-tree predictions for each row of X.
func (rf *RandomForestRegressor) Predict(X *dataset.Frame) (*mat.VecDense, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}
	if !X.SameSchema(rf.featureNames) {
		return nil, errors.NewSchemaError("RandomForestRegressor.Predict", rf.featureNames, X.Names())
	}

	r, _ := X.Dims()
	sum := mat.NewVecDense(r, nil)
	for _, tree := range rf.trees {
		pred, err := tree.Predict(X)
		if err != nil {
			return nil, errors.Wrap(err, "RandomForestRegressor.Predict")
		}
		sum.AddVec(sum, pred)
	}
	sum.ScaleVec(1/float64(len(rf.trees)), sum)
	return sum, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (rf *RandomForestRegressor) Score(X *dataset.Frame, y *mat.VecDense) (float64, error) {
	if !rf.IsFitted() {
		return 0, errors.NewNotFittedError("RandomForestRegressor", "Score")
	}
	yPred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}
