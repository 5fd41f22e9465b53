package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/dataset"
)

// Regressor is the capability set every trainable model in the pipeline
// implements. Fit consumes an aligned feature Frame and target vector,
// Predict maps a Frame with the fitted schema to one prediction per row,
// and Score returns the coefficient of determination R².
type Regressor interface {
	// Fit trains the model. Refitting overwrites prior internal state.
	Fit(X *dataset.Frame, y *mat.VecDense) error

	// Predict returns one predicted value per row of X. The Frame schema
	// (column names and order) must match what Fit saw.
	Predict(X *dataset.Frame) (*mat.VecDense, error)

	// Score returns R² of the predictions against y.
	Score(X *dataset.Frame, y *mat.VecDense) (float64, error)
}

// TableTransformer is a train-fitted transform over Tables. Fit learns
// statistics from the training partition only; Transform applies the stored
// statistics without recomputing them.
type TableTransformer interface {
	Fit(t *dataset.Table) error
	Transform(t *dataset.Table) (*dataset.Table, error)
	FitTransform(t *dataset.Table) (*dataset.Table, error)
}
