// Package linear implements least-squares linear regression on feature
// Frames.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/core/parallel"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/metrics"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// LinearRegression fits ordinary least squares via the normal equations
// w = (XᵀX)⁻¹ Xᵀy. The feature schema seen at fit time is recorded and
// enforced at predict time.
type LinearRegression struct {
	model.BaseEstimator

	weights      *mat.VecDense
	intercept    float64
	featureNames []string
}

// NewLinearRegression creates an unfitted linear regression model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit trains the model on the aligned feature Frame and target vector.
// Refitting overwrites all prior state.
func (lr *LinearRegression) Fit(X *dataset.Frame, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearRegression.Fit")
	}
	if y.Len() != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, y.Len(), 0)
	}

	// Prepend a column of ones for the intercept term.
	XWithIntercept := mat.NewDense(r, c+1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "LinearRegression.Fit")
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, y)

	solution := mat.NewVecDense(c+1, nil)
	solution.MulVec(&XTXInv, &XTy)

	lr.intercept = solution.AtVec(0)
	lr.weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.weights.SetVec(i, solution.AtVec(i+1))
	}
	lr.featureNames = X.Names()

	lr.SetFitted()
	return nil
}

// Predict returns one prediction per row of X. The Frame schema must match
// the fit-time schema exactly, including column order.
func (lr *LinearRegression) Predict(X *dataset.Frame) (*mat.VecDense, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	if !X.SameSchema(lr.featureNames) {
		return nil, errors.NewSchemaError("LinearRegression.Predict", lr.featureNames, X.Names())
	}

	r, c := X.Dims()
	predictions := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred := lr.intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.weights.AtVec(j)
		}
		predictions.SetVec(i, pred)
	}
	return predictions, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (lr *LinearRegression) Score(X *dataset.Frame, y *mat.VecDense) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// Weights returns the fitted coefficients, aligned with FeatureNames.
func (lr *LinearRegression) Weights() []float64 {
	if lr.weights == nil {
		return nil
	}
	weights := make([]float64, lr.weights.Len())
	for i := 0; i < lr.weights.Len(); i++ {
		weights[i] = lr.weights.AtVec(i)
	}
	return weights
}

// Intercept returns the fitted intercept.
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.intercept
}

// FeatureNames returns the feature schema recorded at fit time.
func (lr *LinearRegression) FeatureNames() []string {
	out := make([]string, len(lr.featureNames))
	copy(out, lr.featureNames)
	return out
}
