// Package ensemble implements decision-tree based regressors, currently a
// variance-reduction regression tree and a bootstrap-aggregated random
// forest built on top of it.
package ensemble

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tablepipe/core/model"
	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/metrics"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// treeNode is a node of a fitted regression tree. Leaves carry the mean
// target of their training rows; internal nodes route on feature <= threshold.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// DecisionTreeRegressor is a CART-style regression tree. Splits minimize the
// weighted sum of squared errors of the two children; growth stops at
// MaxDepth, below MinSamplesSplit rows, or when no split reduces the error.
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// MaxDepth limits tree depth. Zero or negative means unlimited.
	MaxDepth int
	// MinSamplesSplit is the smallest node size still eligible for a split.
	MinSamplesSplit int

	root         *treeNode
	featureNames []string
}

// NewDecisionTreeRegressor creates a tree limited to maxDepth levels.
func NewDecisionTreeRegressor(maxDepth int) *DecisionTreeRegressor {
	return &DecisionTreeRegressor{
		MaxDepth:        maxDepth,
		MinSamplesSplit: 2,
	}
}

// Fit grows the tree on the aligned feature Frame and target vector.
func (dt *DecisionTreeRegressor) Fit(X *dataset.Frame, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "DecisionTreeRegressor.Fit")
	}
	if y.Len() != r {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", r, y.Len(), 0)
	}

	indices := make([]int, r)
	for i := range indices {
		indices[i] = i
	}
	dt.root = dt.grow(X, y, indices, 0)
	dt.featureNames = X.Names()
	dt.SetFitted()
	return nil
}

func (dt *DecisionTreeRegressor) grow(X *dataset.Frame, y *mat.VecDense, indices []int, depth int) *treeNode {
	mean := meanTarget(y, indices)

	if len(indices) < dt.MinSamplesSplit {
		return &treeNode{leaf: true, value: mean}
	}
	if dt.MaxDepth > 0 && depth >= dt.MaxDepth {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(X, y, indices)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var leftIdx, rightIdx []int
	for _, i := range indices {
		if X.At(i, feature) <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &treeNode{leaf: true, value: mean}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      dt.grow(X, y, leftIdx, depth+1),
		right:     dt.grow(X, y, rightIdx, depth+1),
	}
}

// bestSplit scans every feature and every midpoint between consecutive
// distinct values, returning the split with the lowest weighted SSE. The
// scan order is deterministic so refits on identical data produce identical
// trees.
func bestSplit(X *dataset.Frame, y *mat.VecDense, indices []int) (feature int, threshold float64, ok bool) {
	_, c := X.Dims()
	n := len(indices)

	parentSSE := sseTarget(y, indices)
	bestSSE := parentSSE

	values := make([]float64, 0, n)
	for j := 0; j < c; j++ {
		values = values[:0]
		for _, i := range indices {
			values = append(values, X.At(i, j))
		}
		sort.Float64s(values)

		for k := 0; k+1 < n; k++ {
			if values[k] == values[k+1] {
				continue
			}
			mid := (values[k] + values[k+1]) / 2

			var leftSum, rightSum float64
			var leftN, rightN int
			for _, i := range indices {
				v := y.AtVec(i)
				if X.At(i, j) <= mid {
					leftSum += v
					leftN++
				} else {
					rightSum += v
					rightN++
				}
			}
			if leftN == 0 || rightN == 0 {
				continue
			}

			leftMean := leftSum / float64(leftN)
			rightMean := rightSum / float64(rightN)
			var sse float64
			for _, i := range indices {
				v := y.AtVec(i)
				if X.At(i, j) <= mid {
					sse += (v - leftMean) * (v - leftMean)
				} else {
					sse += (v - rightMean) * (v - rightMean)
				}
			}
			if sse < bestSSE {
				bestSSE = sse
				feature = j
				threshold = mid
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func meanTarget(y *mat.VecDense, indices []int) float64 {
	if len(indices) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, i := range indices {
		sum += y.AtVec(i)
	}
	return sum / float64(len(indices))
}

func sseTarget(y *mat.VecDense, indices []int) float64 {
	mean := meanTarget(y, indices)
	var sse float64
	for _, i := range indices {
		d := y.AtVec(i) - mean
		sse += d * d
	}
	return sse
}

// Predict returns one prediction per row of X. The Frame schema must match
// the fit-time schema exactly.
func (dt *DecisionTreeRegressor) Predict(X *dataset.Frame) (*mat.VecDense, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}
	if !X.SameSchema(dt.featureNames) {
		return nil, errors.NewSchemaError("DecisionTreeRegressor.Predict", dt.featureNames, X.Names())
	}

	r, _ := X.Dims()
	predictions := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		node := dt.root
		for !node.leaf {
			if X.At(i, node.feature) <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		predictions.SetVec(i, node.value)
	}
	return predictions, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (dt *DecisionTreeRegressor) Score(X *dataset.Frame, y *mat.VecDense) (float64, error) {
	if !dt.IsFitted() {
		return 0, errors.NewNotFittedError("DecisionTreeRegressor", "Score")
	}
	yPred, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, yPred)
}

// Depth returns the depth of the fitted tree. A single leaf has depth 0.
func (dt *DecisionTreeRegressor) Depth() int {
	return nodeDepth(dt.root)
}

func nodeDepth(n *treeNode) int {
	if n == nil || n.leaf {
		return 0
	}
	left := nodeDepth(n.left)
	right := nodeDepth(n.right)
	if left > right {
		return left + 1
	}
	return right + 1
}
