// Package model_selection provides the seeded train/test splitter, k-fold
// cross-validation, and the cross-validated hyperparameter grid sweep.
package model_selection

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/tablepipe/dataset"
	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// TrainTestSplit partitions a Table into disjoint train and test Tables.
// testFraction of the rows (rounded to the nearest integer) go to the test
// partition, chosen by a PCG stream seeded with seed, so the same
// (table, fraction, seed) triple always produces the same split. Rows keep
// their original relative order within each partition.
func TrainTestSplit(t *dataset.Table, testFraction float64, seed uint64) (train, test *dataset.Table, err error) {
	n := t.NumRows()
	if n == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "TrainTestSplit")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewInvalidInputError("TrainTestSplit", "", "test fraction must be in (0, 1)")
	}

	testSize := int(math.Round(float64(n) * testFraction))
	if testSize == 0 || testSize == n {
		return nil, nil, errors.NewInvalidInputError("TrainTestSplit", "", "split leaves a partition empty")
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)

	testIdx := make([]int, testSize)
	copy(testIdx, perm[:testSize])
	trainIdx := make([]int, n-testSize)
	copy(trainIdx, perm[testSize:])
	sort.Ints(testIdx)
	sort.Ints(trainIdx)

	return t.Select(trainIdx), t.Select(testIdx), nil
}
