package model_selection

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/tablepipe/pkg/errors"
)

// Fold holds the row indices of one cross-validation fold.
type Fold struct {
	Train []int
	Test  []int
}

// KFold partitions row indices into NSplits folds. When n is not divisible
// by NSplits the remainder is spread one row at a time over the leading
// folds, so fold sizes differ by at most one.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewKFold creates a shuffled splitter with nSplits folds.
func NewKFold(nSplits int, seed uint64) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: true, RandomSeed: seed}
}

// Split returns the folds over n rows. Each row appears in exactly one test
// set, and every fold's train set is the complement of its test set.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewInvalidInputError("KFold.Split", "", "need at least 2 folds")
	}
	if n < kf.NSplits {
		return nil, errors.NewInvalidInputError("KFold.Split", "", "more folds than rows")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rng := rand.New(rand.NewPCG(kf.RandomSeed, kf.RandomSeed))
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	base := n / kf.NSplits
	remainder := n % kf.NSplits

	folds := make([]Fold, kf.NSplits)
	offset := 0
	for i := 0; i < kf.NSplits; i++ {
		size := base
		if i < remainder {
			size++
		}

		test := make([]int, size)
		copy(test, indices[offset:offset+size])

		train := make([]int, 0, n-size)
		train = append(train, indices[:offset]...)
		train = append(train, indices[offset+size:]...)

		folds[i] = Fold{Train: train, Test: test}
		offset += size
	}
	return folds, nil
}
