package fold

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

const (
	DefaultSplits = 5
	DefaultSeed   = 42
)

// ErrConfiguration is wrapped by every error caused by invalid encoding
// parameters, including a partition that cannot be built.
var ErrConfiguration = errors.New("invalid configuration")

// Fold holds the row indices used for training and for validation in one
// round of k-fold cross-validation. Both slices are sorted ascending.
type Fold struct {
	Train      []int
	Validation []int
}

// KFold partitions the indices 0..n-1 into k disjoint validation folds using a
// permutation seeded by seed. The first n%k folds hold one extra index.
func KFold(n, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, errors.Wrapf(ErrConfiguration, "number of folds must be at least 2, got %d", k)
	}
	if k > n {
		return nil, errors.Wrapf(ErrConfiguration, "number of folds %d exceeds number of rows %d", k, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([]Fold, k)
	perFold := n / k
	remainder := n % k

	idx := 0
	for i := range folds {
		size := perFold
		if i < remainder {
			size++
		}
		validation := make([]int, size)
		copy(validation, perm[idx:idx+size])

		train := make([]int, 0, n-size)
		train = append(train, perm[:idx]...)
		train = append(train, perm[idx+size:]...)

		sort.Ints(validation)
		sort.Ints(train)
		folds[i] = Fold{Train: train, Validation: validation}
		idx += size
	}
	return folds, nil
}

// Assignment returns, for each row, the index of the fold that validates it.
func Assignment(folds []Fold, n int) []int {
	result := make([]int, n)
	for f, fold := range folds {
		for _, i := range fold.Validation {
			result[i] = f
		}
	}
	return result
}
