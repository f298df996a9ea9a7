package dataset

import (
	"fmt"
	"math/rand"
	"sort"
)

// ============================================================================
// SPLITTING — Group-Aware Train/Test and Cross-Validation Folds
// ============================================================================
// Model-evaluation splits must keep all rows of one group (a glacier, or one
// stake-year measurement) on the same side, otherwise climate covariates
// leak between train and test. Groups are keyed on a label column, or on the
// stake × year measurement ID when the key is empty.
// ============================================================================

// Split holds row indices for a train/test partition.
type Split struct {
	Train []int
	Test  []int
}

// Fold is one cross-validation partition.
type Fold struct {
	Train []int
	Test  []int
}

// TrainTestSplit partitions rows so that roughly testSize of the groups land
// in the test set, with every group wholly on one side. groupKey names a
// label column (e.g. ColRGIID); empty means group by measurement ID.
func TrainTestSplit(tbl *Table, testSize float64, groupKey string, seed int64) (Split, error) {
	if testSize <= 0 || testSize >= 1 {
		return Split{}, fmt.Errorf("test size %v outside (0, 1)", testSize)
	}
	if tbl.Len() == 0 {
		return Split{}, fmt.Errorf("cannot split an empty table")
	}

	groups := groupIndices(tbl, groupKey)
	keys := sortedKeys(groups)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	nTest := int(float64(len(keys)) * testSize)
	if nTest == 0 {
		nTest = 1
	}

	var s Split
	for i, key := range keys {
		if i < nTest {
			s.Test = append(s.Test, groups[key]...)
		} else {
			s.Train = append(s.Train, groups[key]...)
		}
	}
	sort.Ints(s.Train)
	sort.Ints(s.Test)
	return s, nil
}

// KFold produces n random folds over rows, ignoring grouping.
func KFold(tbl *Table, nSplits int, seed int64) ([]Fold, error) {
	if nSplits < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", nSplits)
	}
	if tbl.Len() < nSplits {
		return nil, fmt.Errorf("%d rows cannot fill %d folds", tbl.Len(), nSplits)
	}

	indices := make([]int, tbl.Len())
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(indices), func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })

	buckets := make([][]int, nSplits)
	for i, idx := range indices {
		f := i % nSplits
		buckets[f] = append(buckets[f], idx)
	}
	return bucketsToFolds(buckets, tbl.Len()), nil
}

// GroupKFold produces n folds with whole groups per fold, balancing fold
// sizes by assigning the largest groups first.
func GroupKFold(tbl *Table, nSplits int, groupKey string) ([]Fold, error) {
	if nSplits < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", nSplits)
	}
	groups := groupIndices(tbl, groupKey)
	if len(groups) < nSplits {
		return nil, fmt.Errorf("%d groups cannot fill %d folds", len(groups), nSplits)
	}

	// Largest group first, then to whichever fold is currently smallest.
	keys := sortedKeys(groups)
	sort.SliceStable(keys, func(i, j int) bool {
		return len(groups[keys[i]]) > len(groups[keys[j]])
	})

	buckets := make([][]int, nSplits)
	for _, key := range keys {
		smallest := 0
		for f := 1; f < nSplits; f++ {
			if len(buckets[f]) < len(buckets[smallest]) {
				smallest = f
			}
		}
		buckets[smallest] = append(buckets[smallest], groups[key]...)
	}
	return bucketsToFolds(buckets, tbl.Len()), nil
}

// groupIndices maps group key → row indices. Empty groupKey groups by the
// stake × year measurement ID.
func groupIndices(tbl *Table, groupKey string) map[string][]int {
	groups := make(map[string][]int)
	for i := 0; i < tbl.Len(); i++ {
		var key string
		if groupKey == "" {
			key = tbl.MeasurementID(i)
		} else {
			key = tbl.Label(i, groupKey)
		}
		groups[key] = append(groups[key], i)
	}
	return groups
}

func sortedKeys(groups map[string][]int) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func bucketsToFolds(buckets [][]int, total int) []Fold {
	folds := make([]Fold, len(buckets))
	for f, test := range buckets {
		inTest := make([]bool, total)
		for _, idx := range test {
			inTest[idx] = true
		}
		train := make([]int, 0, total-len(test))
		for i := 0; i < total; i++ {
			if !inTest[i] {
				train = append(train, i)
			}
		}
		sorted := append([]int(nil), test...)
		sort.Ints(sorted)
		folds[f] = Fold{Train: train, Test: sorted}
	}
	return folds
}
