package dataset

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitFixture builds a table with nGlaciers glaciers of rowsEach rows.
func splitFixture(nGlaciers, rowsEach int) *Table {
	var obs []Observation
	for g := 0; g < nGlaciers; g++ {
		for r := 0; r < rowsEach; r++ {
			obs = append(obs, Observation{
				Labels: map[string]string{
					ColStake:   fmt.Sprintf("s%d_%d", g, r),
					ColGlacier: fmt.Sprintf("glacier%d", g),
					ColRGIID:   fmt.Sprintf("RGI60-06.%05d", g),
				},
				Values: map[string]float64{
					ColYear: float64(2000 + r),
				},
			})
		}
	}
	return NewTable(obs)
}

func TestTrainTestSplitKeepsGroupsTogether(t *testing.T) {
	tbl := splitFixture(10, 5)

	s, err := TrainTestSplit(tbl, 0.3, ColRGIID, 42)
	require.NoError(t, err)
	require.Equal(t, tbl.Len(), len(s.Train)+len(s.Test))

	// No RGI ID may appear on both sides.
	trainGroups := make(map[string]bool)
	for _, i := range s.Train {
		trainGroups[tbl.Label(i, ColRGIID)] = true
	}
	for _, i := range s.Test {
		assert.False(t, trainGroups[tbl.Label(i, ColRGIID)],
			"group %s leaked into both sides", tbl.Label(i, ColRGIID))
	}

	// 3 of 10 groups × 5 rows in test.
	assert.Equal(t, 15, len(s.Test))
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	tbl := splitFixture(8, 3)
	a, err := TrainTestSplit(tbl, 0.25, ColRGIID, 7)
	require.NoError(t, err)
	b, err := TrainTestSplit(tbl, 0.25, ColRGIID, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Test, b.Test)
	assert.Equal(t, a.Train, b.Train)
}

func TestTrainTestSplitByMeasurementID(t *testing.T) {
	// Two rows of the same stake in the same year form one group.
	obs := []Observation{
		{Labels: map[string]string{ColStake: "s1"}, Values: map[string]float64{ColYear: 2001}},
		{Labels: map[string]string{ColStake: "s1"}, Values: map[string]float64{ColYear: 2001}},
		{Labels: map[string]string{ColStake: "s1"}, Values: map[string]float64{ColYear: 2002}},
		{Labels: map[string]string{ColStake: "s2"}, Values: map[string]float64{ColYear: 2001}},
	}
	tbl := NewTable(obs)

	s, err := TrainTestSplit(tbl, 0.34, "", 1)
	require.NoError(t, err)

	onTestSide := make(map[int]bool)
	for _, i := range s.Test {
		onTestSide[i] = true
	}
	assert.Equal(t, onTestSide[0], onTestSide[1], "same measurement split across sides")
}

func TestTrainTestSplitValidation(t *testing.T) {
	tbl := splitFixture(3, 2)
	_, err := TrainTestSplit(tbl, 0, ColRGIID, 1)
	assert.Error(t, err)
	_, err = TrainTestSplit(tbl, 1.2, ColRGIID, 1)
	assert.Error(t, err)
	_, err = TrainTestSplit(NewTable(nil), 0.2, ColRGIID, 1)
	assert.Error(t, err)
}

func TestKFoldCoversEveryRowOnce(t *testing.T) {
	tbl := splitFixture(4, 5)
	folds, err := KFold(tbl, 4, 3)
	require.NoError(t, err)
	require.Len(t, folds, 4)

	seen := make(map[int]int)
	for _, f := range folds {
		assert.Equal(t, tbl.Len(), len(f.Train)+len(f.Test))
		for _, i := range f.Test {
			seen[i]++
		}
	}
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, 1, seen[i], "row %d test membership", i)
	}
}

func TestGroupKFoldKeepsGroupsWhole(t *testing.T) {
	tbl := splitFixture(9, 4)
	folds, err := GroupKFold(tbl, 3, ColRGIID)
	require.NoError(t, err)
	require.Len(t, folds, 3)

	for fi, f := range folds {
		testGroups := make(map[string]bool)
		for _, i := range f.Test {
			testGroups[tbl.Label(i, ColRGIID)] = true
		}
		for _, i := range f.Train {
			assert.False(t, testGroups[tbl.Label(i, ColRGIID)],
				"fold %d: group on both sides", fi)
		}
	}
}

func TestGroupKFoldBalancesUnevenGroups(t *testing.T) {
	// One dominant glacier plus several small ones.
	var obs []Observation
	sizes := []int{12, 3, 3, 2, 2, 2}
	for g, n := range sizes {
		for r := 0; r < n; r++ {
			obs = append(obs, Observation{
				Labels: map[string]string{ColRGIID: fmt.Sprintf("g%d", g)},
				Values: map[string]float64{ColYear: float64(2000 + r)},
			})
		}
	}
	tbl := NewTable(obs)

	folds, err := GroupKFold(tbl, 3, ColRGIID)
	require.NoError(t, err)

	// The largest fold holds the dominant glacier alone; the small groups
	// spread over the other two folds.
	var testSizes []int
	for _, f := range folds {
		testSizes = append(testSizes, len(f.Test))
	}
	total := 0
	for _, n := range testSizes {
		total += n
		assert.LessOrEqual(t, n, 12)
	}
	assert.Equal(t, tbl.Len(), total)
}

func TestGroupKFoldTooFewGroups(t *testing.T) {
	tbl := splitFixture(2, 5)
	_, err := GroupKFold(tbl, 3, ColRGIID)
	assert.Error(t, err)
}

func TestMeasurementID(t *testing.T) {
	obs := []Observation{
		{Labels: map[string]string{ColStake: "L01"}, Values: map[string]float64{ColYear: 2001}},
		{Labels: map[string]string{ColStake: "L01"}, Values: map[string]float64{ColYear: math.NaN()}},
	}
	tbl := NewTable(obs)
	assert.Equal(t, "L01_2001", tbl.MeasurementID(0))
	assert.Equal(t, "L01_0", tbl.MeasurementID(1))
}
