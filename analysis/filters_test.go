package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelab-org/stakelab/dataset"
)

func TestApplyLabelFilter(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"Langjokull", 2001, 1200, -0.4},
		{"Hofsjokull", 2001, 1400, 0.6},
		{"Langjokull", 2002, 1200, -0.8},
	})

	v := Apply(tbl, Filter{
		Labels: map[string][]string{dataset.ColGlacier: {"langjokull"}},
	})
	require.Equal(t, 2, v.Len(), "label matching is case-insensitive")
	assert.Equal(t, "Langjokull", v.Label(0, dataset.ColGlacier))
	assert.Equal(t, 2002.0, v.Value(1, dataset.ColYear))
}

func TestApplyRangeFilter(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 900, 0.1},
		{"A", 2001, 1100, 0.2},
		{"A", 2001, 1300, 0.3},
		{"A", 2001, math.NaN(), 0.4},
	})

	v := Apply(tbl, Filter{
		Ranges: map[string]Range{
			dataset.ColElevation: {Min: 1000, Max: 1200},
		},
	})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, 1100.0, v.Value(0, dataset.ColElevation))
}

func TestApplyOpenEndedRange(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 900, 0.1},
		{"A", 2001, 1500, 0.2},
	})

	v := Apply(tbl, Filter{
		Ranges: map[string]Range{
			dataset.ColElevation: {Min: 1000, Max: math.NaN()},
		},
	})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, 1500.0, v.Value(0, dataset.ColElevation))
}

func TestApplyCombinesConstraints(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1100, 0.1},
		{"A", 2001, 1600, 0.2},
		{"B", 2001, 1100, 0.3},
	})

	v := Apply(tbl, Filter{
		Labels: map[string][]string{dataset.ColGlacier: {"A"}},
		Ranges: map[string]Range{dataset.ColElevation: {Min: 1000, Max: 1200}},
	})
	require.Equal(t, 1, v.Len())
	assert.InDelta(t, 0.1, v.Value(0, dataset.ColAnnualBalance), 1e-9)
}

func TestApplyEmptyFilterReturnsOriginal(t *testing.T) {
	tbl := fixtureTable([]stakeRow{{"A", 2001, 1000, 0.1}})
	v := Apply(tbl, Filter{})
	assert.Equal(t, View(tbl), v)
}

func TestApplyYearAsVirtualLabel(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1000, 0.1},
		{"A", 2002, 1000, 0.2},
	})
	v := Apply(tbl, Filter{
		Labels: map[string][]string{dataset.ColYear: {"2002"}},
	})
	require.Equal(t, 1, v.Len())
	assert.Equal(t, 2002.0, v.Value(0, dataset.ColYear))
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 0, Max: 10}
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(-0.1))
	assert.False(t, r.Contains(math.NaN()))
}
