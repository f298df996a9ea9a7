package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakelab-org/stakelab/dataset"
)

func TestCorrelate(t *testing.T) {
	// Balance decreases linearly with elevation, so corr = -1 exactly.
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1000, 1.0},
		{"A", 2002, 1100, 0.5},
		{"A", 2003, 1200, 0.0},
	})

	m := Correlate(tbl, []string{dataset.ColElevation, dataset.ColAnnualBalance})
	require.Len(t, m.Data, 2)

	assert.Equal(t, 1.0, m.Data[0][0])
	assert.Equal(t, 1.0, m.Data[1][1])
	assert.InDelta(t, -1.0, m.Data[0][1], 1e-9)
	assert.Equal(t, m.Data[0][1], m.Data[1][0], "matrix is symmetric")
}

func TestCorrelatePairwiseComplete(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1000, 2.0},
		{"A", 2002, 2000, nan}, // dropped for the elevation~balance pair
		{"A", 2003, 3000, 6.0},
		{"A", 2004, 4000, 8.0},
	})

	m := Correlate(tbl, []string{dataset.ColElevation, dataset.ColAnnualBalance})
	assert.InDelta(t, 1.0, m.Data[0][1], 1e-9)
}

func TestCorrelateTooFewPairs(t *testing.T) {
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1000, 0.5},
		{"A", 2002, 1100, nan},
	})
	m := Correlate(tbl, []string{dataset.ColElevation, dataset.ColAnnualBalance})
	assert.True(t, math.IsNaN(m.Data[0][1]))
}

func TestLinearFitExactLine(t *testing.T) {
	// balance = 5 - 0.004 * elevation, exactly.
	tbl := fixtureTable([]stakeRow{
		{"A", 2001, 1000, 1.0},
		{"A", 2002, 1250, 0.0},
		{"A", 2003, 1500, -1.0},
	})

	fit, err := LinearFit(tbl, dataset.ColElevation, dataset.ColAnnualBalance)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fit.Alpha, 1e-9)
	assert.InDelta(t, -0.004, fit.Beta, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
	assert.Equal(t, 3, fit.N)

	assert.InDelta(t, 0.6, fit.At(1100), 1e-9)
}

func TestLinearFitTooFewPairs(t *testing.T) {
	tbl := fixtureTable([]stakeRow{{"A", 2001, 1000, 0.5}})
	_, err := LinearFit(tbl, dataset.ColElevation, dataset.ColAnnualBalance)
	assert.Error(t, err)
}
