package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/stakelab-org/stakelab/analysis"
)

func TestSaveDisabledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, false)

	path, err := r.Histogram("h", "Histogram", "x", []float64{1, 2, 2, 3}, 5)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistogramWritesSVG(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, true)

	path, err := r.Histogram("balance_hist", "Balance", "m w.e.", []float64{-1, 0, 0.5, 1, 1}, 4)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "balance_hist.svg"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHistogramRejectsEmptyInput(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)
	_, err := r.Histogram("h", "t", "x", nil, 5)
	assert.Error(t, err)
}

func TestCountHeatmap(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	path, err := r.CountHeatmap("counts", "Counts",
		[]string{"Langjokull", "Hofsjokull"},
		[]string{"2001", "2002", "2003"},
		[][]float64{{3, 0, 1}, {2, 2, 0}})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestCorrMatrixHandlesNaN(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	m := analysis.CorrMatrix{
		Keys: []string{"a", "b"},
		Data: [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
	}
	path, err := r.CorrMatrix("corr", "Correlation", m)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestTimeSeriesSegments(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	series := []Series{{
		Name: "Langjokull",
		Segments: []plotter.XYs{
			{{X: 2001, Y: -0.4}, {X: 2002, Y: -0.8}},
			{{X: 2005, Y: 0.1}, {X: 2006, Y: -0.2}},
		},
	}}
	path, err := r.TimeSeries("ts", "Balance", "m w.e.", series)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestTimeSeriesRequiresSeries(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)
	_, err := r.TimeSeries("ts", "t", "y", nil)
	assert.Error(t, err)
}

func TestHypsometry(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	bands := []analysis.Band{
		{Low: 1000, High: 1100, Count: 5, Mean: -0.5},
		{Low: 1100, High: 1200, Count: 0, Mean: math.NaN()},
		{Low: 1200, High: 1300, Count: 2, Mean: 0.3},
	}

	path, err := r.Hypsometry("hyps_counts", "Counts", "Count", bands, true)
	require.NoError(t, err)
	assert.FileExists(t, path)

	path, err = r.Hypsometry("hyps_balance", "Balance", "m w.e.", bands, false)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestScatterFit(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)

	fit := analysis.Fit{Alpha: 5, Beta: -0.004, R2: 0.92, N: 3}
	path, err := r.ScatterFit("fit", "Balance vs elevation", "m", "m w.e.",
		[]float64{1000, 1250, 1500}, []float64{1.0, 0.1, -1.1}, fit)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestScatterFitLengthMismatch(t *testing.T) {
	r := NewRenderer(t.TempDir(), true)
	_, err := r.ScatterFit("fit", "t", "x", "y", []float64{1, 2}, []float64{1}, analysis.Fit{})
	assert.Error(t, err)
}
