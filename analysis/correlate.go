package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// CORRELATION & LINEAR FITS
// ============================================================================
// Pearson correlation is computed pairwise-complete: for each column pair,
// rows where either cell is NaN are dropped. This mirrors how sparse stake
// series are usually correlated against dense climate covariates.
// ============================================================================

// CorrMatrix is a symmetric Pearson correlation matrix over value columns.
type CorrMatrix struct {
	Keys []string
	Data [][]float64 // Data[i][j] = corr(Keys[i], Keys[j])
}

// Correlate builds the pairwise-complete correlation matrix for the given
// columns. The diagonal is 1; a pair with fewer than two complete rows, or a
// constant column, yields NaN.
func Correlate(view View, keys []string) CorrMatrix {
	n := len(keys)
	m := CorrMatrix{Keys: keys, Data: make([][]float64, n)}
	for i := range m.Data {
		m.Data[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		m.Data[i][i] = 1
		for j := i + 1; j < n; j++ {
			xs, ys := CollectPairs(view, keys[i], keys[j])
			c := math.NaN()
			if len(xs) >= 2 {
				c = stat.Correlation(xs, ys, nil)
			}
			m.Data[i][j] = c
			m.Data[j][i] = c
		}
	}
	return m
}

// Fit is an ordinary least squares line y = Alpha + Beta·x.
type Fit struct {
	Alpha, Beta float64
	R2          float64
	N           int // complete pairs used
}

// LinearFit regresses yKey on xKey over NaN-complete pairs.
func LinearFit(view View, xKey, yKey string) (Fit, error) {
	xs, ys := CollectPairs(view, xKey, yKey)
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("linear fit %s~%s: %d complete pairs, need 2", yKey, xKey, len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	est := make([]float64, len(xs))
	for i, x := range xs {
		est[i] = alpha + beta*x
	}
	return Fit{
		Alpha: alpha,
		Beta:  beta,
		R2:    stat.RSquaredFrom(est, ys, nil),
		N:     len(xs),
	}, nil
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 { return f.Alpha + f.Beta*x }
