package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats are descriptive statistics for one value column. N counts non-NaN
// cells; Missing counts NaN cells.
type Stats struct {
	N       int
	Missing int
	Mean    float64
	Std     float64
	Min     float64
	Q1      float64
	Median  float64
	Q3      float64
	Max     float64
}

// ColumnStats pairs a column key with its statistics.
type ColumnStats struct {
	Key string
	Stats
}

// Describe computes descriptive statistics for a value column. An all-NaN
// column yields NaN statistics with N == 0.
func Describe(view View, key string) Stats {
	vals := Collect(view, key)
	s := Stats{
		N:       len(vals),
		Missing: view.Len() - len(vals),
		Mean:    math.NaN(),
		Std:     math.NaN(),
		Min:     math.NaN(),
		Q1:      math.NaN(),
		Median:  math.NaN(),
		Q3:      math.NaN(),
		Max:     math.NaN(),
	}
	if len(vals) == 0 {
		return s
	}

	sort.Float64s(vals)
	s.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	s.Q1 = stat.Quantile(0.25, stat.Empirical, vals, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, vals, nil)
	s.Q3 = stat.Quantile(0.75, stat.Empirical, vals, nil)
	return s
}

// DescribeAll computes statistics for several columns in the given order.
func DescribeAll(view View, keys []string) []ColumnStats {
	out := make([]ColumnStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, ColumnStats{Key: k, Stats: Describe(view, k)})
	}
	return out
}
