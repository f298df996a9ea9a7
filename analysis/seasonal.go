package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/stakelab-org/stakelab/dataset"
)

// ============================================================================
// SEASONAL AGGREGATION — Chunking Monthly Columns by Suffix
// ============================================================================
// A climate variable arrives as 12 monthly columns over the hydrological
// year ("t2m_oct" … "t2m_sep"). Seasonal means chunk those columns into
// winter (oct–apr), summer (may–sep), and annual averages per observation.
// ============================================================================

// Derived column suffixes: "<var>_win", "<var>_smr", "<var>_ann".
const (
	winterSuffix = "_win"
	summerSuffix = "_smr"
	annualSuffix = "_ann"
)

// SeasonalMeans holds per-observation seasonal averages of one variable.
type SeasonalMeans struct {
	Variable string
	Winter   []float64
	Summer   []float64
	Annual   []float64
}

// SeasonalAverages chunks the monthly columns of a climate variable into
// winter, summer, and annual means per observation. Months with NaN cells
// are dropped from the mean; an observation with no usable months in a
// season gets NaN. Errors if the view lacks the variable's monthly columns.
func SeasonalAverages(view View, variable string) (SeasonalMeans, error) {
	cols := dataset.MonthlyColumns(variable)
	if !hasAny(view, cols) {
		return SeasonalMeans{}, fmt.Errorf("no monthly columns for variable %q", variable)
	}

	n := view.Len()
	sm := SeasonalMeans{
		Variable: variable,
		Winter:   make([]float64, n),
		Summer:   make([]float64, n),
		Annual:   make([]float64, n),
	}

	for i := 0; i < n; i++ {
		monthly := make([]float64, len(cols))
		for m, col := range cols {
			monthly[m] = view.Value(i, col)
		}
		sm.Winter[i] = nanMean(monthly[:dataset.WinterMonthCount])
		sm.Summer[i] = nanMean(monthly[dataset.WinterMonthCount:])
		sm.Annual[i] = nanMean(monthly)
	}
	return sm, nil
}

// ColumnNames returns the derived column names for appending seasonal means
// to a table: winter, summer, annual.
func (sm SeasonalMeans) ColumnNames() (winter, summer, annual string) {
	return sm.Variable + winterSuffix, sm.Variable + summerSuffix, sm.Variable + annualSuffix
}

// AppendTo writes the three seasonal columns onto a table.
func (sm SeasonalMeans) AppendTo(tbl *dataset.Table) error {
	w, s, a := sm.ColumnNames()
	if err := tbl.AddValueColumn(w, sm.Winter); err != nil {
		return err
	}
	if err := tbl.AddValueColumn(s, sm.Summer); err != nil {
		return err
	}
	return tbl.AddValueColumn(a, sm.Annual)
}

func hasAny(view View, cols []string) bool {
	have := make(map[string]bool, len(view.ValueKeys()))
	for _, k := range view.ValueKeys() {
		have[k] = true
	}
	for _, c := range cols {
		if have[c] {
			return true
		}
	}
	return false
}

func nanMean(vals []float64) float64 {
	clean := vals[:0:0]
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	return stat.Mean(clean, nil)
}
