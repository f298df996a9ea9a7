package analysis

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/stakelab-org/stakelab/dataset"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via View
// ============================================================================
// Grouping produces SubViews (index lists into the parent view). All
// aggregations are NaN-aware: missing cells are dropped before computing,
// so a glacier with a patchy balance series still aggregates correctly.
// ============================================================================

// Aggregation selectors accepted by Aggregate and GroupAndAggregate.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggMean  = "mean"
	AggStd   = "std"
	AggMin   = "min"
	AggMax   = "max"
)

// Sort modes for SortGroups.
const (
	SortValueDesc     = "value_desc"
	SortValueAsc      = "value_asc"
	SortLabelAsc      = "label_asc"
	SortChronological = "chronological"
)

// Group represents one grouped and aggregated result.
type Group struct {
	Key       string
	Label     string
	Value     float64
	Count     int // rows with a non-NaN cell for the aggregated column
	SubGroups []Group
	View      View
}

// GroupAndAggregate is the main entry point for the aggregation pipeline:
// group → aggregate → sort → limit.
func GroupAndAggregate(view View, groupBy []string, valueKey, agg, sortBy string, limit int) []Group {
	if view.Len() == 0 {
		return nil
	}

	var groups []Group
	switch len(groupBy) {
	case 0:
		groups = []Group{{Key: "all", Label: "All", View: view}}
	case 1:
		groups = groupBySingle(view, groupBy[0])
	default:
		groups = groupBySingle(view, groupBy[0])
		for i := range groups {
			groups[i].SubGroups = groupBySingle(groups[i].View, groupBy[1])
		}
	}

	for i := range groups {
		aggregateGroup(&groups[i], valueKey, agg)
		for j := range groups[i].SubGroups {
			aggregateGroup(&groups[i].SubGroups[j], valueKey, agg)
		}
	}

	SortGroups(groups, sortBy)

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

func groupBySingle(view View, key string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		k := labelValue(view, i, key)
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], i)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		groups = append(groups, Group{
			Key:   k,
			Label: k,
			View:  newSubView(view, grouped[k]),
		})
	}
	return groups
}

// labelValue extracts a grouping value. YEAR is a virtual label derived from
// the numeric year column so callers can group by it like any other label.
func labelValue(view View, i int, key string) string {
	if key == dataset.ColYear {
		y := view.Value(i, dataset.ColYear)
		if math.IsNaN(y) {
			return ""
		}
		return strconv.Itoa(int(y))
	}
	return view.Label(i, key)
}

func aggregateGroup(g *Group, valueKey, agg string) {
	vals := Collect(g.View, valueKey)
	g.Count = len(vals)

	switch agg {
	case AggCount:
		g.Value = float64(len(vals))
	case AggSum:
		g.Value = floats.Sum(vals)
	case AggMean:
		if len(vals) == 0 {
			g.Value = math.NaN()
			return
		}
		g.Value = stat.Mean(vals, nil)
	case AggStd:
		if len(vals) < 2 {
			g.Value = math.NaN()
			return
		}
		g.Value = stat.StdDev(vals, nil)
	case AggMin:
		g.Value = minOf(vals)
	case AggMax:
		g.Value = maxOf(vals)
	default:
		g.Value = float64(len(vals))
	}
}

// Collect gathers the non-NaN cells of a value column.
func Collect(view View, key string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v := view.Value(i, key); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// CollectPairs gathers rows where both columns are non-NaN.
func CollectPairs(view View, xKey, yKey string) (xs, ys []float64) {
	for i := 0; i < view.Len(); i++ {
		x := view.Value(i, xKey)
		y := view.Value(i, yKey)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// SortGroups sorts aggregated groups by the given mode. Unknown modes keep
// grouping order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key)
		})
	case SortChronological:
		sort.SliceStable(groups, func(i, j int) bool { return sortableYear(groups[i].Key) < sortableYear(groups[j].Key) })
	}
}

func sortableYear(key string) int {
	y, err := strconv.Atoi(key)
	if err != nil {
		return 0
	}
	return y
}

// UniqueLabels returns distinct values of a label key across a view, in
// first-seen order.
func UniqueLabels(view View, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < view.Len(); i++ {
		v := labelValue(view, i, key)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
