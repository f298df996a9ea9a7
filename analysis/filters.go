package analysis

import (
	"math"
	"strings"
)

// ============================================================================
// FILTERS — Label and Range Filtering via View
// ============================================================================
// Single-pass filter: all constraints checked per row in one loop. Label
// values are OR-combined within a key and AND-combined across keys; numeric
// ranges are AND-combined with everything. Returns a SubView, no data copy.
// ============================================================================

// Filter selects rows by label values and numeric ranges.
type Filter struct {
	Labels map[string][]string // label key → allowed values (OR within key)
	Ranges map[string]Range    // value key → inclusive bounds
}

// Range is an inclusive numeric interval. A NaN bound leaves that side open.
type Range struct {
	Min, Max float64
}

// Contains reports whether x falls inside the range. NaN values never match.
func (r Range) Contains(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if !math.IsNaN(r.Min) && x < r.Min {
		return false
	}
	if !math.IsNaN(r.Max) && x > r.Max {
		return false
	}
	return true
}

// IsEmpty reports whether the filter imposes no constraint.
func (f Filter) IsEmpty() bool {
	for _, vals := range f.Labels {
		if len(vals) > 0 {
			return false
		}
	}
	return len(f.Ranges) == 0
}

// Apply returns a view of rows matching all filter constraints. An empty
// filter returns the original view.
func Apply(view View, f Filter) View {
	if f.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for key, allowed := range f.Labels {
		if len(allowed) > 0 {
			sets[key] = toLowerSet(allowed)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for key, set := range sets {
			if !set[strings.ToLower(labelValue(view, i, key))] {
				pass = false
				break
			}
		}
		if pass {
			for key, r := range f.Ranges {
				if !r.Contains(view.Value(i, key)) {
					pass = false
					break
				}
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
