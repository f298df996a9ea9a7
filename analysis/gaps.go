package analysis

import (
	"sort"

	"github.com/stakelab-org/stakelab/dataset"
)

// Gap is a run of consecutive years with no observations.
type Gap struct {
	From, To int // inclusive missing years
	Len      int
}

// ObservedYears returns the sorted distinct years present in a view.
func ObservedYears(view View) []int {
	seen := make(map[int]bool)
	var years []int
	for i := 0; i < view.Len(); i++ {
		y := int(view.Value(i, dataset.ColYear))
		if y != 0 && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// YearGaps finds runs of consecutive missing years inside a year series.
// Years before the first or after the last observation are not gaps.
func YearGaps(years []int) []Gap {
	years = dedupSorted(years)
	var gaps []Gap
	for i := 1; i < len(years); i++ {
		if d := years[i] - years[i-1]; d > 1 {
			gaps = append(gaps, Gap{
				From: years[i-1] + 1,
				To:   years[i] - 1,
				Len:  d - 1,
			})
		}
	}
	return gaps
}

// LongestRun returns the longest unbroken run of observed years. A single
// observed year is a run of length 1; an empty series returns zeros.
func LongestRun(years []int) (start, end, length int) {
	years = dedupSorted(years)
	if len(years) == 0 {
		return 0, 0, 0
	}

	bestStart, bestLen := years[0], 1
	runStart, runLen := years[0], 1
	for i := 1; i < len(years); i++ {
		if years[i] == years[i-1]+1 {
			runLen++
		} else {
			runStart, runLen = years[i], 1
		}
		if runLen > bestLen {
			bestStart, bestLen = runStart, runLen
		}
	}
	return bestStart, bestStart + bestLen - 1, bestLen
}

func dedupSorted(years []int) []int {
	if len(years) == 0 {
		return years
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)
	out := sorted[:1]
	for _, y := range sorted[1:] {
		if y != out[len(out)-1] {
			out = append(out, y)
		}
	}
	return out
}
