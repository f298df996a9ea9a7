package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/stakelab-org/stakelab/dataset"
)

// Band is one elevation bin of a hypsometry aggregation.
type Band struct {
	Low, High float64 // [Low, High) in metres
	Count     int
	Mean      float64 // mean of the aggregated column, NaN when empty
}

// Label formats the band bounds for chart axes, e.g. "1200–1300".
func (b Band) Label() string {
	return fmt.Sprintf("%.0f–%.0f", b.Low, b.High)
}

// ElevationBands aggregates observations into fixed-width elevation bins:
// per bin, the observation count and the mean of valueKey. Bins span from
// the lowest to the highest observed elevation, aligned to multiples of
// width; empty interior bins are retained with a NaN mean so hypsometry
// charts show the full elevation range.
func ElevationBands(view View, valueKey string, width float64) ([]Band, error) {
	if width <= 0 {
		return nil, fmt.Errorf("bin width must be positive, got %v", width)
	}

	elevs := Collect(view, dataset.ColElevation)
	if len(elevs) == 0 {
		return nil, fmt.Errorf("no elevation data in view")
	}
	lo := math.Floor(minOf(elevs)/width) * width
	hi := maxOf(elevs)
	nBins := int((hi-lo)/width) + 1

	counts := make([]int, nBins)
	buckets := make([][]float64, nBins)
	for i := 0; i < view.Len(); i++ {
		e := view.Value(i, dataset.ColElevation)
		if math.IsNaN(e) {
			continue
		}
		b := int((e - lo) / width)
		if b < 0 || b >= nBins {
			continue
		}
		counts[b]++
		if v := view.Value(i, valueKey); !math.IsNaN(v) {
			buckets[b] = append(buckets[b], v)
		}
	}

	bands := make([]Band, nBins)
	for b := range bands {
		bands[b] = Band{
			Low:   lo + float64(b)*width,
			High:  lo + float64(b+1)*width,
			Count: counts[b],
			Mean:  math.NaN(),
		}
		if len(buckets[b]) > 0 {
			bands[b].Mean = stat.Mean(buckets[b], nil)
		}
	}
	return bands, nil
}
