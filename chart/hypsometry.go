package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/stakelab-org/stakelab/analysis"
)

// Hypsometry renders elevation-binned aggregates as a bar chart. With
// byCount true the bars show observation counts, otherwise the per-band
// mean (empty bands draw as zero-height bars).
func (r *Renderer) Hypsometry(name, title, yLabel string, bands []analysis.Band, byCount bool) (string, error) {
	if len(bands) == 0 {
		return "", fmt.Errorf("hypsometry %s: no bands", name)
	}

	vals := make(plotter.Values, len(bands))
	labels := make([]string, len(bands))
	for i, b := range bands {
		labels[i] = b.Label()
		if byCount {
			vals[i] = float64(b.Count)
		} else if !math.IsNaN(b.Mean) {
			vals[i] = b.Mean
		}
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return "", fmt.Errorf("hypsometry %s: %w", name, err)
	}
	bars.Color = seriesColor(1)
	bars.LineStyle.Width = 0

	p := newPlot(title, "Elevation band [m]", yLabel)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = -1

	return r.save(p, name)
}
