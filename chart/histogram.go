package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
)

// Histogram renders the distribution of a value column.
func (r *Renderer) Histogram(name, title, xLabel string, vals []float64, bins int) (string, error) {
	if len(vals) == 0 {
		return "", fmt.Errorf("histogram %s: no values", name)
	}
	if bins <= 0 {
		bins = 20
	}

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return "", fmt.Errorf("histogram %s: %w", name, err)
	}
	h.FillColor = seriesColor(0)

	p := newPlot(title, xLabel, "Count")
	p.Add(h)

	return r.save(p, name)
}
