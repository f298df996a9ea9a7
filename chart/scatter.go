package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/stakelab-org/stakelab/analysis"
)

// ScatterFit renders a scatter of complete (x, y) pairs with the fitted OLS
// line overlaid. The r² of the fit goes into the title.
func (r *Renderer) ScatterFit(name, title, xLabel, yLabel string, xs, ys []float64, fit analysis.Fit) (string, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return "", fmt.Errorf("scatter %s: %d x / %d y values", name, len(xs), len(ys))
	}

	pts := make(plotter.XYs, len(xs))
	lo, hi := xs[0], xs[0]
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
		if xs[i] < lo {
			lo = xs[i]
		}
		if xs[i] > hi {
			hi = xs[i]
		}
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return "", fmt.Errorf("scatter %s: %w", name, err)
	}
	sc.GlyphStyle.Color = seriesColor(0)
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	line, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: fit.At(lo)},
		{X: hi, Y: fit.At(hi)},
	})
	if err != nil {
		return "", fmt.Errorf("fit line %s: %w", name, err)
	}
	line.Color = seriesColor(3)
	line.Width = vg.Points(2)

	p := newPlot(fmt.Sprintf("%s (r²=%.2f, n=%d)", title, fit.R2, fit.N), xLabel, yLabel)
	p.Add(sc, line)
	p.Legend.Add("OLS fit", line)
	p.Legend.Top = true

	return r.save(p, name)
}
