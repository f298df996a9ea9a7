package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/stakelab-org/stakelab/analysis"
)

// matrixGrid adapts a row × col matrix to plotter.GridXYZ. Row 0 draws at
// the bottom of the plot.
type matrixGrid struct {
	data [][]float64 // [row][col]
}

func (g matrixGrid) Dims() (c, r int) {
	if len(g.data) == 0 {
		return 0, 0
	}
	return len(g.data[0]), len(g.data)
}

func (g matrixGrid) Z(c, r int) float64 { return g.data[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// CountHeatmap renders a glacier × year observation-count matrix.
// counts[row][col] follows rowLabels × colLabels.
func (r *Renderer) CountHeatmap(name, title string, rowLabels, colLabels []string, counts [][]float64) (string, error) {
	if len(counts) == 0 {
		return "", fmt.Errorf("heatmap %s: empty matrix", name)
	}

	p := newPlot(title, "", "")
	hm := plotter.NewHeatMap(matrixGrid{data: counts}, palette.Heat(16, 1))
	hm.Min = 0
	p.Add(hm)
	p.NominalX(colLabels...)
	p.NominalY(rowLabels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = -1

	return r.save(p, name)
}

// CorrMatrix renders a correlation matrix on a diverging palette over
// [-1, 1]. NaN entries (too few complete pairs) render as neutral zero.
func (r *Renderer) CorrMatrix(name, title string, m analysis.CorrMatrix) (string, error) {
	if len(m.Keys) == 0 {
		return "", fmt.Errorf("correlation matrix %s: no columns", name)
	}

	n := len(m.Keys)
	data := make([][]float64, n)
	for i := 0; i < n; i++ {
		data[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := m.Data[i][j]
			if math.IsNaN(v) {
				v = 0
			}
			data[i][j] = v
		}
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	pal := cm.Palette(255)

	p := newPlot(title, "", "")
	hm := plotter.NewHeatMap(matrixGrid{data: data}, pal)
	hm.Min = -1
	hm.Max = 1
	p.Add(hm)
	p.NominalX(m.Keys...)
	p.NominalY(m.Keys...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = -1

	return r.save(p, name)
}
