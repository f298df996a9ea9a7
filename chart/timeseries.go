package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one named line in a time-series chart. Gaps in the year series
// split the line into segments, so missing years are visible as breaks
// rather than interpolated across.
type Series struct {
	Name     string
	Segments []plotter.XYs
}

// TimeSeries renders one line per series, segment-broken at gaps.
func (r *Renderer) TimeSeries(name, title, yLabel string, series []Series) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("time series %s: no series", name)
	}

	p := newPlot(title, "Year", yLabel)
	p.Legend.Top = true

	for si, s := range series {
		col := seriesColor(si)
		var first *plotter.Line
		for _, seg := range s.Segments {
			if len(seg) == 0 {
				continue
			}
			line, err := plotter.NewLine(seg)
			if err != nil {
				return "", fmt.Errorf("time series %s, %s: %w", name, s.Name, err)
			}
			line.Color = col
			line.Width = vg.Points(1.5)
			p.Add(line)
			if first == nil {
				first = line
			}
		}
		if first != nil {
			p.Legend.Add(s.Name, first)
		}
	}

	return r.save(p, name)
}
