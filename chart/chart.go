package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ============================================================================
// CHART RENDERING — SVG Artifacts from Analysis Output
// ============================================================================
// Every chart function takes prepared analysis output, never a raw table:
// the analysis package computes, this package only draws. Rendering honours
// the save flag — with saving disabled the plot is still built (so errors
// surface) but no file is written.
// ============================================================================

// Series color palette.
var seriesColors = []color.Color{
	rgb(0x4F, 0x46, 0xE5), rgb(0x10, 0xB9, 0x81), rgb(0xF5, 0x9E, 0x0B),
	rgb(0xEF, 0x44, 0x44), rgb(0x8B, 0x5C, 0xF6), rgb(0x06, 0xB6, 0xD4),
	rgb(0xEC, 0x48, 0x99), rgb(0x84, 0xCC, 0x16), rgb(0xF9, 0x73, 0x16),
	rgb(0x63, 0x66, 0xF1),
}

func rgb(r, g, b uint8) color.Color {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func seriesColor(i int) color.Color {
	return seriesColors[i%len(seriesColors)]
}

// Renderer writes SVG charts into an output directory.
type Renderer struct {
	OutDir  string
	Enabled bool // false: build charts but never touch disk
	Width   vg.Length
	Height  vg.Length
}

// NewRenderer creates a renderer with the default figure size.
func NewRenderer(outDir string, enabled bool) *Renderer {
	return &Renderer{
		OutDir:  outDir,
		Enabled: enabled,
		Width:   8 * vg.Inch,
		Height:  5 * vg.Inch,
	}
}

// newPlot builds an empty plot with shared styling.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// save writes the plot as "<name>.svg" under OutDir. Returns the empty path
// when saving is disabled.
func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	if !r.Enabled {
		return "", nil
	}
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.OutDir, name+".svg")
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
