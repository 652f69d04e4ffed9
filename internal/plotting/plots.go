// Package plotting renders regression figures with gonum/plot.
package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	pointColor    = color.NRGBA{R: 31, G: 119, B: 180, A: 128}
	fitColor      = color.NRGBA{R: 255, A: 255}
	residualColor = color.NRGBA{R: 128, G: 128, B: 128, A: 128}
)

// Figure size of every saved plot
const (
	Width  = 12 * vg.Inch
	Height = 8 * vg.Inch
)

// FitPlot draws observations, the fitted line and a grey segment from each
// observation to its fitted value, then saves the figure to path. The image
// format follows the file extension.
func FitPlot(path, title, xLabel, yLabel string, x, y, fitted []float64) error {
	if len(x) != len(y) || len(x) != len(fitted) {
		return fmt.Errorf("fit plot needs equal lengths, got x=%d y=%d fitted=%d", len(x), len(y), len(fitted))
	}
	if len(x) == 0 {
		return fmt.Errorf("fit plot needs at least one point")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	// Residual segments first so points sit on top
	for i := range x {
		seg, err := plotter.NewLine(plotter.XYs{{X: x[i], Y: fitted[i]}, {X: x[i], Y: y[i]}})
		if err != nil {
			return fmt.Errorf("residual segment %d: %w", i, err)
		}
		seg.LineStyle.Color = residualColor
		p.Add(seg)
	}

	scatter, err := plotter.NewScatter(pairs(x, y))
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	// Sort by x so the fitted values trace a single line
	line := pairs(x, fitted)
	sort.Slice(line, func(i, j int) bool { return line[i].X < line[j].X })
	fit, err := plotter.NewLine(line)
	if err != nil {
		return fmt.Errorf("fit line: %w", err)
	}
	fit.LineStyle.Color = fitColor
	fit.LineStyle.Width = vg.Points(1.5)
	p.Add(fit)
	p.Legend.Add("Line of Best Fit", fit)
	p.Legend.Top = true

	return save(p, path)
}

// ResidualPlot draws residuals against observed values with a dashed zero line
func ResidualPlot(path, title, xLabel string, observed, residuals []float64) error {
	if len(observed) != len(residuals) {
		return fmt.Errorf("residual plot needs equal lengths, got %d and %d", len(observed), len(residuals))
	}
	if len(observed) == 0 {
		return fmt.Errorf("residual plot needs at least one point")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Residuals"

	scatter, err := plotter.NewScatter(pairs(observed, residuals))
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)
	p.Legend.Add("Residuals", scatter)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.LineStyle.Color = fitColor
	zero.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(zero)
	p.Legend.Add("Zero Residual Line", zero)
	p.Legend.Top = true

	return save(p, path)
}

func pairs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X = x[i]
		xys[i].Y = y[i]
	}
	return xys
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
