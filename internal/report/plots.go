package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/sensitivity"
)

// Score thresholds drawn on risk plots.
const (
	HealthyThreshold = 1.5
	SickThreshold    = 2.5
)

var plotColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 140, G: 86, B: 75, A: 255},
}

// SensitivityPlot draws one Sugeno curve per factor against the variation
// in percent of the base value, with the healthy and sick thresholds.
func SensitivityPlot(r sensitivity.Result) ([]byte, error) {
	if len(r.Variations) == 0 || len(r.Curves) == 0 {
		return nil, fmt.Errorf("no sensitivity results to plot")
	}

	p := plot.New()
	p.Title.Text = "Sensitivity Analysis: Effect of Each Input on CHD Diagnosis"
	p.X.Label.Text = "Input Variation (% of base value)"
	p.Y.Label.Text = "CHD Output"
	p.Add(plotter.NewGrid())

	xmin, xmax := r.Variations[0]*100, r.Variations[len(r.Variations)-1]*100
	for i, f := range fuzzify.Factors() {
		curve, ok := r.Curves[f]
		if !ok {
			continue
		}
		pts := make(plotter.XYs, 0, len(curve))
		for j, y := range curve {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: r.Variations[j] * 100, Y: y})
		}
		if len(pts) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("sensitivity line for %s: %w", f, err)
		}
		c := plotColors[i%len(plotColors)]
		line.Color = c
		line.LineStyle.Width = vg.Points(2)
		points.Color = c
		p.Add(line, points)
		p.Legend.Add(string(f), line, points)
	}

	if err := addThresholds(p, xmin, xmax); err != nil {
		return nil, err
	}
	return render(p, vg.Points(800), vg.Points(530))
}

// LearningCurvePlot draws the per-epoch training MSE.
func LearningCurvePlot(losses []float64) ([]byte, error) {
	if len(losses) == 0 {
		return nil, fmt.Errorf("no losses to plot")
	}

	p := plot.New()
	p.Title.Text = "Neuro-Fuzzy Training"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "MSE"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(losses))
	for i, l := range losses {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: l})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no finite losses to plot")
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("learning curve line: %w", err)
	}
	line.Color = plotColors[0]
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("training loss", line)

	return render(p, vg.Points(800), vg.Points(400))
}

// ScatterPlot draws predictions against targets with the identity line.
func ScatterPlot(title string, targets, predictions []float64) ([]byte, error) {
	if len(targets) != len(predictions) || len(targets) == 0 {
		return nil, fmt.Errorf("scatter needs equal, non-empty series (%d targets, %d predictions)", len(targets), len(predictions))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Target CHD"
	p.Y.Label.Text = "Predicted CHD"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(targets))
	for i := range targets {
		pts = append(pts, plotter.XY{X: targets[i], Y: predictions[i]})
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Color = plotColors[0]
	p.Add(s)

	ident, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 4, Y: 4}})
	if err != nil {
		return nil, fmt.Errorf("identity line: %w", err)
	}
	ident.Color = color.Gray{Y: 128}
	ident.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(ident)

	return render(p, vg.Points(500), vg.Points(500))
}

func addThresholds(p *plot.Plot, xmin, xmax float64) error {
	for _, th := range []struct {
		y     float64
		label string
		c     color.Color
	}{
		{SickThreshold, fmt.Sprintf("Sick threshold (%.1f)", SickThreshold), color.RGBA{R: 255, A: 255}},
		{HealthyThreshold, fmt.Sprintf("Healthy threshold (%.1f)", HealthyThreshold), color.RGBA{G: 160, A: 255}},
	} {
		l, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: th.y}, {X: xmax, Y: th.y}})
		if err != nil {
			return fmt.Errorf("threshold line: %w", err)
		}
		l.Color = th.c
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(l)
		p.Legend.Add(th.label, l)
	}
	return nil
}

func render(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	p.Legend.Top = true
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("write plot: %w", err)
	}
	return buf.Bytes(), nil
}
