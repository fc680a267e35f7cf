// Package chart renders report series as PNG images using gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/suportelab/ticket-sla-report/internal/report"
)

var namedColors = map[string]color.Color{
	"green": color.RGBA{R: 46, G: 139, B: 87, A: 255},
	"red":   color.RGBA{R: 205, G: 60, B: 60, A: 255},
	"gray":  color.RGBA{R: 128, G: 128, B: 128, A: 255},
}

var defaultBarColor = color.Color(color.RGBA{R: 70, G: 130, B: 180, A: 255})

// Renderer draws bar and horizontal-bar series. It satisfies
// report.ChartRenderer.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewRenderer() *Renderer {
	return &Renderer{
		Width:  7 * vg.Inch,
		Height: 4 * vg.Inch,
	}
}

// Render draws the series into a PNG. Horizontal series are drawn with the
// first label on top; annotated bars carry their value next to the bar end.
func (r *Renderer) Render(spec report.ChartSpec) ([]byte, error) {
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart series mismatch: %d labels, %d values", len(spec.Labels), len(spec.Values))
	}

	labels := spec.Labels
	values := spec.Values
	colors := spec.Colors
	horizontal := spec.Kind == report.HorizontalBarSeries
	if horizontal {
		// gonum draws index 0 at the bottom; reverse so the first entry
		// reads on top.
		labels = reverseStrings(labels)
		values = reverseFloats(values)
		colors = reverseStrings(colors)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	if horizontal {
		p.X.Label.Text = spec.ValueLabel
	} else {
		p.Y.Label.Text = spec.ValueLabel
	}

	// One BarChart per bar so each can carry its own color; the other
	// positions hold zero-height bars.
	for i, v := range values {
		series := make(plotter.Values, len(values))
		series[i] = v

		bars, err := plotter.NewBarChart(series, vg.Points(28))
		if err != nil {
			return nil, fmt.Errorf("bar chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = barColor(colors, i)
		bars.Horizontal = horizontal
		p.Add(bars)
	}

	if horizontal {
		p.NominalY(labels...)
		p.X.Min = 0
	} else {
		p.NominalX(labels...)
		p.Y.Min = 0
	}

	if spec.Annotate {
		if err := annotate(p, values, horizontal); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}

func annotate(p *plot.Plot, values []float64, horizontal bool) error {
	xy := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	maxVal := 0.0
	for i, v := range values {
		if horizontal {
			xy[i] = plotter.XY{X: v, Y: float64(i)}
		} else {
			xy[i] = plotter.XY{X: float64(i), Y: v}
		}
		texts[i] = fmt.Sprintf("%.2f%%", v)
		if v > maxVal {
			maxVal = v
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xy, Labels: texts})
	if err != nil {
		return fmt.Errorf("chart labels: %w", err)
	}
	p.Add(labels)

	// Leave headroom so the annotations stay inside the frame.
	if maxVal <= 0 {
		maxVal = 1
	}
	if horizontal {
		p.X.Max = maxVal * 1.2
	} else {
		p.Y.Max = maxVal * 1.2
	}
	return nil
}

func barColor(names []string, i int) color.Color {
	if i < len(names) {
		if c, ok := namedColors[names[i]]; ok {
			return c
		}
	}
	return defaultBarColor
}

func reverseStrings(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func reverseFloats(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
