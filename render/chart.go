package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Arminmsc/uk-vehicle-dashboard/engine"
)

// ============================================================================
// CHART EXPORT — Windowed series → PDF/PNG/SVG file
// ============================================================================
// One point per quarter, y-axis = the active metric. The output format
// follows the file extension (gonum/plot dispatches on it).
// ============================================================================

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var seriesBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// WriteChart renders the view model's windowed series to path. The format
// is chosen by extension (.pdf, .png, .svg).
func WriteChart(path string, vm engine.ViewModel) error {
	if len(vm.Series) == 0 {
		return fmt.Errorf("no data in the selected window")
	}

	metric := vm.Selection.Metric
	p := plot.New()
	p.Title.Text = chartTitle(vm)
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.BackgroundColor = color.White
	p.Y.Label.Text = metricLabel(metric)
	p.Y.Tick.Marker = countTicks{}

	pts := make(plotter.XYs, len(vm.Series))
	for i, pt := range vm.Series {
		pts[i] = plotter.XY{X: float64(i), Y: metric.Of(pt)}
	}

	switch vm.Selection.Chart {
	case engine.ChartBar:
		vals := make(plotter.Values, len(pts))
		for i, pt := range pts {
			vals[i] = pt.Y
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(8))
		if err != nil {
			return err
		}
		bars.Color = seriesBlue
		bars.LineStyle.Width = 0
		p.Add(bars)
	default:
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = seriesBlue
		line.Width = vg.Points(2)

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.Color = seriesBlue
		scatter.Radius = vg.Points(2)
		scatter.Shape = draw.CircleGlyph{}
		p.Add(line, scatter)
	}
	p.Add(plotter.NewGrid())

	p.X.Tick.Marker = quarterTicks(vm.Quarters)
	p.X.Min = -0.5
	p.X.Max = float64(len(vm.Quarters)) - 0.5
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p.Save(chartWidth, chartHeight, path)
}

func chartTitle(vm engine.ViewModel) string {
	sel := vm.Selection
	label := func(key string) string {
		if key == engine.KeyAll {
			return "All"
		}
		return key
	}
	return fmt.Sprintf("%s / %s / %s - %s",
		label(sel.Fuel), label(sel.Body), label(sel.Make), metricLabel(sel.Metric))
}

func metricLabel(m engine.Metric) string {
	switch m {
	case engine.MetricLicensed:
		return "Licensed"
	case engine.MetricSorn:
		return "SORN"
	default:
		return "Total"
	}
}

// quarterTicks labels at most 12 evenly spaced quarters so long windows
// stay readable.
type quarterTicks []string

func (q quarterTicks) Ticks(min, max float64) []plot.Tick {
	n := len(q)
	if n == 0 {
		return nil
	}
	step := 1
	if n > 12 {
		step = (n + 11) / 12
	}
	var ticks []plot.Tick
	for i := 0; i < n; i++ {
		t := plot.Tick{Value: float64(i)}
		if i%step == 0 || i == n-1 {
			t.Label = q[i]
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// countTicks formats y-axis counts with thousands grouping.
type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label != "" {
			ticks[i].Label = engine.FormatCount(t.Value)
		}
	}
	return ticks
}
