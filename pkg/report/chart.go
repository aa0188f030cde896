package report

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// ChartFormat is an output format for the harmonic chart.
type ChartFormat string

const (
	ChartHTML ChartFormat = "html"
	ChartPNG  ChartFormat = "png"
	ChartSVG  ChartFormat = "svg"
)

// ChartFormatFor picks the chart format from a file extension.
func ChartFormatFor(path string) (ChartFormat, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "html", "htm":
		return ChartHTML, nil
	case "png":
		return ChartPNG, nil
	case "svg":
		return ChartSVG, nil
	default:
		return "", fmt.Errorf("report: unsupported chart format %q", ext)
	}
}

// Chart size for the static formats.
const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Bar colors, one per factor
var factorColors = []color.RGBA{
	{R: 0x1e, G: 0x88, B: 0xe5, A: 255},
	{R: 0x43, G: 0xa0, B: 0x47, A: 255},
	{R: 0xe5, G: 0x39, B: 0x35, A: 255},
}

// WriteHarmonicsChart draws the harmonic factors of m as a grouped bar
// chart in the given format.
func WriteHarmonicsChart(w io.Writer, format ChartFormat, m winding.Machine, hs []winding.Harmonic) error {
	switch format {
	case ChartHTML:
		return HarmonicsHTML(w, m, hs)
	case ChartPNG, ChartSVG:
		return HarmonicsPlot(w, format, m, hs)
	}
	return fmt.Errorf("report: unsupported chart format %q", format)
}

// HarmonicsHTML renders an interactive echarts page.
func HarmonicsHTML(w io.Writer, m winding.Machine, hs []winding.Harmonic) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Harmonic winding factors",
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Harmonic winding factors",
			Subtitle: machineTitle(m),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "10",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "order"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "factor"}),
	)

	orders := make([]string, len(hs))
	kp := make([]opts.BarData, len(hs))
	kd := make([]opts.BarData, len(hs))
	kw := make([]opts.BarData, len(hs))
	for i, h := range hs {
		orders[i] = strconv.Itoa(h.Order)
		kp[i] = opts.BarData{Value: h.Kp}
		kd[i] = opts.BarData{Value: h.Kd}
		kw[i] = opts.BarData{Value: h.Kw}
	}
	bar.SetXAxis(orders).
		AddSeries("kp", kp).
		AddSeries("kd", kd).
		AddSeries("kw", kw)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("report: failed to render chart: %w", err)
	}
	return nil
}

// HarmonicsPlot renders a static PNG or SVG chart with gonum/plot.
func HarmonicsPlot(w io.Writer, format ChartFormat, m winding.Machine, hs []winding.Harmonic) error {
	if len(hs) == 0 {
		return fmt.Errorf("report: no harmonics to plot")
	}

	p := plot.New()
	p.Title.Text = "Harmonic winding factors: " + machineTitle(m)
	p.X.Label.Text = "order"
	p.Y.Label.Text = "factor"
	p.Legend.Top = true

	width := vg.Points(8)
	series := []struct {
		name string
		get  func(winding.Harmonic) float64
	}{
		{"kp", func(h winding.Harmonic) float64 { return h.Kp }},
		{"kd", func(h winding.Harmonic) float64 { return h.Kd }},
		{"kw", func(h winding.Harmonic) float64 { return h.Kw }},
	}
	for i, s := range series {
		vs := make(plotter.Values, len(hs))
		for j, h := range hs {
			vs[j] = s.get(h)
		}
		bars, err := plotter.NewBarChart(vs, width)
		if err != nil {
			return fmt.Errorf("report: failed to build %s bars: %w", s.name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = factorColors[i]
		bars.Offset = vg.Length(i-1) * width
		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}

	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = strconv.Itoa(h.Order)
	}
	p.NominalX(names...)

	wt, err := p.WriterTo(chartWidth, chartHeight, string(format))
	if err != nil {
		return fmt.Errorf("report: failed to create %s canvas: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: failed to write %s chart: %w", format, err)
	}
	return nil
}

func machineTitle(m winding.Machine) string {
	return fmt.Sprintf("Z=%d, 2p=%d, m=%d, %s, %s", m.Slots, m.Poles, m.Phases, m.Layer.Label(), m.Pitch.Label())
}
