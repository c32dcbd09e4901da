package report

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/ja7ad/mosloss/pkg/loss"
)

// WriteHTML renders the table as a standalone page with an interactive line
// chart: one series per mechanism plus the total.
func WriteHTML(w io.Writer, t *loss.ResultTable) error {
	dim := t.Meta.Dimension

	line := charts.NewLine()
	yAxis := opts.YAxis{Name: "loss (W)", Scale: opts.Bool(true)}
	xAxis := opts.XAxis{Name: axisLabel(dim)}
	if dim == loss.Frequency && positive(t.Values()) {
		xAxis.Type = "log"
	} else {
		xAxis.Type = "value"
	}
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title(t),
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title(t),
			Subtitle: subtitle(t),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	for _, m := range loss.Mechanisms() {
		line.AddSeries(m.Label, points(t.Values(), t.Column(m.Kind)))
	}
	line.AddSeries("total", points(t.Values(), t.Totals()))
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(t.Len() <= 50)}),
	)

	return line.Render(w)
}

// points pairs x with y; value axes need [x, y] data rather than categories.
func points(xs, ys []float64) []opts.LineData {
	out := make([]opts.LineData, len(xs))
	for i := range xs {
		out[i] = opts.LineData{Value: []float64{xs[i], ys[i]}}
	}
	return out
}

func axisLabel(d loss.Dimension) string {
	if u := d.Unit(); u != "" {
		return d.String() + " (" + u + ")"
	}
	return d.String()
}

func positive(vs []float64) bool {
	if len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		if !(v > 0) {
			return false
		}
	}
	return true
}
