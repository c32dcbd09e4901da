package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ja7ad/mosloss/pkg/device"
	"github.com/ja7ad/mosloss/pkg/loss"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// WritePlot draws loss curves as a PNG, SVG or PDF image. A frequency sweep
// with only positive values uses a logarithmic x axis.
func WritePlot(w io.Writer, t *loss.ResultTable, f Format) error {
	if !f.IsImage() {
		return fmt.Errorf("%w: %q is not an image format", ErrFormat, f)
	}

	p := plot.New()
	p.Title.Text = title(t) + "\n" + subtitle(t)
	p.X.Label.Text = axisLabel(t.Meta.Dimension)
	p.Y.Label.Text = "loss (W)"
	p.Legend.Top = true
	p.Legend.Left = true
	if t.Meta.Dimension == loss.Frequency && positive(t.Values()) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	xs := t.Values()
	series := make([][]float64, 0, loss.NumKinds+1)
	names := make([]string, 0, loss.NumKinds+1)
	for _, m := range loss.Mechanisms() {
		series = append(series, t.Column(m.Kind))
		names = append(names, m.Label)
	}
	series = append(series, t.Totals())
	names = append(names, "total")

	for i, ys := range series {
		l, err := plotter.NewLine(xyPoints(xs, ys))
		if err != nil {
			return fmt.Errorf("plot %s: %w", names[i], err)
		}
		l.Color = plotutil.Color(i)
		l.Dashes = plotutil.Dashes(i)
		if i == len(series)-1 {
			l.Width = vg.Points(2)
		}
		p.Add(l)
		p.Legend.Add(names[i], l)
	}

	return render(w, p, f)
}

// WriteScatter draws the part selection chart: gate charge against
// on-resistance, one color per part, glyph size scaled by Coss.
func WriteScatter(w io.Writer, devices []device.Device, f Format) error {
	if !f.IsImage() {
		return fmt.Errorf("%w: %q is not an image format", ErrFormat, f)
	}

	p := plot.New()
	p.Title.Text = "MOSFETs"
	p.X.Label.Text = "q_g (C)"
	p.Y.Label.Text = "r_ds_on (Ω)"
	p.Add(plotter.NewGrid())

	var maxC float64
	for _, d := range devices {
		maxC = math.Max(maxC, d.COss)
	}

	for i, d := range devices {
		s, err := plotter.NewScatter(plotter.XYs{{X: d.QG, Y: d.RDSOn}})
		if err != nil {
			return fmt.Errorf("scatter %s: %w", d.PartNumber, err)
		}
		radius := vg.Points(3)
		if maxC > 0 {
			radius += vg.Points(9 * math.Sqrt(d.COss/maxC))
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  plotutil.Color(i),
			Radius: radius,
			Shape:  draw.CircleGlyph{},
		}
		p.Add(s)
		p.Legend.Add(d.PartNumber, s)
	}

	return render(w, p, f)
}

func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func render(w io.Writer, p *plot.Plot, f Format) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, string(f))
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	_, err = wt.WriteTo(w)
	return err
}
