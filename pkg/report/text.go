package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ja7ad/mosloss/pkg/device"
	"github.com/ja7ad/mosloss/pkg/loss"
	"github.com/ja7ad/mosloss/pkg/types"
)

func humanize(d loss.Dimension, v float64) string {
	if d == loss.Duty {
		return fmt.Sprintf("%.2f", v)
	}
	return types.Quantity(v).Humanized(d.Unit())
}

func watts(v float64) string { return types.Quantity(v).Humanized("W") }

// WriteText writes the table aligned for a terminal, values in SI units.
func WriteText(w io.Writer, t *loss.ResultTable) error {
	if _, err := fmt.Fprintf(w, "# %s (%s)\n", title(t), subtitle(t)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	cols := columns(t)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(cols, "\t"))+"\t")
	dashes := make([]string, len(cols))
	for i, c := range cols {
		dashes[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t")+"\t")

	for _, r := range t.Rows {
		cells := []string{humanize(t.Meta.Dimension, r.Value)}
		for _, l := range r.Losses {
			cells = append(cells, watts(l))
		}
		cells = append(cells, watts(r.Total))
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

// WritePoint writes a single-point breakdown, one mechanism per line.
func WritePoint(w io.Writer, part string, p loss.OperatingPoint, r loss.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "part:\t%s\n", part)
	fmt.Fprintf(tw, "point:\tI=%s V=%s D=%.2f f=%s\n",
		types.Quantity(p.Current).Humanized("A"), types.Quantity(p.Voltage).Humanized("V"),
		p.Duty, types.Quantity(p.Frequency).Humanized("Hz"))
	fmt.Fprintln(tw)
	for _, m := range loss.Mechanisms() {
		fmt.Fprintf(tw, "- watt (%s):\t%s\n", m.Label, watts(r.Loss(m.Kind)))
	}
	fmt.Fprintf(tw, "- watt (total):\t%s\n", watts(r.Total))
	return tw.Flush()
}

// WriteParts lists devices with their characteristics.
func WriteParts(w io.Writer, devices []device.Device) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tMANUFACTURER\tRDS(on)\tCOSS\tQG\tQRR\tTR\tTF")
	fmt.Fprintln(tw, "----\t------------\t-------\t----\t--\t---\t--\t--")
	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s @ %s\t%s\t%s\t%s\t%s\n",
			d.PartNumber, d.Manufacturer,
			types.Quantity(d.RDSOn).Humanized("Ω"),
			types.Quantity(d.COss).Humanized("F"), types.Quantity(d.VCOssRef).Humanized("V"),
			types.Quantity(d.QG).Humanized("C"),
			types.Quantity(d.QRR).Humanized("C"),
			types.Quantity(d.TRise).Humanized("s"),
			types.Quantity(d.TFall).Humanized("s"),
		)
	}
	return tw.Flush()
}
