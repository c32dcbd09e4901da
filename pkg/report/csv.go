package report

import (
	"encoding/csv"
	"io"

	"github.com/ja7ad/mosloss/pkg/loss"
	"github.com/ja7ad/mosloss/pkg/util"
)

// WriteCSV writes one header line and one line per row, values in SI base
// units so the file round-trips into spreadsheets.
func WriteCSV(w io.Writer, t *loss.ResultTable) error {
	cw := csv.NewWriter(w)
	header := columns(t)
	header[0] = "value"
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := make([]string, 0, loss.NumKinds+2)
		rec = append(rec, util.FmtFloat(r.Value))
		for _, l := range r.Losses {
			rec = append(rec, util.FmtFloat(l))
		}
		rec = append(rec, util.FmtFloat(r.Total))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
