package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ja7ad/mosloss/pkg/loss"
)

type jsonMeta struct {
	Dimension  string   `json:"dimension"`
	PartNumber string   `json:"part_number"`
	Current    *float64 `json:"current"`
	Voltage    *float64 `json:"voltage"`
	Duty       *float64 `json:"duty"`
	Frequency  *float64 `json:"frequency"`
}

type jsonRow struct {
	Value           float64 `json:"value"`
	Conduction      float64 `json:"conduction"`
	Switching       float64 `json:"switching"`
	ReverseRecovery float64 `json:"reverse_recovery"`
	OutputCharge    float64 `json:"output_charge"`
	GateCharge      float64 `json:"gate_charge"`
	Total           float64 `json:"total"`
}

type jsonDoc struct {
	RunID     string    `json:"run_id"`
	Generated time.Time `json:"generated"`
	Meta      jsonMeta  `json:"meta"`
	Rows      []jsonRow `json:"rows"`
}

// WriteJSON writes the table as one indented document tagged with a fresh
// run id. Held values of the swept dimension are null.
func WriteJSON(w io.Writer, t *loss.ResultTable) error {
	doc := jsonDoc{
		RunID:     uuid.NewString(),
		Generated: time.Now().UTC(),
		Meta: jsonMeta{
			Dimension:  t.Meta.Dimension.String(),
			PartNumber: t.Meta.PartNumber,
			Current:    t.Meta.Current,
			Voltage:    t.Meta.Voltage,
			Duty:       t.Meta.Duty,
			Frequency:  t.Meta.Frequency,
		},
		Rows: make([]jsonRow, 0, t.Len()),
	}
	for _, r := range t.Rows {
		doc.Rows = append(doc.Rows, jsonRow{
			Value:           r.Value,
			Conduction:      r.Loss(loss.Conduction),
			Switching:       r.Loss(loss.Switching),
			ReverseRecovery: r.Loss(loss.ReverseRecovery),
			OutputCharge:    r.Loss(loss.OutputCharge),
			GateCharge:      r.Loss(loss.GateCharge),
			Total:           r.Total,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
