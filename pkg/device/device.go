// Package device holds the MOSFET parameter record consumed by the loss
// engine, and reads it from tabular datasets (CSV, YAML, XLSX).
//
// A Device is a passive value: it is built once from a dataset row with
// Load and never mutated afterwards. All quantities are SI base units.
//
//	ds, err := device.Open("data.xlsx", "MOSFETS", device.DefaultSchema())
//	dev, err := device.Load(ds, "BSC010N04LS")
package device

import (
	"math"
)

// Device is the electrical characterization of one transistor.
type Device struct {
	PartNumber   string
	Manufacturer string

	RDSOn    float64 // on-resistance (Ω)
	COss     float64 // output capacitance (F) measured at VCOssRef
	VCOssRef float64 // reference voltage of COss (V), > 0
	QG       float64 // total gate charge (C)
	QRR      float64 // body diode reverse-recovery charge (C)
	TRise    float64 // rise time (s)
	TFall    float64 // fall time (s)
}

// Schema maps device fields to dataset column names.
type Schema struct {
	PartNumber   string
	Manufacturer string // optional column
	RDSOn        string
	COss         string
	VCOssRef     string
	QG           string
	QRR          string
	TRise        string
	TFall        string
}

// DefaultSchema returns the column names used by the MOSFET parts sheet.
func DefaultSchema() Schema {
	return Schema{
		PartNumber:   "mpn",
		Manufacturer: "manufacturer",
		RDSOn:        "r_ds_on",
		COss:         "c_oss",
		VCOssRef:     "c_oss@V",
		QG:           "q_g",
		QRR:          "q_rr",
		TRise:        "time_rise",
		TFall:        "time_fall",
	}
}

type numericField struct {
	column string
	dst    *float64
}

func (s Schema) numeric(d *Device) []numericField {
	return []numericField{
		{s.RDSOn, &d.RDSOn},
		{s.COss, &d.COss},
		{s.VCOssRef, &d.VCOssRef},
		{s.QG, &d.QG},
		{s.QRR, &d.QRR},
		{s.TRise, &d.TRise},
		{s.TFall, &d.TFall},
	}
}

// Validate checks the device invariants: every numeric field finite and
// non-negative, and VCOssRef strictly positive since it is used as a divisor.
func (d Device) Validate(s Schema) error {
	for _, f := range s.numeric(&d) {
		v := *f.dst
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return &SchemaError{Column: f.column, Row: d.PartNumber, Reason: "not finite"}
		case v < 0:
			return &SchemaError{Column: f.column, Row: d.PartNumber, Reason: "negative value"}
		}
	}
	if d.VCOssRef <= 0 {
		return &SchemaError{Column: s.VCOssRef, Row: d.PartNumber, Reason: "must be > 0"}
	}
	return nil
}
