package loss

// Row is the loss breakdown at one swept value, in watts.
type Row struct {
	Value  float64
	Losses [NumKinds]float64
	Total  float64
}

// Loss returns one mechanism's output.
func (r Row) Loss(k Kind) float64 { return r.Losses[k] }

// Meta records what a table was computed for. The swept dimension's field is
// nil; the other three hold the baseline that stayed fixed.
type Meta struct {
	Dimension  Dimension
	PartNumber string
	Current    *float64
	Voltage    *float64
	Duty       *float64
	Frequency  *float64
}

// Held returns the fixed value of d and whether it was held.
func (m Meta) Held(d Dimension) (float64, bool) {
	var p *float64
	switch d {
	case Current:
		p = m.Current
	case Voltage:
		p = m.Voltage
	case Duty:
		p = m.Duty
	case Frequency:
		p = m.Frequency
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

func newMeta(d Dimension, part string, base OperatingPoint) Meta {
	m := Meta{Dimension: d, PartNumber: part}
	for _, dim := range []Dimension{Current, Voltage, Duty, Frequency} {
		if dim == d {
			continue
		}
		v := base.Get(dim)
		switch dim {
		case Current:
			m.Current = &v
		case Voltage:
			m.Voltage = &v
		case Duty:
			m.Duty = &v
		case Frequency:
			m.Frequency = &v
		}
	}
	return m
}

// ResultTable is the output of a sweep: one row per swept value, in order.
type ResultTable struct {
	Meta Meta
	Rows []Row
}

// Len returns the number of rows.
func (t *ResultTable) Len() int { return len(t.Rows) }

// Values returns the swept values.
func (t *ResultTable) Values() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Value
	}
	return out
}

// Column returns one mechanism's outputs.
func (t *ResultTable) Column(k Kind) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Losses[k]
	}
	return out
}

// Totals returns the total loss column.
func (t *ResultTable) Totals() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Total
	}
	return out
}
