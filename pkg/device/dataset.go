package device

import (
	"fmt"
	"strings"

	"github.com/ja7ad/mosloss/pkg/types"
)

// Dataset is a table of string cells keyed by the part number column.
type Dataset struct {
	schema  Schema
	columns map[string]int // normalized header -> column index
	rows    [][]string
	index   map[string]int // part number -> row
	order   []string
}

// NewDataset indexes rows by the schema's part number column. Blank rows are
// dropped. A missing identifier column, an empty identifier or a duplicate one
// is a SchemaError, since Load must resolve to exactly one row.
func NewDataset(header []string, rows [][]string, s Schema) (*Dataset, error) {
	ds := &Dataset{
		schema:  s,
		columns: make(map[string]int, len(header)),
		index:   make(map[string]int, len(rows)),
	}
	for i, h := range header {
		key := normalize(h)
		if key == "" {
			continue
		}
		if _, dup := ds.columns[key]; dup {
			return nil, &SchemaError{Column: h, Reason: "duplicate column"}
		}
		ds.columns[key] = i
	}

	idCol, ok := ds.columns[normalize(s.PartNumber)]
	if !ok {
		return nil, &SchemaError{Column: s.PartNumber, Reason: "missing column"}
	}

	for n, r := range rows {
		if blank(r) {
			continue
		}
		id := strings.TrimSpace(cell(r, idCol))
		if id == "" {
			return nil, &SchemaError{Column: s.PartNumber, Row: fmt.Sprintf("#%d", n+1), Reason: "empty identifier"}
		}
		if _, dup := ds.index[id]; dup {
			return nil, &SchemaError{Column: s.PartNumber, Row: id, Reason: "duplicate identifier"}
		}
		ds.index[id] = len(ds.rows)
		ds.rows = append(ds.rows, r)
		ds.order = append(ds.order, id)
	}
	return ds, nil
}

// Len returns the number of parts.
func (ds *Dataset) Len() int { return len(ds.rows) }

// IDs returns the part numbers in dataset order.
func (ds *Dataset) IDs() []string {
	out := make([]string, len(ds.order))
	copy(out, ds.order)
	return out
}

// Load builds the Device stored under id.
func Load(ds *Dataset, id string) (Device, error) {
	n, ok := ds.index[strings.TrimSpace(id)]
	if !ok {
		return Device{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return ds.device(n)
}

// LoadAll builds every device, in dataset order.
func LoadAll(ds *Dataset) ([]Device, error) {
	out := make([]Device, 0, len(ds.rows))
	for n := range ds.rows {
		d, err := ds.device(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (ds *Dataset) device(n int) (Device, error) {
	r := ds.rows[n]
	d := Device{PartNumber: ds.order[n]}

	if c, ok := ds.columns[normalize(ds.schema.Manufacturer)]; ok && ds.schema.Manufacturer != "" {
		d.Manufacturer = strings.TrimSpace(cell(r, c))
	}

	for _, f := range ds.schema.numeric(&d) {
		c, ok := ds.columns[normalize(f.column)]
		if !ok {
			return Device{}, &SchemaError{Column: f.column, Row: d.PartNumber, Reason: "missing column"}
		}
		raw := strings.TrimSpace(cell(r, c))
		if raw == "" {
			return Device{}, &SchemaError{Column: f.column, Row: d.PartNumber, Reason: "empty cell"}
		}
		v, err := types.ParseQuantity(raw)
		if err != nil {
			return Device{}, &SchemaError{Column: f.column, Row: d.PartNumber, Reason: fmt.Sprintf("non-numeric value %q", raw)}
		}
		*f.dst = v
	}

	if err := d.Validate(ds.schema); err != nil {
		return Device{}, err
	}
	return d, nil
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// cell tolerates ragged rows; spreadsheet readers drop trailing empty cells.
func cell(r []string, i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
