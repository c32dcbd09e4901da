package device

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partsCSV = `mpn,manufacturer,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise,time_fall
REF-1,Acme,0.01,200e-12,25,20e-9,50e-9,20e-9,15e-9
SI-2,Acme,10m,200p,25,20n,50n,20n,15n
BAD-3,Other,abc,200e-12,25,20e-9,50e-9,20e-9,15e-9
`

func refDevice() Device {
	return Device{
		PartNumber:   "REF-1",
		Manufacturer: "Acme",
		RDSOn:        0.01,
		COss:         200e-12,
		VCOssRef:     25,
		QG:           20e-9,
		QRR:          50e-9,
		TRise:        20e-9,
		TFall:        15e-9,
	}
}

func readParts(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ReadCSV(strings.NewReader(partsCSV), DefaultSchema())
	require.NoError(t, err)
	return ds
}

func TestLoad_Found(t *testing.T) {
	ds := readParts(t)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"REF-1", "SI-2", "BAD-3"}, ds.IDs())

	d, err := Load(ds, "REF-1")
	require.NoError(t, err)
	assert.Equal(t, refDevice(), d)

	// identifiers are trimmed before lookup
	d, err = Load(ds, "  REF-1 ")
	require.NoError(t, err)
	assert.Equal(t, "REF-1", d.PartNumber)
}

func TestReadCSV_HashIsData(t *testing.T) {
	in := "mpn,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise,time_fall\n#7-ALT,0.01,1e-10,25,1e-8,1e-8,1e-8,1e-8\n"
	ds, err := ReadCSV(strings.NewReader(in), DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []string{"#7-ALT"}, ds.IDs())

	d, err := Load(ds, "#7-ALT")
	require.NoError(t, err)
	assert.Equal(t, 0.01, d.RDSOn)
}

func TestLoad_SIPrefixedCells(t *testing.T) {
	ds := readParts(t)
	d, err := Load(ds, "SI-2")
	require.NoError(t, err)

	want := refDevice()
	assert.InDelta(t, want.RDSOn, d.RDSOn, 1e-15)
	assert.InDelta(t, want.COss, d.COss, 1e-24)
	assert.InDelta(t, want.QG, d.QG, 1e-21)
	assert.InDelta(t, want.QRR, d.QRR, 1e-21)
	assert.InDelta(t, want.TRise, d.TRise, 1e-21)
	assert.InDelta(t, want.TFall, d.TFall, 1e-21)
}

func TestLoad_NotFound(t *testing.T) {
	ds := readParts(t)
	_, err := Load(ds, "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrSchema))
	assert.Contains(t, err.Error(), "NOPE")
}

func TestLoad_NonNumeric(t *testing.T) {
	ds := readParts(t)
	_, err := Load(ds, "BAD-3")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSchema)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "r_ds_on", se.Column)
	assert.Equal(t, "BAD-3", se.Row)
}

func TestLoad_MissingColumn(t *testing.T) {
	in := "mpn,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise\nX,0.01,1e-10,25,1e-8,1e-8,1e-8\n"
	ds, err := ReadCSV(strings.NewReader(in), DefaultSchema())
	require.NoError(t, err, "a dataset may lack columns until a row is loaded")

	_, err = Load(ds, "X")
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "time_fall", se.Column)
	assert.Equal(t, "missing column", se.Reason)
}

func TestLoad_EmptyCellAndRaggedRow(t *testing.T) {
	in := "mpn,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise,time_fall\nX,0.01,1e-10,25,1e-8,1e-8,1e-8\nY,0.01,,25,1e-8,1e-8,1e-8,1e-8\n"
	ds, err := ReadCSV(strings.NewReader(in), DefaultSchema())
	require.NoError(t, err)

	for _, id := range []string{"X", "Y"} {
		_, err := Load(ds, id)
		assert.ErrorIs(t, err, ErrSchema, "row %s", id)
	}
}

func TestNewDataset_Errors(t *testing.T) {
	s := DefaultSchema()

	t.Run("missing_identifier_column", func(t *testing.T) {
		_, err := NewDataset([]string{"part", "r_ds_on"}, nil, s)
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "mpn", se.Column)
	})
	t.Run("duplicate_identifier", func(t *testing.T) {
		_, err := NewDataset([]string{"mpn"}, [][]string{{"A"}, {"A"}}, s)
		assert.ErrorIs(t, err, ErrSchema)
	})
	t.Run("empty_identifier", func(t *testing.T) {
		_, err := NewDataset([]string{"mpn", "x"}, [][]string{{"", "1"}}, s)
		assert.ErrorIs(t, err, ErrSchema)
	})
	t.Run("duplicate_column", func(t *testing.T) {
		_, err := NewDataset([]string{"mpn", "MPN "}, nil, s)
		assert.ErrorIs(t, err, ErrSchema)
	})
	t.Run("blank_rows_skipped", func(t *testing.T) {
		ds, err := NewDataset([]string{"mpn"}, [][]string{{"A"}, {"", ""}, {" "}, {"B"}}, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, ds.IDs())
	})
}

func TestNewDataset_HeaderCaseInsensitive(t *testing.T) {
	header := []string{" MPN ", "R_DS_ON", "C_OSS", "C_OSS@v", "Q_G", "Q_RR", "Time_Rise", "Time_Fall"}
	ds, err := NewDataset(header, [][]string{{"REF-1", "0.01", "200e-12", "25", "20e-9", "50e-9", "20e-9", "15e-9"}}, DefaultSchema())
	require.NoError(t, err)

	d, err := Load(ds, "REF-1")
	require.NoError(t, err)
	want := refDevice()
	want.Manufacturer = ""
	assert.Equal(t, want, d)
}

func TestValidate(t *testing.T) {
	s := DefaultSchema()
	require.NoError(t, refDevice().Validate(s))

	cases := []struct {
		name   string
		mutate func(d *Device)
		column string
	}{
		{"negative_rds", func(d *Device) { d.RDSOn = -1 }, "r_ds_on"},
		{"nan_qg", func(d *Device) { d.QG = math.NaN() }, "q_g"},
		{"inf_trise", func(d *Device) { d.TRise = math.Inf(1) }, "time_rise"},
		{"zero_vref", func(d *Device) { d.VCOssRef = 0 }, "c_oss@V"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := refDevice()
			tc.mutate(&d)
			err := d.Validate(s)
			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.column, se.Column)
		})
	}

	// zero is a valid value for everything except the reference voltage
	d := refDevice()
	d.QRR = 0
	d.TFall = 0
	assert.NoError(t, d.Validate(s))
}

func TestLoadAll(t *testing.T) {
	in := "mpn,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise,time_fall\nA,0.01,1e-10,25,1e-8,1e-8,1e-8,1e-8\nB,0.02,1e-10,25,1e-8,1e-8,1e-8,1e-8\n"
	ds, err := ReadCSV(strings.NewReader(in), DefaultSchema())
	require.NoError(t, err)

	all, err := LoadAll(ds)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].PartNumber)
	assert.Equal(t, 0.02, all[1].RDSOn)

	// a single bad row fails the whole listing
	_, err = LoadAll(readParts(t))
	assert.ErrorIs(t, err, ErrSchema)
}

func TestSchemaError_Message(t *testing.T) {
	e := &SchemaError{Column: "q_g", Reason: "missing column"}
	assert.Equal(t, `device: column "q_g": missing column`, e.Error())

	e = &SchemaError{Column: "q_g", Row: "X", Reason: "empty cell"}
	assert.Equal(t, `device: row "X" column "q_g": empty cell`, e.Error())
}
