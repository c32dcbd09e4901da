package device

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// DefaultSheet is the worksheet holding the parts table in XLSX datasets.
const DefaultSheet = "MOSFETS"

// Open reads a dataset, choosing the reader from the file extension:
// .csv, .yaml/.yml or .xlsx. sheet is only used for XLSX and defaults to
// DefaultSheet when empty.
func Open(path, sheet string, s Schema) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f, s)
	case ".yaml", ".yml":
		return ReadYAML(f, s)
	case ".xlsx":
		return ReadXLSX(f, sheet, s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// ReadCSV reads a header line followed by one part per line. Every
// non-blank line is data; there is no comment syntax.
func ReadCSV(r io.Reader, s Schema) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{Column: s.PartNumber, Reason: "missing header"}
	}
	return NewDataset(records[0], records[1:], s)
}

// ReadYAML reads a sequence of mappings, one per part:
//
//	- mpn: BSC010N04LS
//	  r_ds_on: 0.001
//	  c_oss: 1.1n
//
// Keys seen in any entry become columns, in first-seen order.
func ReadYAML(r io.Reader, s Schema) (*Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDataset(nil, nil, s)
		}
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("read yaml: expected a sequence of parts, line %d", seq.Line)
	}

	var (
		header []string
		cols   = map[string]int{}
		rows   [][]string
	)
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("read yaml: expected a mapping, line %d", item.Line)
		}
		row := make([]string, len(header))
		for i := 0; i+1 < len(item.Content); i += 2 {
			k, v := item.Content[i], item.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, &SchemaError{Column: k.Value, Reason: fmt.Sprintf("line %d: expected a scalar", v.Line)}
			}
			c, ok := cols[k.Value]
			if !ok {
				c = len(header)
				cols[k.Value] = c
				header = append(header, k.Value)
			}
			for len(row) <= c {
				row = append(row, "")
			}
			row[c] = v.Value
		}
		rows = append(rows, row)
	}
	return NewDataset(header, rows, s)
}

// ReadXLSX reads the given worksheet of a workbook. The first row is the header.
func ReadXLSX(r io.Reader, sheet string, s Schema) (*Dataset, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	defer func() {
		_ = wb.Close()
	}()

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Column: s.PartNumber, Reason: "missing header in sheet " + strconv.Quote(sheet)}
	}
	return NewDataset(rows[0], rows[1:], s)
}
