// Package report renders loss tables and device lists for people and tools:
// aligned text, CSV, JSON, an interactive HTML chart and static plots.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ja7ad/mosloss/pkg/loss"
)

// ErrFormat indicates an output format the writer cannot produce.
var ErrFormat = errors.New("report: unsupported format")

// Format is an output encoding, named after its file extension.
type Format string

const (
	Text Format = "txt"
	CSV  Format = "csv"
	JSON Format = "json"
	HTML Format = "html"
	PNG  Format = "png"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

// FormatFor derives the format from a file name, e.g. "out/curve.svg" -> SVG.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch f := Format(ext); f {
	case Text, CSV, JSON, HTML, PNG, SVG, PDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, path)
	}
}

// IsImage reports whether f is rendered by the plotting backend.
func (f Format) IsImage() bool { return f == PNG || f == SVG || f == PDF }

// columns returns the table header: swept dimension, mechanisms, total.
func columns(t *loss.ResultTable) []string {
	cols := []string{t.Meta.Dimension.String()}
	for _, m := range loss.Mechanisms() {
		cols = append(cols, m.Name)
	}
	return append(cols, "total")
}

func title(t *loss.ResultTable) string {
	return fmt.Sprintf("%s loss vs %s", t.Meta.PartNumber, t.Meta.Dimension)
}

// subtitle lists the operating point values held fixed during the sweep.
func subtitle(t *loss.ResultTable) string {
	var parts []string
	for _, d := range []loss.Dimension{loss.Current, loss.Voltage, loss.Duty, loss.Frequency} {
		v, ok := t.Meta.Held(d)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", d, humanize(d, v)))
	}
	return strings.Join(parts, ", ")
}
