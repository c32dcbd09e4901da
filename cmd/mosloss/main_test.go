package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/mosloss/pkg/device"
	"github.com/ja7ad/mosloss/pkg/loss"
)

const parts = `mpn,manufacturer,r_ds_on,c_oss,c_oss@V,q_g,q_rr,time_rise,time_fall
REF-1,Acme,0.01,200p,25,20n,50n,20n,15n
LOW-R,Acme,1m,1n,50,80n,100n,10n,10n
`

func writeDataset(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "parts.csv")
	require.NoError(t, os.WriteFile(path, []byte(parts), 0o644))
	return dir, path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Copyright (c) 2024 Javad Rajabzadeh Inc. All rights reserved.")
	assert.Contains(t, out, "https://github.com/ja7ad/mosloss")
}

func TestParts(t *testing.T) {
	dir, ds := writeDataset(t)
	plot := filepath.Join(dir, "out", "parts.svg")

	out, err := execute(t, "parts", "--dataset", ds, "--plot", plot)
	require.NoError(t, err)
	assert.Contains(t, out, "REF-1")
	assert.Contains(t, out, "LOW-R")
	assert.FileExists(t, plot)
}

func TestEval(t *testing.T) {
	_, ds := writeDataset(t)

	out, err := execute(t, "eval", "--dataset", ds, "--part", "REF-1")
	require.NoError(t, err)
	t.Log("\n" + out)
	assert.Contains(t, out, "f=100.00 kHz")
	assert.Contains(t, out, "1.12 W")

	// SI flags override the default point
	out, err = execute(t, "eval", "--dataset", ds, "-p", "REF-1", "-I", "10", "-f", "100k")
	require.NoError(t, err)
	assert.Contains(t, out, "I=10.00 A")
	assert.Contains(t, out, "3.00 W")
}

func TestEval_Errors(t *testing.T) {
	_, ds := writeDataset(t)

	_, err := execute(t, "eval", "--dataset", ds, "--part", "NOPE")
	assert.ErrorIs(t, err, device.ErrNotFound)

	_, err = execute(t, "eval", "--dataset", ds, "--part", "REF-1", "-V", "0")
	assert.ErrorIs(t, err, loss.ErrDomain)

	_, err = execute(t, "eval", "--part", "REF-1")
	assert.Error(t, err, "dataset is required")

	_, err = execute(t, "eval", "--dataset", ds, "--part", "REF-1", "-f", "fast")
	assert.Error(t, err)
}

func TestSweep_FrequencyOutputs(t *testing.T) {
	dir, ds := writeDataset(t)
	csvPath := filepath.Join(dir, "out", "f.csv")
	jsonPath := filepath.Join(dir, "out", "f.json")
	htmlPath := filepath.Join(dir, "out", "f.html")
	plotPath := filepath.Join(dir, "out", "f.png")

	out, err := execute(t, "sweep", "frequency", "--dataset", ds, "--part", "REF-1",
		"--values", "1,10,100,1k,10k,100k,1M",
		"--csv", csvPath, "--json", jsonPath, "--html", htmlPath, "--plot", plotPath)
	require.NoError(t, err)
	assert.Contains(t, out, "REF-1 loss vs frequency")

	for _, p := range []string{csvPath, jsonPath, htmlPath, plotPath} {
		assert.FileExists(t, p)
	}

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, recs, 8)
	assert.Equal(t, "1e+06", recs[7][0])
}

func TestSweep_CurrentRangeCSV(t *testing.T) {
	_, ds := writeDataset(t)

	out, err := execute(t, "sweep", "current", "--dataset", ds, "--part", "REF-1",
		"--start", "5", "--stop", "2", "--pretty=false")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2,"))
	assert.True(t, strings.HasPrefix(lines[3], "4,"))
}

func TestSweep_Duty(t *testing.T) {
	_, ds := writeDataset(t)

	out, err := execute(t, "sweep", "duty", "--dataset", ds, "--part", "REF-1", "--pretty=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 101)
}

func TestSweep_Errors(t *testing.T) {
	_, ds := writeDataset(t)

	_, err := execute(t, "sweep", "frequency", "--dataset", ds, "--part", "REF-1")
	assert.ErrorIs(t, err, loss.ErrConfig, "no range or list")

	_, err = execute(t, "sweep", "voltage", "--dataset", ds, "--part", "REF-1")
	assert.Error(t, err, "voltage is not a sweep dimension")

	_, err = execute(t, "sweep", "current", "--dataset", ds, "--part", "REF-1", "--start", "1")
	assert.Error(t, err)

	_, err = execute(t, "sweep", "current", "--dataset", ds, "--part", "REF-1", "--start", "0", "--stop", "100000000")
	assert.ErrorIs(t, err, loss.ErrConfig, "oversized range")

	_, err = execute(t, "sweep", "current", "--dataset", ds, "--part", "REF-1", "--values", "1", "--csv", "out.xlsx")
	assert.Error(t, err)
}

func TestSweep_ConfigFile(t *testing.T) {
	dir, ds := writeDataset(t)
	cfg := filepath.Join(dir, "bench.yaml")
	body := "dataset: " + ds + "\npart: LOW-R\nvoltage: 48\nsweep:\n  start: 1\n  stop: 4\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))

	out, err := execute(t, "sweep", "current", "--config", cfg, "--pretty=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	// flags win over the file
	out, err = execute(t, "sweep", "current", "--config", cfg, "--part", "REF-1", "--values", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "REF-1 loss vs current")
	assert.Contains(t, out, "voltage=48.00 V")
}
