// Package config holds the bench setup for a loss evaluation: which dataset and
// part to load, the baseline operating point and the sweep to run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid indicates a configuration that cannot drive an evaluation.
	ErrInvalid = errors.New("config: invalid")
)

// Sweep selects the swept values. Values wins over Start/Stop when both are set.
type Sweep struct {
	Start  *int      `yaml:"start,omitempty"`
	Stop   *int      `yaml:"stop,omitempty"`
	Values []float64 `yaml:"values,omitempty"`
}

// Config holds the bench setup.
// Units:
//   - Voltage: V
//   - Current: A
//   - Duty: fraction of the period [0..1]
//   - Frequency: Hz
type Config struct {
	Dataset string
	Sheet   string
	Part    string

	Voltage   float64
	Current   float64
	Duty      float64
	Frequency float64

	Sweep Sweep
}

// Overlay is a partial Config as read from a bench file. A nil operating
// point field is absent; a non-nil one overrides the default, zero included.
type Overlay struct {
	Dataset string `yaml:"dataset"`
	Sheet   string `yaml:"sheet"`
	Part    string `yaml:"part"`

	Voltage   *float64 `yaml:"voltage"`
	Current   *float64 `yaml:"current"`
	Duty      *float64 `yaml:"duty"`
	Frequency *float64 `yaml:"frequency"`

	Sweep Sweep `yaml:"sweep"`
}

// Default returns a Config pre-filled with the baseline operating point:
// 100 V, 2 A, 50 % duty, 100 kHz.
func Default() *Config {
	return &Config{
		Sheet:     "MOSFETS",
		Voltage:   100,
		Current:   2,
		Duty:      0.5,
		Frequency: 100e3,
	}
}

// Merge returns the defaults overridden by o.
// Notes:
//   - Strings and sweep settings override when non-empty.
//   - Operating point fields override whenever present, whatever the value.
//     Range problems are reported by Validate, never corrected here.
func Merge(o *Overlay) *Config {
	merged := *Default()
	if o == nil {
		return &merged
	}

	if o.Dataset != "" {
		merged.Dataset = o.Dataset
	}
	if o.Sheet != "" {
		merged.Sheet = o.Sheet
	}
	if o.Part != "" {
		merged.Part = o.Part
	}

	if o.Voltage != nil {
		merged.Voltage = *o.Voltage
	}
	if o.Current != nil {
		merged.Current = *o.Current
	}
	if o.Duty != nil {
		merged.Duty = *o.Duty
	}
	if o.Frequency != nil {
		merged.Frequency = *o.Frequency
	}

	if o.Sweep.Start != nil || o.Sweep.Stop != nil || len(o.Sweep.Values) > 0 {
		merged.Sweep = o.Sweep
	}
	return &merged
}

// Load reads a YAML file and merges it onto the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(bytes.NewReader(b))
}

// Parse decodes YAML and merges it onto the defaults. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	var o Overlay
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return Merge(&o), nil
}

// HasSweep reports whether a sweep range or list is configured.
func (c *Config) HasSweep() bool {
	return len(c.Sweep.Values) > 0 || (c.Sweep.Start != nil && c.Sweep.Stop != nil)
}

// Validate reports problems that make the config unusable. Warnings are
// conditions that the engine accepts but are likely mistakes.
func (c *Config) Validate() (warnings []string, err error) {
	var errs []error
	if c.Dataset == "" {
		errs = append(errs, fmt.Errorf("%w: dataset not set", ErrInvalid))
	}
	if c.Part == "" {
		errs = append(errs, fmt.Errorf("%w: part not set", ErrInvalid))
	}
	if c.Voltage < 0 {
		errs = append(errs, fmt.Errorf("%w: voltage must be >= 0", ErrInvalid))
	}
	if c.Current < 0 {
		errs = append(errs, fmt.Errorf("%w: current must be >= 0", ErrInvalid))
	}
	if c.Frequency < 0 {
		errs = append(errs, fmt.Errorf("%w: frequency must be >= 0", ErrInvalid))
	}
	if (c.Sweep.Start == nil) != (c.Sweep.Stop == nil) {
		errs = append(errs, fmt.Errorf("%w: sweep needs both start and stop", ErrInvalid))
	}

	if c.Duty < 0 || c.Duty > 1 {
		warnings = append(warnings, fmt.Sprintf("duty %g is outside [0,1]", c.Duty))
	}
	if c.Voltage == 0 {
		warnings = append(warnings, "voltage is 0; output charge loss is undefined")
	}
	return warnings, errors.Join(errs...)
}
