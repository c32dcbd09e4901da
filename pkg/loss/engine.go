// Package loss estimates MOSFET power dissipation from closed-form loss
// equations and sweeps one operating point dimension to build loss curves.
//
// An Engine holds a baseline OperatingPoint and an attached device. Every
// mechanism call takes Overrides; absent fields fall back to the baseline.
// Calls never mutate the engine, so a result depends only on (baseline,
// overrides, device).
//
//	e := loss.New(100, 2, 0.5, 100e3)
//	e.AttachDevice(&dev)
//	p, err := e.Total(loss.Overrides{Current: loss.Set(4)})
//
//	e.SetSweepList([]float64{1e3, 10e3, 100e3})
//	table, err := e.FrequencySweep()
//
// Engines are not safe for concurrent use. Separate engines share nothing.
package loss

import (
	"fmt"

	"github.com/ja7ad/mosloss/pkg/device"
)

// dutySteps is the resolution of DutySweep: values 0.00, 0.01, ..., 0.99.
const dutySteps = 100

// Engine evaluates losses for one device around a baseline operating point.
type Engine struct {
	base   OperatingPoint
	device *device.Device

	sweep    []float64
	sweepSet bool
}

// New returns an engine with the given baseline and no device attached.
func New(voltage, current, duty, frequency float64) *Engine {
	return &Engine{
		base: OperatingPoint{
			Current:   current,
			Voltage:   voltage,
			Duty:      duty,
			Frequency: frequency,
		},
	}
}

// AttachDevice replaces the attached device and returns its part number.
// The engine keeps the pointer; it does not copy the device.
func (e *Engine) AttachDevice(d *device.Device) string {
	e.device = d
	if d == nil {
		return ""
	}
	return d.PartNumber
}

// Device returns the attached device, or nil.
func (e *Engine) Device() *device.Device { return e.device }

// OperatingPoint returns the baseline.
func (e *Engine) OperatingPoint() OperatingPoint { return e.base }

// MaxSweepLen bounds the number of values SetSweepRange materializes.
const MaxSweepLen = 1 << 20

// SetSweepRange sets the sweep to the integers [start, stop). The bounds are
// swapped when start > stop; start == stop gives an empty sweep. A range
// longer than MaxSweepLen fails with ErrConfig and leaves the sweep unchanged.
func (e *Engine) SetSweepRange(start, stop int) error {
	if start > stop {
		start, stop = stop, start
	}
	// unsigned difference cannot overflow for any pair of ints
	n := uint64(stop) - uint64(start)
	if n > MaxSweepLen {
		return fmt.Errorf("%w: sweep range [%d, %d) has %d values, max %d", ErrConfig, start, stop, n, MaxSweepLen)
	}
	values := make([]float64, 0, n)
	for v := start; v < stop; v++ {
		values = append(values, float64(v))
	}
	e.sweep, e.sweepSet = values, true
	return nil
}

// SetSweepList sets the sweep to values, in order. The slice is copied.
func (e *Engine) SetSweepList(values []float64) {
	e.sweep = append(make([]float64, 0, len(values)), values...)
	e.sweepSet = true
}

// SweepValues returns a copy of the configured sweep and whether one is set.
func (e *Engine) SweepValues() ([]float64, bool) {
	if !e.sweepSet {
		return nil, false
	}
	return append([]float64(nil), e.sweep...), true
}

// Loss evaluates mechanism k with overrides o.
func (e *Engine) Loss(k Kind, o Overrides) (float64, error) {
	if k < 0 || int(k) >= NumKinds {
		return 0, fmt.Errorf("loss: unknown mechanism %d", int(k))
	}
	if e.device == nil {
		return 0, fmt.Errorf("%w: no device attached", ErrConfig)
	}
	return mechanisms[k].Func(e.device, e.base.Apply(o))
}

// Conduction returns I² · Rds(on) · D.
func (e *Engine) Conduction(o Overrides) (float64, error) { return e.Loss(Conduction, o) }

// Switching returns ½ · V · I · (tr + tf) · f.
func (e *Engine) Switching(o Overrides) (float64, error) { return e.Loss(Switching, o) }

// ReverseRecovery returns V · Qrr · f.
func (e *Engine) ReverseRecovery(o Overrides) (float64, error) { return e.Loss(ReverseRecovery, o) }

// OutputCharge returns ½ · Coss · sqrt(Vref/V) · V² · f. It fails with
// ErrDomain when V <= 0.
func (e *Engine) OutputCharge(o Overrides) (float64, error) { return e.Loss(OutputCharge, o) }

// GateCharge returns Qg · V · f.
func (e *Engine) GateCharge(o Overrides) (float64, error) { return e.Loss(GateCharge, o) }

// Total returns the sum of every mechanism, each called with o.
func (e *Engine) Total(o Overrides) (float64, error) {
	r, err := e.Evaluate(o)
	if err != nil {
		return 0, err
	}
	return r.Total, nil
}

// Evaluate returns the full breakdown with o applied. Row.Value is left zero.
func (e *Engine) Evaluate(o Overrides) (Row, error) {
	var r Row
	for k := 0; k < NumKinds; k++ {
		v, err := e.Loss(Kind(k), o)
		if err != nil {
			return Row{}, err
		}
		r.Losses[k] = v
		r.Total += v
	}
	return r, nil
}

// FrequencySweep evaluates every mechanism at each configured sweep value
// used as the switching frequency.
func (e *Engine) FrequencySweep() (*ResultTable, error) {
	return e.configuredSweep(Frequency)
}

// CurrentSweep evaluates every mechanism at each configured sweep value used
// as the drain current.
func (e *Engine) CurrentSweep() (*ResultTable, error) {
	return e.configuredSweep(Current)
}

// DutySweep evaluates every mechanism for duty 0.00 to 0.99 in 0.01 steps.
// Any configured sweep range or list is ignored.
func (e *Engine) DutySweep() (*ResultTable, error) {
	values := make([]float64, dutySteps)
	for i := range values {
		values[i] = float64(i) / dutySteps
	}
	return e.Sweep(Duty, values)
}

func (e *Engine) configuredSweep(d Dimension) (*ResultTable, error) {
	if e.device == nil {
		return nil, fmt.Errorf("%w: no device attached", ErrConfig)
	}
	if !e.sweepSet {
		return nil, fmt.Errorf("%w: sweep range/list not set", ErrConfig)
	}
	return e.Sweep(d, e.sweep)
}

// Sweep evaluates every mechanism with dimension d overridden by each value
// in turn; the other dimensions stay at the baseline. The first failing
// value aborts the sweep.
func (e *Engine) Sweep(d Dimension, values []float64) (*ResultTable, error) {
	if e.device == nil {
		return nil, fmt.Errorf("%w: no device attached", ErrConfig)
	}

	t := &ResultTable{
		Meta: newMeta(d, e.device.PartNumber, e.base),
		Rows: make([]Row, 0, len(values)),
	}
	for _, v := range values {
		r, err := e.Evaluate(Overrides{}.With(d, v))
		if err != nil {
			return nil, fmt.Errorf("%s sweep at %g: %w", d, v, err)
		}
		r.Value = v
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}
