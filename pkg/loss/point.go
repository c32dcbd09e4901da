package loss

import "fmt"

// Dimension names one axis of the operating point.
type Dimension int

const (
	Current Dimension = iota
	Voltage
	Duty
	Frequency
)

func (d Dimension) String() string {
	switch d {
	case Current:
		return "current"
	case Voltage:
		return "voltage"
	case Duty:
		return "duty"
	case Frequency:
		return "frequency"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Unit returns the SI unit symbol of the dimension; duty is dimensionless.
func (d Dimension) Unit() string {
	switch d {
	case Current:
		return "A"
	case Voltage:
		return "V"
	case Frequency:
		return "Hz"
	default:
		return ""
	}
}

// OperatingPoint is the electrical state the losses are evaluated at.
type OperatingPoint struct {
	Current   float64 // A
	Voltage   float64 // V
	Duty      float64 // on-time fraction, expected in [0,1] but not enforced
	Frequency float64 // Hz
}

// Get returns the value of one dimension.
func (p OperatingPoint) Get(d Dimension) float64 {
	switch d {
	case Current:
		return p.Current
	case Voltage:
		return p.Voltage
	case Duty:
		return p.Duty
	default:
		return p.Frequency
	}
}

// Apply returns p with every present override substituted.
func (p OperatingPoint) Apply(o Overrides) OperatingPoint {
	return OperatingPoint{
		Current:   Resolve(o.Current, p.Current),
		Voltage:   Resolve(o.Voltage, p.Voltage),
		Duty:      Resolve(o.Duty, p.Duty),
		Frequency: Resolve(o.Frequency, p.Frequency),
	}
}

// Override is an optional value for one dimension. The zero Override is
// absent; Set makes a present one, so Set(0) overrides with a real zero.
type Override struct {
	value float64
	ok    bool
}

// Set returns a present override holding v.
func Set(v float64) Override { return Override{value: v, ok: true} }

// Value returns the override and whether it is present.
func (o Override) Value() (float64, bool) { return o.value, o.ok }

// Resolve returns the override when present and the baseline otherwise.
func Resolve(o Override, baseline float64) float64 {
	if o.ok {
		return o.value
	}
	return baseline
}

// Overrides is a per-call set of optional operating point values.
// The zero value overrides nothing.
type Overrides struct {
	Current   Override
	Voltage   Override
	Duty      Override
	Frequency Override
}

// With returns a copy of o with dimension d overridden by v.
func (o Overrides) With(d Dimension, v float64) Overrides {
	switch d {
	case Current:
		o.Current = Set(v)
	case Voltage:
		o.Voltage = Set(v)
	case Duty:
		o.Duty = Set(v)
	case Frequency:
		o.Frequency = Set(v)
	}
	return o
}

// At returns overrides for every dimension of p.
func At(p OperatingPoint) Overrides {
	return Overrides{
		Current:   Set(p.Current),
		Voltage:   Set(p.Voltage),
		Duty:      Set(p.Duty),
		Frequency: Set(p.Frequency),
	}
}
