package loss

import (
	"fmt"
	"math"

	"github.com/ja7ad/mosloss/pkg/device"
)

// Kind identifies a loss mechanism; it indexes Row.Losses.
type Kind int

const (
	Conduction Kind = iota
	Switching
	ReverseRecovery
	OutputCharge
	GateCharge

	NumKinds = int(GateCharge) + 1
)

func (k Kind) String() string {
	if k >= 0 && int(k) < NumKinds {
		return mechanisms[k].Name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label returns a human-readable name, e.g. "reverse recovery".
func (k Kind) Label() string {
	if k >= 0 && int(k) < NumKinds {
		return mechanisms[k].Label
	}
	return k.String()
}

// Func evaluates one mechanism, in watts, for a device at an operating point.
type Func func(d *device.Device, p OperatingPoint) (float64, error)

// Mechanism is a named loss term.
type Mechanism struct {
	Kind  Kind
	Name  string // snake_case, used for column names
	Label string
	Func  Func
}

// mechanisms is indexed by Kind; Total sums it in this order.
var mechanisms = [NumKinds]Mechanism{
	{Conduction, "conduction", "conduction", conductionLoss},
	{Switching, "switching", "switching", switchingLoss},
	{ReverseRecovery, "reverse_recovery", "reverse recovery", reverseRecoveryLoss},
	{OutputCharge, "output_charge", "output charge", outputChargeLoss},
	{GateCharge, "gate_charge", "gate charge", gateChargeLoss},
}

// Mechanisms returns the registry in evaluation order.
func Mechanisms() []Mechanism {
	out := make([]Mechanism, NumKinds)
	copy(out, mechanisms[:])
	return out
}

// P = I² · Rds(on) · D
func conductionLoss(d *device.Device, p OperatingPoint) (float64, error) {
	return p.Current * p.Current * d.RDSOn * p.Duty, nil
}

// P = ½ · V · I · (tr + tf) · f
func switchingLoss(d *device.Device, p OperatingPoint) (float64, error) {
	return 0.5 * p.Voltage * p.Current * (d.TRise + d.TFall) * p.Frequency, nil
}

// P = V · Qrr · f
func reverseRecoveryLoss(d *device.Device, p OperatingPoint) (float64, error) {
	return p.Voltage * d.QRR * p.Frequency, nil
}

// P = ½ · Coss · sqrt(Vref / V) · V² · f
//
// Coss is scaled from its reference voltage with a 1/sqrt(V) law, so V must
// be strictly positive.
func outputChargeLoss(d *device.Device, p OperatingPoint) (float64, error) {
	if !(p.Voltage > 0) {
		return 0, fmt.Errorf("%w: output charge needs voltage > 0, got %g", ErrDomain, p.Voltage)
	}
	return 0.5 * d.COss * math.Sqrt(d.VCOssRef/p.Voltage) * p.Voltage * p.Voltage * p.Frequency, nil
}

// P = Qg · V · f
func gateChargeLoss(d *device.Device, p OperatingPoint) (float64, error) {
	return d.QG * p.Voltage * p.Frequency, nil
}
