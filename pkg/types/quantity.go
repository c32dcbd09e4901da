package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Quantity is a float64 in SI base units (ohm, farad, second, hertz, ...).
type Quantity float64

type prefix struct {
	symbol string
	exp    float64
}

// ordered from largest to smallest; Humanized picks the first that fits.
var prefixes = []prefix{
	{"T", 1e12},
	{"G", 1e9},
	{"M", 1e6},
	{"k", 1e3},
	{"", 1},
	{"m", 1e-3},
	{"µ", 1e-6},
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
}

// Humanized returns the value in engineering notation with two decimals and
// the given unit, e.g. Quantity(100e3).Humanized("Hz") == "100.00 kHz".
func (q Quantity) Humanized(unit string) string {
	v := float64(q)
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return strings.TrimSpace(fmt.Sprintf("%v %s", v, unit))
	case v == 0:
		return strings.TrimSpace("0.00 " + unit)
	}

	abs := math.Abs(v)
	p := prefixes[len(prefixes)-1]
	for _, c := range prefixes {
		// rounding to two decimals can push 999.995 into the next prefix
		if abs >= c.exp*(1-5e-6) {
			p = c
			break
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%.2f %s%s", v/p.exp, p.symbol, unit))
}

// Float returns the raw value.
func (q Quantity) Float() float64 { return float64(q) }

// ParseQuantity parses a plain float ("0.01", "20e-9") or a float followed by
// an SI prefix ("100k", "200p", "35n", "4.7u", "4.7µ"). An optional trailing
// unit after the prefix is not accepted; "100kHz" is an error.
func ParseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("quantity: empty value")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	for _, p := range prefixes {
		sym := p.symbol
		if sym == "" {
			continue
		}
		if num, ok := cutSuffix(s, sym); ok {
			return scale(s, num, p.exp)
		}
		if sym == "µ" {
			if num, ok := cutSuffix(s, "u"); ok {
				return scale(s, num, p.exp)
			}
		}
	}
	return 0, fmt.Errorf("quantity: invalid value %q", s)
}

func cutSuffix(s, suffix string) (string, bool) {
	if !strings.HasSuffix(s, suffix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(s, suffix)), true
}

func scale(orig, num string, exp float64) (float64, error) {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity: invalid value %q", orig)
	}
	return v * exp, nil
}
