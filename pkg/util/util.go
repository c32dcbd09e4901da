package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/mosloss/pkg/types"
)

// maxRange bounds a single a..b expansion.
const maxRange = 10_000_000

// ParseValues turns CLI arguments into an ordered list of sweep values.
// Each argument may hold several comma-separated items, and each item is
// either a quantity ("100k", "0.5", "20e-9") or an inclusive integer range
// "a..b" (a > b counts down). Order and duplicates are preserved.
func ParseValues(args []string) ([]float64, error) {
	var out []float64
	for _, arg := range args {
		for _, item := range strings.Split(arg, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if lo, hi, ok := strings.Cut(item, ".."); ok {
				r, err := expandRange(lo, hi)
				if err != nil {
					return nil, err
				}
				out = append(out, r...)
				continue
			}
			v, err := types.ParseQuantity(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func expandRange(lo, hi string) ([]float64, error) {
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q", lo)
	}
	b, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q", hi)
	}

	step := 1
	if a > b {
		step = -1
	}
	n := (b-a)*step + 1
	if n > maxRange {
		return nil, fmt.Errorf("range %d..%d too large", a, b)
	}

	out := make([]float64, 0, n)
	for v := a; ; v += step {
		out = append(out, float64(v))
		if v == b {
			break
		}
	}
	return out, nil
}

// FmtFloat formats a float with the shortest representation that round-trips.
func FmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
