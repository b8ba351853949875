package builtins

import (
	"math"

	"github.com/nkanaev/msbasic/internal/interp/errors"
)

// Plain transcendental wraps. Any float64 input is legal for these, so
// they defer entirely to math's implementations; only EXP can leave
// double range.

func expFn(x float64, line int) (float64, error) {
	n := math.Exp(x)
	if math.IsInf(n, 0) {
		return 0, errors.Overflow(line)
	}
	return n, nil
}

func sin(x float64) float64 { return math.Sin(x) }
func cos(x float64) float64 { return math.Cos(x) }
func tan(x float64) float64 { return math.Tan(x) }
func atn(x float64) float64 { return math.Atan(x) }
