package builtins

import (
	"math"

	"github.com/nkanaev/msbasic/internal/interp/errors"
)

// sgn returns -1, 0, or 1 by x's sign.
func sgn(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// intFn is BASIC's INT: floor toward negative infinity, not truncation.
func intFn(x float64) float64 {
	return math.Floor(x)
}

func abs(x float64) float64 {
	return math.Abs(x)
}

func sqr(x float64, line int) (float64, error) {
	if x < 0 {
		return 0, errors.IllegalQuantity(line)
	}
	return math.Sqrt(x), nil
}

func logFn(x float64, line int) (float64, error) {
	if x <= 0 {
		return 0, errors.IllegalQuantity(line)
	}
	return math.Log(x), nil
}
