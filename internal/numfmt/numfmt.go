// Package numfmt renders BASIC's numeric formatting rules, shared by the
// PRINT formatter and STR$ so both produce identical text for the same
// value and VAL(STR$(n)) round-trips.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Format renders n: a leading space for positive values
// (a '-' for negative), integers print with no decimal point, otherwise
// the shortest decimal form carrying 9 significant digits; magnitudes
// ≥1e10 or <1e-9 switch to trimmed scientific notation. The result never
// carries the trailing space PRINT appends between zone items — that is
// the formatter's concern, not this one's.
func Format(n float64) string {
	sign := " "
	if n < 0 {
		sign = "-"
		n = -n
	}

	if n == 0 {
		return sign + "0"
	}

	mag := n
	if mag < 1e10 && mag == math.Trunc(mag) {
		return sign + strconv.FormatFloat(n, 'f', -1, 64)
	}

	if mag >= 1e10 || mag < 1e-9 {
		return sign + scientific(n)
	}

	return sign + decimal9(n)
}

// decimal9 renders n with up to 9 significant digits, trimming trailing
// fractional zeros.
func decimal9(n float64) string {
	s := strconv.FormatFloat(n, 'g', 9, 64)
	if strings.ContainsAny(s, "eE") {
		// 'g' chose scientific form even though magnitude was in the
		// decimal band; expand it back to fixed notation.
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return trimFixed(s)
}

func trimFixed(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// scientific renders n in BASIC's "D.DDDDDDDDE±DD" form with trimmed
// trailing mantissa zeros.
func scientific(n float64) string {
	s := strconv.FormatFloat(n, 'e', 8, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	mantissa = trimFixed(mantissa)

	expVal, _ := strconv.Atoi(exp)
	expSign := "+"
	if expVal < 0 {
		expSign = "-"
		expVal = -expVal
	}
	return mantissa + "E" + expSign + strconv.Itoa(expVal)
}
