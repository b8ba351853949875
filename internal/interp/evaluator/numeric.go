package evaluator

import (
	"strconv"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// parseNumber reads a number literal: integer or decimal point followed
// by digits, optional E[+|-]digits exponent. OVERFLOW if the value falls
// outside double range, SYNTAX ERROR if no digits were consumed at all.
func parseNumber(r *Reader, line int) (values.Value, error) {
	start := r.Pos
	digits := 0

	for {
		b, ok := r.Cur()
		if !ok || !token.IsDigit(b) {
			break
		}
		digits++
		r.Advance()
	}

	if b, ok := r.Cur(); ok && b == '.' {
		r.Advance()
		for {
			b, ok := r.Cur()
			if !ok || !token.IsDigit(b) {
				break
			}
			digits++
			r.Advance()
		}
	}

	if digits == 0 {
		r.Pos = start
		return values.Value{}, errors.Syntax(line)
	}

	if b, ok := r.Cur(); ok && (b == 'E' || b == 'e') {
		save := r.Pos
		r.Advance()
		if b, ok := r.Cur(); ok && (b == '+' || b == '-') {
			r.Advance()
		}
		expDigits := 0
		for {
			b, ok := r.Cur()
			if !ok || !token.IsDigit(b) {
				break
			}
			expDigits++
			r.Advance()
		}
		if expDigits == 0 {
			// Not actually an exponent suffix; back out.
			r.Pos = save
		}
	}

	text := string(r.Text[start:r.Pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return values.Value{}, errors.Overflow(line)
		}
		return values.Value{}, errors.Syntax(line)
	}
	return values.Number(n), nil
}
