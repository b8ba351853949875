package builtins

import (
	"strconv"
	"strings"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/numfmt"
)

// strFn implements STR$(n): the same text PRINT would emit for n, minus
// the trailing space PRINT appends after a number.
func strFn(n float64) string {
	return numfmt.Format(n)
}

// valFn implements VAL(s): parse a leading numeric prefix, tolerating
// surrounding whitespace; a string with no parseable prefix yields 0.
func valFn(s string) float64 {
	s = strings.TrimLeft(s, " ")
	end := 0
	seenDigit := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		seenDigit = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			seenDigit = true
		}
	}
	if seenDigit && end < len(s) && (s[end] == 'E' || s[end] == 'e') {
		save := end
		end++
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		expDigits := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			expDigits++
		}
		if expDigits == 0 {
			end = save
		}
	}
	if !seenDigit {
		return 0
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return n
}

func lenFn(s string) float64 {
	return float64(len(s))
}

func asc(s string, line int) (float64, error) {
	if s == "" {
		return 0, errors.IllegalQuantity(line)
	}
	return float64(s[0]), nil
}

func chr(n float64, line int) (string, error) {
	code := int(n)
	if code < 0 || code > 255 {
		return "", errors.IllegalQuantity(line)
	}
	return string([]byte{byte(code)}), nil
}

// left implements LEFT$(s,k): the first min(k, LEN(s)) bytes of s.
func left(s string, k float64, line int) (string, error) {
	n := int(k)
	if n < 0 {
		return "", errors.IllegalQuantity(line)
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n], nil
}

// right implements RIGHT$(s,k): the last min(k, LEN(s)) bytes of s.
func right(s string, k float64, line int) (string, error) {
	n := int(k)
	if n < 0 {
		return "", errors.IllegalQuantity(line)
	}
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:], nil
}

// mid implements MID$(s,start[,length]): 1-based start; an omitted
// length takes the remainder of the string.
func mid(s string, start float64, hasLength bool, length float64, line int) (string, error) {
	i := int(start)
	if i < 1 {
		return "", errors.IllegalQuantity(line)
	}
	if i > len(s) {
		return "", nil
	}
	i-- // to 0-based
	n := len(s) - i
	if hasLength {
		l := int(length)
		if l < 0 {
			return "", errors.IllegalQuantity(line)
		}
		if l < n {
			n = l
		}
	}
	return s[i : i+n], nil
}
