package evaluator

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/store"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// scanIdentifier reads a plain identifier (letters then letters/digits,
// optional $ or % suffix) at r's cursor, skipping leading spaces. Returns
// "" without consuming anything significant if no letter follows. It does
// not fold or resolve the name.
func scanIdentifier(r *Reader) string {
	r.SkipSpaces()
	start := r.Pos
	b, _ := r.Cur()
	if !token.IsLetter(b) {
		return ""
	}
	r.Advance()
	for {
		b, ok := r.Cur()
		if !ok || !token.IsAlnum(b) {
			break
		}
		r.Advance()
	}
	if b, ok := r.Cur(); ok && (b == '$' || b == '%') {
		r.Advance()
	}
	return string(r.Text[start:r.Pos])
}

// ScanIdentifier exposes scanIdentifier to the statement dispatcher, which
// needs to parse bare identifiers (DEF FN names/parameters, FOR/NEXT loop
// variables) without going through full variable-reference resolution.
func ScanIdentifier(r *Reader) string { return scanIdentifier(r) }

// parseSubscripts parses a comma-separated, parenthesized subscript list
// already positioned at '(' and returns the 0-based integer indices.
func (e *Evaluator) parseSubscripts(r *Reader) ([]int, error) {
	r.Advance() // '('
	var indices []int
	for {
		v, err := e.Eval(r)
		if err != nil {
			return nil, err
		}
		if v.IsString() {
			return nil, errors.TypeMismatch(e.Line)
		}
		indices = append(indices, int(v.AsNumber()))
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ',' {
			r.Advance()
			continue
		}
		break
	}
	r.SkipSpaces()
	if b, ok := r.Cur(); ok && b == ')' {
		r.Advance()
	} else {
		return nil, syntaxErr(e.Line)
	}
	return indices, nil
}

// parseVarOrArrayRef parses a variable or array reference starting at an
// identifier, auto-dimensioning arrays on first subscripted use.
func (e *Evaluator) parseVarOrArrayRef(r *Reader) (values.Value, error) {
	name := scanIdentifier(r)
	if name == "" {
		return values.Value{}, syntaxErr(e.Line)
	}
	key := store.Fold(name)
	isString := store.IsStringSuffix(name)

	r.SkipSpaces()
	if b, ok := r.Cur(); ok && b == '(' {
		indices, err := e.parseSubscripts(r)
		if err != nil {
			return values.Value{}, err
		}
		e.State.Arrays.AutoDim(key, len(indices), isString)
		if isString {
			s, err := e.State.Arrays.GetString(key, indices)
			if err != nil {
				return values.Value{}, errors.BadSubscript(e.Line)
			}
			return values.String(s), nil
		}
		n, err := e.State.Arrays.GetNumber(key, indices)
		if err != nil {
			return values.Value{}, errors.BadSubscript(e.Line)
		}
		return values.Number(n), nil
	}

	if isString {
		return values.String(e.State.Variables.GetString(key)), nil
	}
	return values.Number(e.State.Variables.GetNumber(key)), nil
}
