package evaluator

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/store"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// parsePrimary implements the grammar's "primary" production: number,
// string, variable/array reference, builtin function call, FN call, or a
// parenthesized subexpression.
func (e *Evaluator) parsePrimary(r *Reader) (values.Value, error) {
	r.SkipSpaces()
	b, ok := r.Cur()
	if !ok {
		return values.Value{}, syntaxErr(e.Line)
	}

	switch {
	case b == '"':
		return parseStringLiteral(r), nil
	case b == '(':
		r.Advance()
		v, err := e.Eval(r)
		if err != nil {
			return values.Value{}, err
		}
		r.SkipSpaces()
		if cb, ok := r.Cur(); !ok || cb != ')' {
			return values.Value{}, syntaxErr(e.Line)
		}
		r.Advance()
		return v, nil
	case token.IsDigit(b) || b == '.':
		return parseNumber(r, e.Line)
	case token.Token(b) == token.FN:
		r.Advance()
		return e.callUserFunction(r)
	case token.IsFunction(token.Token(b)):
		r.Advance()
		return e.callBuiltinFunction(r, token.Token(b))
	case token.IsLetter(b):
		return e.parseVarOrArrayRef(r)
	default:
		return values.Value{}, syntaxErr(e.Line)
	}
}

// callUserFunction evaluates `FN ident(expr)`: the parameter variable is
// saved, set to the evaluated argument, the body is evaluated over its
// own captured tokens, and the parameter is restored on every exit path.
// A one-deep save suffices because functions cannot recurse.
func (e *Evaluator) callUserFunction(r *Reader) (values.Value, error) {
	name := scanIdentifier(r)
	if name == "" {
		return values.Value{}, syntaxErr(e.Line)
	}
	key := "FN" + store.Fold(name)

	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != '(' {
		return values.Value{}, syntaxErr(e.Line)
	}
	r.Advance()
	arg, err := e.Eval(r)
	if err != nil {
		return values.Value{}, err
	}
	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != ')' {
		return values.Value{}, syntaxErr(e.Line)
	}
	r.Advance()

	fn, ok := e.State.Functions.Lookup(key)
	if !ok {
		return values.Value{}, errors.UndefinedFunction(e.Line)
	}

	paramIsString := store.IsStringSuffix(fn.Param)
	var savedNum float64
	var savedStr string
	if paramIsString {
		savedStr = e.State.Variables.GetString(fn.Param)
		if !e.State.Variables.SetString(fn.Param, arg.Str) {
			return values.Value{}, errors.OutOfMemory(e.Line)
		}
	} else {
		savedNum = e.State.Variables.GetNumber(fn.Param)
		e.State.Variables.SetNumber(fn.Param, arg.AsNumber())
	}

	bodyReader := NewReader(fn.Body, 0)
	result, evalErr := e.Eval(bodyReader)

	if paramIsString {
		e.State.Variables.SetString(fn.Param, savedStr)
	} else {
		e.State.Variables.SetNumber(fn.Param, savedNum)
	}

	return result, evalErr
}
