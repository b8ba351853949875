package evaluator

import (
	"github.com/nkanaev/msbasic/internal/interp/builtins"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// Evaluator walks a Reader over one line's tokenized bytes and produces a
// Value. It holds no per-expression state of its own beyond the
// interpreter-wide State and the current line number used to attribute
// errors.
type Evaluator struct {
	State *runtime.State
	Line  int
}

// New creates an Evaluator bound to state, attributing errors to line.
func New(state *runtime.State, line int) *Evaluator {
	return &Evaluator{State: state, Line: line}
}

// Eval parses and evaluates a complete expression starting at r's cursor,
// per the grammar's top production "expr := or_expr".
func (e *Evaluator) Eval(r *Reader) (values.Value, error) {
	return e.parseOr(r)
}

func (e *Evaluator) parseOr(r *Reader) (values.Value, error) {
	left, err := e.parseAnd(r)
	if err != nil {
		return values.Value{}, err
	}
	for r.PeekToken(token.OR) {
		r.MatchToken(0, token.OR)
		right, err := e.parseAnd(r)
		if err != nil {
			return values.Value{}, err
		}
		left, err = bitwiseOp(left, right, e.Line, func(a, b int32) int32 { return a | b })
		if err != nil {
			return values.Value{}, err
		}
	}
	return left, nil
}

func (e *Evaluator) parseAnd(r *Reader) (values.Value, error) {
	left, err := e.parseNot(r)
	if err != nil {
		return values.Value{}, err
	}
	for r.PeekToken(token.AND) {
		r.MatchToken(0, token.AND)
		right, err := e.parseNot(r)
		if err != nil {
			return values.Value{}, err
		}
		left, err = bitwiseOp(left, right, e.Line, func(a, b int32) int32 { return a & b })
		if err != nil {
			return values.Value{}, err
		}
	}
	return left, nil
}

func (e *Evaluator) parseNot(r *Reader) (values.Value, error) {
	if r.PeekToken(token.NOT) {
		r.MatchToken(0, token.NOT)
		v, err := e.parseNot(r)
		if err != nil {
			return values.Value{}, err
		}
		return bitwiseNot(v, e.Line)
	}
	return e.parseCmp(r)
}

func (e *Evaluator) parseCmp(r *Reader) (values.Value, error) {
	left, err := e.parseAdd(r)
	if err != nil {
		return values.Value{}, err
	}
	for {
		bits, ok := parseCompareOp(r)
		if !ok {
			return left, nil
		}
		right, err := e.parseAdd(r)
		if err != nil {
			return values.Value{}, err
		}
		left, err = compare(left, right, bits, e.Line)
		if err != nil {
			return values.Value{}, err
		}
	}
}

func (e *Evaluator) parseAdd(r *Reader) (values.Value, error) {
	left, err := e.parseMul(r)
	if err != nil {
		return values.Value{}, err
	}
	for {
		switch {
		case r.MatchToken('+', token.PLUS):
			right, rerr := e.parseMul(r)
			if rerr != nil {
				return values.Value{}, rerr
			}
			left, err = add(left, right, e.Line)
			if err != nil {
				return values.Value{}, err
			}
		case r.MatchToken('-', token.MINUS):
			right, rerr := e.parseMul(r)
			if rerr != nil {
				return values.Value{}, rerr
			}
			left, err = sub(left, right, e.Line)
			if err != nil {
				return values.Value{}, err
			}
		default:
			return left, nil
		}
	}
}

func (e *Evaluator) parseMul(r *Reader) (values.Value, error) {
	left, err := e.parsePow(r)
	if err != nil {
		return values.Value{}, err
	}
	for {
		switch {
		case r.MatchToken('*', token.MUL):
			right, rerr := e.parsePow(r)
			if rerr != nil {
				return values.Value{}, rerr
			}
			left, err = mul(left, right, e.Line)
			if err != nil {
				return values.Value{}, err
			}
		case r.MatchToken('/', token.DIV):
			right, rerr := e.parsePow(r)
			if rerr != nil {
				return values.Value{}, rerr
			}
			left, err = div(left, right, e.Line)
			if err != nil {
				return values.Value{}, err
			}
		default:
			return left, nil
		}
	}
}

// parsePow implements the right-associative power production. Because the
// unary level sits below it and never recurses back up, "-2^2" parses as
// (-2)^2 = 4: unary consumes the whole "-2" before this level ever sees
// the '^'.
func (e *Evaluator) parsePow(r *Reader) (values.Value, error) {
	left, err := e.parseUnary(r)
	if err != nil {
		return values.Value{}, err
	}
	if r.MatchToken('^', token.POW) {
		right, err := e.parsePow(r)
		if err != nil {
			return values.Value{}, err
		}
		return power(left, right, e.Line)
	}
	return left, nil
}

func (e *Evaluator) parseUnary(r *Reader) (values.Value, error) {
	switch {
	case r.MatchToken('-', token.MINUS):
		v, err := e.parseUnary(r)
		if err != nil {
			return values.Value{}, err
		}
		return negate(v, e.Line)
	case r.MatchToken('+', token.PLUS):
		v, err := e.parseUnary(r)
		if err != nil {
			return values.Value{}, err
		}
		return identity(v, e.Line)
	default:
		return e.parsePrimary(r)
	}
}

// callArgs evaluates a comma-separated argument list already positioned
// after the opening '(', consuming the closing ')'.
func (e *Evaluator) callArgs(r *Reader) ([]values.Value, error) {
	var args []values.Value
	r.SkipSpaces()
	if b, ok := r.Cur(); ok && b == ')' {
		r.Advance()
		return args, nil
	}
	for {
		v, err := e.Eval(r)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
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
	return args, nil
}

// callBuiltinFunction evaluates `tok(args)` via the builtins package. The
// cursor sits just past the function token; the opening paren is consumed
// here so callArgs sees only the argument list.
func (e *Evaluator) callBuiltinFunction(r *Reader, tok token.Token) (values.Value, error) {
	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != '(' {
		return values.Value{}, syntaxErr(e.Line)
	}
	r.Advance()
	args, err := e.callArgs(r)
	if err != nil {
		return values.Value{}, err
	}
	return builtins.Call(tok, args, e.State, e.Line)
}
