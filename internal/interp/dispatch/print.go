package dispatch

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/token"
)

// stmtPrint implements PRINT/'?': expressions separated by
// ';' (no gap) or ',' (next print zone), plus the TAB(/SPC( positioning
// directives. A statement not ending on ',' or ';' emits a line
// terminator.
func (d *Dispatcher) stmtPrint(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	p := printerFor(state)

	trailingSep := false
	for {
		r.SkipSpaces()
		b, ok := r.Cur()
		if !ok || b == ':' {
			break
		}

		switch {
		case b == ',':
			r.Advance()
			p.Zone()
			trailingSep = true
			continue
		case b == ';':
			r.Advance()
			trailingSep = true
			continue
		case token.Token(b) == token.TABFN:
			r.Advance()
			n, err := evalParenArg(ev, r)
			if err != nil {
				return Outcome{}, err
			}
			p.Tab(int(n))
			trailingSep = false
			continue
		case token.Token(b) == token.SPCFN:
			r.Advance()
			n, err := evalParenArg(ev, r)
			if err != nil {
				return Outcome{}, err
			}
			p.Spaces(int(n))
			trailingSep = false
			continue
		}

		v, err := ev.Eval(r)
		if err != nil {
			return Outcome{}, err
		}
		p.Value(v)
		trailingSep = false
	}

	if !trailingSep {
		p.Newline()
	}
	return Outcome{}, nil
}

// evalParenArg evaluates a numeric expression immediately following a
// TAB(/SPC( token (the opening '(' is already consumed, since those token
// bytes are self-delimiting) up through the matching ')'.
func evalParenArg(ev *evaluator.Evaluator, r *evaluator.Reader) (float64, error) {
	v, err := ev.Eval(r)
	if err != nil {
		return 0, err
	}
	if v.IsString() {
		return 0, errors.TypeMismatch(ev.Line)
	}
	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != ')' {
		return 0, errors.Syntax(ev.Line)
	}
	r.Advance()
	return v.AsNumber(), nil
}
