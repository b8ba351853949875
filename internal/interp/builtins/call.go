// Package builtins implements every BASIC function token: the numeric
// library (SGN/INT/ABS/SQR/RND/LOG/EXP/COS/SIN/TAN/ATN), the string
// library (LEN/STR$/VAL/ASC/CHR$/LEFT$/RIGHT$/MID$), and the system
// functions (PEEK/FRE/POS/USR). Call is the evaluator's single entry
// point; everything else in the package is an unexported helper.
package builtins

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// Call dispatches a builtin function token to its implementation,
// type-checking and arity-checking args first. A mismatch on either is a
// SYNTAX ERROR if the wrong number of arguments was given, or TYPE
// MISMATCH if the right count of arguments had the wrong kind.
func Call(tok token.Token, args []values.Value, state *runtime.State, line int) (values.Value, error) {
	switch tok {
	case token.SGN, token.INT, token.ABS, token.SQR, token.LOG, token.EXP,
		token.COS, token.SIN, token.TAN, token.ATN, token.RND, token.PEEK,
		token.USR, token.FRE, token.POS:
		return callNumeric(tok, args, state, line)
	case token.LEN, token.STR, token.VAL, token.ASC, token.CHR,
		token.LEFT, token.RIGHT, token.MID:
		return callString(tok, args, state, line)
	default:
		return values.Value{}, errors.Syntax(line)
	}
}

func oneNumericArg(args []values.Value, line int) (float64, error) {
	if len(args) != 1 {
		return 0, errors.Syntax(line)
	}
	if !args[0].IsNumeric() {
		return 0, errors.TypeMismatch(line)
	}
	return args[0].AsNumber(), nil
}

func callNumeric(tok token.Token, args []values.Value, state *runtime.State, line int) (values.Value, error) {
	// FRE and POS ignore their single dummy argument's value but still
	// require exactly one to be present.
	if tok == token.FRE || tok == token.POS {
		if len(args) != 1 {
			return values.Value{}, errors.Syntax(line)
		}
	}

	switch tok {
	case token.FRE:
		return values.Number(fre(state)), nil
	case token.POS:
		return values.Number(pos(state)), nil
	}

	x, err := oneNumericArg(args, line)
	if err != nil {
		return values.Value{}, err
	}

	switch tok {
	case token.SGN:
		return values.Number(sgn(x)), nil
	case token.INT:
		return values.Number(intFn(x)), nil
	case token.ABS:
		return values.Number(abs(x)), nil
	case token.SQR:
		n, err := sqr(x, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(n), nil
	case token.LOG:
		n, err := logFn(x, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(n), nil
	case token.EXP:
		n, err := expFn(x, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(n), nil
	case token.COS:
		return values.Number(cos(x)), nil
	case token.SIN:
		return values.Number(sin(x)), nil
	case token.TAN:
		return values.Number(tan(x)), nil
	case token.ATN:
		return values.Number(atn(x)), nil
	case token.RND:
		return values.Number(rnd(state, x)), nil
	case token.PEEK:
		return values.Number(peek(state, x)), nil
	case token.USR:
		return values.Number(usr(state, x)), nil
	default:
		return values.Value{}, errors.Syntax(line)
	}
}

func callString(tok token.Token, args []values.Value, state *runtime.State, line int) (values.Value, error) {
	switch tok {
	case token.STR:
		n, err := oneNumericArg(args, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(strFn(n)), nil

	case token.VAL:
		s, err := oneStringArg(args, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(valFn(s)), nil

	case token.LEN:
		s, err := oneStringArg(args, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(lenFn(s)), nil

	case token.ASC:
		s, err := oneStringArg(args, line)
		if err != nil {
			return values.Value{}, err
		}
		n, err := asc(s, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.Number(n), nil

	case token.CHR:
		n, err := oneNumericArg(args, line)
		if err != nil {
			return values.Value{}, err
		}
		s, err := chr(n, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(s), nil

	case token.LEFT:
		s, k, err := stringAndNumberArgs(args, line)
		if err != nil {
			return values.Value{}, err
		}
		out, err := left(s, k, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(out), nil

	case token.RIGHT:
		s, k, err := stringAndNumberArgs(args, line)
		if err != nil {
			return values.Value{}, err
		}
		out, err := right(s, k, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(out), nil

	case token.MID:
		if len(args) != 2 && len(args) != 3 {
			return values.Value{}, errors.Syntax(line)
		}
		if !args[0].IsString() || !args[1].IsNumeric() {
			return values.Value{}, errors.TypeMismatch(line)
		}
		hasLength := len(args) == 3
		var length float64
		if hasLength {
			if !args[2].IsNumeric() {
				return values.Value{}, errors.TypeMismatch(line)
			}
			length = args[2].AsNumber()
		}
		out, err := mid(args[0].Str, args[1].AsNumber(), hasLength, length, line)
		if err != nil {
			return values.Value{}, err
		}
		return values.String(out), nil

	default:
		return values.Value{}, errors.Syntax(line)
	}
}

func oneStringArg(args []values.Value, line int) (string, error) {
	if len(args) != 1 {
		return "", errors.Syntax(line)
	}
	if !args[0].IsString() {
		return "", errors.TypeMismatch(line)
	}
	return args[0].Str, nil
}

func stringAndNumberArgs(args []values.Value, line int) (string, float64, error) {
	if len(args) != 2 {
		return "", 0, errors.Syntax(line)
	}
	if !args[0].IsString() || !args[1].IsNumeric() {
		return "", 0, errors.TypeMismatch(line)
	}
	return args[0].Str, args[1].AsNumber(), nil
}
