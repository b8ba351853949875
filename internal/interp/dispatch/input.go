package dispatch

import (
	"strconv"
	"strings"

	"github.com/nkanaev/msbasic/internal/iface"
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/values"
)

// stmtInput implements INPUT: an optional quoted prompt,
// then one or more comma-separated lvalues. One line is read per prompt;
// if it doesn't supply enough comma-separated fields, a "??" reprompt
// reads another line and its fields are appended.
func (d *Dispatcher) stmtInput(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)

	prompt := "? "
	r.SkipSpaces()
	if b, ok := r.Cur(); ok && b == '"' {
		v, err := ev.Eval(r)
		if err != nil {
			return Outcome{}, err
		}
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && (b == ';' || b == ',') {
			r.Advance()
		} else {
			return Outcome{}, errors.Syntax(state.CurrentLine)
		}
		prompt = v.Str + "? "
	}

	var lvalues []evaluator.LValue
	for {
		r.SkipSpaces()
		lv, err := ev.ParseLValue(r)
		if err != nil {
			return Outcome{}, err
		}
		lvalues = append(lvalues, lv)
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ',' {
			r.Advance()
			continue
		}
		break
	}

	fields, err := collectInputFields(state.Terminal(), prompt, len(lvalues), state.CurrentLine)
	if err != nil {
		return Outcome{}, err
	}

	for i, lv := range lvalues {
		v, err := coerceInputField(fields[i], lv.IsString, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		if err := ev.AssignLValue(lv, v); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{}, nil
}

// collectInputFields reads lines from term, splitting each on commas,
// until at least want fields have been gathered; subsequent reads use the
// terse "??" reprompt classic BASIC shows when the first line came up
// short.
func collectInputFields(term iface.Terminal, prompt string, want int, line int) ([]string, error) {
	var fields []string
	p := prompt
	for len(fields) < want {
		text, ok := term.ReadLine(p)
		if !ok {
			return nil, errors.OutOfData(line)
		}
		fields = append(fields, splitInputFields(text)...)
		p = "?? "
	}
	return fields[:want], nil
}

// splitInputFields splits one line of INPUT text on top-level commas,
// honoring double-quoted fields, and trims surrounding whitespace from
// each field.
func splitInputFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}

// coerceInputField converts one typed-in field to the target lvalue's
// type; a numeric field that fails to parse is TYPE MISMATCH.
func coerceInputField(field string, wantString bool, line int) (values.Value, error) {
	if wantString {
		return values.String(field), nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return values.Value{}, errors.TypeMismatch(line)
	}
	return values.Number(n), nil
}
