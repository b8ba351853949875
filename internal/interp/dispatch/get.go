package dispatch

import (
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// stmtGet implements GET: reads one raw byte, non-line, and assigns its
// character to a string lvalue or its code to a numeric one. With no
// lvalue given, the byte is read and silently discarded.
func (d *Dispatcher) stmtGet(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || !token.IsLetter(b) {
		state.Terminal().ReadByte()
		return Outcome{}, nil
	}

	ev := evaluator.New(state, state.CurrentLine)
	lv, err := ev.ParseLValue(r)
	if err != nil {
		return Outcome{}, err
	}

	b, ok := state.Terminal().ReadByte()
	if !ok {
		b = 0
	}

	var v values.Value
	if lv.IsString {
		v = values.String(string([]byte{b}))
	} else {
		v = values.Number(float64(b))
	}
	if err := ev.AssignLValue(lv, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{}, nil
}
