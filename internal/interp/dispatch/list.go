package dispatch

import (
	"strconv"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/lexer"
	"github.com/nkanaev/msbasic/internal/token"
)

// stmtList implements "LIST [a][-[b]]": detokenizes the
// selected lines and writes "N text" one per line. Bare LIST lists
// everything; LIST n lists just that line; LIST n-, LIST -m, and
// LIST n-m bound a range on either side.
func (d *Dispatcher) stmtList(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	hasFrom := false
	from := 0
	if b, ok := r.Cur(); ok && token.IsDigit(b) {
		n, err := scanLineNumber(r, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		from, hasFrom = n, true
	}

	r.SkipSpaces()
	isRange := false
	hasTo := false
	to := 0
	if b, ok := r.Cur(); ok && b == '-' {
		r.Advance()
		isRange = true
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && token.IsDigit(b) {
			n, err := scanLineNumber(r, state.CurrentLine)
			if err != nil {
				return Outcome{}, err
			}
			to, hasTo = n, true
		}
	}

	p := printerFor(state)
	for _, ln := range state.Program.All() {
		switch {
		case hasFrom && !isRange:
			if ln.Number != from {
				continue
			}
		case isRange:
			if hasFrom && ln.Number < from {
				continue
			}
			if hasTo && ln.Number > to {
				continue
			}
		}
		p.WriteString(strconv.Itoa(ln.Number))
		p.WriteString(" ")
		p.WriteString(lexer.Detokenize(ln.Text))
		p.Newline()
	}
	return Outcome{}, nil
}

// stmtRun implements "RUN [n]": CLEAR, then position at
// line n (or the first stored line) and enter run mode.
func (d *Dispatcher) stmtRun(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	hasStart := false
	start := 0
	if b, ok := r.Cur(); ok && token.IsDigit(b) {
		n, err := scanLineNumber(r, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		start, hasStart = n, true
	}

	state.Clear()

	if hasStart {
		if !state.Program.Has(start) {
			return Outcome{}, errors.UndefinedStatement(state.CurrentLine)
		}
		state.CurrentLine = start
		state.Cursor = runtime.Cursor{Line: start, Offset: 0}
	} else {
		first, ok := state.Program.First()
		if !ok {
			return Outcome{Halt: true}, nil
		}
		state.CurrentLine = first.Number
		state.Cursor = runtime.Cursor{Line: first.Number, Offset: 0}
	}

	state.Mode = runtime.Running
	return Outcome{Jumped: true}, nil
}

// stmtCont implements CONT: resumes immediately after the
// statement that set the saved continuation point (a prior STOP or
// break), without re-executing it.
func (d *Dispatcher) stmtCont(state *runtime.State) (Outcome, error) {
	if !state.CanContinue {
		return Outcome{}, errors.CantContinue(state.CurrentLine)
	}
	state.CurrentLine = state.ContLine
	state.Cursor = state.ContCursor
	state.Mode = runtime.Running
	state.CanContinue = false
	return Outcome{Jumped: true}, nil
}
