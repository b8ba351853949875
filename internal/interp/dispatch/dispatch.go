// Package dispatch implements the statement dispatcher and control-flow
// engine: one entry point executes a single statement starting at the
// current cursor, leaving the cursor immediately after the statement's
// last byte. The line driver (internal/interp/runner) owns stepping
// between statements and lines.
package dispatch

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/format"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/token"
)

// Dispatcher executes statements against a runtime.State. It holds no
// state of its own; every field it needs lives on the State or the
// Reader passed in.
type Dispatcher struct{}

// New creates a Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Outcome reports what the line driver should do after Statement returns
// with a nil error.
type Outcome struct {
	// Halt stops the run loop without it being an error (END, or NEW/RUN
	// clearing the program out from under the current line).
	Halt bool
	// Jumped reports that the statement repositioned state.Cursor itself
	// (GOTO, GOSUB, RETURN, a looping NEXT, IF's jump form, ON, RUN). The
	// caller must re-fetch program text at the new cursor rather than
	// resume the Reader it passed in.
	Jumped bool
}

// Statement consumes one statement from r's cursor, already positioned at
// the first non-space byte of a statement. It dispatches on the leading
// token, falling back to implicit LET for a bare identifier.
func (d *Dispatcher) Statement(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	// Stray separators (a resume point saved at the ':' after FOR or STOP,
	// or a doubled "::") read as empty statements.
	for {
		b, ok := r.Cur()
		if !ok || b != ':' {
			break
		}
		r.Advance()
		r.SkipSpaces()
	}
	if r.AtEnd() {
		return Outcome{}, nil
	}

	b, _ := r.Cur()
	tok := token.Token(b)

	if !token.IsStatement(tok) {
		if token.IsLetter(b) {
			return d.stmtLet(state, r)
		}
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}

	r.Advance()
	switch tok {
	case token.END:
		return d.stmtEnd(state)
	case token.STOP:
		return d.stmtStop(state, r)
	case token.LET:
		return d.stmtLet(state, r)
	case token.PRINT:
		return d.stmtPrint(state, r)
	case token.INPUT:
		return d.stmtInput(state, r)
	case token.GET:
		return d.stmtGet(state, r)
	case token.DIM:
		return d.stmtDim(state, r)
	case token.READ:
		return d.stmtRead(state, r)
	case token.DATA:
		skipToEOL(r)
		return Outcome{}, nil
	case token.RESTORE:
		return d.stmtRestore(state, r)
	case token.GOTO:
		return d.stmtGoto(state, r)
	case token.GOSUB:
		return d.stmtGosub(state, r)
	case token.RETURN:
		return d.stmtReturn(state)
	case token.FOR:
		return d.stmtFor(state, r)
	case token.NEXT:
		return d.stmtNext(state, r)
	case token.IF:
		return d.stmtIf(state, r)
	case token.ON:
		return d.stmtOn(state, r)
	case token.DEF:
		return d.stmtDefFn(state, r)
	case token.REM:
		skipToEOL(r)
		return Outcome{}, nil
	case token.CLEAR:
		state.Clear()
		return Outcome{}, nil
	case token.NEW:
		state.NewProgram()
		return Outcome{Halt: true}, nil
	case token.LIST:
		return d.stmtList(state, r)
	case token.RUN:
		return d.stmtRun(state, r)
	case token.CONT:
		return d.stmtCont(state)
	case token.POKE:
		return d.stmtPoke(state, r)
	case token.WAIT:
		return d.stmtWait(state, r)
	case token.NUL:
		return d.stmtNull(state, r)
	case token.LOAD, token.SAVE, token.VERIFY:
		return Outcome{}, errors.Syntax(state.CurrentLine)
	default:
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
}

func (d *Dispatcher) stmtEnd(state *runtime.State) (Outcome, error) {
	state.Mode = runtime.Direct
	state.InvalidateContinuation()
	return Outcome{Halt: true}, nil
}

// stmtStop implements STOP: it behaves exactly like a user break,
// reporting BREAK IN n with continuation armed. CONT must resume after
// STOP, not re-execute it, so the saved cursor is r's position
// (immediately past the STOP token), not state.Cursor, which the line
// driver has not yet advanced past this statement.
func (d *Dispatcher) stmtStop(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	state.SaveContinuation(state.CurrentLine, runtime.Cursor{Line: state.CurrentLine, Offset: r.Pos})
	return Outcome{Halt: true}, errors.Break(state.CurrentLine)
}

func (d *Dispatcher) stmtLet(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	lv, err := ev.ParseLValue(r)
	if err != nil {
		return Outcome{}, err
	}
	r.SkipSpaces()
	if !r.MatchToken('=', token.EQ) {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	v, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if err := ev.AssignLValue(lv, v); err != nil {
		return Outcome{}, err
	}
	return Outcome{}, nil
}

// doGoto repositions state at the start of line n, or reports UNDEF'D
// STATEMENT if no such line is stored.
func doGoto(state *runtime.State, n int) error {
	if !state.Program.Has(n) {
		return errors.UndefinedStatement(state.CurrentLine)
	}
	state.CurrentLine = n
	state.Cursor = runtime.Cursor{Line: n, Offset: 0}
	return nil
}

func (d *Dispatcher) stmtGoto(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	n, err := scanLineNumber(r, state.CurrentLine)
	if err != nil {
		return Outcome{}, err
	}
	if err := doGoto(state, n); err != nil {
		return Outcome{}, err
	}
	return Outcome{Jumped: true}, nil
}

func (d *Dispatcher) stmtGosub(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	n, err := scanLineNumber(r, state.CurrentLine)
	if err != nil {
		return Outcome{}, err
	}
	frame := &runtime.GosubFrame{
		ReturnLine: state.CurrentLine,
		Return:     runtime.Cursor{Line: state.CurrentLine, Offset: r.Pos},
	}
	if err := state.Stack.Push(frame, state.CurrentLine); err != nil {
		return Outcome{}, err
	}
	if err := doGoto(state, n); err != nil {
		state.Stack.Pop()
		return Outcome{}, err
	}
	return Outcome{Jumped: true}, nil
}

func (d *Dispatcher) stmtReturn(state *runtime.State) (Outcome, error) {
	gf := state.Stack.PopGosub()
	if gf == nil {
		return Outcome{}, errors.ReturnWithoutGosub(state.CurrentLine)
	}
	state.CurrentLine = gf.ReturnLine
	state.Cursor = gf.Return
	return Outcome{Jumped: true}, nil
}

func (d *Dispatcher) stmtPoke(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	addr, value, err := evalTwoNumericArgs(ev, r)
	if err != nil {
		return Outcome{}, err
	}
	if value < 0 || value > 255 {
		return Outcome{}, errors.IllegalQuantity(state.CurrentLine)
	}
	state.Memory.Poke(int(addr), byte(value))
	return Outcome{}, nil
}

func (d *Dispatcher) stmtWait(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	if _, _, err := evalTwoNumericArgs(ev, r); err != nil {
		return Outcome{}, err
	}
	return Outcome{}, nil
}

func (d *Dispatcher) stmtNull(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	r.SkipSpaces()
	v, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if v.IsString() {
		return Outcome{}, errors.TypeMismatch(state.CurrentLine)
	}
	state.NullCount = int(v.AsNumber())
	return Outcome{}, nil
}

// evalTwoNumericArgs evaluates POKE/WAIT's "expr,expr" argument form.
func evalTwoNumericArgs(ev *evaluator.Evaluator, r *evaluator.Reader) (a, b float64, err error) {
	r.SkipSpaces()
	av, err := ev.Eval(r)
	if err != nil {
		return 0, 0, err
	}
	if av.IsString() {
		return 0, 0, errors.TypeMismatch(ev.Line)
	}
	r.SkipSpaces()
	if ch, ok := r.Cur(); !ok || ch != ',' {
		return 0, 0, errors.Syntax(ev.Line)
	}
	r.Advance()
	r.SkipSpaces()
	bv, err := ev.Eval(r)
	if err != nil {
		return 0, 0, err
	}
	if bv.IsString() {
		return 0, 0, errors.TypeMismatch(ev.Line)
	}
	return av.AsNumber(), bv.AsNumber(), nil
}

// scanLineNumber reads a bare decimal line number (GOTO/GOSUB/ON/IF
// targets, RESTORE's argument), skipping leading space.
func scanLineNumber(r *evaluator.Reader, line int) (int, error) {
	r.SkipSpaces()
	start := r.Pos
	for {
		b, ok := r.Cur()
		if !ok || !token.IsDigit(b) {
			break
		}
		r.Advance()
	}
	if r.Pos == start {
		return 0, errors.Syntax(line)
	}
	n := 0
	for _, c := range r.Text[start:r.Pos] {
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// skipToEOL moves r's cursor to the end of the line, used by REM and DATA
// (a runtime no-op once tokenized) and by IF's false branch.
func skipToEOL(r *evaluator.Reader) {
	r.Pos = len(r.Text)
}

// printerFor builds a format.Printer bound to state's terminal and
// configured width.
func printerFor(state *runtime.State) *format.Printer {
	return format.New(state.Terminal(), state.Options.TerminalWidth)
}
