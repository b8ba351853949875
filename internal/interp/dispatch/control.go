package dispatch

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/store"
	"github.com/nkanaev/msbasic/internal/token"
)

// stmtFor implements "FOR v=a TO b [STEP s]": evaluates the bounds,
// assigns v, discards any existing frame for v (and anything above it),
// and pushes a new ForFrame resuming just after this statement.
func (d *Dispatcher) stmtFor(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)

	r.SkipSpaces()
	name := evaluator.ScanIdentifier(r)
	if name == "" {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	if store.IsStringSuffix(name) {
		return Outcome{}, errors.TypeMismatch(state.CurrentLine)
	}
	key := store.Fold(name)

	r.SkipSpaces()
	if !r.MatchToken('=', token.EQ) {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	start, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if start.IsString() {
		return Outcome{}, errors.TypeMismatch(state.CurrentLine)
	}

	r.SkipSpaces()
	if !r.MatchToken(0, token.TO) {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	limit, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if limit.IsString() {
		return Outcome{}, errors.TypeMismatch(state.CurrentLine)
	}

	step := 1.0
	r.SkipSpaces()
	if r.PeekToken(token.STEP) {
		r.MatchToken(0, token.STEP)
		sv, err := ev.Eval(r)
		if err != nil {
			return Outcome{}, err
		}
		if sv.IsString() {
			return Outcome{}, errors.TypeMismatch(state.CurrentLine)
		}
		step = sv.AsNumber()
	}

	state.Variables.SetNumber(key, start.AsNumber())
	state.Stack.PopFor(key)

	frame := &runtime.ForFrame{
		LoopVar:    key,
		Limit:      limit.AsNumber(),
		Step:       step,
		ResumeLine: state.CurrentLine,
		Resume:     runtime.Cursor{Line: state.CurrentLine, Offset: r.Pos},
	}
	if err := state.Stack.Push(frame, state.CurrentLine); err != nil {
		return Outcome{}, err
	}
	return Outcome{}, nil
}

// stmtNext implements "NEXT [v]": advances the loop variable by its step
// and either loops back into the body or falls through once the bound is
// passed.
func (d *Dispatcher) stmtNext(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	var loopVar string
	if b, ok := r.Cur(); ok && token.IsLetter(b) {
		loopVar = store.Fold(evaluator.ScanIdentifier(r))
	}

	frame := state.Stack.PopFor(loopVar)
	if frame == nil {
		return Outcome{}, errors.NextWithoutFor(state.CurrentLine)
	}

	v := state.Variables.GetNumber(frame.LoopVar) + frame.Step
	state.Variables.SetNumber(frame.LoopVar, v)

	done := (frame.Step >= 0 && v > frame.Limit) || (frame.Step < 0 && v < frame.Limit)
	if done {
		return Outcome{}, nil
	}

	// The frame already fit on the stack once; re-pushing it cannot
	// overflow.
	_ = state.Stack.Push(frame, state.CurrentLine)
	state.CurrentLine = frame.ResumeLine
	state.Cursor = frame.Resume
	return Outcome{Jumped: true}, nil
}

// stmtIf implements "IF expr THEN ...": a false condition skips to end of
// line (not just end of statement); a true one jumps on GOTO/a bare line
// number, or else executes the trailing statement(s) in place.
func (d *Dispatcher) stmtIf(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	cond, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if !cond.Truthy() {
		skipToEOL(r)
		return Outcome{}, nil
	}

	r.SkipSpaces()
	if r.PeekToken(token.THEN) {
		r.MatchToken(0, token.THEN)
	}

	r.SkipSpaces()
	if b, ok := r.Cur(); ok && token.IsDigit(b) {
		return d.jumpTo(state, r)
	}
	if r.PeekToken(token.GOTO) {
		r.MatchToken(0, token.GOTO)
		return d.jumpTo(state, r)
	}

	for {
		r.SkipSpaces()
		if r.AtEnd() {
			return Outcome{}, nil
		}
		out, err := d.Statement(state, r)
		if err != nil || out.Halt || out.Jumped {
			return out, err
		}
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ':' {
			r.Advance()
			continue
		}
		return Outcome{}, nil
	}
}

func (d *Dispatcher) jumpTo(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	n, err := scanLineNumber(r, state.CurrentLine)
	if err != nil {
		return Outcome{}, err
	}
	if err := doGoto(state, n); err != nil {
		return Outcome{}, err
	}
	return Outcome{Jumped: true}, nil
}

// stmtOn implements "ON expr GOTO|GOSUB n1,n2,...": a 1-based index out
// of range falls through without error.
func (d *Dispatcher) stmtOn(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	idxVal, err := ev.Eval(r)
	if err != nil {
		return Outcome{}, err
	}
	if idxVal.IsString() {
		return Outcome{}, errors.TypeMismatch(state.CurrentLine)
	}
	idx := int(idxVal.AsNumber())

	r.SkipSpaces()
	var isGosub bool
	switch {
	case r.PeekToken(token.GOSUB):
		r.MatchToken(0, token.GOSUB)
		isGosub = true
	case r.PeekToken(token.GOTO):
		r.MatchToken(0, token.GOTO)
	default:
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}

	var targets []int
	for {
		n, err := scanLineNumber(r, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		targets = append(targets, n)
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ',' {
			r.Advance()
			continue
		}
		break
	}

	if idx < 1 || idx > len(targets) {
		return Outcome{}, nil
	}
	target := targets[idx-1]

	if isGosub {
		frame := &runtime.GosubFrame{
			ReturnLine: state.CurrentLine,
			Return:     runtime.Cursor{Line: state.CurrentLine, Offset: r.Pos},
		}
		if err := state.Stack.Push(frame, state.CurrentLine); err != nil {
			return Outcome{}, err
		}
		if err := doGoto(state, target); err != nil {
			state.Stack.Pop()
			return Outcome{}, err
		}
		return Outcome{Jumped: true}, nil
	}

	if err := doGoto(state, target); err != nil {
		return Outcome{}, err
	}
	return Outcome{Jumped: true}, nil
}

// stmtDefFn implements "DEF FN x(p)=expr": registers the body as an
// unevaluated tokenized slice, re-evaluated on every call. A definition
// only makes sense attached to a numbered line, so typed directly it is
// ILLEGAL DIRECT, same as classic Microsoft BASIC.
func (d *Dispatcher) stmtDefFn(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	if state.Mode == runtime.Direct {
		return Outcome{}, errors.IllegalDirect(state.CurrentLine)
	}
	r.SkipSpaces()
	if !r.MatchToken(0, token.FN) {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	name := evaluator.ScanIdentifier(r)
	if name == "" {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	key := "FN" + store.Fold(name)

	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != '(' {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	r.Advance()
	param := evaluator.ScanIdentifier(r)
	if param == "" {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	r.SkipSpaces()
	if b, ok := r.Cur(); !ok || b != ')' {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	r.Advance()

	r.SkipSpaces()
	if !r.MatchToken('=', token.EQ) {
		return Outcome{}, errors.Syntax(state.CurrentLine)
	}
	bodyStart := r.Pos
	for {
		b, ok := r.Cur()
		if !ok || b == ':' {
			break
		}
		r.Advance()
		if b != '"' {
			continue
		}
		for {
			q, ok := r.Cur()
			if !ok {
				break
			}
			r.Advance()
			if q == '"' {
				break
			}
		}
	}
	body := append([]byte(nil), r.Text[bodyStart:r.Pos]...)

	state.Functions.Define(key, runtime.UserFunction{Param: store.Fold(param), Body: body})
	return Outcome{}, nil
}
