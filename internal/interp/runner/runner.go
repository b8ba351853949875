// Package runner implements the line driver and run loop: ExecuteLine is
// the entry point a REPL or file loader calls for each line of typed or
// loaded source.
package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/nkanaev/msbasic/internal/iface"
	"github.com/nkanaev/msbasic/internal/interp/dispatch"
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/lexer"
	"github.com/nkanaev/msbasic/internal/token"
)

// Runner pairs an interpreter State with the statement Dispatcher that
// drives it, exposing the single ExecuteLine entry point callers need.
type Runner struct {
	State      *runtime.State
	Dispatcher *dispatch.Dispatcher
}

// New creates a Runner backed by term, with every other Option defaulted.
func New(term iface.Terminal) *Runner {
	return NewWithOptions(runtime.Options{Terminal: term})
}

// NewWithOptions creates a Runner from a fully specified Options value.
func NewWithOptions(opts runtime.Options) *Runner {
	return &Runner{
		State:      runtime.New(opts),
		Dispatcher: dispatch.New(),
	}
}

// ExecuteLine implements the line driver: a digit-leading line stores or
// deletes a program line; anything else tokenizes and runs immediately in
// direct mode, handing off to the run loop if a statement jumps to a
// stored program line.
func (rn *Runner) ExecuteLine(raw string) error {
	trimmed := strings.TrimLeft(raw, " ")
	if len(trimmed) > 0 && token.IsDigit(trimmed[0]) {
		return rn.storeLine(trimmed)
	}
	return rn.executeDirect(lexer.Tokenize(raw))
}

// storeLine parses a leading line number and stores (or, for an empty
// body, deletes) the remainder, tokenized.
func (rn *Runner) storeLine(raw string) error {
	i := 0
	for i < len(raw) && token.IsDigit(raw[i]) {
		i++
	}
	n := 0
	for _, c := range raw[:i] {
		n = n*10 + int(c-'0')
	}
	if n > 63999 {
		return errors.Syntax(0)
	}
	rest := strings.TrimLeft(raw[i:], " ")
	if rest == "" {
		rn.State.Program.Put(n, nil)
		return nil
	}
	rn.State.Program.Put(n, lexer.Tokenize(rest))
	return nil
}

// executeDirect runs a freshly tokenized, not-yet-stored line statement
// by statement. CurrentLine 0 marks this transient buffer, distinct from
// any real stored line number, so a FOR/NEXT loop confined to one direct
// line can jump within it without being mistaken for a GOTO/GOSUB to a
// stored line.
func (rn *Runner) executeDirect(text []byte) error {
	state := rn.State
	state.Mode = runtime.Direct
	state.CurrentLine = 0
	state.Cursor = runtime.Cursor{}

	r := evaluator.NewReader(text, 0)
	var finalErr error

	for {
		if state.Options.Trace {
			traceStatement(state.CurrentLine, r)
		}
		out, err := rn.Dispatcher.Statement(state, r)
		if err != nil {
			finalErr = err
			break
		}
		if out.Halt {
			break
		}
		if out.Jumped {
			if state.Cursor.Line == 0 {
				r.Pos = state.Cursor.Offset
				continue
			}
			// A GOTO/GOSUB/IF/ON target names a real stored line: direct
			// mode hands off to the run loop, discarding whatever was
			// left of this transient buffer.
			state.Mode = runtime.Running
			finalErr = rn.run()
			break
		}
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ':' {
			r.Advance()
			continue
		}
		break
	}

	return finalErr
}

// run is the run-mode loop: poll for a user break, execute one statement,
// then either follow a jump the statement already made or step to the
// next statement/line. Every exit from run mode other than a break
// invalidates the continuation point; a break (STOP or the user's
// interrupt) preserves the one saved at the spot it occurred.
func (rn *Runner) run() error {
	state := rn.State
	var finalErr error

	for state.Mode == runtime.Running {
		if state.Terminal().TakeBreak() {
			finalErr = errors.Break(state.CurrentLine)
			state.SaveContinuation(state.CurrentLine, state.Cursor)
			state.Mode = runtime.Direct
			break
		}

		if state.CurrentLine == 0 {
			// Control returned (via RETURN) past a direct-mode GOSUB: the
			// transient buffer that issued it is gone, so there is
			// nothing left to run.
			state.Mode = runtime.Direct
			break
		}

		text, ok := state.Program.Get(state.CurrentLine)
		if !ok {
			state.Mode = runtime.Direct
			break
		}

		r := evaluator.NewReader(text, state.Cursor.Offset)
		if state.Options.Trace {
			traceStatement(state.CurrentLine, r)
		}
		out, err := rn.Dispatcher.Statement(state, r)
		if err != nil {
			finalErr = err
			state.Mode = runtime.Direct
			break
		}
		if out.Halt {
			state.Mode = runtime.Direct
			break
		}
		if out.Jumped {
			continue
		}

		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ':' {
			r.Advance()
			state.Cursor = runtime.Cursor{Line: state.CurrentLine, Offset: r.Pos}
			continue
		}

		next, has := state.Program.Next(state.CurrentLine)
		if !has {
			state.Mode = runtime.Direct
			break
		}
		state.CurrentLine = next.Number
		state.Cursor = runtime.Cursor{Line: next.Number, Offset: 0}
	}

	if finalErr == nil || !errors.Is(finalErr, errors.KindBreak) {
		state.InvalidateContinuation()
	}
	return finalErr
}

// traceStatement implements Options.Trace: print "[line N] STMT" to stderr
// for the statement about to run, detokenized from r's current position up
// to the next top-level ':' or end of line. A '"' toggles a skip-colons
// mode so a literal ':' inside a PRINT/DATA string doesn't end the trace
// early, the same boundary rule the tokenizer itself uses for DATA.
func traceStatement(line int, r *evaluator.Reader) {
	start := r.Pos
	end := start
	inString := false
	for end < len(r.Text) {
		c := r.Text[end]
		if c == '"' {
			inString = !inString
		} else if c == ':' && !inString {
			break
		}
		end++
	}
	stmt := strings.TrimSpace(lexer.Detokenize(r.Text[start:end]))
	fmt.Fprintf(os.Stderr, "[line %d] %s\n", line, stmt)
}
