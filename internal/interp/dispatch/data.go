package dispatch

import (
	"strconv"
	"strings"

	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/interp/evaluator"
	"github.com/nkanaev/msbasic/internal/interp/runtime"
	"github.com/nkanaev/msbasic/internal/store"
	"github.com/nkanaev/msbasic/internal/token"
	"github.com/nkanaev/msbasic/internal/values"
)

// maxSubscript bounds a single DIM dimension size; negative or larger
// sizes are ILLEGAL QUANTITY.
const maxSubscript = 32767

// stmtDim implements "DIM a(n1,n2,...), b(...), ...".
func (d *Dispatcher) stmtDim(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	for {
		r.SkipSpaces()
		name := evaluator.ScanIdentifier(r)
		if name == "" {
			return Outcome{}, errors.Syntax(state.CurrentLine)
		}
		key := store.Fold(name)
		isString := store.IsStringSuffix(name)

		r.SkipSpaces()
		if b, ok := r.Cur(); !ok || b != '(' {
			return Outcome{}, errors.Syntax(state.CurrentLine)
		}
		r.Advance()

		var dims []int
		for {
			v, err := ev.Eval(r)
			if err != nil {
				return Outcome{}, err
			}
			if v.IsString() {
				return Outcome{}, errors.TypeMismatch(state.CurrentLine)
			}
			n := v.AsNumber()
			if n < 0 || n > maxSubscript {
				return Outcome{}, errors.IllegalQuantity(state.CurrentLine)
			}
			dims = append(dims, int(n)+1)
			r.SkipSpaces()
			if b, ok := r.Cur(); ok && b == ',' {
				r.Advance()
				continue
			}
			break
		}
		r.SkipSpaces()
		if b, ok := r.Cur(); !ok || b != ')' {
			return Outcome{}, errors.Syntax(state.CurrentLine)
		}
		r.Advance()

		if err := state.Arrays.Dim(key, dims, isString); err != nil {
			return Outcome{}, errors.RedimensionedArray(state.CurrentLine)
		}

		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ',' {
			r.Advance()
			continue
		}
		break
	}
	return Outcome{}, nil
}

// stmtRestore implements "RESTORE [n]".
func (d *Dispatcher) stmtRestore(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	r.SkipSpaces()
	if b, ok := r.Cur(); ok && token.IsDigit(b) {
		n, err := scanLineNumber(r, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		state.Data.Restore(n, true)
		return Outcome{}, nil
	}
	state.Data.Restore(0, false)
	return Outcome{}, nil
}

// stmtRead implements "READ lvalue, lvalue, ...".
func (d *Dispatcher) stmtRead(state *runtime.State, r *evaluator.Reader) (Outcome, error) {
	ev := evaluator.New(state, state.CurrentLine)
	for {
		r.SkipSpaces()
		lv, err := ev.ParseLValue(r)
		if err != nil {
			return Outcome{}, err
		}
		item, err := readNextItem(state)
		if err != nil {
			return Outcome{}, err
		}
		v, err := coerceDataItem(item, lv.IsString, state.CurrentLine)
		if err != nil {
			return Outcome{}, err
		}
		if err := ev.AssignLValue(lv, v); err != nil {
			return Outcome{}, err
		}
		r.SkipSpaces()
		if b, ok := r.Cur(); ok && b == ',' {
			r.Advance()
			continue
		}
		break
	}
	return Outcome{}, nil
}

// coerceDataItem converts a scanned DATA item's raw text to the target
// type. A numeric target whose item doesn't parse as a number is FILE
// DATA ERROR.
func coerceDataItem(item string, wantString bool, line int) (values.Value, error) {
	if wantString {
		return values.String(item), nil
	}
	trimmed := strings.TrimSpace(item)
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return values.Value{}, errors.FileData(line)
	}
	return values.Number(n), nil
}

// readNextItem locates and consumes the next DATA item, advancing the
// cursor's data position.
func readNextItem(state *runtime.State) (string, error) {
	if !state.Data.Seek() {
		return "", errors.OutOfData(state.CurrentLine)
	}
	pos := state.Data.Position()
	text, ok := state.Program.Get(pos.Line)
	if !ok {
		return "", errors.OutOfData(state.CurrentLine)
	}

	offset := pos.Offset
	if offset < len(text) && token.Token(text[offset]) == token.DATA {
		offset++
	}

	item, next, hasMore := scanDataItem(text, offset)
	if hasMore {
		state.Data.SetPosition(runtime.Cursor{Line: pos.Line, Offset: next})
	} else {
		// This DATA statement is exhausted; resolve the next one lazily on
		// the following read. Its own absence doesn't invalidate item.
		state.Data.Advance(next)
	}
	return item, nil
}

// scanDataItem reads one item from text starting at start: a quoted
// string (copied verbatim) or an unquoted run up to ',', ':', or end of
// line with trailing whitespace trimmed. hasMore reports
// whether a comma followed, meaning more items remain in this DATA
// statement; next is positioned just past that comma, or at the ':'/EOL
// terminator otherwise.
func scanDataItem(text []byte, start int) (item string, next int, hasMore bool) {
	i := start
	for i < len(text) && text[i] == ' ' {
		i++
	}

	if i < len(text) && text[i] == '"' {
		j := i + 1
		for j < len(text) && text[j] != '"' {
			j++
		}
		item = string(text[i+1 : j])
		if j < len(text) {
			j++ // consume closing quote
		}
		i = j
	} else {
		itemStart := i
		for i < len(text) && text[i] != ',' && text[i] != ':' {
			i++
		}
		item = strings.TrimRight(string(text[itemStart:i]), " ")
	}

	for i < len(text) && text[i] == ' ' {
		i++
	}
	if i < len(text) && text[i] == ',' {
		return item, i + 1, true
	}
	return item, i, false
}
