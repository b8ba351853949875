package runtime

import "github.com/nkanaev/msbasic/internal/token"

// exhaustedLine marks a cursor that has scanned past the program's last
// DATA statement, distinct from the zero Cursor, which means "never
// started".
const exhaustedLine = -1

// DataCursor walks DATA payloads across the program in line order.
// It holds only a position; the actual
// item parsing (quoted vs. unquoted, comma/EOL termination) lives in the
// statement dispatcher, which owns the byte-level scanning rules shared
// with the rest of the evaluator. Seek/Advance resolve that position onto
// an actual DATA token, since RESTORE n and program start leave only a
// line number for the dispatcher to scan forward from.
type DataCursor struct {
	program *Program
	pos     Cursor // zero value means "unset, starts at program's first DATA line"
	// ready is true exactly when pos already points at the start of an
	// unconsumed item (either the DATA token itself or just past a
	// preceding item's comma) and needs no forward scan. It is false right
	// after RESTORE, at program start, and once a payload's items are
	// exhausted — those positions name only a line, not an item.
	ready bool
}

// NewDataCursor creates a cursor over program, initially unset.
func NewDataCursor(program *Program) *DataCursor {
	return &DataCursor{program: program}
}

// Position returns the cursor's current (line, offset).
func (d *DataCursor) Position() Cursor {
	return d.pos
}

// SetPosition records where the next item in the SAME DATA payload
// starts, once the dispatcher has scanned past an item's trailing comma.
func (d *DataCursor) SetPosition(c Cursor) {
	d.pos = c
	d.ready = true
}

// Exhausted reports whether the cursor has run past the last DATA
// statement in the program; the next READ must raise OUT OF DATA.
func (d *DataCursor) Exhausted() bool {
	return d.pos.Line == exhaustedLine
}

// Restore implements RESTORE [n]: resets to the unset start-of-program
// state, or to the given line number. The line need not itself contain a
// DATA statement; Seek resolves forward from there.
func (d *DataCursor) Restore(number int, ok bool) {
	d.ready = false
	if !ok {
		d.pos = Cursor{}
		return
	}
	d.pos = Cursor{Line: number}
}

// Seek ensures the cursor sits on an actual, unconsumed DATA item,
// scanning forward from its current line (inclusive) if necessary. It is
// a no-op once the cursor is already ready, so it is safe to call before
// every item read. Returns false, marking the cursor Exhausted, if no
// DATA statement exists at or after the current position.
func (d *DataCursor) Seek() bool {
	if d.Exhausted() {
		return false
	}
	if d.ready {
		return true
	}
	if d.pos.Line == 0 {
		return d.advanceFrom(0)
	}
	if text, ok := d.program.Get(d.pos.Line); ok {
		if off, found := firstDataOffset(text); found {
			d.pos = Cursor{Line: d.pos.Line, Offset: off}
			d.ready = true
			return true
		}
	}
	return d.advanceFrom(d.pos.Line - 1)
}

// Advance moves past the DATA statement the cursor currently occupies,
// searching the rest of the current line from offset and then strictly
// later lines for the next one. Call this once a DATA payload is
// exhausted: the dispatcher hit ':' or end of line scanning for items
// without finding another comma, and offset is where that scan stopped.
func (d *DataCursor) Advance(offset int) bool {
	if d.Exhausted() {
		return false
	}
	d.ready = false
	if text, ok := d.program.Get(d.pos.Line); ok {
		if off, found := dataOffsetFrom(text, offset, false); found {
			d.pos = Cursor{Line: d.pos.Line, Offset: off}
			d.ready = true
			return true
		}
	}
	return d.advanceFrom(d.pos.Line)
}

func (d *DataCursor) advanceFrom(after int) bool {
	lineNumber, offset, ok := d.NextDataLine(after)
	if !ok {
		d.pos = Cursor{Line: exhaustedLine}
		return false
	}
	d.pos = Cursor{Line: lineNumber, Offset: offset}
	d.ready = true
	return true
}

// NextDataLine scans forward from the given line (exclusive) for the next
// line in program order whose tokenized text (line-number prefix already
// stripped) holds a DATA statement at a statement boundary: at the start
// of the line or after a ':' separator. It returns the first such DATA
// token's byte offset within that line.
func (d *DataCursor) NextDataLine(after int) (lineNumber int, offset int, ok bool) {
	ln, has := d.program.Next(after)
	for has {
		if off, found := firstDataOffset(ln.Text); found {
			return ln.Number, off, true
		}
		ln, has = d.program.Next(ln.Number)
	}
	return 0, 0, false
}

// firstDataOffset scans a line's tokenized bytes for a DATA token that
// begins a statement (i.e. follows the start of line or a ':' separator).
func firstDataOffset(text []byte) (int, bool) {
	return dataOffsetFrom(text, 0, true)
}

// dataOffsetFrom is firstDataOffset generalized to a mid-line start;
// atBoundary says whether position start itself begins a statement.
func dataOffsetFrom(text []byte, start int, atBoundary bool) (int, bool) {
	for i := start; i < len(text); i++ {
		b := text[i]
		if atBoundary && token.Token(b) == token.DATA {
			return i, true
		}
		atBoundary = b == ' ' && atBoundary || b == ':'
	}
	return 0, false
}
