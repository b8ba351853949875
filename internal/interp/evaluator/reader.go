// Package evaluator implements the precedence-climbing expression
// evaluator: a recursive-descent parser that reads directly from the
// tokenized byte stream via a shared cursor rather than building an AST,
// mirroring how the statement dispatcher walks the same bytes for
// control flow.
package evaluator

import "github.com/nkanaev/msbasic/internal/token"

// Reader is the shared mutable cursor into one line's tokenized bytes.
// Every parsing function advances r.Pos as it consumes input; the caller
// (the statement dispatcher) owns the byte slice and persists the final
// Pos back into a runtime.Cursor between statements.
type Reader struct {
	Text []byte
	Pos  int
}

// NewReader creates a cursor over text starting at offset.
func NewReader(text []byte, offset int) *Reader {
	return &Reader{Text: text, Pos: offset}
}

// AtEnd reports whether the cursor has consumed the whole line.
func (r *Reader) AtEnd() bool {
	return r.Pos >= len(r.Text)
}

// Cur returns the byte at the cursor without consuming it, and false at
// end of line.
func (r *Reader) Cur() (byte, bool) {
	if r.AtEnd() {
		return 0, false
	}
	return r.Text[r.Pos], true
}

// PeekAt returns the byte offset bytes ahead of the cursor (0 = Cur), or
// false if that position is past the end of line.
func (r *Reader) PeekAt(offset int) (byte, bool) {
	i := r.Pos + offset
	if i < 0 || i >= len(r.Text) {
		return 0, false
	}
	return r.Text[i], true
}

// Advance consumes one byte.
func (r *Reader) Advance() {
	if !r.AtEnd() {
		r.Pos++
	}
}

// SkipSpaces consumes ASCII spaces; the tokenizer preserves them
// verbatim.
func (r *Reader) SkipSpaces() {
	for {
		b, ok := r.Cur()
		if !ok || b != ' ' {
			return
		}
		r.Advance()
	}
}

// MatchToken reports whether the byte at the cursor, after skipping
// spaces, either IS the raw ASCII operator character or the crunched
// token byte for it, and consumes it if so. This compensates for the
// tokenizer's word-boundary rule: a single-character
// operator immediately followed by a letter or digit (e.g. the '+' in
// "A+5") fails the reserved-word boundary check and is never crunched, so
// the evaluator must accept either spelling everywhere an operator token
// is expected.
func (r *Reader) MatchToken(ascii byte, tok token.Token) bool {
	save := r.Pos
	r.SkipSpaces()
	b, ok := r.Cur()
	if !ok || (b != ascii && token.Token(b) != tok) {
		r.Pos = save
		return false
	}
	r.Advance()
	return true
}

// MatchTokenNoSkip is MatchToken without a leading SkipSpaces, for the
// second character of a two-character comparison operator, which must be
// adjacent to the first (e.g. "<=", not "< =").
func (r *Reader) MatchTokenNoSkip(ascii byte, tok token.Token) bool {
	b, ok := r.Cur()
	if !ok || (b != ascii && token.Token(b) != tok) {
		return false
	}
	r.Advance()
	return true
}

// PeekToken reports whether the next significant byte (after skipping
// spaces) is tok, without consuming it.
func (r *Reader) PeekToken(tok token.Token) bool {
	save := r.Pos
	r.SkipSpaces()
	b, ok := r.Cur()
	r.Pos = save
	return ok && token.Token(b) == tok
}
