package runtime

import "sort"

// Line is one stored program line: its number and its tokenized bytes.
type Line struct {
	Number int
	Text   []byte
}

// Program is the strictly-ascending, duplicate-free store of program
// lines. Storing an empty body for an existing line number
// deletes it; storing a non-empty body for an existing number overwrites
// it in place, otherwise inserts it in sorted position.
type Program struct {
	lines []Line
}

// NewProgram creates an empty program store.
func NewProgram() *Program {
	return &Program{}
}

func (p *Program) search(number int) (int, bool) {
	i := sort.Search(len(p.lines), func(i int) bool { return p.lines[i].Number >= number })
	return i, i < len(p.lines) && p.lines[i].Number == number
}

// Put stores text under number, or deletes the line if text is empty.
func (p *Program) Put(number int, text []byte) {
	i, found := p.search(number)
	if len(text) == 0 {
		if found {
			p.lines = append(p.lines[:i], p.lines[i+1:]...)
		}
		return
	}
	if found {
		p.lines[i].Text = text
		return
	}
	p.lines = append(p.lines, Line{})
	copy(p.lines[i+1:], p.lines[i:])
	p.lines[i] = Line{Number: number, Text: text}
}

// Get returns the line with the given number, if any.
func (p *Program) Get(number int) ([]byte, bool) {
	i, found := p.search(number)
	if !found {
		return nil, false
	}
	return p.lines[i].Text, true
}

// Has reports whether number is a stored line.
func (p *Program) Has(number int) bool {
	_, found := p.search(number)
	return found
}

// First returns the lowest-numbered line, if the program is non-empty.
func (p *Program) First() (Line, bool) {
	if len(p.lines) == 0 {
		return Line{}, false
	}
	return p.lines[0], true
}

// Next returns the first stored line strictly after number (the line
// GOTO/RUN fall through to, and what the data cursor and the runner's
// statement-to-statement advance use to move between lines).
func (p *Program) Next(number int) (Line, bool) {
	i := sort.Search(len(p.lines), func(i int) bool { return p.lines[i].Number > number })
	if i >= len(p.lines) {
		return Line{}, false
	}
	return p.lines[i], true
}

// All returns every line in ascending order, for LIST.
func (p *Program) All() []Line {
	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}

// Len returns the number of stored lines.
func (p *Program) Len() int {
	return len(p.lines)
}

// Clear removes every stored line (NEW).
func (p *Program) Clear() {
	p.lines = nil
}
