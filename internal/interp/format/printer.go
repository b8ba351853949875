// Package format implements PRINT's column-tracking output rules: print
// zones, TAB/SPC positioning, and line wrap at terminal width.
// Numeric-to-text conversion itself lives in internal/numfmt; this
// package only decides where each byte lands.
package format

import "github.com/nkanaev/msbasic/internal/iface"

// ZoneWidth is the fixed column span of a comma-separated PRINT zone.
const ZoneWidth = 14

// Printer drives a Terminal according to PRINT's positioning rules,
// wrapping at Width columns.
type Printer struct {
	Term  iface.Terminal
	Width int
}

// New creates a Printer bound to term, wrapping at width columns.
func New(term iface.Terminal, width int) *Printer {
	return &Printer{Term: term, Width: width}
}

// Column reports the terminal's current output column.
func (p *Printer) Column() int {
	return p.Term.Column()
}

// putByte writes one byte, inserting a newline first if the terminal has
// already reached its configured width.
func (p *Printer) putByte(b byte) {
	if b != '\n' && p.Width > 0 && p.Term.Column() >= p.Width {
		p.Term.PutByte('\n')
	}
	p.Term.PutByte(b)
}

// WriteString writes s byte by byte, honoring the wrap rule for each byte.
func (p *Printer) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		p.putByte(s[i])
	}
}

// Newline emits a line terminator, as a PRINT ending on a bare expression
// does.
func (p *Printer) Newline() {
	p.Term.PutByte('\n')
}

// Spaces emits n literal spaces (SPC(n)).
func (p *Printer) Spaces(n int) {
	for i := 0; i < n; i++ {
		p.putByte(' ')
	}
}

// Tab moves the output column to col (1-based), issuing a newline first
// if the terminal is already past that column.
func (p *Printer) Tab(col int) {
	target := col - 1
	if target < 0 {
		target = 0
	}
	if p.Term.Column() > target {
		p.Term.PutByte('\n')
	}
	for p.Term.Column() < target {
		p.putByte(' ')
	}
}

// Zone advances output to the start of the next print zone, implementing
// PRINT's ',' separator. Unlike Tab, Zone never backs up: if the current
// column already sits inside what would be the target zone it advances to
// the NEXT one instead of standing still.
func (p *Printer) Zone() {
	col := p.Term.Column()
	next := ((col / ZoneWidth) + 1) * ZoneWidth
	if p.Width > 0 && next >= p.Width {
		p.Term.PutByte('\n')
		return
	}
	for p.Term.Column() < next {
		p.putByte(' ')
	}
}
