package runner

import "strings"

// fakeTerminal is a scriptable iface.Terminal test double: output is
// captured to a builder, input lines/bytes are served from pre-loaded
// queues, and a break can be armed for the next TakeBreak poll.
type fakeTerminal struct {
	out     strings.Builder
	col     int
	lines   []string
	bytes   []byte
	breakAt int // number of PutByte calls after which TakeBreak reports true once; 0 disables
	puts    int
}

func newFakeTerminal(lines ...string) *fakeTerminal {
	return &fakeTerminal{lines: lines}
}

func (f *fakeTerminal) PutByte(b byte) {
	f.out.WriteByte(b)
	f.puts++
	if b == '\n' {
		f.col = 0
	} else {
		f.col++
	}
}

func (f *fakeTerminal) Column() int { return f.col }

func (f *fakeTerminal) ReadLine(prompt string) (string, bool) {
	if len(f.lines) == 0 {
		return "", false
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, true
}

func (f *fakeTerminal) ReadByte() (byte, bool) {
	if len(f.bytes) == 0 {
		return 0, false
	}
	b := f.bytes[0]
	f.bytes = f.bytes[1:]
	return b, true
}

func (f *fakeTerminal) TakeBreak() bool {
	if f.breakAt != 0 && f.puts >= f.breakAt {
		f.breakAt = 0
		return true
	}
	return false
}

func (f *fakeTerminal) Output() string { return f.out.String() }
