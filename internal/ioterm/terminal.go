// Package ioterm implements iface.Terminal against the real process
// stdin/stdout, keeping concrete I/O out of the interpreter core and
// wiring it only at the command layer.
package ioterm

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/term"
)

// Terminal is a concrete iface.Terminal backed by os.Stdin/os.Stdout. Ctrl-C
// is caught with signal.Notify rather than left to the runtime's default
// handler, so a running BASIC program observes it as a BREAK
// instead of the process dying.
type Terminal struct {
	in  *bufio.Reader
	out *os.File
	fd  int
	col int

	broke   atomic.Bool
	sigCh   chan os.Signal
	stopped chan struct{}
}

// New creates a Terminal over stdin/stdout and starts its break-signal
// listener. Callers should defer Close to stop that listener.
func New() *Terminal {
	t := &Terminal{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		fd:      int(os.Stdin.Fd()),
		sigCh:   make(chan os.Signal, 1),
		stopped: make(chan struct{}),
	}
	signal.Notify(t.sigCh, os.Interrupt)
	go t.watchBreaks()
	return t
}

func (t *Terminal) watchBreaks() {
	for {
		select {
		case _, ok := <-t.sigCh:
			if !ok {
				return
			}
			t.broke.Store(true)
		case <-t.stopped:
			return
		}
	}
}

// Close stops the break-signal listener. Safe to call once.
func (t *Terminal) Close() {
	signal.Stop(t.sigCh)
	close(t.stopped)
}

// PutByte writes b to stdout, tracking the output column for PRINT's
// zone/wrap logic.
func (t *Terminal) PutByte(b byte) {
	fmt.Fprintf(t.out, "%c", b)
	if b == '\n' {
		t.col = 0
		return
	}
	t.col++
}

// Column reports the current 0-based output column.
func (t *Terminal) Column() int {
	return t.col
}

// ReadLine writes prompt, then reads one line with normal cooked-mode line
// editing (handled by the OS tty driver, same as stdio everywhere else in
// the toolchain).
func (t *Terminal) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(t.out, prompt)
	t.col = 0
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, true
}

// ReadByte reads one raw byte for GET, switching stdin into raw mode for
// the single read so it doesn't wait for a line terminator, then restoring
// whatever mode the terminal was already in.
func (t *Terminal) ReadByte() (byte, bool) {
	oldState, err := term.MakeRaw(t.fd)
	if err == nil {
		defer term.Restore(t.fd, oldState)
	}
	b, err := t.in.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

// TakeBreak reports whether Ctrl-C arrived since the last call, clearing
// the flag so a single break is consumed exactly once.
func (t *Terminal) TakeBreak() bool {
	return t.broke.Swap(false)
}
