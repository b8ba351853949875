package runtime

import "github.com/nkanaev/msbasic/internal/iface"

// DefaultTerminalWidth is the column count PRINT wraps at unless the
// embedder overrides it.
const DefaultTerminalWidth = 80

// Options configures a fresh interpreter State. Every field except
// Terminal has a usable zero value; New fills in defaults for anything
// left unset.
type Options struct {
	// Terminal is the byte-sink/line-source/break-poll collaborator. If
	// nil, New panics — every interpreter needs one.
	Terminal iface.Terminal

	// TerminalWidth is the column count PRINT wraps at. 0 uses
	// DefaultTerminalWidth.
	TerminalWidth int

	// MemorySize sizes the PEEK/POKE backing store. 0 uses
	// DefaultMemorySize.
	MemorySize int

	// StringHeapSize sizes the string arena. 0 uses heap.DefaultCapacity.
	StringHeapSize int

	// StackCapacity bounds the FOR/GOSUB runtime stack. 0 uses
	// DefaultStackCapacity.
	StackCapacity int

	// USR, if set, backs the USR() function call for embedders that want
	// to expose a native hook; otherwise USR(x) is the identity function,
	// since no machine-code call target exists in a hosted interpreter.
	USR func(float64) float64

	// Trace, when true, makes the runner emit "[line N] STMT" before
	// executing each statement.
	Trace bool
}
