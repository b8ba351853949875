package runtime

import (
	"github.com/nkanaev/msbasic/internal/heap"
	"github.com/nkanaev/msbasic/internal/iface"
	"github.com/nkanaev/msbasic/internal/store"
)

// Mode is the interpreter's execution mode.
type Mode int

const (
	// Direct mode executes a typed-in statement immediately.
	Direct Mode = iota
	// Running mode executes the stored program line by line.
	Running
)

// State aggregates every piece of mutable interpreter state: program
// store, variables, arrays, user functions, runtime stack, string heap,
// data cursor, current position, continuation info, RND state, and
// simulated memory. There is no module-level state anywhere in the
// interpreter; embedders may hold several States side by side.
type State struct {
	Options Options

	Program   *Program
	Arena     *heap.Arena
	Variables *store.Variables
	Arrays    *store.Arrays
	Functions *UserFunctions
	Stack     *Stack
	Data      *DataCursor
	Rnd       *RndState
	Memory    *Memory

	Mode        Mode
	CurrentLine int
	Cursor      Cursor

	CanContinue bool
	ContLine    int
	ContCursor  Cursor

	// NullCount is the argument of the most recent NULL statement: the
	// number of filler nulls a real teletype would pad after each line.
	// A portable terminal collaborator has no use for it, but the count
	// is kept so NULL is not a pure no-op.
	NullCount int
}

// New creates a State with defaults filled in for any zero-valued Options
// field. Terminal must be set; New panics otherwise, since nothing in the
// interpreter can produce output or read input without one.
func New(opts Options) *State {
	if opts.Terminal == nil {
		panic("runtime.New: Options.Terminal must not be nil")
	}
	if opts.TerminalWidth <= 0 {
		opts.TerminalWidth = DefaultTerminalWidth
	}
	if opts.MemorySize <= 0 {
		opts.MemorySize = DefaultMemorySize
	}
	if opts.StringHeapSize <= 0 {
		opts.StringHeapSize = heap.DefaultCapacity
	}
	if opts.StackCapacity <= 0 {
		opts.StackCapacity = DefaultStackCapacity
	}

	arena := heap.New(opts.StringHeapSize)
	program := NewProgram()
	variables := store.NewVariables(arena)
	arrays := store.NewArrays(arena)
	arena.SetRootsFunc(func() []*heap.Ref {
		return append(variables.Roots(), arrays.Roots()...)
	})

	return &State{
		Options:   opts,
		Program:   program,
		Arena:     arena,
		Variables: variables,
		Arrays:    arrays,
		Functions: NewUserFunctions(),
		Stack:     NewStack(opts.StackCapacity),
		Data:      NewDataCursor(program),
		Rnd:       NewRndState(),
		Memory:    NewMemory(opts.MemorySize),
		Mode:      Direct,
	}
}

// Terminal is a convenience accessor for the configured collaborator.
func (s *State) Terminal() iface.Terminal {
	return s.Options.Terminal
}

// Clear implements CLEAR: wipes variables, arrays, user functions, resets
// the runtime stack, data cursor, and string heap; the program is
// preserved.
func (s *State) Clear() {
	s.Variables.Clear()
	s.Arrays.Clear()
	s.Functions.Clear()
	s.Stack.Clear()
	s.Arena.Reset()
	s.Data.Restore(0, false)
	s.Rnd.Reset()
	s.CanContinue = false
	s.ContLine = 0
	s.ContCursor = Cursor{}
}

// NewProgram implements the NEW statement: clears everything Clear does,
// plus the program itself.
func (s *State) NewProgram() {
	s.Clear()
	s.Program.Clear()
	s.CurrentLine = 0
	s.Cursor = Cursor{}
	s.Mode = Direct
}

// SaveContinuation records the resume point for a STOP or BREAK. Only
// those two terminations leave CONT armed.
func (s *State) SaveContinuation(line int, cursor Cursor) {
	s.CanContinue = true
	s.ContLine = line
	s.ContCursor = cursor
}

// InvalidateContinuation clears the saved resume point, as every
// termination other than STOP/BREAK must.
func (s *State) InvalidateContinuation() {
	s.CanContinue = false
	s.ContLine = 0
	s.ContCursor = Cursor{}
}
