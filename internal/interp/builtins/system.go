package builtins

import "github.com/nkanaev/msbasic/internal/interp/runtime"

// peek reads one byte from simulated memory; addresses outside the
// configured range silently read as 0.
func peek(state *runtime.State, addr float64) float64 {
	return float64(state.Memory.Peek(int(addr)))
}

// fre reports the string heap's free byte count. BASIC's FRE takes a
// dummy argument (historically a string triggers a collection pass
// first); the argument itself never affects the result here.
func fre(state *runtime.State) float64 {
	return float64(state.Arena.Cap() - state.Arena.Len())
}

// pos reports the terminal's current output column.
func pos(state *runtime.State) float64 {
	return float64(state.Terminal().Column())
}

// usr calls the host-supplied machine-language-call hook, or returns its
// argument unchanged if none was configured; with no real machine to call
// into, USR is an identity function unless the embedder wires one in via
// Options.USR.
func usr(state *runtime.State, x float64) float64 {
	if state.Options.USR != nil {
		return state.Options.USR(x)
	}
	return x
}
