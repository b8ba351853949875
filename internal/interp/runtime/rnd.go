package runtime

// RndState holds the 5-byte pseudo-random accumulator threaded through
// successive RND(x) calls, in the historical Microsoft BASIC floating
// point byte layout. The update algorithm itself lives in the builtins
// package, which treats this as opaque mutable storage; the seed is kept
// here because it belongs to the interpreter's persistent state, not to
// any one call's evaluation.
type RndState struct {
	Bytes [5]byte
}

// DefaultRndSeed is the accumulator every fresh interpreter state starts
// from.
var DefaultRndSeed = [5]byte{0x00, 0x00, 0x00, 0x00, 0x00}

// NewRndState creates a seeded accumulator.
func NewRndState() *RndState {
	s := &RndState{}
	copy(s.Bytes[:], DefaultRndSeed[:])
	return s
}

// Reset restores the accumulator to DefaultRndSeed (CLEAR/NEW).
func (s *RndState) Reset() {
	copy(s.Bytes[:], DefaultRndSeed[:])
}
