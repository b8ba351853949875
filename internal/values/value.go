// Package values defines the tagged Value variant shared by the
// expression evaluator, the variable/array store, and the statement
// dispatcher.
package values

// Kind tags the payload carried by a Value.
type Kind int

const (
	// KindNumber is a double-precision numeric value.
	KindNumber Kind = iota
	// KindString is a string value held as a plain Go string; only
	// assignment into a variable or array element copies it into the
	// string heap.
	KindString
	// KindInteger is a 32-bit integer, used only for array index coercion;
	// it is never the stored type of a variable.
	KindInteger
)

// Value is the tagged variant flowing through the evaluator: a number, a
// string, or (transiently, for subscripts) an integer.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Int  int32
}

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String constructs a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Integer constructs an integer Value (subscript coercion only).
func Integer(i int32) Value { return Value{Kind: KindInteger, Int: i} }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.Kind == KindString }

// IsNumeric reports whether v holds a number or integer.
func (v Value) IsNumeric() bool { return v.Kind == KindNumber || v.Kind == KindInteger }

// AsNumber returns v's numeric value, coercing KindInteger. Callers must
// check IsNumeric first; this does not itself error on a string.
func (v Value) AsNumber() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Num
}

// Truthy implements BASIC's truthiness rule for IF: a non-zero number or
// a non-empty string.
func (v Value) Truthy() bool {
	if v.IsString() {
		return v.Str != ""
	}
	return v.AsNumber() != 0
}

// Bool converts a Go boolean to BASIC's truth value: -1.0 for true, 0.0
// for false.
func Bool(b bool) Value {
	if b {
		return Number(-1)
	}
	return Number(0)
}

// ZeroValue returns the default value for a variable of the given
// suffix-determined kind: 0 for numbers/integers, "" for strings.
func ZeroValue(isString bool) Value {
	if isString {
		return String("")
	}
	return Number(0)
}
