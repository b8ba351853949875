package evaluator

import (
	"github.com/nkanaev/msbasic/internal/interp/errors"
	"github.com/nkanaev/msbasic/internal/store"
	"github.com/nkanaev/msbasic/internal/values"
)

// LValue is a resolved assignment target: a scalar variable or an
// auto-dimensioned array element.
// Resolving it is split from assigning to it so the statement dispatcher
// can parse an lvalue once (LET, READ, INPUT, GET) and decide what value
// to pour into it afterward.
type LValue struct {
	Key      string
	IsString bool
	IsArray  bool
	Indices  []int
}

// ParseLValue parses a scalar or array-element reference as an assignment
// target, auto-dimensioning the array on first subscripted use just like a
// read reference would.
func (e *Evaluator) ParseLValue(r *Reader) (LValue, error) {
	name := scanIdentifier(r)
	if name == "" {
		return LValue{}, syntaxErr(e.Line)
	}
	key := store.Fold(name)
	isString := store.IsStringSuffix(name)

	r.SkipSpaces()
	if b, ok := r.Cur(); ok && b == '(' {
		indices, err := e.parseSubscripts(r)
		if err != nil {
			return LValue{}, err
		}
		e.State.Arrays.AutoDim(key, len(indices), isString)
		return LValue{Key: key, IsString: isString, IsArray: true, Indices: indices}, nil
	}
	return LValue{Key: key, IsString: isString}, nil
}

// AssignLValue stores v into lv, type-checking first: a number variable
// never holds a string value and vice versa. Strings are copied into the
// string heap; arena exhaustion surfaces as OUT OF MEMORY.
func (e *Evaluator) AssignLValue(lv LValue, v values.Value) error {
	if lv.IsString != v.IsString() {
		return errors.TypeMismatch(e.Line)
	}

	if lv.IsArray {
		if lv.IsString {
			ok, err := e.State.Arrays.SetString(lv.Key, lv.Indices, v.Str)
			if err != nil {
				return errors.BadSubscript(e.Line)
			}
			if !ok {
				return errors.OutOfMemory(e.Line)
			}
			return nil
		}
		if err := e.State.Arrays.SetNumber(lv.Key, lv.Indices, v.AsNumber()); err != nil {
			return errors.BadSubscript(e.Line)
		}
		return nil
	}

	if lv.IsString {
		if !e.State.Variables.SetString(lv.Key, v.Str) {
			return errors.OutOfMemory(e.Line)
		}
		return nil
	}
	e.State.Variables.SetNumber(lv.Key, v.AsNumber())
	return nil
}
