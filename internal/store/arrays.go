package store

import (
	"errors"

	"github.com/nkanaev/msbasic/internal/heap"
)

// ErrBadSubscript is returned for an out-of-range or wrong-arity index.
var ErrBadSubscript = errors.New("bad subscript")

// ErrRedimensioned is returned when DIM targets an already-declared array.
var ErrRedimensioned = errors.New("redimensioned array")

// AutoDimSize is the size of each dimension (subscripts 0..10) an
// undeclared array gets on first subscripted use.
const AutoDimSize = 11

// Array is a multi-dimensional, row-major array of a single element type.
type Array struct {
	Dims     []int // size of each dimension (subscript_max+1)
	IsString bool
	nums     []float64
	strs     []heap.Ref
}

func newArray(dims []int, isString bool) *Array {
	total := 1
	for _, d := range dims {
		total *= d
	}
	a := &Array{Dims: append([]int(nil), dims...), IsString: isString}
	if isString {
		a.strs = make([]heap.Ref, total)
	} else {
		a.nums = make([]float64, total)
	}
	return a
}

// index computes the row-major linear offset for indices.
func (a *Array) index(indices []int) (int, error) {
	if len(indices) != len(a.Dims) {
		return 0, ErrBadSubscript
	}
	idx := 0
	for i, sub := range indices {
		if sub < 0 || sub >= a.Dims[i] {
			return 0, ErrBadSubscript
		}
		idx = idx*a.Dims[i] + sub
	}
	return idx, nil
}

// Arrays is the array namespace: disjoint from Variables, keyed by the
// same folded identity rule.
type Arrays struct {
	arena *heap.Arena
	order []string
	items map[string]*Array
}

// NewArrays creates an empty array store backed by arena for string
// element storage.
func NewArrays(arena *heap.Arena) *Arrays {
	return &Arrays{arena: arena, items: make(map[string]*Array)}
}

// Has reports whether key names a declared array.
func (a *Arrays) Has(key string) bool {
	_, ok := a.items[key]
	return ok
}

// Dim declares an array with the given dimension sizes (each
// subscript_max+1). Redeclaring an existing array is ErrRedimensioned.
func (a *Arrays) Dim(key string, dims []int, isString bool) error {
	if a.Has(key) {
		return ErrRedimensioned
	}
	a.items[key] = newArray(dims, isString)
	a.order = append(a.order, key)
	return nil
}

// AutoDim declares an array of AutoDimSize per dimension if key is not
// already declared; it is a no-op if the array already exists.
func (a *Arrays) AutoDim(key string, numDims int, isString bool) {
	if a.Has(key) {
		return
	}
	dims := make([]int, numDims)
	for i := range dims {
		dims[i] = AutoDimSize
	}
	a.items[key] = newArray(dims, isString)
	a.order = append(a.order, key)
}

// GetNumber reads a numeric element.
func (a *Arrays) GetNumber(key string, indices []int) (float64, error) {
	arr, ok := a.items[key]
	if !ok {
		return 0, ErrBadSubscript
	}
	idx, err := arr.index(indices)
	if err != nil {
		return 0, err
	}
	return arr.nums[idx], nil
}

// SetNumber writes a numeric element.
func (a *Arrays) SetNumber(key string, indices []int, v float64) error {
	arr, ok := a.items[key]
	if !ok {
		return ErrBadSubscript
	}
	idx, err := arr.index(indices)
	if err != nil {
		return err
	}
	arr.nums[idx] = v
	return nil
}

// GetString reads a string element, resolved through the heap arena.
func (a *Arrays) GetString(key string, indices []int) (string, error) {
	arr, ok := a.items[key]
	if !ok {
		return "", ErrBadSubscript
	}
	idx, err := arr.index(indices)
	if err != nil {
		return "", err
	}
	return a.arena.Read(arr.strs[idx]), nil
}

// SetString writes a string element, copying the value into the arena.
// Reports false on arena exhaustion.
func (a *Arrays) SetString(key string, indices []int, v string) (bool, error) {
	arr, ok := a.items[key]
	if !ok {
		return false, ErrBadSubscript
	}
	idx, err := arr.index(indices)
	if err != nil {
		return false, err
	}
	ref, ok := a.arena.Alloc(v)
	if !ok {
		return false, nil
	}
	arr.strs[idx] = ref
	return true, nil
}

// IsString reports whether the named array holds strings.
func (a *Arrays) IsString(key string) (isString, ok bool) {
	arr, ok := a.items[key]
	if !ok {
		return false, false
	}
	return arr.IsString, true
}

// Dims returns the declared dimension sizes for key, or nil if undeclared.
func (a *Arrays) Dims(key string) []int {
	arr, ok := a.items[key]
	if !ok {
		return nil
	}
	return arr.Dims
}

// Roots returns pointers to every live string Ref across every array, for
// the arena collector to walk as GC roots.
func (a *Arrays) Roots() []*heap.Ref {
	var roots []*heap.Ref
	for _, arr := range a.items {
		if !arr.IsString {
			continue
		}
		for i := range arr.strs {
			roots = append(roots, &arr.strs[i])
		}
	}
	return roots
}

// Clear removes every array (CLEAR, NEW).
func (a *Arrays) Clear() {
	a.order = nil
	a.items = make(map[string]*Array)
}

// Names returns every declared array's folded key in insertion order.
func (a *Arrays) Names() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
