package foreign

import (
	"fmt"
)

// Array is a rectangular multi-dimensional numeric array stored flat in
// row-major order. The element type is explicit: KindInt or KindFloat,
// never inferred from the data. Dimension order is preserved exactly as
// given by the host.
type Array struct {
	dims   []int
	ints   []int64
	floats []float64
	elem   Kind
}

// NewIntArray builds an integer-typed array. The data length must equal
// the product of dims.
func NewIntArray(dims []int, data []int64) (*Array, error) {
	if err := checkDims(dims, len(data)); err != nil {
		return nil, err
	}
	d := make([]int, len(dims))
	copy(d, dims)
	cp := make([]int64, len(data))
	copy(cp, data)
	return &Array{dims: d, elem: KindInt, ints: cp}, nil
}

// NewFloatArray builds a floating-point-typed array. The data length must
// equal the product of dims.
func NewFloatArray(dims []int, data []float64) (*Array, error) {
	if err := checkDims(dims, len(data)); err != nil {
		return nil, err
	}
	d := make([]int, len(dims))
	copy(d, dims)
	cp := make([]float64, len(data))
	copy(cp, data)
	return &Array{dims: d, elem: KindFloat, floats: cp}, nil
}

func checkDims(dims []int, n int) error {
	want := 1
	for _, d := range dims {
		if d < 0 {
			return fmt.Errorf("negative dimension %d", d)
		}
		want *= d
	}
	if len(dims) == 0 {
		return fmt.Errorf("array needs at least one dimension")
	}
	if want != n {
		return fmt.Errorf("dims %v require %d elements, got %d", dims, want, n)
	}
	return nil
}

// Dims returns the dimension sizes in host order.
func (a *Array) Dims() []int {
	d := make([]int, len(a.dims))
	copy(d, a.dims)
	return d
}

// Elem returns the element type: KindInt or KindFloat.
func (a *Array) Elem() Kind {
	return a.elem
}

// Len returns the total element count.
func (a *Array) Len() int {
	if a.elem == KindInt {
		return len(a.ints)
	}
	return len(a.floats)
}

// Ints returns the flat integer data. Valid only when Elem() == KindInt.
func (a *Array) Ints() []int64 {
	return a.ints
}

// Floats returns the flat float data. Valid only when Elem() == KindFloat.
func (a *Array) Floats() []float64 {
	return a.floats
}

// offset computes the flat row-major offset for a zero-based index vector.
func (a *Array) offset(idx []int) (int, bool) {
	if len(idx) != len(a.dims) {
		return 0, false
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.dims[i] {
			return 0, false
		}
		off = off*a.dims[i] + x
	}
	return off, true
}

// IntAt returns the element at a zero-based index vector.
func (a *Array) IntAt(idx ...int) (int64, bool) {
	if a.elem != KindInt {
		return 0, false
	}
	off, ok := a.offset(idx)
	if !ok {
		return 0, false
	}
	return a.ints[off], true
}

// FloatAt returns the element at a zero-based index vector.
func (a *Array) FloatAt(idx ...int) (float64, bool) {
	if a.elem != KindFloat {
		return 0, false
	}
	off, ok := a.offset(idx)
	if !ok {
		return 0, false
	}
	return a.floats[off], true
}

// Equal reports whether two arrays have identical dims, element type, and
// data.
func (a *Array) Equal(o *Array) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.elem != o.elem || len(a.dims) != len(o.dims) {
		return false
	}
	for i := range a.dims {
		if a.dims[i] != o.dims[i] {
			return false
		}
	}
	switch a.elem {
	case KindInt:
		for i := range a.ints {
			if a.ints[i] != o.ints[i] {
				return false
			}
		}
	case KindFloat:
		for i := range a.floats {
			if a.floats[i] != o.floats[i] {
				return false
			}
		}
	}
	return true
}
