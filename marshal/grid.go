package marshal

import (
	"math"
	"reflect"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

// isGridType reports whether t is a typed nested numeric slice of depth
// two or more. Only typed grids take the array rule; []any nesting stays
// a sequence of sequences.
func isGridType(t reflect.Type) bool {
	depth := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
		depth++
	}
	if depth < 2 {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convertGrid marshals a rectangular numeric grid into a foreign array,
// preserving dimension order and element type. Ragged input is a type
// mismatch, never silently padded.
func (m *Marshaller) convertGrid(rv reflect.Value, path []string) (foreign.Value, error) {
	// nesting depth comes from the type, dimension sizes from the data
	t := rv.Type()
	ndims := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
		ndims++
	}

	isFloat := t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	isUint := t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uint64

	dims := make([]int, ndims)
	probe := rv
	for level := 0; level < ndims; level++ {
		dims[level] = probe.Len()
		if probe.Len() == 0 {
			break
		}
		probe = probe.Index(0)
	}

	var ints []int64
	var floats []float64

	var walk func(v reflect.Value, level int) error
	walk = func(v reflect.Value, level int) error {
		if level == ndims {
			if isFloat {
				floats = append(floats, v.Float())
				return nil
			}
			if isUint {
				u := v.Uint()
				if u > math.MaxInt64 {
					return errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
						Path(path...).
						HostType(rv.Type().String()).
						Detail("unsigned element %d overflows the foreign integer range", u).
						Build()
				}
				ints = append(ints, int64(u))
				return nil
			}
			ints = append(ints, v.Int())
			return nil
		}
		if v.Len() != dims[level] {
			return errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
				Path(path...).
				HostType(rv.Type().String()).
				Detail("ragged grid: length %d at depth %d, expected %d", v.Len(), level, dims[level]).
				Build()
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), level+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(rv, 0); err != nil {
		return foreign.None, err
	}

	var arr *foreign.Array
	var err error
	if isFloat {
		arr, err = foreign.NewFloatArray(dims, floats)
	} else {
		arr, err = foreign.NewIntArray(dims, ints)
	}
	if err != nil {
		return foreign.None, errors.New(errors.PhaseMarshal, errors.KindInvalidData).
			Path(path...).
			Cause(err).
			Detail("grid construction failed").
			Build()
	}
	return foreign.NewArrayValue(arr), nil
}
