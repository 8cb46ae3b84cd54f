package marshal

import (
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

func hostTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// convert is the rule table. preserveSeq suppresses the single-element
// collapse at this level only; recursion always resets it.
func (m *Marshaller) convert(v any, depth int, path []string, preserveSeq bool) (foreign.Value, error) {
	if depth > m.opts.MaxDepth {
		return foreign.None, errors.InvalidData(errors.PhaseMarshal, path, "nesting exceeds max depth")
	}

	// Rule 5: sentinels, plus passthrough for already-foreign values.
	switch x := v.(type) {
	case nil:
		return foreign.None, nil
	case foreign.Value:
		return x, nil
	case *foreign.Array:
		return foreign.NewArrayValue(x), nil
	case handle.Handle:
		return foreign.Obj(x), nil
	case bool:
		return foreign.Bool(x), nil
	case string:
		return foreign.Str(x), nil
	case int:
		return foreign.Int(int64(x)), nil
	case int64:
		return foreign.Int(x), nil
	case float64:
		return foreign.Float(x), nil
	}

	// Host-side object reference wrappers re-enter as opaque handles.
	if m.objects != nil {
		if h, ok := m.objects.Unwrap(v); ok {
			return foreign.Obj(h), nil
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return foreign.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return foreign.None, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
				Path(path...).
				HostType(hostTypeName(v)).
				Value(v).
				Detail("unsigned value %d overflows the foreign integer range", u).
				Build()
		}
		return foreign.Int(int64(u)), nil
	case reflect.Float32:
		return foreign.Float(rv.Float()), nil

	case reflect.Slice, reflect.Array:
		// Rule 6: typed rectangular numeric grids.
		if isGridType(rv.Type()) {
			return m.convertGrid(rv, path)
		}
		return m.convertList(rv, depth, path, preserveSeq)

	case reflect.Map:
		return m.convertMap(rv, depth, path)

	case reflect.Pointer:
		if rv.IsNil() {
			return foreign.None, nil
		}
		return m.convert(rv.Elem().Interface(), depth, path, preserveSeq)
	}

	return foreign.None, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
		Path(path...).
		HostType(hostTypeName(v)).
		Value(v).
		Detail("no conversion rule for host type").
		Build()
}

// convertList applies rules 1-3 to a flat slice.
func (m *Marshaller) convertList(rv reflect.Value, depth int, path []string, preserveSeq bool) (foreign.Value, error) {
	n := rv.Len()
	elems := make([]foreign.Value, n)
	for i := 0; i < n; i++ {
		ev, err := m.convert(rv.Index(i).Interface(), depth+1, appendPath(path, i), false)
		if err != nil {
			return foreign.None, err
		}
		elems[i] = ev
	}

	// Rule 1: single scalar element collapses unless preserved.
	if n == 1 && !preserveSeq && elems[0].Kind().IsScalar() {
		return elems[0], nil
	}

	// Rules 2 and 3: homogeneous kinds stay a sequence, mixed kinds
	// become a fixed-order tuple.
	if homogeneous(elems) {
		return foreign.NewSeq(elems...), nil
	}
	return foreign.NewTuple(elems...), nil
}

func homogeneous(elems []foreign.Value) bool {
	if len(elems) == 0 {
		return true
	}
	first := elems[0].Kind()
	for _, e := range elems[1:] {
		if e.Kind() != first {
			return false
		}
	}
	return true
}

// convertMap applies rule 4. Go maps are unordered, so keys are sorted
// for a deterministic foreign mapping; with SortMapKeys off the caller
// must state pair order explicitly via foreign.NewDict.
func (m *Marshaller) convertMap(rv reflect.Value, depth int, path []string) (foreign.Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return foreign.None, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
			Path(path...).
			HostType(rv.Type().String()).
			Detail("mapping keys must be strings; use IdentityDict for handle-keyed mappings").
			Build()
	}
	if !m.opts.SortMapKeys {
		return foreign.None, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
			Path(path...).
			HostType(rv.Type().String()).
			Detail("map inputs disabled (SortMapKeys=false); build ordered mappings with foreign.NewDict").
			Build()
	}

	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	pairs := make([]foreign.Pair, 0, len(keys))
	for _, k := range keys {
		ev, err := m.convert(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface(), depth+1, append(path, k), false)
		if err != nil {
			return foreign.None, err
		}
		pairs = append(pairs, foreign.Pair{Key: k, Val: ev})
	}
	return foreign.NewDict(pairs...), nil
}

func appendPath(path []string, i int) []string {
	return append(path, strconv.Itoa(i))
}
