package marshal

import (
	"strconv"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

// ForcedSeq builds a foreign sequence of exactly len(elems) elements,
// bypassing the single-element collapse. nil elements become None, which
// is what shape declarations with unspecified dimensions need:
//
//	shape, _ := m.ForcedSeq(nil, 784) // [None, 784]
//
// The guarantee holds for every N >= 0, including N = 1 and N = 0.
func (m *Marshaller) ForcedSeq(elems ...any) (foreign.Value, error) {
	out := make([]foreign.Value, len(elems))
	for i, e := range elems {
		fv, err := m.convert(e, 1, []string{strconv.Itoa(i)}, true)
		if err != nil {
			return foreign.None, err
		}
		out[i] = fv
	}
	return foreign.NewSeq(out...), nil
}

// IdentityEntry is one key/value input to IdentityDict. The key must
// resolve to a live foreign object handle: a handle.Handle, a foreign
// object value, or a host reference wrapper.
type IdentityEntry struct {
	Key any
	Val any
}

// IdentityDict builds a mapping keyed by opaque foreign handles for
// binding runtime placeholder references to concrete values. Keys compare
// by foreign-runtime identity; duplicate handles overwrite in insertion
// order, so the result holds one entry per distinct handle with its last
// value.
func (m *Marshaller) IdentityDict(entries ...IdentityEntry) (foreign.Value, error) {
	pairs := make([]foreign.ObjPair, 0, len(entries))
	for i, e := range entries {
		h, err := m.resolveKey(e.Key, i)
		if err != nil {
			return foreign.None, err
		}

		fv, err := m.convert(e.Val, 1, []string{strconv.Itoa(i)}, false)
		if err != nil {
			return foreign.None, err
		}
		pairs = append(pairs, foreign.ObjPair{Key: h, Val: fv})
	}
	return foreign.NewIdentityDict(pairs...), nil
}

func (m *Marshaller) resolveKey(key any, i int) (handle.Handle, error) {
	path := []string{strconv.Itoa(i)}

	var h handle.Handle
	switch k := key.(type) {
	case handle.Handle:
		h = k
	case foreign.Value:
		obj, ok := k.Handle()
		if !ok {
			return handle.None, errors.InvalidKey(errors.PhaseMarshal, path,
				"key is a "+k.Kind().String()+" value, not an object handle")
		}
		h = obj
	default:
		if m.objects != nil {
			if obj, ok := m.objects.Unwrap(key); ok {
				h = obj
				break
			}
		}
		return handle.None, errors.InvalidKey(errors.PhaseMarshal, path,
			"key of host type "+hostTypeName(key)+" is not an object handle")
	}

	if h == handle.None {
		return handle.None, errors.InvalidKey(errors.PhaseMarshal, path, "key handle is invalid")
	}
	if m.keyCheck != nil && !m.keyCheck(h) {
		return handle.None, errors.InvalidKey(errors.PhaseMarshal, path,
			"key handle "+strconv.FormatUint(uint64(h), 10)+" is not live")
	}
	return h, nil
}
