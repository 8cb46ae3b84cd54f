package marshal

import (
	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

// ToHost converts a foreign value back to a host value: the inverse of
// the ToForeign rule table.
//
// Homogeneous scalar sequences come back as typed slices ([]int64,
// []float64, []bool, []string); tuples and mixed sequences as []any.
// String-keyed mappings come back as map[string]any: pair content
// round-trips, pair order does not survive the Go map representation
// (the foreign-side value keeps it).
//
// Opaque objects convert to a non-owning reference, not a deep copy:
// with an ObjectWrapper installed the wrapper's host type, otherwise the
// foreign value itself. Either form re-dispatches to the runtime on use.
func (m *Marshaller) ToHost(fv foreign.Value) (any, error) {
	switch fv.Kind() {
	case foreign.KindNone:
		return nil, nil
	case foreign.KindBool:
		b, _ := fv.Bool()
		return b, nil
	case foreign.KindInt:
		i, _ := fv.Int()
		return i, nil
	case foreign.KindFloat:
		f, _ := fv.Float()
		return f, nil
	case foreign.KindStr:
		s, _ := fv.Str()
		return s, nil

	case foreign.KindSeq:
		elems, _ := fv.Elems()
		return m.seqToHost(elems)

	case foreign.KindTuple:
		elems, _ := fv.Elems()
		out := make([]any, len(elems))
		for i, e := range elems {
			hv, err := m.ToHost(e)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil

	case foreign.KindDict:
		pairs, _ := fv.Pairs()
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			hv, err := m.ToHost(p.Val)
			if err != nil {
				return nil, err
			}
			out[p.Key] = hv
		}
		return out, nil

	case foreign.KindIdentityDict:
		pairs, _ := fv.ObjPairs()
		out := make(map[handle.Handle]any, len(pairs))
		for _, p := range pairs {
			hv, err := m.ToHost(p.Val)
			if err != nil {
				return nil, err
			}
			out[p.Key] = hv
		}
		return out, nil

	case foreign.KindArray:
		arr, _ := fv.Array()
		return arr, nil

	case foreign.KindObject:
		h, _ := fv.Handle()
		if m.objects != nil {
			return m.objects.Wrap(h), nil
		}
		return fv, nil
	}

	return nil, errors.New(errors.PhaseUnmarshal, errors.KindTypeMismatch).
		ForeignType(fv.Kind().String()).
		Detail("no host conversion rule").
		Build()
}

// seqToHost narrows a homogeneous scalar sequence to a typed slice.
func (m *Marshaller) seqToHost(elems []foreign.Value) (any, error) {
	if len(elems) > 0 {
		switch elems[0].Kind() {
		case foreign.KindInt:
			out := make([]int64, 0, len(elems))
			for _, e := range elems {
				i, ok := e.Int()
				if !ok {
					return m.seqToAny(elems)
				}
				out = append(out, i)
			}
			return out, nil
		case foreign.KindFloat:
			out := make([]float64, 0, len(elems))
			for _, e := range elems {
				f, ok := e.Float()
				if !ok {
					return m.seqToAny(elems)
				}
				out = append(out, f)
			}
			return out, nil
		case foreign.KindBool:
			out := make([]bool, 0, len(elems))
			for _, e := range elems {
				b, ok := e.Bool()
				if !ok {
					return m.seqToAny(elems)
				}
				out = append(out, b)
			}
			return out, nil
		case foreign.KindStr:
			out := make([]string, 0, len(elems))
			for _, e := range elems {
				s, ok := e.Str()
				if !ok {
					return m.seqToAny(elems)
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return m.seqToAny(elems)
}

func (m *Marshaller) seqToAny(elems []foreign.Value) (any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		hv, err := m.ToHost(e)
		if err != nil {
			return nil, err
		}
		out[i] = hv
	}
	return out, nil
}
