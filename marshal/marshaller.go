package marshal

import (
	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

// Options tune marshaller behavior.
type Options struct {
	// SortMapKeys controls Go map inputs. Go maps carry no insertion
	// order, so by default keys are sorted for a deterministic foreign
	// mapping. When false, map inputs are rejected and callers must build
	// mappings with explicit pair order (foreign.NewDict).
	SortMapKeys bool

	// MaxDepth bounds container nesting, guarding against reference
	// cycles through []any.
	MaxDepth int
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		SortMapKeys: true,
		MaxDepth:    64,
	}
}

// ObjectWrapper converts opaque handles to host-side reference wrappers
// and back. The runtime package installs one that produces re-dispatching
// object references.
type ObjectWrapper interface {
	Wrap(h handle.Handle) any
	Unwrap(v any) (handle.Handle, bool)
}

// Marshaller converts values at the call boundary. The zero-configuration
// form (New) covers plain data; sessions attach an ObjectWrapper and a
// key check for handle-keyed mappings.
type Marshaller struct {
	objects  ObjectWrapper
	keyCheck func(handle.Handle) bool
	opts     Options
}

// New creates a marshaller with DefaultOptions.
func New() *Marshaller {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a marshaller with explicit options.
func NewWithOptions(opts Options) *Marshaller {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	return &Marshaller{opts: opts}
}

// SetObjectWrapper installs the handle <-> host wrapper conversion.
func (m *Marshaller) SetObjectWrapper(w ObjectWrapper) {
	m.objects = w
}

// SetKeyCheck installs a liveness predicate for identity-mapping keys.
// Without one, any non-zero handle is accepted.
func (m *Marshaller) SetKeyCheck(fn func(handle.Handle) bool) {
	m.keyCheck = fn
}

// ToForeign converts a host value to its foreign representation, applying
// the default rule table unless hints override it. Hints apply to the
// top-level value only.
func (m *Marshaller) ToForeign(v any, hints ...Hint) (foreign.Value, error) {
	hs, err := parseHints(hints)
	if err != nil {
		return foreign.None, err
	}

	fv, err := m.convert(v, 0, nil, hs.seq)
	if err != nil {
		return foreign.None, err
	}

	return m.applyHints(fv, hs, v)
}

func parseHints(hints []Hint) (hintSet, error) {
	var hs hintSet
	for _, h := range hints {
		switch h {
		case HintSeq:
			hs.seq = true
		case HintScalar:
			hs.scalar = true
		case HintInt:
			hs.integr = true
		case HintFloat:
			hs.flt = true
		default:
			return hs, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
				Detail("unknown hint %d", h).
				Build()
		}
	}
	if hs.seq && hs.scalar {
		return hs, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
			Detail("hints seq and scalar are mutually exclusive").
			Build()
	}
	if hs.integr && hs.flt {
		return hs, errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
			Detail("hints int and float are mutually exclusive").
			Build()
	}
	return hs, nil
}

// applyHints validates and reshapes the converted value against the hint
// set. Shape hints may wrap; numeric hints only assert.
func (m *Marshaller) applyHints(fv foreign.Value, hs hintSet, orig any) (foreign.Value, error) {
	if !hs.any() {
		return fv, nil
	}

	if hs.seq {
		switch fv.Kind() {
		case foreign.KindSeq:
			// convert was told to preserve; nothing to do
		case foreign.KindTuple:
			// forcing an ordered group into sequence form keeps elements
			// and order; only the container tag changes
			elems, _ := fv.Elems()
			fv = foreign.NewSeq(elems...)
		case foreign.KindNone, foreign.KindBool, foreign.KindInt, foreign.KindFloat, foreign.KindStr:
			fv = foreign.NewSeq(fv)
		default:
			return foreign.None, errors.HintConflict(nil, HintSeq.String(), hostTypeName(orig))
		}
	}

	if hs.scalar {
		if !fv.Kind().IsScalar() && fv.Kind() != foreign.KindNone {
			return foreign.None, errors.HintConflict(nil, HintScalar.String(), hostTypeName(orig))
		}
	}

	if hs.integr {
		if err := checkNumeric(fv, foreign.KindInt, orig); err != nil {
			return foreign.None, err
		}
	}
	if hs.flt {
		if err := checkNumeric(fv, foreign.KindFloat, orig); err != nil {
			return foreign.None, err
		}
	}

	return fv, nil
}

// checkNumeric walks the value and requires every numeric leaf to have
// the wanted kind. No coercion: an int under HintFloat fails exactly like
// a float under HintInt.
func checkNumeric(fv foreign.Value, want foreign.Kind, orig any) error {
	var bad foreign.Kind
	switch want {
	case foreign.KindInt:
		bad = foreign.KindFloat
	default:
		bad = foreign.KindInt
	}

	var walk func(v foreign.Value) error
	walk = func(v foreign.Value) error {
		switch v.Kind() {
		case bad:
			hint := HintInt
			if want == foreign.KindFloat {
				hint = HintFloat
			}
			return errors.HintConflict(nil, hint.String(), hostTypeName(orig))
		case foreign.KindSeq, foreign.KindTuple:
			elems, _ := v.Elems()
			for _, e := range elems {
				if err := walk(e); err != nil {
					return err
				}
			}
		case foreign.KindDict:
			pairs, _ := v.Pairs()
			for _, p := range pairs {
				if err := walk(p.Val); err != nil {
					return err
				}
			}
		case foreign.KindIdentityDict:
			pairs, _ := v.ObjPairs()
			for _, p := range pairs {
				if err := walk(p.Val); err != nil {
					return err
				}
			}
		case foreign.KindArray:
			arr, _ := v.Array()
			if arr.Elem() == bad {
				hint := HintInt
				if want == foreign.KindFloat {
					hint = HintFloat
				}
				return errors.HintConflict(nil, hint.String(), hostTypeName(orig))
			}
		}
		return nil
	}
	return walk(fv)
}
