package foreign

import (
	"github.com/wippyai/runtime-bridge/handle"
)

// Value is a foreign-runtime value as seen from the host side.
//
// Values are immutable once constructed. Container constructors copy their
// inputs, so later mutation of the source slice does not leak into the
// value.
type Value struct {
	arr    *Array
	s      string
	elems  []Value
	pairs  []Pair
	ipairs []ObjPair
	i      int64
	f      float64
	obj    handle.Handle
	kind   Kind
	b      bool
}

// Pair is one entry of a string-keyed mapping. Insertion order is part of
// the representation and is preserved through round-trips.
type Pair struct {
	Key string
	Val Value
}

// ObjPair is one entry of an identity-keyed mapping. The key is an opaque
// handle compared by foreign-runtime identity, not by host value equality.
type ObjPair struct {
	Val Value
	Key handle.Handle
}

// Sentinels. None is the runtime's absence value; True and False are its
// boolean sentinels. The zero Value is None.
var (
	None  = Value{kind: KindNone}
	True  = Value{kind: KindBool, b: true}
	False = Value{kind: KindBool, b: false}
)

// Bool returns the boolean sentinel for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Int returns an integer scalar.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating-point scalar.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Str returns a string scalar.
func Str(s string) Value {
	return Value{kind: KindStr, s: s}
}

// NewSeq returns an ordered sequence of the given elements. A sequence of
// length 0 or 1 stays a sequence; collapse decisions belong to the
// marshaller, not the representation.
func NewSeq(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindSeq, elems: cp}
}

// NewTuple returns a fixed-order heterogeneous group. Order is significant
// and preserved exactly.
func NewTuple(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindTuple, elems: cp}
}

// NewDict returns a string-keyed mapping. Insertion order is preserved.
// A duplicate key overwrites the earlier value but keeps the original
// position, matching the foreign runtime's dict semantics.
func NewDict(pairs ...Pair) Value {
	out := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if at, ok := index[p.Key]; ok {
			out[at].Val = p.Val
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindDict, pairs: out}
}

// NewIdentityDict returns a mapping keyed by opaque handles. Duplicate
// handles overwrite in insertion order (last write wins); the result holds
// one entry per distinct handle.
func NewIdentityDict(pairs ...ObjPair) Value {
	out := make([]ObjPair, 0, len(pairs))
	index := make(map[handle.Handle]int, len(pairs))
	for _, p := range pairs {
		if at, ok := index[p.Key]; ok {
			out[at].Val = p.Val
			continue
		}
		index[p.Key] = len(out)
		out = append(out, p)
	}
	return Value{kind: KindIdentityDict, ipairs: out}
}

// NewArrayValue wraps a multi-dimensional numeric array.
func NewArrayValue(a *Array) Value {
	return Value{kind: KindArray, arr: a}
}

// Obj returns a non-owning reference to a foreign-runtime-owned object.
func Obj(h handle.Handle) Value {
	return Value{kind: KindObject, obj: h}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone reports whether the value is the absence sentinel.
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int returns the integer payload.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the floating-point payload.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindStr
}

// Len returns the element or entry count for containers, the byte length
// for strings, and -1 for scalars and objects.
func (v Value) Len() int {
	switch v.kind {
	case KindSeq, KindTuple:
		return len(v.elems)
	case KindDict:
		return len(v.pairs)
	case KindIdentityDict:
		return len(v.ipairs)
	case KindStr:
		return len(v.s)
	case KindArray:
		return v.arr.Len()
	default:
		return -1
	}
}

// Elems returns the elements of a sequence or tuple.
func (v Value) Elems() ([]Value, bool) {
	if v.kind != KindSeq && v.kind != KindTuple {
		return nil, false
	}
	return v.elems, true
}

// Index returns element i of a sequence or tuple. Indices are zero-based;
// callers working in one-based terms translate before calling.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSeq && v.kind != KindTuple {
		return None, false
	}
	if i < 0 || i >= len(v.elems) {
		return None, false
	}
	return v.elems[i], true
}

// Pairs returns the entries of a string-keyed mapping in insertion order.
func (v Value) Pairs() ([]Pair, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.pairs, true
}

// Lookup returns the value for a string key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindDict {
		return None, false
	}
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Val, true
		}
	}
	return None, false
}

// ObjPairs returns the entries of an identity-keyed mapping in insertion
// order.
func (v Value) ObjPairs() ([]ObjPair, bool) {
	if v.kind != KindIdentityDict {
		return nil, false
	}
	return v.ipairs, true
}

// LookupObj returns the value stored under a handle key.
func (v Value) LookupObj(h handle.Handle) (Value, bool) {
	if v.kind != KindIdentityDict {
		return None, false
	}
	for _, p := range v.ipairs {
		if p.Key == h {
			return p.Val, true
		}
	}
	return None, false
}

// Array returns the numeric array payload.
func (v Value) Array() (*Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Handle returns the opaque object handle.
func (v Value) Handle() (handle.Handle, bool) {
	if v.kind != KindObject {
		return handle.None, false
	}
	return v.obj, true
}

// Equal reports deep structural equality. Objects compare by handle
// identity; floats compare exactly.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindStr:
		return v.s == o.s
	case KindSeq, KindTuple:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.pairs) != len(o.pairs) {
			return false
		}
		for i := range v.pairs {
			if v.pairs[i].Key != o.pairs[i].Key || !v.pairs[i].Val.Equal(o.pairs[i].Val) {
				return false
			}
		}
		return true
	case KindIdentityDict:
		if len(v.ipairs) != len(o.ipairs) {
			return false
		}
		for i := range v.ipairs {
			if v.ipairs[i].Key != o.ipairs[i].Key || !v.ipairs[i].Val.Equal(o.ipairs[i].Val) {
				return false
			}
		}
		return true
	case KindArray:
		return v.arr.Equal(o.arr)
	case KindObject:
		return v.obj == o.obj
	default:
		return false
	}
}
