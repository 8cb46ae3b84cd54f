package marshal

import (
	"github.com/wippyai/runtime-bridge/foreign"
)

// std is the shared default marshaller for plain data conversion. It has
// no object wrapper or key check; sessions carry their own marshaller.
var std = New()

// ToForeign converts with the default marshaller.
func ToForeign(v any, hints ...Hint) (foreign.Value, error) {
	return std.ToForeign(v, hints...)
}

// ToHost converts with the default marshaller.
func ToHost(fv foreign.Value) (any, error) {
	return std.ToHost(fv)
}

// ForcedSeq builds a never-collapsed sequence with the default marshaller.
func ForcedSeq(elems ...any) (foreign.Value, error) {
	return std.ForcedSeq(elems...)
}

// IdentityDict builds a handle-keyed mapping with the default marshaller.
func IdentityDict(entries ...IdentityEntry) (foreign.Value, error) {
	return std.IdentityDict(entries...)
}
