// Package foreign defines the value model of the embedded foreign runtime.
//
// Every value crossing the language boundary is represented as a tagged
// Value: the absence/true/false sentinels, integer and float scalars,
// strings, ordered sequences, fixed-order tuples, string-keyed mappings,
// identity-keyed mappings, rectangular numeric arrays, and opaque object
// handles.
//
// The representation keeps distinctions the foreign runtime's dynamic type
// system needs but Go's type system alone cannot carry across an `any`
// boundary:
//
//   - integer vs. float is explicit in the kind tag, never inferred
//   - a one-element sequence is a different value than its element
//   - tuples preserve order exactly; dicts preserve insertion order
//   - identity-keyed mappings compare keys by object handle, not value
//
// Values are immutable. Opaque objects are held as non-owning handles into
// the engine's table; package foreign never dereferences them.
package foreign
