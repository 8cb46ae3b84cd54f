// Package marshal converts values crossing the boundary between Go and
// the embedded foreign runtime, in both directions.
//
// # Default Conversion Rules
//
// ToForeign applies a fixed rule table in priority order:
//
//  1. A single-element homogeneous slice whose element is a scalar
//     collapses to that scalar, unless HintSeq is given.
//  2. A multi-element homogeneous numeric/boolean/string slice becomes an
//     ordered sequence, in source order.
//  3. A mixed-type []any becomes a fixed-order tuple.
//  4. A string-keyed map becomes a string-keyed mapping.
//  5. nil and bool map to the runtime's None/True/False sentinels.
//  6. A rectangular typed numeric grid ([][]int64, [][][]float64, ...)
//     becomes a multi-dimensional array, preserving dimension order and
//     element type. Ragged grids are a type mismatch.
//
// Integer vs. float fidelity is load-bearing: foreign numeric APIs often
// require an exact integer for structural parameters (dimensions, counts,
// indices). The marshaller never coerces between the two; a float where an
// integer is required is a caller error, surfaced as type_mismatch.
//
// Nested []any values marshal as sequences or tuples, never as arrays;
// only typed nested slices take the grid rule. This keeps "list of lists"
// and "matrix" distinguishable at the boundary.
//
// # Escape Hatches
//
// ForcedSeq builds a sequence of exactly its N inputs for any N >= 0,
// bypassing the single-element collapse and allowing nil elements (shape
// declarations with unspecified dimensions):
//
//	shape, _ := marshal.ForcedSeq(nil, 784) // [None, 784]
//
// IdentityDict builds a mapping keyed by opaque object handles, compared
// by foreign-runtime identity. Duplicate handles overwrite in insertion
// order; a key that is not a live handle is an invalid_key error.
//
// # Index Bases
//
// The marshaller never reinterprets index values. Callers working in
// one-based terms translate to zero-based before ToForeign.
//
// # Errors
//
// All failures are raised synchronously at the point of conversion, before
// any foreign call executes: type_mismatch when a value or hint has no
// valid conversion, invalid_key for bad identity-mapping keys.
package marshal
