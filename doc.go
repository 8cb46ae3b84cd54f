// Package runtimebridge provides an in-process bridge between Go and an
// embedded dynamic foreign runtime.
//
// The bridge converts values crossing the language boundary in both
// directions, preserving type intent that the foreign runtime's dynamic
// type system cannot infer from Go's type system alone: scalar vs.
// sequence, integer vs. float, ordered tuple vs. keyed mapping.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	runtimebridge/       Root package with the Dispatcher call boundary
//	├── runtime/         High-level API: sessions, calls, object references
//	├── engine/          Reference in-process foreign runtime
//	├── marshal/         Value conversion between Go and foreign values
//	├── foreign/         Foreign value model (tagged dynamic values)
//	├── handle/          Opaque handle table for foreign-owned objects
//	├── scope/           Scoped execution contexts (LIFO enter/exit)
//	├── errors/          Structured error types for debugging
//	└── config/          Bridge options loaded from TOML
//
// # Quick Start
//
// Open a session against an engine and call a foreign function:
//
//	eng := engine.New()
//	eng.Register("add", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
//	    a, _ := call.Arg(0).Int()
//	    b, _ := call.Arg(1).Int()
//	    return foreign.Int(a + b), nil
//	})
//
//	sess, err := runtime.New(ctx, eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close(ctx)
//
//	result, err := sess.Call(ctx, "add", 1, 2)
//	fmt.Println(result) // 3
//
// # Conversion Rules
//
// Without hints, marshal.ToForeign applies a fixed rule table in priority
// order: single-element homogeneous slices collapse to scalars, longer
// homogeneous slices become sequences, mixed []any become tuples,
// map[string]any becomes a string-keyed mapping, nil and bool map to the
// runtime's None/True/False sentinels, and rectangular numeric grids become
// multi-dimensional arrays. Hints (marshal.HintSeq, marshal.HintInt, ...)
// override the defaults; a hint that conflicts with the value shape is a
// type mismatch error, never a silent coercion.
//
// # Index Bases
//
// The bridge never reinterprets index values. Foreign APIs are zero-based;
// a caller working in one-based terms must translate indices before they
// cross the boundary. This is a caller contract, not bridge behavior.
//
// # Thread Safety
//
// Engine is safe for concurrent registration before the first session
// opens. Session is NOT thread-safe and must be used by a single goroutine;
// scoped contexts in particular assume one scope stack per session.
//
// # Handle Ownership
//
// Foreign objects are owned by the engine. The host holds non-owning
// references that re-dispatch on every access; mutating through a
// reference requires a round-trip call, never a cached host copy.
package runtimebridge
