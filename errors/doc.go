// Package errors provides structured error types for the runtime-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, host/foreign type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
//		Path("args", "0").
//		HostType("float64").
//		ForeignType("int").
//		Detail("structural parameter requires an integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseMarshal, path, "float64", "int")
//	err := errors.InvalidKey(errors.PhaseMarshal, path, "key is not a live object handle")
//
// Conversion errors are raised synchronously, before any foreign call
// executes, so a malformed argument never partially executes foreign-side.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
