package runtimebridge

import (
	"context"

	"github.com/wippyai/runtime-bridge/foreign"
)

// Dispatcher is the synchronous call boundary into an embedded foreign
// runtime. Every crossing is a blocking round-trip: the host call runs
// foreign-side to completion before the caller resumes.
//
// Arguments and results are already in foreign representation; value
// conversion happens before Invoke in the marshal package.
type Dispatcher interface {
	// Invoke calls a named foreign function with positional arguments.
	Invoke(ctx context.Context, name string, args []foreign.Value) (foreign.Value, error)

	// InvokeMethod calls a method on a foreign object. recv must be an
	// object value holding a live handle.
	InvokeMethod(ctx context.Context, recv foreign.Value, name string, args []foreign.Value) (foreign.Value, error)

	// Attr reads an attribute of a foreign object.
	Attr(ctx context.Context, recv foreign.Value, name string) (foreign.Value, error)
}

// ContextManager is implemented by dispatchers whose objects support the
// foreign runtime's scoped-execution protocol. EnterContext returns the
// value bound to the scope alias; ExitContext runs the foreign-side
// cleanup.
type ContextManager interface {
	EnterContext(ctx context.Context, cv foreign.Value) (foreign.Value, error)
	ExitContext(ctx context.Context, cv foreign.Value) error
}

// Closer releases an embedded runtime and everything it owns.
type Closer interface {
	Close(ctx context.Context) error
}
