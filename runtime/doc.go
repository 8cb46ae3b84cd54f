// Package runtime provides the high-level API for talking to an embedded
// foreign runtime: sessions, calls, object references, and scoped
// execution contexts.
//
// # Sessions
//
// A Session binds a dispatcher, a marshaller, and a scope stack into one
// explicit handle. Nothing is ambient: the session is passed where it is
// needed, which keeps shared mutable state out of the design.
//
//	sess, err := runtime.New(ctx, eng)
//	defer sess.Close(ctx)
//
//	result, err := sess.Call(ctx, "greet", "World")
//
// # Call Model
//
// Every boundary crossing is a blocking round-trip: arguments marshal,
// the foreign function runs to completion, the result unmarshals. All
// argument conversion happens before dispatch, so a malformed argument
// never partially executes a foreign call. The conversion layer adds no
// cancellation of its own; a long foreign call blocks until it returns.
//
// # Scoped Contexts
//
// With runs a block inside a foreign execution scope with the exit
// protocol guaranteed on every path out, and scopes nest LIFO:
//
//	err := sess.With(ctx, sessionObj, func(alias any) error {
//	    _, err := sess.Call(ctx, "run", ...)
//	    return err
//	})
//
// # Threading
//
// A Session is owned by a single goroutine. Scoped contexts are not
// reentrant across goroutines; concurrent use requires one session, and
// therefore one scope stack, per goroutine.
package runtime
