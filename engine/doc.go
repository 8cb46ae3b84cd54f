// Package engine implements the reference in-process foreign runtime the
// bridge dispatches into.
//
// The engine owns everything foreign-side: the function registry, the
// object table, attribute storage, and the scoped-context protocol. Hosts
// never touch these directly; they go through a runtime.Session, which
// marshals every value at the boundary.
//
// Foreign functions operate purely on foreign values:
//
//	eng := engine.New()
//	eng.Register("matmul", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
//	    a, _ := call.Arg(0).Array()
//	    b, _ := call.Arg(1).Array()
//	    ...
//	})
//
// Objects created with NewObject cross the boundary as opaque handles.
// Their attributes and methods are reachable only through dispatch, which
// is what makes host-side references non-owning: a stale host copy cannot
// exist because there is no host copy.
//
// Errors raised inside foreign functions pass through the bridge opaque
// and uninterpreted, wrapped as call/foreign errors.
package engine
