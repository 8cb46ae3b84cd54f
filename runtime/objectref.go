package runtime

import (
	"context"
	"fmt"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

// ObjectRef is a non-owning host reference to a foreign-runtime-owned
// object. Every access re-dispatches across the boundary; there is no
// cached host copy, so foreign-side mutation is always observed and host
// code can never operate on stale state.
//
// The foreign runtime owns the object's lifetime. A ref does not keep the
// object alive; using a ref after the foreign side drops the object is a
// not_found error.
type ObjectRef struct {
	sess *Session
	h    handle.Handle
}

// refWrapper plugs ObjectRef into the marshaller's object seam.
type refWrapper struct {
	sess *Session
}

func (w refWrapper) Wrap(h handle.Handle) any {
	return &ObjectRef{sess: w.sess, h: h}
}

func (w refWrapper) Unwrap(v any) (handle.Handle, bool) {
	if r, ok := v.(*ObjectRef); ok {
		return r.h, true
	}
	return handle.None, false
}

// Handle returns the opaque handle this ref points at.
func (r *ObjectRef) Handle() handle.Handle {
	return r.h
}

// Foreign returns the ref in foreign representation, for passing back
// across the boundary.
func (r *ObjectRef) Foreign() foreign.Value {
	return foreign.Obj(r.h)
}

// Call invokes a method on the foreign object.
func (r *ObjectRef) Call(ctx context.Context, method string, args ...any) (any, error) {
	if r.sess.closed {
		return nil, errors.Closed(errors.PhaseCall, "session closed")
	}

	fargs, err := r.sess.marshalArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := r.sess.dispatcher.InvokeMethod(ctx, r.Foreign(), method, fargs)
	if err != nil {
		return nil, err
	}
	return r.sess.marshaller.ToHost(result)
}

// Get reads an attribute of the foreign object. Each call is a fresh
// round-trip.
func (r *ObjectRef) Get(ctx context.Context, attr string) (any, error) {
	if r.sess.closed {
		return nil, errors.Closed(errors.PhaseCall, "session closed")
	}

	result, err := r.sess.dispatcher.Attr(ctx, r.Foreign(), attr)
	if err != nil {
		return nil, err
	}
	return r.sess.marshaller.ToHost(result)
}

func (r *ObjectRef) String() string {
	return fmt.Sprintf("<object %d>", r.h)
}
