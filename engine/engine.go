package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
)

// ObjectTypeID tags engine objects in the handle table.
const ObjectTypeID uint32 = 1

// Func is a foreign function. Arguments arrive already in foreign
// representation; the function never sees host values.
type Func func(ctx context.Context, call *Call) (foreign.Value, error)

// Engine is the reference in-process foreign runtime: a registry of
// foreign functions plus a table of engine-owned objects. It implements
// runtimebridge.Dispatcher, ContextManager and Closer.
//
// Registration is safe for concurrent use; dispatch follows the
// single-threaded session model.
type Engine struct {
	funcs   map[string]Func
	objects *handle.Table
	mu      sync.RWMutex
	closed  bool
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		funcs:   make(map[string]Func),
		objects: handle.NewTable(),
	}
}

// Register adds a foreign function under name. Registering the same name
// twice is an error.
func (e *Engine) Register(name string, fn Func) error {
	if fn == nil {
		return errors.New(errors.PhaseRegister, errors.KindRegistration).
			Detail("nil function for %q", name).
			Build()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errors.Closed(errors.PhaseRegister, "engine closed")
	}
	if _, dup := e.funcs[name]; dup {
		return errors.New(errors.PhaseRegister, errors.KindRegistration).
			Detail("function %q already registered", name).
			Build()
	}
	e.funcs[name] = fn

	Logger().Debug("registered foreign function", zap.String("name", name))
	return nil
}

// MustRegister is Register that panics on error, for static setup code.
func (e *Engine) MustRegister(name string, fn Func) {
	if err := e.Register(name, fn); err != nil {
		panic(err)
	}
}

// NewObject stores an engine-owned object and returns its foreign value.
// The host receives only the opaque handle.
func (e *Engine) NewObject(obj *Object) (foreign.Value, error) {
	h := e.objects.Insert(ObjectTypeID, obj)
	if h == handle.None {
		return foreign.None, errors.Closed(errors.PhaseCall, "engine closed")
	}
	return foreign.Obj(h), nil
}

// Objects exposes the handle table, for liveness checks and lifecycle
// observation.
func (e *Engine) Objects() *handle.Table {
	return e.objects
}

// Invoke calls a named foreign function. A failure inside the function is
// an opaque foreign error; the bridge does not interpret it.
func (e *Engine) Invoke(ctx context.Context, name string, args []foreign.Value) (foreign.Value, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return foreign.None, errors.Closed(errors.PhaseCall, "engine closed")
	}
	fn, ok := e.funcs[name]
	e.mu.RUnlock()

	if !ok {
		return foreign.None, errors.NotFound(errors.PhaseCall, "foreign function "+name)
	}

	Logger().Debug("invoke",
		zap.String("func", name),
		zap.Int("args", len(args)))

	result, err := fn(ctx, &Call{eng: e, Name: name, args: args})
	if err != nil {
		if _, structured := err.(*errors.Error); structured {
			return foreign.None, err
		}
		return foreign.None, errors.Foreign(err, "in "+name)
	}
	return result, nil
}

// InvokeMethod calls a method on an engine-owned object.
func (e *Engine) InvokeMethod(ctx context.Context, recv foreign.Value, name string, args []foreign.Value) (foreign.Value, error) {
	obj, err := e.deref(recv)
	if err != nil {
		return foreign.None, err
	}

	m, ok := obj.Methods[name]
	if !ok {
		return foreign.None, errors.NotFound(errors.PhaseCall, "method "+name+" on "+obj.Class)
	}

	Logger().Debug("invoke method",
		zap.String("class", obj.Class),
		zap.String("method", name),
		zap.Int("args", len(args)))

	result, err := m(ctx, obj, &Call{eng: e, Name: name, args: args})
	if err != nil {
		if _, structured := err.(*errors.Error); structured {
			return foreign.None, err
		}
		return foreign.None, errors.Foreign(err, "in "+obj.Class+"."+name)
	}
	return result, nil
}

// Attr reads an attribute of an engine-owned object.
func (e *Engine) Attr(ctx context.Context, recv foreign.Value, name string) (foreign.Value, error) {
	obj, err := e.deref(recv)
	if err != nil {
		return foreign.None, err
	}

	v, ok := obj.Attrs[name]
	if !ok {
		return foreign.None, errors.NotFound(errors.PhaseCall, "attribute "+name+" on "+obj.Class)
	}
	return v, nil
}

// SetAttr writes an attribute of an engine-owned object. Host-side
// references observe the change only through a fresh Attr round-trip.
func (e *Engine) SetAttr(ctx context.Context, recv foreign.Value, name string, v foreign.Value) error {
	obj, err := e.deref(recv)
	if err != nil {
		return err
	}
	if obj.Attrs == nil {
		obj.Attrs = make(map[string]foreign.Value)
	}
	obj.Attrs[name] = v
	return nil
}

// EnterContext runs the scope entry protocol of a context-manager object
// and returns the value bound to the scope alias.
func (e *Engine) EnterContext(ctx context.Context, cv foreign.Value) (foreign.Value, error) {
	obj, err := e.deref(cv)
	if err != nil {
		return foreign.None, err
	}
	if obj.OnEnter == nil {
		return foreign.None, errors.Unsupported(errors.PhaseScope, obj.Class+" is not a context manager")
	}

	alias, err := obj.OnEnter(ctx, obj)
	if err != nil {
		return foreign.None, errors.Foreign(err, "entering "+obj.Class)
	}
	if alias.IsNone() {
		// context managers that yield nothing bind the object itself
		alias = cv
	}
	return alias, nil
}

// ExitContext runs the scope exit protocol of a context-manager object.
func (e *Engine) ExitContext(ctx context.Context, cv foreign.Value) error {
	obj, err := e.deref(cv)
	if err != nil {
		return err
	}
	if obj.OnExit == nil {
		return nil
	}
	if err := obj.OnExit(ctx, obj); err != nil {
		return errors.Foreign(err, "exiting "+obj.Class)
	}
	return nil
}

// Release drops an engine-owned object.
func (e *Engine) Release(h handle.Handle) bool {
	_, ok := e.objects.Release(h)
	return ok
}

// Close releases all objects and stops dispatch.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errors.Closed(errors.PhaseCall, "engine already closed")
	}
	e.closed = true
	e.mu.Unlock()

	return e.objects.Close()
}

// deref resolves a foreign object value to its engine-owned Object.
func (e *Engine) deref(recv foreign.Value) (*Object, error) {
	h, ok := recv.Handle()
	if !ok {
		return nil, errors.New(errors.PhaseCall, errors.KindTypeMismatch).
			ForeignType(recv.Kind().String()).
			Detail("receiver is not an object").
			Build()
	}

	v, ok := e.objects.GetTyped(h, ObjectTypeID)
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "object handle is not live")
	}
	return v.(*Object), nil
}
