package engine

import (
	"context"

	"github.com/wippyai/runtime-bridge/foreign"
)

// Object is an engine-owned foreign object. The host never sees this
// struct, only the opaque handle returned by Engine.NewObject.
type Object struct {
	// Class names the object's kind for diagnostics and errors.
	Class string

	// Attrs are the object's readable attributes.
	Attrs map[string]foreign.Value

	// Methods dispatch by name. self is the receiving object.
	Methods map[string]Method

	// OnEnter and OnExit implement the scoped-execution-context protocol.
	// OnEnter returns the value bound to the scope alias; returning None
	// binds the object itself. Objects with a nil OnEnter are not context
	// managers.
	OnEnter func(ctx context.Context, self *Object) (foreign.Value, error)
	OnExit  func(ctx context.Context, self *Object) error

	// DropFn runs when the object's handle is released.
	DropFn func()
}

// Method is a foreign method bound to an engine object.
type Method func(ctx context.Context, self *Object, call *Call) (foreign.Value, error)

// Drop implements handle.Dropper.
func (o *Object) Drop() {
	if o.DropFn != nil {
		o.DropFn()
	}
}

// Call carries the arguments of one foreign invocation.
type Call struct {
	eng  *Engine
	Name string
	args []foreign.Value
}

// NArgs returns the number of positional arguments.
func (c *Call) NArgs() int {
	return len(c.args)
}

// Arg returns positional argument i, or None when out of range.
func (c *Call) Arg(i int) foreign.Value {
	if i < 0 || i >= len(c.args) {
		return foreign.None
	}
	return c.args[i]
}

// Args returns all positional arguments.
func (c *Call) Args() []foreign.Value {
	return c.args
}

// Engine returns the dispatching engine, letting foreign functions create
// objects or call siblings.
func (c *Call) Engine() *Engine {
	return c.eng
}
