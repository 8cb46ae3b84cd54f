package runtime

import (
	"context"

	"go.uber.org/zap"

	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
	"github.com/wippyai/runtime-bridge/handle"
	"github.com/wippyai/runtime-bridge/marshal"
	"github.com/wippyai/runtime-bridge/scope"
)

// Session is an open host connection to a foreign runtime. It owns the
// marshaller and the scope stack; all values crossing the boundary go
// through it.
//
// The session handle is explicit everywhere: there is no ambient default
// session or hidden global state. A Session is owned by a single
// goroutine; concurrent callers need one session each.
type Session struct {
	dispatcher runtimebridge.Dispatcher
	marshaller *marshal.Marshaller
	scopes     *scope.Stack
	logger     *zap.Logger
	closed     bool
}

// Option configures a session.
type Option func(*sessionConfig)

type sessionConfig struct {
	marshalOpts marshal.Options
	logger      *zap.Logger
}

// WithMarshalOptions overrides the default marshalling options.
func WithMarshalOptions(o marshal.Options) Option {
	return func(c *sessionConfig) { c.marshalOpts = o }
}

// WithLogger attaches a logger to the session. Defaults to a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(c *sessionConfig) { c.logger = l }
}

// objectTabler is implemented by dispatchers that expose their object
// table, enabling liveness checks on identity-mapping keys.
type objectTabler interface {
	Objects() *handle.Table
}

// New opens a session against a dispatcher.
func New(ctx context.Context, d runtimebridge.Dispatcher, opts ...Option) (*Session, error) {
	if d == nil {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidData).
			Detail("nil dispatcher").
			Build()
	}

	cfg := sessionConfig{
		marshalOpts: marshal.DefaultOptions(),
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	s := &Session{
		dispatcher: d,
		marshaller: marshal.NewWithOptions(cfg.marshalOpts),
		logger:     cfg.logger,
	}
	s.marshaller.SetObjectWrapper(refWrapper{s})
	if ot, ok := d.(objectTabler); ok {
		s.marshaller.SetKeyCheck(ot.Objects().Live)
	}

	if cm, ok := d.(runtimebridge.ContextManager); ok {
		s.scopes = scope.NewStack(cm.EnterContext, cm.ExitContext)
	}

	return s, nil
}

// Marshaller returns the session's marshaller, for explicit conversions,
// forced sequences, and identity-keyed mappings.
func (s *Session) Marshaller() *marshal.Marshaller {
	return s.marshaller
}

// Call invokes a foreign function. Arguments convert by the default rule
// table; pass pre-marshalled foreign.Value arguments (or use
// Marshaller().ToForeign with hints) when the defaults are not enough.
// The result converts back to a host value.
func (s *Session) Call(ctx context.Context, name string, args ...any) (any, error) {
	fargs, err := s.marshalArgs(args)
	if err != nil {
		return nil, err
	}

	result, err := s.CallForeign(ctx, name, fargs)
	if err != nil {
		return nil, err
	}
	return s.marshaller.ToHost(result)
}

// CallForeign invokes a foreign function with already-marshalled
// arguments and returns the raw foreign result.
func (s *Session) CallForeign(ctx context.Context, name string, args []foreign.Value) (foreign.Value, error) {
	if s.closed {
		return foreign.None, errors.Closed(errors.PhaseCall, "session closed")
	}

	s.logger.Debug("call",
		zap.String("func", name),
		zap.Int("args", len(args)))

	return s.dispatcher.Invoke(ctx, name, args)
}

// marshalArgs converts every argument before anything executes
// foreign-side, so a bad argument never partially runs a call.
func (s *Session) marshalArgs(args []any) ([]foreign.Value, error) {
	fargs := make([]foreign.Value, len(args))
	for i, a := range args {
		fv, err := s.marshaller.ToForeign(a)
		if err != nil {
			return nil, err
		}
		fargs[i] = fv
	}
	return fargs, nil
}

// Enter begins a scoped execution context. cv must convert to a foreign
// context-manager object. Prefer With, which guarantees the exit.
func (s *Session) Enter(ctx context.Context, cv any) (*scope.Scope, error) {
	if s.scopes == nil {
		return nil, errors.Unsupported(errors.PhaseScope, "dispatcher has no context protocol")
	}
	fcv, err := s.marshaller.ToForeign(cv)
	if err != nil {
		return nil, err
	}
	return s.scopes.Enter(ctx, fcv)
}

// Exit ends a scoped execution context. Scopes exit in strict reverse
// order of entry.
func (s *Session) Exit(ctx context.Context, sc *scope.Scope) error {
	if s.scopes == nil {
		return errors.Unsupported(errors.PhaseScope, "dispatcher has no context protocol")
	}
	return s.scopes.Exit(ctx, sc)
}

// With runs fn inside a scoped execution context, exiting on every path
// out of fn including panics. The alias is the host form of the value the
// foreign runtime bound on entry.
func (s *Session) With(ctx context.Context, cv any, fn func(alias any) error) error {
	if s.scopes == nil {
		return errors.Unsupported(errors.PhaseScope, "dispatcher has no context protocol")
	}
	fcv, err := s.marshaller.ToForeign(cv)
	if err != nil {
		return err
	}
	return s.scopes.With(ctx, fcv, func(alias foreign.Value) error {
		hv, err := s.marshaller.ToHost(alias)
		if err != nil {
			return err
		}
		return fn(hv)
	})
}

// ScopeDepth returns the number of currently entered scopes.
func (s *Session) ScopeDepth() int {
	if s.scopes == nil {
		return 0
	}
	return s.scopes.Depth()
}

// Close unwinds any open scopes and releases the dispatcher if it owns
// resources.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return errors.Closed(errors.PhaseCall, "session already closed")
	}
	s.closed = true

	var first error
	if s.scopes != nil {
		first = s.scopes.Unwind(ctx)
	}
	if c, ok := s.dispatcher.(runtimebridge.Closer); ok {
		if err := c.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
