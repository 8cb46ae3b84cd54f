package scope

import (
	"context"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

// EnterFunc runs the foreign runtime's scope entry protocol and returns
// the value bound to the scope alias.
type EnterFunc func(ctx context.Context, cv foreign.Value) (foreign.Value, error)

// ExitFunc runs the foreign runtime's scope exit protocol.
type ExitFunc func(ctx context.Context, cv foreign.Value) error

// Stack tracks entered foreign execution scopes for one session. Scopes
// nest and must exit in strict reverse order of entry, matching the
// foreign runtime's scope stack.
//
// A Stack is not safe for concurrent use. Each goroutine needs its own
// session and therefore its own stack.
type Stack struct {
	enter  EnterFunc
	exit   ExitFunc
	frames []*Scope
	seq    uint64
}

// Scope is an entered foreign execution scope.
type Scope struct {
	cv     foreign.Value
	alias  foreign.Value
	id     uint64
	exited bool
}

// Alias returns the value the foreign runtime bound on entry. For context
// managers that return themselves this is the context value.
func (s *Scope) Alias() foreign.Value {
	return s.alias
}

// NewStack creates an empty scope stack with the given entry/exit
// protocol hooks.
func NewStack(enter EnterFunc, exit ExitFunc) *Stack {
	return &Stack{enter: enter, exit: exit}
}

// Depth returns the number of currently entered scopes.
func (st *Stack) Depth() int {
	return len(st.frames)
}

// Enter runs the foreign entry protocol for cv and pushes the scope. The
// returned Scope must be passed to Exit on every path out of the scoped
// block; prefer With, which guarantees it.
func (st *Stack) Enter(ctx context.Context, cv foreign.Value) (*Scope, error) {
	alias, err := st.enter(ctx, cv)
	if err != nil {
		return nil, errors.Foreign(err, "scope entry")
	}

	st.seq++
	sc := &Scope{cv: cv, alias: alias, id: st.seq}
	st.frames = append(st.frames, sc)
	return sc, nil
}

// Exit runs the foreign exit protocol for sc and pops it. sc must be the
// most recently entered live scope; exiting out of order or twice is a
// contract violation and the foreign exit protocol is NOT run.
func (st *Stack) Exit(ctx context.Context, sc *Scope) error {
	if sc == nil {
		return errors.ScopeOrder("exit of nil scope")
	}
	if sc.exited {
		return errors.ScopeOrder("scope %d already exited", sc.id)
	}
	if len(st.frames) == 0 {
		return errors.ScopeOrder("exit with no entered scopes")
	}
	if top := st.frames[len(st.frames)-1]; top != sc {
		return errors.ScopeOrder("scope %d exited before inner scope %d", sc.id, top.id)
	}

	st.frames = st.frames[:len(st.frames)-1]
	sc.exited = true

	if err := st.exit(ctx, sc.cv); err != nil {
		return errors.Foreign(err, "scope exit")
	}
	return nil
}

// With enters cv, runs fn with the scope alias, and exits on every path
// out of fn: normal return, error return, and panic. On panic the scope is
// exited exactly once and the panic is re-raised.
func (st *Stack) With(ctx context.Context, cv foreign.Value, fn func(alias foreign.Value) error) (err error) {
	sc, err := st.Enter(ctx, cv)
	if err != nil {
		return err
	}

	defer func() {
		exitErr := st.Exit(ctx, sc)
		if err == nil {
			err = exitErr
		}
	}()

	return fn(sc.Alias())
}

// Unwind exits all remaining scopes innermost-first. Used when a session
// closes with scopes still open. The first exit error is returned; later
// scopes are still exited.
func (st *Stack) Unwind(ctx context.Context) error {
	var first error
	for len(st.frames) > 0 {
		sc := st.frames[len(st.frames)-1]
		if err := st.Exit(ctx, sc); err != nil && first == nil {
			first = err
		}
	}
	return first
}
