package scope

import (
	"context"
	"errors"
	"fmt"
	"testing"

	bridgeerrors "github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

// recorder tracks enter/exit calls in order.
type recorder struct {
	log []string
}

func (r *recorder) stack() *Stack {
	return NewStack(
		func(_ context.Context, cv foreign.Value) (foreign.Value, error) {
			r.log = append(r.log, "enter "+cv.String())
			return cv, nil
		},
		func(_ context.Context, cv foreign.Value) error {
			r.log = append(r.log, "exit "+cv.String())
			return nil
		},
	)
}

func TestStack_EnterExit(t *testing.T) {
	r := &recorder{}
	st := r.stack()
	ctx := context.Background()

	sc, err := st.Enter(ctx, foreign.Str("a"))
	if err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if got, _ := sc.Alias().Str(); got != "a" {
		t.Fatalf("alias = %q", got)
	}
	if st.Depth() != 1 {
		t.Fatalf("depth = %d", st.Depth())
	}

	if err := st.Exit(ctx, sc); err != nil {
		t.Fatalf("Exit failed: %v", err)
	}
	if st.Depth() != 0 {
		t.Fatalf("depth after exit = %d", st.Depth())
	}
}

func TestStack_LIFO(t *testing.T) {
	r := &recorder{}
	st := r.stack()
	ctx := context.Background()

	a, _ := st.Enter(ctx, foreign.Str("a"))
	b, _ := st.Enter(ctx, foreign.Str("b"))

	// exiting the outer scope first violates the contract
	err := st.Exit(ctx, a)
	if err == nil {
		t.Fatal("expected scope_order error")
	}
	var be *bridgeerrors.Error
	if !errors.As(err, &be) || be.Kind != bridgeerrors.KindScopeOrder {
		t.Fatalf("expected scope_order, got %v", err)
	}

	// correct order succeeds
	if err := st.Exit(ctx, b); err != nil {
		t.Fatalf("Exit b: %v", err)
	}
	if err := st.Exit(ctx, a); err != nil {
		t.Fatalf("Exit a: %v", err)
	}

	want := []string{`enter "a"`, `enter "b"`, `exit "b"`, `exit "a"`}
	if fmt.Sprint(r.log) != fmt.Sprint(want) {
		t.Fatalf("log = %v, want %v", r.log, want)
	}
}

func TestStack_DoubleExit(t *testing.T) {
	r := &recorder{}
	st := r.stack()
	ctx := context.Background()

	sc, _ := st.Enter(ctx, foreign.Str("a"))
	if err := st.Exit(ctx, sc); err != nil {
		t.Fatalf("first exit: %v", err)
	}
	if err := st.Exit(ctx, sc); err == nil {
		t.Fatal("second exit should fail")
	}
	// the foreign exit protocol must not run twice
	exits := 0
	for _, l := range r.log {
		if l == `exit "a"` {
			exits++
		}
	}
	if exits != 1 {
		t.Fatalf("exit protocol ran %d times", exits)
	}
}

func TestWith_ErrorPath(t *testing.T) {
	r := &recorder{}
	st := r.stack()

	wantErr := errors.New("inner failure")
	err := st.With(context.Background(), foreign.Str("s"), func(foreign.Value) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if st.Depth() != 0 {
		t.Fatal("scope leaked after error")
	}
	if r.log[len(r.log)-1] != `exit "s"` {
		t.Fatalf("exit not recorded: %v", r.log)
	}
}

func TestWith_PanicPath(t *testing.T) {
	r := &recorder{}
	st := r.stack()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("panic should propagate")
			}
		}()
		_ = st.With(context.Background(), foreign.Str("p"), func(foreign.Value) error {
			panic("boom")
		})
	}()

	if st.Depth() != 0 {
		t.Fatal("scope leaked after panic")
	}

	exits := 0
	for _, l := range r.log {
		if l == `exit "p"` {
			exits++
		}
	}
	if exits != 1 {
		t.Fatalf("exit ran %d times, want exactly once", exits)
	}
}

func TestWith_Nested(t *testing.T) {
	r := &recorder{}
	st := r.stack()
	ctx := context.Background()

	err := st.With(ctx, foreign.Str("a"), func(foreign.Value) error {
		return st.With(ctx, foreign.Str("b"), func(foreign.Value) error {
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested With: %v", err)
	}

	want := []string{`enter "a"`, `enter "b"`, `exit "b"`, `exit "a"`}
	if fmt.Sprint(r.log) != fmt.Sprint(want) {
		t.Fatalf("log = %v, want %v", r.log, want)
	}
}

func TestWith_ExitError(t *testing.T) {
	exitErr := errors.New("cleanup failed")
	st := NewStack(
		func(_ context.Context, cv foreign.Value) (foreign.Value, error) { return cv, nil },
		func(context.Context, foreign.Value) error { return exitErr },
	)

	err := st.With(context.Background(), foreign.None, func(foreign.Value) error { return nil })
	if !errors.Is(err, exitErr) {
		t.Fatalf("exit error should surface, got %v", err)
	}

	// the block's own error takes precedence over the exit error
	blockErr := errors.New("block failed")
	err = st.With(context.Background(), foreign.None, func(foreign.Value) error { return blockErr })
	if !errors.Is(err, blockErr) {
		t.Fatalf("block error should win, got %v", err)
	}
}

func TestStack_EnterError(t *testing.T) {
	entryErr := errors.New("no session")
	st := NewStack(
		func(context.Context, foreign.Value) (foreign.Value, error) { return foreign.None, entryErr },
		func(context.Context, foreign.Value) error { return nil },
	)

	if _, err := st.Enter(context.Background(), foreign.None); !errors.Is(err, entryErr) {
		t.Fatalf("entry error should surface, got %v", err)
	}
	if st.Depth() != 0 {
		t.Fatal("failed entry must not push a frame")
	}
}

func TestStack_Unwind(t *testing.T) {
	r := &recorder{}
	st := r.stack()
	ctx := context.Background()

	st.Enter(ctx, foreign.Str("a"))
	st.Enter(ctx, foreign.Str("b"))
	st.Enter(ctx, foreign.Str("c"))

	if err := st.Unwind(ctx); err != nil {
		t.Fatalf("Unwind: %v", err)
	}
	if st.Depth() != 0 {
		t.Fatal("scopes remain after Unwind")
	}

	want := []string{
		`enter "a"`, `enter "b"`, `enter "c"`,
		`exit "c"`, `exit "b"`, `exit "a"`,
	}
	if fmt.Sprint(r.log) != fmt.Sprint(want) {
		t.Fatalf("log = %v, want %v", r.log, want)
	}
}
