package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

func TestEngine_RegisterAndInvoke(t *testing.T) {
	eng := New()
	ctx := context.Background()

	err := eng.Register("add", func(_ context.Context, call *Call) (foreign.Value, error) {
		a, _ := call.Arg(0).Int()
		b, _ := call.Arg(1).Int()
		return foreign.Int(a + b), nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := eng.Invoke(ctx, "add", []foreign.Value{foreign.Int(2), foreign.Int(3)})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !result.Equal(foreign.Int(5)) {
		t.Errorf("result = %s", result)
	}
}

func TestEngine_DuplicateRegistration(t *testing.T) {
	eng := New()
	fn := func(context.Context, *Call) (foreign.Value, error) { return foreign.None, nil }

	if err := eng.Register("f", fn); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := eng.Register("f", fn)
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Kind != errors.KindRegistration {
		t.Fatalf("expected registration error, got %v", err)
	}

	if err := eng.Register("nil", nil); err == nil {
		t.Fatal("nil function should be rejected")
	}
}

func TestEngine_InvokeUnknown(t *testing.T) {
	eng := New()
	_, err := eng.Invoke(context.Background(), "missing", nil)
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Kind != errors.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestEngine_ForeignErrorPassthrough(t *testing.T) {
	eng := New()
	boom := stderrors.New("division by zero")
	eng.MustRegister("div", func(context.Context, *Call) (foreign.Value, error) {
		return foreign.None, boom
	})

	_, err := eng.Invoke(context.Background(), "div", nil)
	if !stderrors.Is(err, boom) {
		t.Fatalf("foreign error should pass through opaque, got %v", err)
	}
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Kind != errors.KindForeign {
		t.Fatalf("expected foreign kind wrapper, got %v", err)
	}
}

func mustObject(t *testing.T, eng *Engine, obj *Object) foreign.Value {
	t.Helper()
	v, err := eng.NewObject(obj)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	return v
}

func TestEngine_Objects(t *testing.T) {
	eng := New()
	ctx := context.Background()

	counter := int64(0)
	obj := mustObject(t, eng, &Object{
		Class: "Counter",
		Attrs: map[string]foreign.Value{"value": foreign.Int(0)},
		Methods: map[string]Method{
			"increment": func(_ context.Context, self *Object, call *Call) (foreign.Value, error) {
				by, _ := call.Arg(0).Int()
				counter += by
				self.Attrs["value"] = foreign.Int(counter)
				return foreign.Int(counter), nil
			},
		},
	})

	if obj.Kind() != foreign.KindObject {
		t.Fatalf("NewObject returned %s", obj.Kind())
	}

	result, err := eng.InvokeMethod(ctx, obj, "increment", []foreign.Value{foreign.Int(2)})
	if err != nil {
		t.Fatalf("InvokeMethod: %v", err)
	}
	if !result.Equal(foreign.Int(2)) {
		t.Errorf("result = %s", result)
	}

	// attribute reads see foreign-side mutation only via round-trip
	v, err := eng.Attr(ctx, obj, "value")
	if err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if !v.Equal(foreign.Int(2)) {
		t.Errorf("value attr = %s", v)
	}

	if _, err := eng.InvokeMethod(ctx, obj, "nope", nil); err == nil {
		t.Fatal("unknown method should fail")
	}
	if _, err := eng.Attr(ctx, obj, "nope"); err == nil {
		t.Fatal("unknown attribute should fail")
	}
	if _, err := eng.Attr(ctx, foreign.Int(1), "x"); err == nil {
		t.Fatal("non-object receiver should fail")
	}
}

func TestEngine_ReleasedObject(t *testing.T) {
	eng := New()
	obj := mustObject(t, eng, &Object{Class: "Tmp", Attrs: map[string]foreign.Value{"a": foreign.True}})
	h, _ := obj.Handle()

	if !eng.Release(h) {
		t.Fatal("Release failed")
	}
	if _, err := eng.Attr(context.Background(), obj, "a"); err == nil {
		t.Fatal("released object should not be reachable")
	}
}

func TestEngine_ContextProtocol(t *testing.T) {
	eng := New()
	ctx := context.Background()

	var log []string
	cm := mustObject(t, eng, &Object{
		Class: "Session",
		OnEnter: func(context.Context, *Object) (foreign.Value, error) {
			log = append(log, "enter")
			return foreign.None, nil
		},
		OnExit: func(context.Context, *Object) error {
			log = append(log, "exit")
			return nil
		},
	})

	alias, err := eng.EnterContext(ctx, cm)
	if err != nil {
		t.Fatalf("EnterContext: %v", err)
	}
	// None from OnEnter binds the object itself
	if !alias.Equal(cm) {
		t.Errorf("alias = %s", alias)
	}
	if err := eng.ExitContext(ctx, cm); err != nil {
		t.Fatalf("ExitContext: %v", err)
	}
	if len(log) != 2 || log[0] != "enter" || log[1] != "exit" {
		t.Errorf("log = %v", log)
	}

	// objects without OnEnter are not context managers
	plain := mustObject(t, eng, &Object{Class: "Plain"})
	if _, err := eng.EnterContext(ctx, plain); err == nil {
		t.Fatal("plain object should not enter")
	}
}

func TestEngine_Close(t *testing.T) {
	eng := New()
	dropped := false
	mustObject(t, eng, &Object{Class: "X", DropFn: func() { dropped = true }})

	if err := eng.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !dropped {
		t.Error("Close should drop objects")
	}
	if _, err := eng.Invoke(context.Background(), "f", nil); err == nil {
		t.Fatal("Invoke after Close should fail")
	}
	if err := eng.Register("late", func(context.Context, *Call) (foreign.Value, error) { return foreign.None, nil }); err == nil {
		t.Fatal("Register after Close should fail")
	}

	_, err := eng.NewObject(&Object{Class: "Late"})
	var be *errors.Error
	if !stderrors.As(err, &be) || be.Kind != errors.KindClosed {
		t.Fatalf("NewObject after Close should report closed, got %v", err)
	}
}

func TestEngine_SetAttrLazyAttrs(t *testing.T) {
	eng := New()
	ctx := context.Background()

	// objects built without an Attrs map still accept writes
	bare := mustObject(t, eng, &Object{Class: "Bare"})
	if err := eng.SetAttr(ctx, bare, "x", foreign.Int(1)); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	v, err := eng.Attr(ctx, bare, "x")
	if err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if !v.Equal(foreign.Int(1)) {
		t.Errorf("x = %s", v)
	}
}
