package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/wippyai/runtime-bridge/engine"
	"github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

type paramInfo struct {
	name string
	typ  string
}

type funcInfo struct {
	name   string
	params []paramInfo
	result string
}

// playgroundFuncs describes the demo functions in registration order so
// the one-shot -list output and the TUI show a stable listing.
var playgroundFuncs = []funcInfo{
	{name: "add", params: []paramInfo{{"a", "int"}, {"b", "int"}}, result: "int"},
	{name: "mul", params: []paramInfo{{"a", "float"}, {"b", "float"}}, result: "float"},
	{name: "concat", params: []paramInfo{{"a", "str"}, {"b", "str"}}, result: "str"},
	{name: "mean", params: []paramInfo{{"xs", "seq<float>"}}, result: "float"},
	{name: "rangeof", params: []paramInfo{{"n", "int"}}, result: "seq<int>"},
	{name: "describe", params: []paramInfo{{"value", "any"}}, result: "str"},
	{name: "make_counter", params: nil, result: "object"},
}

func formatSignature(f funcInfo) string {
	parts := make([]string, len(f.params))
	for i, p := range f.params {
		parts[i] = p.name + " " + p.typ
	}
	return fmt.Sprintf("%s(%s) -> %s", f.name, strings.Join(parts, ", "), f.result)
}

// newPlayground builds an in-process engine with a handful of foreign
// functions so the CLI has something to call without an external runtime.
func newPlayground() *engine.Engine {
	eng := engine.New()

	eng.MustRegister("add", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		a, err := wantInt(call, 0)
		if err != nil {
			return foreign.None, err
		}
		b, err := wantInt(call, 1)
		if err != nil {
			return foreign.None, err
		}
		return foreign.Int(a + b), nil
	})

	eng.MustRegister("mul", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		a, err := wantFloat(call, 0)
		if err != nil {
			return foreign.None, err
		}
		b, err := wantFloat(call, 1)
		if err != nil {
			return foreign.None, err
		}
		return foreign.Float(a * b), nil
	})

	eng.MustRegister("concat", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		var sb strings.Builder
		for i := 0; i < call.NArgs(); i++ {
			s, ok := call.Arg(i).Str()
			if !ok {
				return foreign.None, argTypeError(i, call.Arg(i).Kind(), "str")
			}
			sb.WriteString(s)
		}
		return foreign.Str(sb.String()), nil
	})

	eng.MustRegister("mean", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		xs := call.Arg(0)
		elems, ok := xs.Elems()
		if !ok {
			return foreign.None, argTypeError(0, xs.Kind(), "seq")
		}
		if len(elems) == 0 {
			return foreign.None, errors.InvalidData(errors.PhaseCall, []string{"xs"}, "mean of empty sequence")
		}
		var sum float64
		for i, e := range elems {
			switch e.Kind() {
			case foreign.KindInt:
				n, _ := e.Int()
				sum += float64(n)
			case foreign.KindFloat:
				f, _ := e.Float()
				sum += f
			default:
				return foreign.None, errors.New(errors.PhaseCall, errors.KindTypeMismatch).
					Path("xs", fmt.Sprintf("%d", i)).
					ForeignType(e.Kind().String()).
					Detail("want a number").
					Build()
			}
		}
		return foreign.Float(sum / float64(len(elems))), nil
	})

	eng.MustRegister("rangeof", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		n, err := wantInt(call, 0)
		if err != nil {
			return foreign.None, err
		}
		if n < 0 {
			return foreign.None, errors.InvalidData(errors.PhaseCall, []string{"n"}, "negative length")
		}
		elems := make([]foreign.Value, n)
		for i := range elems {
			elems[i] = foreign.Int(int64(i))
		}
		return foreign.NewSeq(elems...), nil
	})

	eng.MustRegister("describe", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		return foreign.Str(call.Arg(0).String()), nil
	})

	eng.MustRegister("make_counter", func(ctx context.Context, call *engine.Call) (foreign.Value, error) {
		return eng.NewObject(newCounter())
	})

	return eng
}

// newCounter is the playground's stateful object: increment bumps the
// count, and entering it as a context resets on exit.
func newCounter() *engine.Object {
	count := int64(0)
	obj := &engine.Object{
		Class: "Counter",
		Methods: map[string]engine.Method{
			"increment": func(ctx context.Context, recv *engine.Object, call *engine.Call) (foreign.Value, error) {
				count++
				return foreign.Int(count), nil
			},
			"value": func(ctx context.Context, recv *engine.Object, call *engine.Call) (foreign.Value, error) {
				return foreign.Int(count), nil
			},
		},
	}
	obj.OnEnter = func(ctx context.Context, recv *engine.Object) (foreign.Value, error) {
		return foreign.None, nil
	}
	obj.OnExit = func(ctx context.Context, recv *engine.Object) error {
		count = 0
		return nil
	}
	return obj
}

func argTypeError(i int, got foreign.Kind, want string) *errors.Error {
	return errors.New(errors.PhaseCall, errors.KindTypeMismatch).
		Path(fmt.Sprintf("arg[%d]", i)).
		ForeignType(got.String()).
		Detail("want %s", want).
		Build()
}

func wantInt(call *engine.Call, i int) (int64, error) {
	v := call.Arg(i)
	n, ok := v.Int()
	if !ok {
		return 0, argTypeError(i, v.Kind(), "int")
	}
	return n, nil
}

func wantFloat(call *engine.Call, i int) (float64, error) {
	v := call.Arg(i)
	if n, ok := v.Int(); ok {
		return float64(n), nil
	}
	if f, ok := v.Float(); ok {
		return f, nil
	}
	return 0, argTypeError(i, v.Kind(), "float")
}
