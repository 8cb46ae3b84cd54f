package marshal

import (
	"testing"

	"github.com/wippyai/runtime-bridge/foreign"
)

func TestGrid_FloatMatrix(t *testing.T) {
	fv := mustForeign(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	arr, ok := fv.Array()
	if !ok {
		t.Fatalf("expected array, got %s", fv.Kind())
	}
	if arr.Elem() != foreign.KindFloat {
		t.Fatalf("elem = %s", arr.Elem())
	}
	if d := arr.Dims(); len(d) != 2 || d[0] != 2 || d[1] != 3 {
		t.Fatalf("dims = %v", d)
	}
	if v, _ := arr.FloatAt(1, 2); v != 6 {
		t.Errorf("FloatAt(1,2) = %g", v)
	}
}

func TestGrid_IntMatrix(t *testing.T) {
	fv := mustForeign(t, [][]int64{{1, 2}, {3, 4}})
	arr, _ := fv.Array()
	if arr.Elem() != foreign.KindInt {
		t.Fatalf("int grid marshalled as %s", arr.Elem())
	}
	if v, _ := arr.IntAt(1, 0); v != 3 {
		t.Errorf("IntAt(1,0) = %d", v)
	}
}

func TestGrid_ThreeDimensional(t *testing.T) {
	in := [][][]int{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
	}
	fv := mustForeign(t, in)
	arr, _ := fv.Array()
	if d := arr.Dims(); len(d) != 3 || d[0] != 2 || d[1] != 2 || d[2] != 2 {
		t.Fatalf("dims = %v", d)
	}
	if v, _ := arr.IntAt(1, 0, 1); v != 6 {
		t.Errorf("IntAt(1,0,1) = %d", v)
	}
}

func TestGrid_Ragged(t *testing.T) {
	if _, err := ToForeign([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatal("ragged grid should be a type mismatch")
	}
}

func TestGrid_FlatSliceIsNotAGrid(t *testing.T) {
	// 1-D numeric data takes the sequence rule, not the array rule
	fv := mustForeign(t, []float64{1, 2, 3})
	if fv.Kind() != foreign.KindSeq {
		t.Errorf("flat slice marshalled as %s", fv.Kind())
	}
}

func TestGrid_AnyNestingIsNotAGrid(t *testing.T) {
	// []any nesting means list-of-lists, not matrix
	fv := mustForeign(t, []any{[]any{int64(1), int64(2)}, []any{int64(3), int64(4)}})
	if fv.Kind() != foreign.KindSeq {
		t.Fatalf("[]any nesting marshalled as %s", fv.Kind())
	}
	inner, _ := fv.Index(0)
	if inner.Kind() != foreign.KindSeq {
		t.Errorf("inner: %s", inner.Kind())
	}
}

func TestGrid_RoundTrip(t *testing.T) {
	fv := mustForeign(t, [][]float64{{1.5, 2.5}, {3.5, 4.5}})
	hv, err := ToHost(fv)
	if err != nil {
		t.Fatalf("ToHost: %v", err)
	}
	arr, ok := hv.(*foreign.Array)
	if !ok {
		t.Fatalf("host form is %T", hv)
	}
	orig, _ := fv.Array()
	if !arr.Equal(orig) {
		t.Error("array changed through round-trip")
	}
}

func TestGrid_ExplicitArrayInput(t *testing.T) {
	a, err := foreign.NewIntArray([]int{3}, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewIntArray: %v", err)
	}
	fv := mustForeign(t, a)
	if fv.Kind() != foreign.KindArray {
		t.Fatalf("explicit array marshalled as %s", fv.Kind())
	}
}
