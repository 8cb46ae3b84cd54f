package marshal

import (
	"errors"
	"testing"

	bridgeerrors "github.com/wippyai/runtime-bridge/errors"
	"github.com/wippyai/runtime-bridge/foreign"
)

func isTypeMismatch(err error) bool {
	var be *bridgeerrors.Error
	return errors.As(err, &be) && be.Kind == bridgeerrors.KindTypeMismatch
}

func TestHintSeq_PreservesSingleElement(t *testing.T) {
	fv, err := ToForeign([]int64{5}, HintSeq)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	want := foreign.NewSeq(foreign.Int(5))
	if !fv.Equal(want) {
		t.Errorf("got %s, want %s", fv, want)
	}
}

func TestHintSeq_WrapsScalar(t *testing.T) {
	fv, err := ToForeign(int64(5), HintSeq)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	if fv.Kind() != foreign.KindSeq || fv.Len() != 1 {
		t.Errorf("got %s, want length-1 sequence", fv)
	}
}

func TestHintSeq_EmptyStaysEmpty(t *testing.T) {
	fv, err := ToForeign([]int64{}, HintSeq)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	if fv.Kind() != foreign.KindSeq || fv.Len() != 0 {
		t.Errorf("got %s, want empty sequence", fv)
	}
}

func TestHintSeq_RejectsDict(t *testing.T) {
	_, err := ToForeign(map[string]int{"a": 1}, HintSeq)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestHintScalar(t *testing.T) {
	// single-element container collapses, satisfying the hint
	fv, err := ToForeign([]int64{5}, HintScalar)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	if !fv.Equal(foreign.Int(5)) {
		t.Errorf("got %s", fv)
	}

	// multi-element container conflicts with the hint
	_, err = ToForeign([]int64{1, 2}, HintScalar)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestHintInt(t *testing.T) {
	// integer value passes the assertion
	fv, err := ToForeign(10, HintInt)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	if !fv.Equal(foreign.Int(10)) {
		t.Errorf("got %s", fv)
	}

	// a float where an integer is required is a caller error, never a
	// silent coercion
	_, err = ToForeign(10.0, HintInt)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}

	// the assertion reaches into containers
	_, err = ToForeign([]float64{1, 2}, HintInt)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch for float seq, got %v", err)
	}
	if _, err := ToForeign([]int64{1, 2}, HintInt); err != nil {
		t.Fatalf("int seq should pass: %v", err)
	}

	// and into grids
	_, err = ToForeign([][]float64{{1}, {2}}, HintInt)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch for float grid, got %v", err)
	}

	// and into mapping values
	_, err = ToForeign(map[string]any{"a": 1.5}, HintInt)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch for float dict value, got %v", err)
	}
	if _, err := ToForeign(map[string]any{"a": int64(1)}, HintInt); err != nil {
		t.Fatalf("int dict value should pass: %v", err)
	}
}

func TestHintFloat(t *testing.T) {
	if _, err := ToForeign(10.0, HintFloat); err != nil {
		t.Fatalf("10.0 should pass: %v", err)
	}
	_, err := ToForeign(10, HintFloat)
	if !isTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestHints_MutuallyExclusive(t *testing.T) {
	if _, err := ToForeign(1, HintInt, HintFloat); !isTypeMismatch(err) {
		t.Fatal("int+float hints should conflict")
	}
	if _, err := ToForeign(1, HintSeq, HintScalar); !isTypeMismatch(err) {
		t.Fatal("seq+scalar hints should conflict")
	}
}

func TestHints_Combined(t *testing.T) {
	// seq + int: a forced integer sequence
	fv, err := ToForeign([]int64{3}, HintSeq, HintInt)
	if err != nil {
		t.Fatalf("ToForeign: %v", err)
	}
	want := foreign.NewSeq(foreign.Int(3))
	if !fv.Equal(want) {
		t.Errorf("got %s, want %s", fv, want)
	}
}
