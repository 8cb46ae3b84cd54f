package marshal

// Hint overrides the default conversion rules for the top-level value.
// Hints assert intent; they never coerce. A hint that contradicts the
// actual value shape is a type_mismatch error.
type Hint uint8

const (
	// HintSeq forces the result to be a sequence, even for a
	// single-element container or a bare scalar (wrapped as length 1).
	HintSeq Hint = iota + 1

	// HintScalar requires the result to be a single scalar; a
	// multi-element container under HintScalar is an error.
	HintScalar

	// HintInt requires integer-typed numerics throughout the result.
	HintInt

	// HintFloat requires floating-point numerics throughout the result.
	HintFloat
)

var hintNames = [...]string{
	HintSeq:    "seq",
	HintScalar: "scalar",
	HintInt:    "int",
	HintFloat:  "float",
}

func (h Hint) String() string {
	if int(h) < len(hintNames) && hintNames[h] != "" {
		return hintNames[h]
	}
	return "unknown"
}

// hintSet is the parsed form of a hint list.
type hintSet struct {
	seq    bool
	scalar bool
	integr bool
	flt    bool
}

func (hs hintSet) any() bool {
	return hs.seq || hs.scalar || hs.integr || hs.flt
}
