package foreign

type Kind uint8

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindSeq
	KindTuple
	KindDict
	KindIdentityDict
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNone:         "none",
	KindBool:         "bool",
	KindInt:          "int",
	KindFloat:        "float",
	KindStr:          "str",
	KindSeq:          "seq",
	KindTuple:        "tuple",
	KindDict:         "dict",
	KindIdentityDict: "identity_dict",
	KindArray:        "array",
	KindObject:       "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether the kind is a single non-container value.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindStr
}

// IsSentinel reports whether the kind maps to the runtime's
// absence/true/false sentinels.
func (k Kind) IsSentinel() bool {
	return k == KindNone || k == KindBool
}
