package foreign

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the value the way the foreign runtime would print it.
// Intended for logs and diagnostics, not for parsing.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case KindNone:
		b.WriteString("None")
	case KindBool:
		if v.b {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		b.WriteString(formatFloat(v.f))
	case KindStr:
		b.WriteString(strconv.Quote(v.s))
	case KindSeq:
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		b.WriteByte(']')
	case KindTuple:
		b.WriteByte('(')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		// Single-element tuples keep the trailing comma so they stay
		// distinguishable from a parenthesized scalar.
		if len(v.elems) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case KindDict:
		b.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(p.Key))
			b.WriteString(": ")
			p.Val.write(b)
		}
		b.WriteByte('}')
	case KindIdentityDict:
		b.WriteByte('{')
		for i, p := range v.ipairs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "<object %d>: ", p.Key)
			p.Val.write(b)
		}
		b.WriteByte('}')
	case KindArray:
		fmt.Fprintf(b, "array(%s, shape=%s)", v.arr.elem, dimsString(v.arr.dims))
	case KindObject:
		fmt.Fprintf(b, "<object %d>", v.obj)
	default:
		b.WriteString("<invalid>")
	}
}

// formatFloat keeps a visible fractional part so floats never print like
// integers (10.0, not 10).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnI") {
		s += ".0"
	}
	return s
}

func dimsString(dims []int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, d := range dims {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(d))
	}
	if len(dims) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}
