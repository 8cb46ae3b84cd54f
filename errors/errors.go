package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseMarshal   Phase = "marshal"   // Go to foreign
	PhaseUnmarshal Phase = "unmarshal" // foreign to Go
	PhaseCall      Phase = "call"      // boundary dispatch
	PhaseScope     Phase = "scope"     // scoped context entry/exit
	PhaseRegister  Phase = "register"  // foreign function registration
	PhaseConfig    Phase = "config"    // options loading
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidKey   Kind = "invalid_key"
	KindInvalidData  Kind = "invalid_data"
	KindUnsupported  Kind = "unsupported"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindNotFound     Kind = "not_found"
	KindClosed       Kind = "closed"
	KindScopeOrder   Kind = "scope_order"
	KindRegistration Kind = "registration"
	KindForeign      Kind = "foreign" // opaque foreign-side failure
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value       any
	Cause       error
	Phase       Phase
	Kind        Kind
	HostType    string
	ForeignType string
	Detail      string
	Path        []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.HostType != "" || e.ForeignType != "" {
		b.WriteString(": ")
		if e.HostType != "" && e.ForeignType != "" {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
			b.WriteString(", foreign type ")
			b.WriteString(e.ForeignType)
		} else if e.HostType != "" {
			b.WriteString("host type ")
			b.WriteString(e.HostType)
		} else {
			b.WriteString("foreign type ")
			b.WriteString(e.ForeignType)
		}
	}

	if e.Detail != "" {
		if e.HostType != "" || e.ForeignType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// HostType sets the Go type name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
	return b
}

// ForeignType sets the foreign type name
func (b *Builder) ForeignType(t string) *Builder {
	b.err.ForeignType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, hostType, foreignType string) *Error {
	return &Error{
		Phase:       phase,
		Kind:        KindTypeMismatch,
		Path:        path,
		HostType:    hostType,
		ForeignType: foreignType,
	}
}

// HintConflict creates a type mismatch error for a hint that contradicts
// the actual value shape
func HintConflict(path []string, hint string, hostType string) *Error {
	return &Error{
		Phase:    PhaseMarshal,
		Kind:     KindTypeMismatch,
		Path:     path,
		HostType: hostType,
		Detail:   fmt.Sprintf("hint %q conflicts with value shape", hint),
	}
}

// InvalidKey creates an invalid mapping key error
func InvalidKey(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidKey,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what,
	}
}

// Closed creates an error for use after Close
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: what,
	}
}

// ScopeOrder creates a scope discipline violation error
func ScopeOrder(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseScope,
		Kind:   KindScopeOrder,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Foreign wraps an opaque foreign-side failure. The bridge never
// interprets these; they pass through to the caller unmodified.
func Foreign(cause error, where string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindForeign,
		Detail: where,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
