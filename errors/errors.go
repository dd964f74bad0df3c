package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSimplify Phase = "simplify" // type-name rewriting
	PhaseClassify Phase = "classify" // type-name pattern matching
	PhaseValidate Phase = "validate" // container bit-pattern checks
	PhaseIterate  Phase = "iterate"  // element stepping
	PhaseLoad     Phase = "load"     // dump/memory loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownContainer Kind = "unknown_container"
	KindInvalidContents  Kind = "invalid_contents"
	KindUnsupported      Kind = "unsupported"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidData      Kind = "invalid_data"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is the structured error type used on the library's outer API
// surface (dump loading, Memory implementations, the CLI). The core
// inspection path communicates failure through Result codes instead;
// see the root package.
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Addr     uint64
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}
	if e.Addr != 0 {
		fmt.Fprintf(&b, " at 0x%x", e.Addr)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
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

// TypeName sets the inspected type name
func (b *Builder) TypeName(name string) *Builder {
	b.err.TypeName = name
	return b
}

// Addr sets the inspected address
func (b *Builder) Addr(addr uint64) *Builder {
	b.err.Addr = addr
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

// UnknownContainer creates an error for a type name matching no adapter
func UnknownContainer(typeName string) *Error {
	return &Error{
		Phase:    PhaseClassify,
		Kind:     KindUnknownContainer,
		TypeName: typeName,
		Detail:   "type matches no known container pattern",
	}
}

// InvalidContents creates an error for memory failing structural checks
func InvalidContents(typeName string, addr uint64) *Error {
	return &Error{
		Phase:    PhaseValidate,
		Kind:     KindInvalidContents,
		TypeName: typeName,
		Addr:     addr,
		Detail:   "container memory fails structural checks",
	}
}

// Unsupported creates an error for a disabled/incompatible environment
func Unsupported(detail string) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindUnsupported,
		Detail: detail,
	}
}

// OutOfBounds creates an out-of-bounds memory access error
func OutOfBounds(phase Phase, addr, length uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Addr:   addr,
		Detail: fmt.Sprintf("read of %d bytes out of bounds", length),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a dump/memory loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// FromResult converts a non-OK inspection result code (as defined by
// the root package) into a structured error. OK maps to nil.
func FromResult(code int, typeName string, addr uint64) *Error {
	switch code {
	case 0:
		return nil
	case -1:
		return Unsupported("inspection disabled for this environment")
	case -2:
		return UnknownContainer(typeName)
	case -3:
		return InvalidContents(typeName, addr)
	default:
		return &Error{
			Phase:  PhaseClassify,
			Kind:   KindInvalidData,
			Detail: fmt.Sprintf("unrecognized result code %d", code),
		}
	}
}
