package spv

import "fmt"

// ErrorKind categorizes builder errors.
type ErrorKind uint8

const (
	// ErrUnsupportedType indicates a type shape the builder does not model.
	ErrUnsupportedType ErrorKind = iota

	// ErrTypeMismatch indicates operand types incompatible for the
	// requested operation.
	ErrTypeMismatch

	// ErrBlockAlreadySealed indicates an instruction was requested after
	// the current block was terminated.
	ErrBlockAlreadySealed

	// ErrUnterminatedConstruct indicates an If or While construct was
	// left open at session end.
	ErrUnterminatedConstruct

	// ErrNestedBuilderActive indicates the parent scope was used while a
	// child construct was open.
	ErrNestedBuilderActive

	// ErrMissingInterfaceVariable indicates a declared input/output was
	// omitted from the entry point interface, or vice versa.
	ErrMissingInterfaceVariable

	// ErrIdentifierExhausted indicates the id allocator overflowed.
	ErrIdentifierExhausted
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrBlockAlreadySealed:
		return "BlockAlreadySealed"
	case ErrUnterminatedConstruct:
		return "UnterminatedConstruct"
	case ErrNestedBuilderActive:
		return "NestedBuilderActive"
	case ErrMissingInterfaceVariable:
		return "MissingInterfaceVariable"
	case ErrIdentifierExhausted:
		return "IdentifierExhausted"
	default:
		return "Unknown"
	}
}

// Error represents a shader-builder error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("spv %s: %s", e.Kind, e.Message)
}

// NewError creates a new builder error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// errf creates a new builder error with a formatted message.
func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is a builder *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
