package flowerr

import (
	"errors"
	"fmt"
)

// Error is the flow error type with structured fields.
type Error struct {
	Kind    Kind   // failure category
	Message string // human-readable detail
	Param   string // offending query parameter, if any
	Cause   error  // wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultMessages[e.Kind]
	}
	if e.Param != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Param)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error by kind. A target *Error with
// a Param only matches the same parameter.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t
	case *Error:
		if e.Kind != t.Kind {
			return false
		}
		return t.Param == "" || t.Param == e.Param
	}
	return false
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithParam creates an error of the given kind naming a query parameter.
func WithParam(kind Kind, param string) *Error {
	return &Error{Kind: kind, Param: param}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Missing is shorthand for WithParam(MissingParameter, param).
func Missing(param string) *Error { return WithParam(MissingParameter, param) }

// Invalid is shorthand for WithParam(InvalidParameter, param).
func Invalid(param string) *Error { return WithParam(InvalidParameter, param) }

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// ParamOf returns the parameter named by the first *Error in err's chain.
func ParamOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Param
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
