package argv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents error categories produced by a parse.
// These categories drive exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeUnknownFlag      ErrorType = "unknown_flag"
	ErrorTypeArityMismatch    ErrorType = "arity_mismatch"
	ErrorTypeConversion       ErrorType = "conversion"
	ErrorTypeHandlerFailure   ErrorType = "handler_failure"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeInternalProgress ErrorType = "internal_progress"
	ErrorTypeProgramming      ErrorType = "programming"
)

// TypedError is implemented by every error this package produces.
type TypedError interface {
	error
	Type() ErrorType
}

// TypeOf returns the category of the first TypedError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var typed TypedError
	if errors.As(err, &typed) {
		return typed.Type(), true
	}
	return "", false
}

// UnknownFlagError reports a token the default handler did not accept.
type UnknownFlagError struct {
	Flag       string
	Suggestion string // closest registered name, if any
}

func (e *UnknownFlagError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown flag '%s' (did you mean '--%s'?)", e.Flag, e.Suggestion)
	}
	return fmt.Sprintf("unknown flag '%s'", e.Flag)
}

func (e *UnknownFlagError) Type() ErrorType { return ErrorTypeUnknownFlag }

// ArityError reports a fixed parameter with no token left to fill it.
type ArityError struct {
	Flag string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("flag '%s' expects %d argument(s), got %d", e.Flag, e.Want, e.Got)
}

func (e *ArityError) Type() ErrorType { return ErrorTypeArityMismatch }

// ConversionError reports a token that could not be coerced to its kind.
type ConversionError struct {
	Flag  string
	Token string
	Kind  Kind
	Cause error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", e.Token, e.Kind)
	if e.Flag != "" {
		msg = fmt.Sprintf("flag '%s': %s", e.Flag, msg)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionError) Type() ErrorType { return ErrorTypeConversion }

func (e *ConversionError) Unwrap() error { return e.Cause }

// HandlerError reports a handler that returned false, returned an error or
// panicked. Tokens is the complete token list of the parse.
type HandlerError struct {
	Flag   string
	Tokens []string
	Cause  error // nil when the handler returned false
}

func (e *HandlerError) Error() string {
	msg := fmt.Sprintf("could not parse arguments %s at flag %s", strings.Join(e.Tokens, ","), e.Flag)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *HandlerError) Type() ErrorType { return ErrorTypeHandlerFailure }

func (e *HandlerError) Unwrap() error { return e.Cause }

type validationError struct{}

func (validationError) Error() string   { return "arguments failed validation" }
func (validationError) Type() ErrorType { return ErrorTypeValidation }

// ErrInvalid is the result error when every step succeeded but the validity
// predicate rejected the parse.
var ErrInvalid error = validationError{}

// ProgressFault is raised when the default handler returns without removing
// any token from the queue. It indicates a bug in the default handler, not bad
// input.
type ProgressFault struct {
	Token string
}

func (e *ProgressFault) Error() string {
	return fmt.Sprintf("default handler did not consume any token at %q: it must remove items from the queue", e.Token)
}

func (e *ProgressFault) Type() ErrorType { return ErrorTypeInternalProgress }

// ProgrammingError reports a malformed handler set or handler declaration.
type ProgrammingError struct {
	Message string
}

func (e *ProgrammingError) Error() string { return "argv: " + e.Message }

func (e *ProgrammingError) Type() ErrorType { return ErrorTypeProgramming }
