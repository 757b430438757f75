package argv

import (
	"errors"
	"reflect"

	"github.com/dzonerzy/go-argv/middleware"
)

// ExitError requests a specific exit code. Return it from a Custom handler to
// override the mapping below.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
	InternalError   int // default: 70
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3, InternalError: 70}
}

// ExitCodeManager maps parse errors to process exit codes.
type ExitCodeManager struct {
	codesByType     map[reflect.Type]int
	typeOrder       []reflect.Type
	codesByCategory map[ErrorType]int
	defaults        ExitCodeDefaults
}

// NewExitCodeManager returns a manager prewired for this package's error
// categories and the middleware error types.
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByType:     make(map[reflect.Type]int),
		codesByCategory: make(map[ErrorType]int),
		defaults:        defaultExitDefaults(),
	}
	m.codesByCategory[ErrorTypeUnknownFlag] = m.defaults.MisusageError
	m.codesByCategory[ErrorTypeArityMismatch] = m.defaults.MisusageError
	m.codesByCategory[ErrorTypeConversion] = m.defaults.MisusageError
	m.codesByCategory[ErrorTypeHandlerFailure] = m.defaults.GeneralError
	m.codesByCategory[ErrorTypeValidation] = m.defaults.ValidationError
	m.codesByCategory[ErrorTypeInternalProgress] = m.defaults.InternalError
	m.codesByCategory[ErrorTypeProgramming] = m.defaults.InternalError

	m.DefineError(&middleware.ValidationError{}, m.defaults.ValidationError)
	m.DefineError(&middleware.RecoveryError{}, m.defaults.GeneralError)
	return m
}

// DefineError maps a concrete error value (by its dynamic type) to an exit
// code. A matching type takes precedence over category mappings but is
// secondary to an explicit ExitError. Types are tried in definition order.
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	t := reflect.TypeOf(err)
	if _, seen := e.codesByType[t]; !seen {
		e.typeOrder = append(e.typeOrder, t)
	}
	e.codesByType[t] = code
	return e
}

// DefineType overrides the exit code used for an error category.
func (e *ExitCodeManager) DefineType(typ ErrorType, code int) *ExitCodeManager {
	e.codesByCategory[typ] = code
	return e
}

// Default replaces the manager's default codes. Category mappings made by
// NewExitCodeManager keep their values.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager { e.defaults = d; return e }

// Resolve converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. Concrete error type mapping (DefineError)
//  3. Category mapping (DefineType)
//  4. Default codes
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	for _, t := range e.typeOrder {
		if errors.As(err, reflect.New(t).Interface()) {
			return e.codesByType[t]
		}
	}

	if typ, ok := TypeOf(err); ok {
		if code, found := e.codesByCategory[typ]; found {
			return code
		}
	}

	return e.defaults.GeneralError
}

var defaultExitCodes = NewExitCodeManager()

// ExitCode resolves err with the default ExitCodeManager.
func ExitCode(err error) int { return defaultExitCodes.Resolve(err) }
