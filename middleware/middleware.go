// Package middleware provides built-in wrappers for argv handler invocations.
// Focused on 3 essential middleware: Logger, Recovery and Validator
package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// This package is imported by argv; it must not import argv back. The parser
// hands every handler call to the chain as an *Invocation.

// Invocation describes one handler call made by the dispatch loop.
type Invocation struct {
	// Flag is the normalized flag name (leading dashes stripped).
	Flag string

	// Token is the flag exactly as it appeared in the input.
	Token string

	// Args holds the argument tokens consumed for this call, in order.
	// Treat as read-only.
	Args []string

	// Values holds the coerced handler arguments. A variadic tail is a
	// single typed slice in the last position.
	Values []any
}

// InvokeFunc performs a handler call and reports its boolean outcome. A
// non-nil error fails the step regardless of the boolean.
type InvokeFunc func(inv *Invocation) (bool, error)

// Middleware defines the middleware function signature
type Middleware func(next InvokeFunc) InvokeFunc

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply applies the middleware chain to an InvokeFunc. The first middleware
// in the chain is the outermost wrapper.
func (chain MiddlewareChain) Apply(fn InvokeFunc) InvokeFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		fn = chain[i](fn)
	}
	return fn
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(middleware))
	out = append(out, chain...)
	return append(out, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// ValidationError represents a validation error
type ValidationError struct {
	Flag    string
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// RecoveryError represents a panic recovered from a handler
type RecoveryError struct {
	Panic any
	Flag  string
	Stack []byte
}

func (e *RecoveryError) Error() string {
	return "handler for flag '" + e.Flag + "' panicked: " + toString(e.Panic)
}

// Unwrap exposes the panic value when the handler panicked with an error.
func (e *RecoveryError) Unwrap() error {
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

// MiddlewareConfig contains configuration for middleware behavior
type MiddlewareConfig struct {
	LogLevel         LogLevel
	LogOutput        LogOutput
	LogFormat        LogFormat
	LogWriter        io.Writer    // overrides LogOutput when set
	Logger           *slog.Logger // overrides LogOutput, LogWriter and LogFormat when set
	IncludeArgs      bool
	CaptureStack     bool
	PrintStack       bool
	StackSize        int
	StackWriter      io.Writer
	CustomValidators []NamedValidator
}

// LogLevel represents logging levels
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// slogLevel maps the middleware level to the lowest slog level it lets through.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError, LogLevelNone:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogOutput represents log output destinations
type LogOutput int

const (
	LogOutputStderr LogOutput = iota
	LogOutputStdout
	LogOutputNone
)

// LogFormat represents log formats
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// RequestInfo contains information about one handler call
type RequestInfo struct {
	Flag      string
	Args      []string
	StartTime time.Time
	Duration  time.Duration
	OK        bool
	Error     error
}

// MiddlewareOption configures a MiddlewareConfig.
type MiddlewareOption func(config *MiddlewareConfig)

// DefaultConfig returns the configuration every built-in middleware starts from.
func DefaultConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		LogLevel:     LogLevelInfo,
		LogOutput:    LogOutputStderr,
		LogFormat:    LogFormatText,
		IncludeArgs:  true,
		CaptureStack: true,
		PrintStack:   false,
		StackSize:    4096,
	}
}

func newConfig(options []MiddlewareOption) *MiddlewareConfig {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	return config
}

func WithLogLevel(level LogLevel) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogLevel = level
	}
}

func WithLogFormat(format LogFormat) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogFormat = format
	}
}

// WithWriter sends log output to w instead of the configured LogOutput.
func WithWriter(w io.Writer) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.LogWriter = w
	}
}

// WithLogger uses an existing slog logger. Level gating still applies.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.Logger = logger
	}
}

func WithStackTrace(enabled bool) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.PrintStack = enabled
	}
}

// WithValidators appends named validators run by Validator.
func WithValidators(validators ...NamedValidator) MiddlewareOption {
	return func(config *MiddlewareConfig) {
		config.CustomValidators = append(config.CustomValidators, validators...)
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func flagName(inv *Invocation) string {
	if inv == nil || inv.Flag == "" {
		return "unknown"
	}
	return inv.Flag
}
