package middleware

import (
	"fmt"
	"os"
	"runtime"
)

// Recovery creates a middleware that turns a panicking handler into a
// *RecoveryError. argv installs it as the outermost middleware of every parser.
func Recovery(options ...MiddlewareOption) Middleware {
	config := newConfig(options)

	return RecoveryWithHandler(func(panicVal any, flag string, stack []byte) error {
		if config.PrintStack && len(stack) > 0 {
			w := config.StackWriter
			if w == nil {
				w = os.Stderr
			}
			fmt.Fprintf(w, "PANIC in handler for flag '%s': %v\n", flag, panicVal)
			fmt.Fprintf(w, "Stack trace:\n%s\n", stack)
		}
		return &RecoveryError{Panic: panicVal, Flag: flag, Stack: stack}
	}, options...)
}

// RecoveryWithHandler creates a recovery middleware with a custom panic handler.
// The handler's error becomes the step error; the call reports false.
func RecoveryWithHandler(
	handler func(panicVal any, flag string, stack []byte) error,
	options ...MiddlewareOption,
) Middleware {
	config := newConfig(options)

	return func(next InvokeFunc) InvokeFunc {
		return func(inv *Invocation) (ok bool, err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack []byte
					if config.CaptureStack {
						stack = make([]byte, config.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
					}
					ok = false
					err = handler(r, flagName(inv), stack)
				}
			}()

			return next(inv)
		}
	}
}

// RecoveryWithStack creates a recovery middleware that always prints stack traces
// (useful for development)
func RecoveryWithStack() Middleware {
	return Recovery(WithStackTrace(true))
}

// RecoveryStats tracks recovery statistics
type RecoveryStats struct {
	TotalPanics int
	FlagPanics  map[string]int
	LastPanic   *RecoveryError
}

// NewRecoveryStats creates a new recovery statistics tracker
func NewRecoveryStats() *RecoveryStats {
	return &RecoveryStats{
		FlagPanics: make(map[string]int),
	}
}

// RecoveryWithStats creates a recovery middleware that tracks statistics.
// stats is not synchronized; share it only between sequential parses.
func RecoveryWithStats(stats *RecoveryStats, options ...MiddlewareOption) Middleware {
	return RecoveryWithHandler(func(panicVal any, flag string, stack []byte) error {
		stats.TotalPanics++
		stats.FlagPanics[flag]++
		stats.LastPanic = &RecoveryError{Panic: panicVal, Flag: flag, Stack: stack}
		return stats.LastPanic
	}, options...)
}
