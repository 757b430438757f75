package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dzonerzy/go-argv/internal/pool"
)

// requestInfoPool is a global pool for RequestInfo objects to reduce allocations
var requestInfoPool = pool.NewPoolWithReset(
	func() *RequestInfo {
		return &RequestInfo{Args: make([]string, 0, 8)}
	},
	func(info *RequestInfo) {
		info.Flag = ""
		info.Args = info.Args[:0]
		info.StartTime = time.Time{}
		info.Duration = 0
		info.OK = false
		info.Error = nil
	},
)

// Logger creates a middleware that logs every handler invocation.
//
// Levels: a call start is logged at Debug, a successful call at Info, a
// handler returning false at Warn and a handler error at Error.
func Logger(options ...MiddlewareOption) Middleware {
	config := newConfig(options)
	logger := newSlogLogger(config)

	return func(next InvokeFunc) InvokeFunc {
		return func(inv *Invocation) (bool, error) {
			if config.LogLevel == LogLevelNone || logger == nil {
				return next(inv)
			}

			info := requestInfoPool.Get()
			defer requestInfoPool.Put(info)

			info.Flag = flagName(inv)
			info.Args = append(info.Args, inv.Args...)
			info.StartTime = time.Now()

			logRequest(logger, config, info, slog.LevelDebug, "invoke")

			ok, err := next(inv)

			info.Duration = time.Since(info.StartTime)
			info.OK = ok
			info.Error = err

			switch {
			case err != nil:
				logRequest(logger, config, info, slog.LevelError, "handler failed")
			case !ok:
				logRequest(logger, config, info, slog.LevelWarn, "handler rejected arguments")
			default:
				logRequest(logger, config, info, slog.LevelInfo, "handler ok")
			}

			return ok, err
		}
	}
}

// newSlogLogger builds the slog logger the middleware writes to, or nil when
// output is disabled.
func newSlogLogger(config *MiddlewareConfig) *slog.Logger {
	if config.Logger != nil {
		return config.Logger
	}

	writer := config.LogWriter
	if writer == nil {
		writer = getLogWriter(config.LogOutput)
	}
	if writer == nil {
		return nil
	}

	handlerOpts := &slog.HandlerOptions{Level: config.LogLevel.slogLevel()}
	var handler slog.Handler
	if config.LogFormat == LogFormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	return slog.New(handler)
}

// getLogWriter returns the appropriate writer based on configuration
func getLogWriter(output LogOutput) io.Writer {
	switch output {
	case LogOutputStdout:
		return os.Stdout
	case LogOutputStderr:
		return os.Stderr
	case LogOutputNone:
		return nil
	default:
		return os.Stderr
	}
}

func logRequest(logger *slog.Logger, config *MiddlewareConfig, info *RequestInfo, level slog.Level, msg string) {
	if level < config.LogLevel.slogLevel() {
		return
	}

	attrs := make([]slog.Attr, 0, 5)
	attrs = append(attrs, slog.String("flag", info.Flag))
	if config.IncludeArgs && len(info.Args) > 0 {
		attrs = append(attrs, slog.Any("args", info.Args))
	}
	if info.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", info.Duration))
		attrs = append(attrs, slog.Bool("ok", info.OK))
	}
	if info.Error != nil {
		attrs = append(attrs, slog.String("error", info.Error.Error()))
	}

	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// DebugLogger creates a logger with debug level (logs everything)
func DebugLogger() Middleware {
	return Logger(WithLogLevel(LogLevelDebug))
}

// ErrorLogger creates a logger with error level (logs only failures)
func ErrorLogger() Middleware {
	return Logger(WithLogLevel(LogLevelError))
}

// JSONLogger creates a logger that outputs JSON format
func JSONLogger() Middleware {
	return Logger(WithLogFormat(LogFormatJSON))
}

// SilentLogger creates a logger that doesn't output anything (useful for testing)
func SilentLogger() Middleware {
	return Logger(func(config *MiddlewareConfig) {
		config.LogOutput = LogOutputNone
	})
}
