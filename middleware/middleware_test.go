package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvocation(flag string, args ...string) *Invocation {
	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a
	}
	return &Invocation{Flag: flag, Token: "--" + flag, Args: args, Values: values}
}

func successHandler(*Invocation) (bool, error) { return true, nil }

func rejectHandler(*Invocation) (bool, error) { return false, nil }

func errorHandler(*Invocation) (bool, error) { return false, errors.New("boom") }

func panicHandler(*Invocation) (bool, error) { panic("kaboom") }

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next InvokeFunc) InvokeFunc {
			return func(inv *Invocation) (bool, error) {
				order = append(order, name+":before")
				ok, err := next(inv)
				order = append(order, name+":after")
				return ok, err
			}
		}
	}

	fn := Chain(mark("outer"), mark("inner")).Apply(successHandler)
	ok, err := fn(newInvocation("foo"))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestChain_UseDoesNotAlias(t *testing.T) {
	base := make(MiddlewareChain, 0, 4)
	base = base.Use(NoopValidator())

	a := base.Use(SilentLogger())
	b := base.Use(Recovery())

	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
	assert.NotNil(t, a[1])
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	fn := Recovery()(panicHandler)

	ok, err := fn(newInvocation("bad"))
	assert.False(t, ok)

	var recErr *RecoveryError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "bad", recErr.Flag)
	assert.Equal(t, "kaboom", recErr.Panic)
	assert.NotEmpty(t, recErr.Stack)
	assert.Contains(t, err.Error(), "handler for flag 'bad' panicked: kaboom")
}

func TestRecovery_OutermostInChain(t *testing.T) {
	var validated bool
	check := Custom("seen", func(*Invocation) error { validated = true; return nil })
	fn := Chain(Recovery(), Validate(check)).Apply(panicHandler)

	ok, err := fn(newInvocation("bad", "x"))
	assert.False(t, ok)
	assert.True(t, validated)

	var recErr *RecoveryError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "bad", recErr.Flag)
}

func TestRecovery_PanicWithError(t *testing.T) {
	sentinel := errors.New("sentinel")
	fn := Recovery()(func(*Invocation) (bool, error) { panic(sentinel) })

	_, err := fn(newInvocation("x"))
	assert.ErrorIs(t, err, sentinel)
}

func TestRecovery_PrintsStackWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	fn := Recovery(WithStackTrace(true), func(c *MiddlewareConfig) { c.StackWriter = &buf })(panicHandler)

	_, err := fn(newInvocation("bad"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "PANIC in handler for flag 'bad'")
}

func TestRecovery_PassThrough(t *testing.T) {
	ok, err := Recovery()(rejectHandler)(newInvocation("foo"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecoveryWithStats(t *testing.T) {
	stats := NewRecoveryStats()
	fn := RecoveryWithStats(stats)(panicHandler)

	_, _ = fn(newInvocation("a"))
	_, _ = fn(newInvocation("a"))
	_, _ = fn(newInvocation("b"))

	assert.Equal(t, 3, stats.TotalPanics)
	assert.Equal(t, 2, stats.FlagPanics["a"])
	require.NotNil(t, stats.LastPanic)
	assert.Equal(t, "b", stats.LastPanic.Flag)
}

func TestValidate_OneOf(t *testing.T) {
	fn := Validate(OneOf("format", "json", "text"))(successHandler)

	ok, err := fn(newInvocation("format", "json"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fn(newInvocation("format", "yaml"))
	assert.False(t, ok)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "format", vErr.Flag)
	assert.Equal(t, "yaml", vErr.Value)

	// other flags are untouched
	ok, err = fn(newInvocation("name", "yaml"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidate_NonEmptyAndMaxArgs(t *testing.T) {
	fn := Validate(NonEmpty("name"), MaxArgs("files", 2))(successHandler)

	_, err := fn(newInvocation("name", "  "))
	assert.Error(t, err)

	_, err = fn(newInvocation("files", "a", "b", "c"))
	assert.ErrorContains(t, err, "at most 2 arguments, got 3")

	ok, err := fn(newInvocation("files", "a", "b"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidate_WrapsPlainErrors(t *testing.T) {
	cause := errors.New("port out of range")
	fn := Validator(WithValidators(
		Custom("port_range", func(*Invocation) error { return cause }),
	))(successHandler)

	_, err := fn(newInvocation("port", "99999"))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "port", vErr.Flag)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "validation 'port_range' failed: port out of range", err.Error())
}

func TestValidate_SkipsIncompleteValidators(t *testing.T) {
	fn := Validate(NamedValidator{Name: "", Fn: func(*Invocation) error { return errors.New("x") }},
		NamedValidator{Name: "nil"})(successHandler)

	ok, err := fn(newInvocation("foo"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	fn := Logger(WithWriter(&buf), WithLogLevel(LogLevelDebug))(successHandler)

	ok, err := fn(newInvocation("bar", "baz"))
	require.NoError(t, err)
	assert.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "msg=invoke")
	assert.Contains(t, out, "msg=\"handler ok\"")
	assert.Contains(t, out, "flag=bar")
	assert.Contains(t, out, "args=[baz]")
}

func TestLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	fn := Logger(WithWriter(&buf), WithLogLevel(LogLevelError))(rejectHandler)

	_, _ = fn(newInvocation("bad"))
	assert.Empty(t, buf.String())

	fn = Logger(WithWriter(&buf), WithLogLevel(LogLevelError))(errorHandler)
	_, _ = fn(newInvocation("bad"))
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogger_JSONEscapesStrings(t *testing.T) {
	var buf bytes.Buffer
	fn := Logger(WithWriter(&buf), WithLogFormat(LogFormatJSON))(successHandler)

	_, err := fn(newInvocation("name", `a "quoted"`, "line1\nline2"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"args":[`)
	assert.Contains(t, out, `\"quoted\"`)
	assert.Contains(t, out, `line1\nline2`)
}

func TestLogger_ExistingSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fn := Logger(WithLogger(logger))(rejectHandler)

	_, _ = fn(newInvocation("bad"))
	assert.True(t, strings.Contains(buf.String(), "handler rejected arguments"))
}

func TestLogger_Silent(t *testing.T) {
	ok, err := SilentLogger()(successHandler)(newInvocation("foo"))
	require.NoError(t, err)
	assert.True(t, ok)
}
