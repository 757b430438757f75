package middleware

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ValidatorFunc checks a handler call before it runs. Use it for rules that
// go beyond type coercion: allowed values, argument counts, cross-cutting
// business checks.
type ValidatorFunc func(inv *Invocation) error

// NamedValidator associates a human-readable name with a ValidatorFunc for
// clearer error reporting and easier composition.
type NamedValidator struct {
	Name string
	Fn   ValidatorFunc
}

// Custom wraps an arbitrary ValidatorFunc with a name for reporting.
func Custom(name string, fn ValidatorFunc) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// Validator creates a middleware that runs the validators registered with
// WithValidators, in order, before the handler.
func Validator(options ...MiddlewareOption) Middleware {
	return Validate(newConfig(options).CustomValidators...)
}

// Validate composes a set of NamedValidators into a single Middleware.
// Validators run in the order given; the first failure stops the call.
//
// Example:
//
//	parser.Use(middleware.Validate(
//	    middleware.OneOf("format", "json", "text"),
//	    middleware.MaxArgs("files", 8),
//	))
func Validate(validators ...NamedValidator) Middleware {
	active := make([]NamedValidator, 0, len(validators))
	for _, v := range validators {
		if v.Name == "" || v.Fn == nil {
			continue
		}
		active = append(active, v)
	}

	return func(next InvokeFunc) InvokeFunc {
		return func(inv *Invocation) (bool, error) {
			for _, v := range active {
				if err := v.Fn(inv); err != nil {
					validationErr := &ValidationError{}
					if errors.As(err, &validationErr) {
						return false, validationErr
					}
					return false, &ValidationError{
						Flag:    flagName(inv),
						Message: fmt.Sprintf("validation '%s' failed", v.Name),
						Cause:   err,
					}
				}
			}
			return next(inv)
		}
	}
}

// OneOf restricts every argument token of flag to the allowed values.
func OneOf(flag string, allowed ...string) NamedValidator {
	return Custom("one_of", func(inv *Invocation) error {
		if inv.Flag != flag {
			return nil
		}
		for _, arg := range inv.Args {
			if !slices.Contains(allowed, arg) {
				return &ValidationError{
					Flag:    flag,
					Value:   arg,
					Message: fmt.Sprintf("invalid value '%s' for flag '%s' (allowed: %s)", arg, flag, strings.Join(allowed, ", ")),
				}
			}
		}
		return nil
	})
}

// NonEmpty rejects empty argument tokens for the given flags.
func NonEmpty(flags ...string) NamedValidator {
	return Custom("non_empty", func(inv *Invocation) error {
		if !slices.Contains(flags, inv.Flag) {
			return nil
		}
		for i, arg := range inv.Args {
			if strings.TrimSpace(arg) == "" {
				return &ValidationError{
					Flag:    inv.Flag,
					Value:   arg,
					Message: fmt.Sprintf("argument %d of flag '%s' is empty", i+1, inv.Flag),
				}
			}
		}
		return nil
	})
}

// MaxArgs caps the number of argument tokens a flag may consume. Mostly
// useful for variadic flags, whose runs are otherwise unbounded.
func MaxArgs(flag string, limit int) NamedValidator {
	return Custom("max_args", func(inv *Invocation) error {
		if inv.Flag != flag || len(inv.Args) <= limit {
			return nil
		}
		return &ValidationError{
			Flag:    flag,
			Value:   len(inv.Args),
			Message: fmt.Sprintf("flag '%s' accepts at most %d arguments, got %d", flag, limit, len(inv.Args)),
		}
	})
}

// NoopValidator creates a validator that doesn't perform any validation.
func NoopValidator() Middleware {
	return func(next InvokeFunc) InvokeFunc {
		return next
	}
}
