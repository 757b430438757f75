package argv

import (
	"errors"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var errEmptyChar = errors.New("empty token has no first character")

// Coerce converts a single token to the Go value of kind. Failures are
// *ConversionError values without a flag name.
func Coerce(token string, kind Kind) (any, error) {
	v, err := coerce(token, kind)
	if err != nil {
		return nil, &ConversionError{Token: token, Kind: kind, Cause: err}
	}
	return v, nil
}

func coerce(token string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return token, nil
	case KindInt:
		v, err := strconv.ParseInt(token, 10, 0)
		return int(v), err
	case KindLong:
		return strconv.ParseInt(token, 10, 64)
	case KindFloat:
		v, err := strconv.ParseFloat(token, 32)
		return float32(v), err
	case KindDouble:
		return strconv.ParseFloat(token, 64)
	case KindBool:
		return strconv.ParseBool(token)
	case KindChar:
		if token == "" {
			return rune(0), errEmptyChar
		}
		r, _ := utf8.DecodeRuneInString(token)
		return r, nil
	case KindByte:
		v, err := strconv.ParseUint(token, 10, 8)
		return uint8(v), err
	case KindShort:
		v, err := strconv.ParseInt(token, 10, 16)
		return int16(v), err
	case KindDuration:
		return time.ParseDuration(token)
	case KindUUID:
		return uuid.Parse(token)
	default:
		return nil, &ProgrammingError{Message: "unknown parameter " + kind.String()}
	}
}

// BuildArguments coerces the argument tokens of one invocation: one value per
// fixed parameter followed, for a variadic descriptor, by a typed slice of the
// remaining tokens.
func BuildArguments(tokens []string, d Descriptor) ([]any, error) {
	arity := d.Arity()
	if !arity.Accepts(len(tokens)) {
		return nil, &ArityError{Flag: d.Name, Want: arity.N, Got: len(tokens)}
	}

	fixed := d.Fixed()
	values := make([]any, 0, len(d.Params))
	for i, kind := range fixed {
		v, err := coerce(tokens[i], kind)
		if err != nil {
			return nil, &ConversionError{Flag: d.Name, Token: tokens[i], Kind: kind, Cause: err}
		}
		values = append(values, v)
	}

	if kind, ok := d.Tail(); ok {
		tail, err := coerceTail(d.Name, tokens[len(fixed):], kind)
		if err != nil {
			return nil, err
		}
		values = append(values, tail)
	}
	return values, nil
}

func coerceTail(flag string, tokens []string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return collect[string](flag, tokens, kind)
	case KindInt:
		return collect[int](flag, tokens, kind)
	case KindLong:
		return collect[int64](flag, tokens, kind)
	case KindFloat:
		return collect[float32](flag, tokens, kind)
	case KindDouble:
		return collect[float64](flag, tokens, kind)
	case KindBool:
		return collect[bool](flag, tokens, kind)
	case KindChar:
		return collect[rune](flag, tokens, kind)
	case KindByte:
		return collect[uint8](flag, tokens, kind)
	case KindShort:
		return collect[int16](flag, tokens, kind)
	case KindDuration:
		return collect[time.Duration](flag, tokens, kind)
	case KindUUID:
		return collect[uuid.UUID](flag, tokens, kind)
	default:
		return nil, &ProgrammingError{Message: "unknown parameter " + kind.String()}
	}
}

func collect[T any](flag string, tokens []string, kind Kind) ([]T, error) {
	out := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		v, err := coerce(tok, kind)
		if err != nil {
			return nil, &ConversionError{Flag: flag, Token: tok, Kind: kind, Cause: err}
		}
		out = append(out, v.(T))
	}
	return out, nil
}
