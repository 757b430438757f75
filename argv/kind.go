package argv

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind is the declared type of a handler parameter.
type Kind int

const (
	KindString   Kind = iota // string
	KindInt                  // int
	KindLong                 // int64
	KindFloat                // float32
	KindDouble               // float64
	KindBool                 // bool
	KindChar                 // rune
	KindByte                 // uint8
	KindShort                // int16
	KindDuration             // time.Duration
	KindUUID                 // uuid.UUID
)

var kindNames = [...]string{
	KindString:   "string",
	KindInt:      "int",
	KindLong:     "long",
	KindFloat:    "float",
	KindDouble:   "double",
	KindBool:     "bool",
	KindChar:     "char",
	KindByte:     "byte",
	KindShort:    "short",
	KindDuration: "duration",
	KindUUID:     "uuid",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindString && k <= KindUUID
}

// kindOf maps a Go type to its Kind. Named types other than time.Duration and
// uuid.UUID are not recognized.
func kindOf[T any]() (Kind, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString, true
	case int:
		return KindInt, true
	case int64:
		return KindLong, true
	case float32:
		return KindFloat, true
	case float64:
		return KindDouble, true
	case bool:
		return KindBool, true
	case rune:
		return KindChar, true
	case uint8:
		return KindByte, true
	case int16:
		return KindShort, true
	case time.Duration:
		return KindDuration, true
	case uuid.UUID:
		return KindUUID, true
	default:
		return 0, false
	}
}

// ArityKind tells fixed and variadic arities apart.
type ArityKind int

const (
	ArityFixed ArityKind = iota
	ArityVariadic
)

// Arity is the number of argument tokens a handler consumes: exactly N for a
// fixed arity, N or more for a variadic one.
type Arity struct {
	Kind ArityKind
	N    int
}

// FixedArity returns an arity consuming exactly n tokens.
func FixedArity(n int) Arity { return Arity{Kind: ArityFixed, N: n} }

// VariadicArity returns an arity consuming n tokens followed by a tail of any
// length.
func VariadicArity(n int) Arity { return Arity{Kind: ArityVariadic, N: n} }

func (a Arity) IsVariadic() bool { return a.Kind == ArityVariadic }

// Accepts reports whether count argument tokens satisfy the arity.
func (a Arity) Accepts(count int) bool {
	if a.Kind == ArityVariadic {
		return count >= a.N
	}
	return count == a.N
}

func (a Arity) String() string {
	if a.Kind == ArityVariadic {
		return fmt.Sprintf("variadic(%d+)", a.N)
	}
	return fmt.Sprintf("fixed(%d)", a.N)
}
