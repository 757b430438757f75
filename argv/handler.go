package argv

import (
	"fmt"
	"slices"
)

// CallFunc receives the coerced arguments of one invocation. For a variadic
// handler the last element is a typed slice ([]string, []int, ...) holding
// the whole tail. A non-nil error fails the step like a false result does.
type CallFunc func(values []any) (bool, error)

// Descriptor is the declared signature of a handler.
type Descriptor struct {
	Name string
	// Params lists the parameter kinds in order. When Variadic is set the last
	// entry is the element kind of the tail.
	Params   []Kind
	Variadic bool
}

// Arity derives the token arity from the parameter list.
func (d Descriptor) Arity() Arity {
	if d.Variadic {
		return VariadicArity(len(d.Params) - 1)
	}
	return FixedArity(len(d.Params))
}

// Fixed returns the kinds consumed one token each.
func (d Descriptor) Fixed() []Kind {
	if d.Variadic && len(d.Params) > 0 {
		return d.Params[:len(d.Params)-1]
	}
	return d.Params
}

// Tail returns the element kind of the variadic tail.
func (d Descriptor) Tail() (Kind, bool) {
	if !d.Variadic || len(d.Params) == 0 {
		return 0, false
	}
	return d.Params[len(d.Params)-1], true
}

func (d Descriptor) String() string {
	s := d.Name + "("
	for i, k := range d.Params {
		if i > 0 {
			s += ", "
		}
		s += k.String()
		if d.Variadic && i == len(d.Params)-1 {
			s += "..."
		}
	}
	return s + ")"
}

// Handler is a named operation the parser dispatches flags to.
type Handler struct {
	Descriptor
	call CallFunc
}

// Custom builds a handler from an explicit descriptor. Use it when the
// signature is only known at runtime or the handler needs to return an error.
func Custom(d Descriptor, call CallFunc) Handler {
	d.Params = slices.Clone(d.Params)
	return Handler{Descriptor: d, call: call}
}

// Flag registers a handler that takes no arguments.
func Flag(name string, fn func() bool) Handler {
	return Custom(Descriptor{Name: name}, func([]any) (bool, error) {
		return fn(), nil
	})
}

// Flag1 registers a handler with one typed argument.
func Flag1[A any](name string, fn func(A) bool) Handler {
	d := Descriptor{Name: name, Params: []Kind{mustKind[A](name)}}
	return Custom(d, func(v []any) (bool, error) {
		return fn(v[0].(A)), nil
	})
}

// Flag2 registers a handler with two typed arguments.
func Flag2[A, B any](name string, fn func(A, B) bool) Handler {
	d := Descriptor{Name: name, Params: []Kind{mustKind[A](name), mustKind[B](name)}}
	return Custom(d, func(v []any) (bool, error) {
		return fn(v[0].(A), v[1].(B)), nil
	})
}

// Flag3 registers a handler with three typed arguments.
func Flag3[A, B, C any](name string, fn func(A, B, C) bool) Handler {
	d := Descriptor{Name: name, Params: []Kind{mustKind[A](name), mustKind[B](name), mustKind[C](name)}}
	return Custom(d, func(v []any) (bool, error) {
		return fn(v[0].(A), v[1].(B), v[2].(C)), nil
	})
}

// Variadic registers a handler that takes every token up to the next flag.
func Variadic[T any](name string, fn func(...T) bool) Handler {
	d := Descriptor{Name: name, Params: []Kind{mustKind[T](name)}, Variadic: true}
	return Custom(d, func(v []any) (bool, error) {
		return fn(v[0].([]T)...), nil
	})
}

// Variadic1 registers a handler with one fixed argument and a variadic tail.
func Variadic1[A, T any](name string, fn func(A, ...T) bool) Handler {
	d := Descriptor{Name: name, Params: []Kind{mustKind[A](name), mustKind[T](name)}, Variadic: true}
	return Custom(d, func(v []any) (bool, error) {
		return fn(v[0].(A), v[1].([]T)...), nil
	})
}

func mustKind[T any](name string) Kind {
	k, ok := kindOf[T]()
	if !ok {
		var zero T
		panic(&ProgrammingError{Message: fmt.Sprintf("handler %q: unsupported parameter type %T", name, zero)})
	}
	return k
}
