package argv

import (
	"fmt"
	"strings"
)

// Registry maps flag names to handlers. It is read-only once built and safe
// for concurrent use.
type Registry struct {
	handlers map[string]*Handler
	names    []string
}

// NewRegistry validates handlers and indexes them by name.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{
		handlers: make(map[string]*Handler, len(handlers)),
		names:    make([]string, 0, len(handlers)),
	}
	for i := range handlers {
		h := handlers[i]
		if err := validateHandler(&h); err != nil {
			return nil, err
		}
		if _, dup := r.handlers[h.Name]; dup {
			return nil, &ProgrammingError{Message: fmt.Sprintf("duplicate handler %q", h.Name)}
		}
		r.handlers[h.Name] = &h
		r.names = append(r.names, h.Name)
	}
	return r, nil
}

func validateHandler(h *Handler) error {
	switch {
	case h.Name == "":
		return &ProgrammingError{Message: "handler name is empty"}
	case strings.HasPrefix(h.Name, "-"):
		return &ProgrammingError{Message: fmt.Sprintf("handler %q: name must not start with '-'", h.Name)}
	case h.call == nil:
		return &ProgrammingError{Message: fmt.Sprintf("handler %q has no function", h.Name)}
	case h.Variadic && len(h.Params) == 0:
		return &ProgrammingError{Message: fmt.Sprintf("handler %q: variadic handler needs an element kind", h.Name)}
	}
	for _, k := range h.Params {
		if !k.Valid() {
			return &ProgrammingError{Message: fmt.Sprintf("handler %q: unknown parameter %s", h.Name, k)}
		}
	}
	return nil
}

// Normalize strips up to two leading dashes from token, always keeping at
// least one character: "--" becomes "-" and "---x" becomes "-x".
func Normalize(token string) string {
	for i := 0; i < 2 && len(token) > 1 && token[0] == '-'; i++ {
		token = token[1:]
	}
	return token
}

// Normalize strips leading dashes the way lookups do.
func (r *Registry) Normalize(token string) string { return Normalize(token) }

// Lookup returns the handler registered under the normalized token.
func (r *Registry) Lookup(token string) (*Handler, bool) {
	h, ok := r.handlers[Normalize(token)]
	return h, ok
}

// IsFlag reports whether token names a registered handler.
func (r *Registry) IsFlag(token string) bool {
	_, ok := r.handlers[Normalize(token)]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int { return len(r.names) }
