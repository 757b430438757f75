package argv

import (
	"slices"

	"github.com/dzonerzy/go-argv/internal/pool"
)

// Queue is the ordered, consumable token input of a single parse. The default
// handler receives it and must remove every token it handles.
type Queue struct {
	tokens   []string
	pos      int
	registry *Registry
}

// NewQueue returns a queue over tokens. Flag checks use r, which may be nil.
func NewQueue(tokens []string, r *Registry) *Queue {
	return &Queue{tokens: tokens, registry: r}
}

var queuePool = pool.NewPoolWithReset(
	func() *Queue { return &Queue{} },
	func(q *Queue) {
		q.tokens = nil
		q.pos = 0
		q.registry = nil
	},
)

// Peek returns the next token without removing it.
func (q *Queue) Peek() (string, bool) {
	if q.pos >= len(q.tokens) {
		return "", false
	}
	return q.tokens[q.pos], true
}

// Pop removes and returns the next token.
func (q *Queue) Pop() (string, bool) {
	tok, ok := q.Peek()
	if ok {
		q.pos++
	}
	return tok, ok
}

// Len returns the number of tokens left.
func (q *Queue) Len() int { return len(q.tokens) - q.pos }

// Remaining returns a copy of the tokens left.
func (q *Queue) Remaining() []string { return slices.Clone(q.tokens[q.pos:]) }

// Clear drops every remaining token.
func (q *Queue) Clear() { q.pos = len(q.tokens) }

// IsFlag reports whether token names a registered handler.
func (q *Queue) IsFlag(token string) bool {
	return q.registry != nil && q.registry.IsFlag(token)
}

// take pops the argument tokens of h: one per fixed parameter whatever their
// content, then for a variadic handler every token up to the next flag.
func take(q *Queue, h *Handler) ([]string, error) {
	start := q.pos
	fixed := len(h.Fixed())
	if q.Len() < fixed {
		got := q.Len()
		q.Clear()
		return nil, &ArityError{Flag: h.Name, Want: fixed, Got: got}
	}
	q.pos += fixed

	if h.Variadic {
		for {
			tok, ok := q.Peek()
			if !ok || q.IsFlag(tok) {
				break
			}
			q.pos++
		}
	}
	return slices.Clone(q.tokens[start:q.pos]), nil
}
