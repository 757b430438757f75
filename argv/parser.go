package argv

import (
	"io"
	"log/slog"
	"slices"

	"github.com/dzonerzy/go-argv/internal/fuzzy"
	"github.com/dzonerzy/go-argv/middleware"
)

// DefaultFunc handles a token that names no registered handler. The token is
// still at the head of q. The function must remove at least the tokens it
// handled and report whether it understood them. q is reused by later
// parses once the call returns; do not retain it.
type DefaultFunc func(q *Queue) bool

// ParseState is the state of the dispatch loop.
type ParseState int

const (
	StateRunning ParseState = iota
	StateFailed
	StateDone
)

func (s ParseState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Call records one handler invocation.
type Call struct {
	Flag  string   // normalized name
	Token string   // token as given
	Args  []string // argument tokens consumed
}

// Result is the outcome of one parse.
type Result struct {
	OK    bool
	Err   error // first failure, nil when OK
	Calls []Call
}

// Parser dispatches tokens to the handlers of its registry. Configure it
// before the first parse; Run and Parse may then be called concurrently.
type Parser struct {
	registry    *Registry
	usage       func()
	fallback    DefaultFunc
	valid       func() bool
	chain       middleware.MiddlewareChain
	invokers    map[string]middleware.InvokeFunc
	logger      *slog.Logger
	maxDistance int
}

// NewParser builds a parser over handlers. The usage reporter defaults to a
// no-op, the default handler rejects every unknown token and the validity
// predicate accepts every parse.
func NewParser(handlers ...Handler) (*Parser, error) {
	r, err := NewRegistry(handlers...)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		registry:    r,
		usage:       func() {},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDistance: 2,
	}
	p.rebuild()
	return p, nil
}

// New is like NewParser but panics with a *ProgrammingError when the handler
// set is invalid.
func New(handlers ...Handler) *Parser {
	p, err := NewParser(handlers...)
	if err != nil {
		panic(err)
	}
	return p
}

// OnUsage sets the usage reporter, invoked once after a failed parse.
func (p *Parser) OnUsage(fn func()) *Parser {
	if fn == nil {
		fn = func() {}
	}
	p.usage = fn
	return p
}

// OnDefault replaces the default handler. A nil fn restores the built-in one.
func (p *Parser) OnDefault(fn DefaultFunc) *Parser {
	p.fallback = fn
	return p
}

// Validate sets the predicate evaluated after every token was handled.
func (p *Parser) Validate(fn func() bool) *Parser {
	p.valid = fn
	return p
}

// Use appends handler middleware. Recovery always wraps the whole chain.
func (p *Parser) Use(mw ...middleware.Middleware) *Parser {
	p.chain = p.chain.Use(mw...)
	p.rebuild()
	return p
}

// Logger sets the logger used to trace dispatch.
func (p *Parser) Logger(l *slog.Logger) *Parser {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p.logger = l
	return p
}

// Suggestions sets the maximum edit distance for "did you mean" hints on
// unknown flags. Zero disables them.
func (p *Parser) Suggestions(maxDistance int) *Parser {
	p.maxDistance = maxDistance
	return p
}

// Registry returns the parser's handler registry.
func (p *Parser) Registry() *Registry { return p.registry }

func (p *Parser) rebuild() {
	chain := middleware.Chain(middleware.Recovery()).Use(p.chain...)
	p.invokers = make(map[string]middleware.InvokeFunc, p.registry.Len())
	for _, h := range p.registry.handlers {
		call := h.call
		p.invokers[h.Name] = chain.Apply(func(inv *middleware.Invocation) (bool, error) {
			return call(inv.Values)
		})
	}
}

// Parse runs the tokens and reports success. It panics with a *ProgressFault
// when the default handler consumes nothing.
func (p *Parser) Parse(args ...string) bool {
	res, err := p.Run(args)
	if err != nil {
		panic(err)
	}
	return res.OK
}

// Run dispatches args and returns the outcome. The error is non-nil only for
// a *ProgressFault; every other failure is reported in Result.Err after the
// usage reporter ran.
func (p *Parser) Run(args []string) (*Result, error) {
	q := queuePool.Get()
	defer queuePool.Put(q)
	q.tokens = args
	q.registry = p.registry

	res := &Result{OK: true}
	state := StateRunning

	for state == StateRunning {
		token, ok := q.Peek()
		if !ok {
			state = StateDone
			break
		}

		if h, found := p.registry.Lookup(token); found {
			q.Pop()
			if err := p.dispatch(q, h, token, args, res); err != nil {
				res.Err = err
				state = StateFailed
			}
			continue
		}

		before := q.Len()
		accepted := p.runDefault(q)
		if q.Len() >= before {
			fault := &ProgressFault{Token: token}
			p.logger.Error("default handler made no progress", "token", token)
			res.OK = false
			res.Err = fault
			return res, fault
		}
		if !accepted {
			res.Err = p.unknown(token)
			state = StateFailed
		}
	}

	if state == StateDone && p.valid != nil && !p.valid() {
		res.Err = ErrInvalid
		state = StateFailed
	}

	if state == StateFailed {
		res.OK = false
		p.logger.Warn("parse failed", "error", res.Err)
		p.usage()
	}
	return res, nil
}

func (p *Parser) dispatch(q *Queue, h *Handler, token string, all []string, res *Result) error {
	tokens, err := take(q, h)
	if err != nil {
		return err
	}
	values, err := BuildArguments(tokens, h.Descriptor)
	if err != nil {
		return err
	}

	p.logger.Debug("dispatch", "flag", h.Name, "args", tokens)
	res.Calls = append(res.Calls, Call{Flag: h.Name, Token: token, Args: tokens})

	inv := &middleware.Invocation{Flag: h.Name, Token: token, Args: tokens, Values: values}
	ok, err := p.invokers[h.Name](inv)
	if err != nil || !ok {
		return &HandlerError{Flag: h.Name, Tokens: slices.Clone(all), Cause: err}
	}
	return nil
}

func (p *Parser) runDefault(q *Queue) bool {
	if p.fallback != nil {
		return p.fallback(q)
	}
	q.Clear()
	return false
}

func (p *Parser) unknown(token string) error {
	err := &UnknownFlagError{Flag: token}
	if p.maxDistance > 0 {
		err.Suggestion = fuzzy.FindBestFlag(Normalize(token), p.registry.names, p.maxDistance)
	}
	return err
}
