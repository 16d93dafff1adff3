package calc

import (
	"fmt"
	"unicode/utf8"
)

const (
	defaultRecursionLimit = 256
	defaultMaxTokens      = 4096
)

// Config bounds the work a single evaluation may do.
type Config struct {
	RecursionLimit int
	MaxTokens      int
}

// Engine evaluates expression lines. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	config Config
}

// EvaluatorFunc evaluates one line in a fixed notation.
type EvaluatorFunc func(line string) (Number, error)

var defaultEngine = MustNewEngine(Config{})

// NewEngine constructs an Engine, filling zero limits with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must be non-negative, got %d", cfg.RecursionLimit)
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens must be non-negative, got %d", cfg.MaxTokens)
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine is like NewEngine but panics on an invalid Config.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config {
	return e.config
}

// Evaluate scans line and evaluates it in notation n.
func (e *Engine) Evaluate(line string, n Notation) (Number, error) {
	ev := &evaluation{engine: e, notation: n, source: line}
	cur := newCursor(line, e.config.MaxTokens)
	switch n {
	case Prefix:
		return ev.evalPrefix(cur)
	case Postfix:
		return ev.evalPostfix(cur)
	case Infix:
		return ev.evalInfix(cur)
	default:
		return Number{}, fmt.Errorf("unknown notation %d", int(n))
	}
}

// Evaluator returns an EvaluatorFunc bound to e and n.
func (e *Engine) Evaluator(n Notation) EvaluatorFunc {
	return func(line string) (Number, error) {
		return e.Evaluate(line, n)
	}
}

// Evaluate evaluates line in notation n with the default engine.
func Evaluate(line string, n Notation) (Number, error) {
	return defaultEngine.Evaluate(line, n)
}

func EvaluatePrefix(line string) (Number, error) {
	return defaultEngine.Evaluate(line, Prefix)
}

func EvaluatePostfix(line string) (Number, error) {
	return defaultEngine.Evaluate(line, Postfix)
}

func EvaluateInfix(line string) (Number, error) {
	return defaultEngine.Evaluate(line, Infix)
}

// cursor is the single read position shared by every level of a recursive
// evaluation.
type cursor struct {
	l     *lexer
	read  int
	limit int
	end   Position
}

func newCursor(line string, limit int) *cursor {
	return &cursor{
		l:     newLexer(line),
		limit: limit,
		end:   Position{Column: utf8.RuneCountInString(line) + 1},
	}
}

// next returns the next token. done is true once the line is exhausted.
func (c *cursor) next() (tok Token, done bool, err error) {
	tok, ok := c.l.NextToken()
	if !ok {
		return Token{}, true, nil
	}
	c.read++
	if c.read > c.limit {
		return tok, false, errTooManyTokens
	}
	return tok, false, nil
}

var errTooManyTokens = fmt.Errorf("%w: too many tokens", ErrInvalidExpression)

// evaluation carries the read-only context of one Evaluate call.
type evaluation struct {
	engine   *Engine
	notation Notation
	source   string
}

func (ev *evaluation) invalid(pos Position, format string, args ...any) error {
	return &EvalError{
		Notation: ev.notation,
		Pos:      pos,
		Msg:      fmt.Sprintf(format, args...),
		Source:   ev.source,
		Err:      ErrInvalidExpression,
	}
}

func (ev *evaluation) unexpected(tok Token) error {
	if tok.Type == TokenIllegal {
		return ev.invalid(tok.Pos, "%s", illegalReason(tok))
	}
	return ev.invalid(tok.Pos, "unexpected %s", tokenLabel(tok.Type))
}

func (ev *evaluation) limitExceeded(tok Token) error {
	return ev.invalid(tok.Pos, "expression exceeds %d tokens", ev.engine.config.MaxTokens)
}

func (ev *evaluation) tooDeep(tok Token) error {
	return ev.invalid(tok.Pos, "expression nested deeper than %d levels", ev.engine.config.RecursionLimit)
}

func (ev *evaluation) apply(op Token, left, right Number) (Number, error) {
	result, err := applyOperator(op.Type, left, right)
	if err != nil {
		return Number{}, &EvalError{
			Notation: ev.notation,
			Pos:      op.Pos,
			Msg:      err.Error(),
			Source:   ev.source,
			Err:      err,
		}
	}
	return result, nil
}

// next reads one token, translating a token-limit breach into an EvalError.
func (ev *evaluation) next(cur *cursor) (Token, bool, error) {
	tok, done, err := cur.next()
	if err != nil {
		return Token{}, false, ev.limitExceeded(tok)
	}
	return tok, done, nil
}

// expectEnd rejects any token left after a complete expression.
func (ev *evaluation) expectEnd(cur *cursor) error {
	tok, done, err := ev.next(cur)
	if err != nil {
		return err
	}
	if !done {
		return ev.invalid(tok.Pos, "unexpected trailing %s", tokenLabel(tok.Type))
	}
	return nil
}
