package calc

import (
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

type scanState int

const (
	stateIdle scanState = iota
	stateNumber
)

// lexer is a single-pass scanner over one line. Tokens are produced on
// demand; once a token has been returned it is never produced again.
type lexer struct {
	input string

	offset int
	state  scanState

	start   int
	isFloat bool

	pending *Token
}

func newLexer(input string) *lexer {
	// The trailing space closes a number literal that ends the line.
	return &lexer{input: input + " "}
}

// NextToken returns the next token, or false once the line is exhausted.
func (l *lexer) NextToken() (Token, bool) {
	if l.pending != nil {
		tok := *l.pending
		l.pending = nil
		return tok, true
	}

	for l.offset < len(l.input) {
		pos := l.offset
		ch := l.input[pos]
		l.offset++

		switch l.state {
		case stateIdle:
			if tt, ok := symbolType(ch); ok {
				return l.makeToken(tt, pos), true
			}
			if isDigit(ch) {
				l.state = stateNumber
				l.start = pos
				l.isFloat = false
			}
		case stateNumber:
			switch {
			case isDigit(ch):
			case ch == '.':
				l.isFloat = true
			default:
				l.state = stateIdle
				tok := l.readNumber(pos)
				if tt, ok := symbolType(ch); ok {
					sym := l.makeToken(tt, pos)
					l.pending = &sym
				}
				return tok, true
			}
		}
	}
	return Token{}, false
}

func (l *lexer) readNumber(end int) Token {
	literal := l.input[l.start:end]
	tok := Token{Literal: literal, Pos: l.position(l.start)}
	if !l.isFloat {
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			tok.Type = TokenIllegal
			return tok
		}
		tok.Type = TokenInt
		tok.Value = NewInt(n)
		return tok
	}
	// A second decimal point is absorbed into the literal and rejected here.
	if strings.Count(literal, ".") > 1 {
		tok.Type = TokenIllegal
		return tok
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		tok.Type = TokenIllegal
		return tok
	}
	tok.Type = TokenFloat
	tok.Value = NewFloat(f)
	return tok
}

func (l *lexer) makeToken(tt TokenType, offset int) Token {
	return Token{Type: tt, Literal: string(tt), Pos: l.position(offset)}
}

func (l *lexer) position(offset int) Position {
	return Position{Column: utf8.RuneCountInString(l.input[:offset]) + 1}
}

func symbolType(ch byte) (TokenType, bool) {
	switch ch {
	case '+':
		return TokenPlus, true
	case '-':
		return TokenMinus, true
	case '*':
		return TokenAsterisk, true
	case '/':
		return TokenSlash, true
	case '(':
		return TokenLParen, true
	case ')':
		return TokenRParen, true
	default:
		return "", false
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokens returns the lazy token sequence of line. Each iteration scans the
// line afresh.
func Tokens(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := newLexer(line)
		for {
			tok, ok := l.NextToken()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize scans line completely and returns its tokens in order.
func Tokenize(line string) []Token {
	return slices.Collect(Tokens(line))
}

func illegalReason(tok Token) string {
	if strings.Count(tok.Literal, ".") > 1 {
		return "malformed number " + strconv.Quote(tok.Literal)
	}
	return "number " + strconv.Quote(tok.Literal) + " is out of range"
}
