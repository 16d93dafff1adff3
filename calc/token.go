package calc

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenIllegal TokenType = "ILLEGAL"

	TokenInt   TokenType = "INT"
	TokenFloat TokenType = "FLOAT"

	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"

	TokenLParen TokenType = "("
	TokenRParen TokenType = ")"
)

// Token captures one lexical unit of an expression line. Value is only
// meaningful for INT and FLOAT tokens.
type Token struct {
	Type    TokenType
	Literal string
	Value   Number
	Pos     Position
}

// Position identifies the 1-based rune column of a token in its line.
type Position struct {
	Column int
}

func (t Token) IsNumber() bool {
	return t.Type == TokenInt || t.Type == TokenFloat
}

func (t Token) IsOperator() bool {
	switch t.Type {
	case TokenPlus, TokenMinus, TokenAsterisk, TokenSlash:
		return true
	default:
		return false
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s @%d", t.Type, t.Literal, t.Pos.Column)
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case TokenIllegal:
		return "invalid token"
	case TokenInt:
		return "integer"
	case TokenFloat:
		return "float"
	default:
		return fmt.Sprintf("%q", string(tt))
	}
}
