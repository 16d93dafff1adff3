package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTok(t *testing.T, actual Token, typ TokenType, literal string, column int) {
	t.Helper()
	require.Equal(t, typ, actual.Type, "token type")
	require.Equal(t, literal, actual.Literal, "token literal")
	require.Equal(t, column, actual.Pos.Column, "token column")
}

func TestTokenizeIntegersAndOperator(t *testing.T) {
	tokens := Tokenize("12+3")
	require.Len(t, tokens, 3)
	requireTok(t, tokens[0], TokenInt, "12", 1)
	requireTok(t, tokens[1], TokenPlus, "+", 3)
	requireTok(t, tokens[2], TokenInt, "3", 4)
	assert.True(t, tokens[0].Value.Equal(NewInt(12)))
	assert.True(t, tokens[2].Value.Equal(NewInt(3)))
}

func TestTokenizeFloatLiteral(t *testing.T) {
	tokens := Tokenize("3.5*2")
	require.Len(t, tokens, 3)
	requireTok(t, tokens[0], TokenFloat, "3.5", 1)
	requireTok(t, tokens[1], TokenAsterisk, "*", 4)
	requireTok(t, tokens[2], TokenInt, "2", 5)
	assert.Equal(t, KindFloat, tokens[0].Value.Kind())
	assert.Equal(t, 3.5, tokens[0].Value.Float())
	assert.Equal(t, KindInt, tokens[2].Value.Kind())
}

func TestTokenizeTrailingDotIsFloat(t *testing.T) {
	tokens := Tokenize("7.")
	require.Len(t, tokens, 1)
	requireTok(t, tokens[0], TokenFloat, "7.", 1)
	assert.True(t, tokens[0].Value.Equal(NewFloat(7)))
}

func TestTokenizeEmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t "))
}

func TestTokenizeSkipsUnknownCharacters(t *testing.T) {
	tokens := Tokenize("abc ( 1 x 2 ) ?")
	require.Len(t, tokens, 4)
	requireTok(t, tokens[0], TokenLParen, "(", 5)
	requireTok(t, tokens[1], TokenInt, "1", 7)
	requireTok(t, tokens[2], TokenInt, "2", 11)
	requireTok(t, tokens[3], TokenRParen, ")", 13)
}

func TestTokenizeLetterTerminatesNumber(t *testing.T) {
	tokens := Tokenize("12a34")
	require.Len(t, tokens, 2)
	requireTok(t, tokens[0], TokenInt, "12", 1)
	requireTok(t, tokens[1], TokenInt, "34", 4)
}

func TestTokenizeOperatorClosesNumber(t *testing.T) {
	tokens := Tokenize("(1.5/2)")
	require.Len(t, tokens, 5)
	requireTok(t, tokens[0], TokenLParen, "(", 1)
	requireTok(t, tokens[1], TokenFloat, "1.5", 2)
	requireTok(t, tokens[2], TokenSlash, "/", 5)
	requireTok(t, tokens[3], TokenInt, "2", 6)
	requireTok(t, tokens[4], TokenRParen, ")", 7)
}

func TestTokenizeLeadingDotIsSkipped(t *testing.T) {
	tokens := Tokenize(".5")
	require.Len(t, tokens, 1)
	requireTok(t, tokens[0], TokenInt, "5", 2)
}

func TestTokenizeSecondDecimalPointIsIllegal(t *testing.T) {
	tokens := Tokenize("1.2.3 4")
	require.Len(t, tokens, 2)
	requireTok(t, tokens[0], TokenIllegal, "1.2.3", 1)
	requireTok(t, tokens[1], TokenInt, "4", 7)
}

func TestTokenizeOversizedIntegerIsIllegal(t *testing.T) {
	tokens := Tokenize("99999999999999999999")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenIllegal, tokens[0].Type)
	assert.Contains(t, illegalReason(tokens[0]), "out of range")
}

func TestTokenizeColumnsCountRunes(t *testing.T) {
	tokens := Tokenize("é + 1")
	require.Len(t, tokens, 2)
	requireTok(t, tokens[0], TokenPlus, "+", 3)
	requireTok(t, tokens[1], TokenInt, "1", 5)
}

func TestTokensIsLazy(t *testing.T) {
	var seen []TokenType
	for tok := range Tokens("1 2 + 3 4") {
		seen = append(seen, tok.Type)
		if tok.Type == TokenPlus {
			break
		}
	}
	assert.Equal(t, []TokenType{TokenInt, TokenInt, TokenPlus}, seen)
}

func TestLexerEmitsOperatorAfterNumber(t *testing.T) {
	l := newLexer("1-")
	first, ok := l.NextToken()
	require.True(t, ok)
	requireTok(t, first, TokenInt, "1", 1)
	second, ok := l.NextToken()
	require.True(t, ok)
	requireTok(t, second, TokenMinus, "-", 2)
	_, ok = l.NextToken()
	require.False(t, ok)
	_, ok = l.NextToken()
	require.False(t, ok, "exhausted lexer must stay exhausted")
}
