package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func texts(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out
}

// requireSingleToken tokenizes input and checks it produced exactly one token
// of the given kind covering the whole input.
func requireSingleToken(t *testing.T, input string, kind TokenKind) Token {
	t.Helper()

	tokens, err := Tokenize(input)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(tokens), "token count mismatch for %q", input)
	assert.Equal(t, kind, tokens[0].Kind)
	assert.Equal(t, input, tokens[0].Text)
	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, len(input), tokens[0].End)
	return tokens[0]
}

func TestLexerEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \t\n "} {
		tokens, err := Tokenize(input)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(tokens))
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenKind
	}{
		{"SELECT", SELECT},
		{"FROM", FROM},
		{"WHERE", WHERE},
		{"ORDER", ORDER},
		{"GROUP", GROUP},
		{"OFFSET", OFFSET},
		{"LIMIT", LIMIT},
		{"JOIN", JOIN},
		{"IN", IN},
		{"select", SELECT},
		{"SeLeCt", SELECT},
		{"limit", LIMIT},
		{"joIN", JOIN},
		{"in", IN},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := requireSingleToken(t, tt.input, tt.want)
			assert.True(t, tok.Kind.IsKeyword())
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{"foo", "person", "awd242453", "_test", "selection", "fromage", "Index", "IN_"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok := requireSingleToken(t, input, IDENTIFIER)
			assert.False(t, tok.Kind.IsKeyword())
		})
	}
}

func TestLexerSingleCharTokens(t *testing.T) {
	tests := []struct {
		input string
		want  TokenKind
	}{
		{"*", STAR},
		{"{", LEFT_BRACE},
		{"}", RIGHT_BRACE},
		{"(", LEFT_PAREN},
		{")", RIGHT_PAREN},
		{".", DOT},
		{",", COMMA},
		{";", SEMICOLON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireSingleToken(t, tt.input, tt.want)
		})
	}
}

func TestLexerOperators(t *testing.T) {
	for _, input := range []string{"<", "<=", ">", ">=", "!", "!=", "=", "==", "+", "-", "/"} {
		t.Run(input, func(t *testing.T) {
			requireSingleToken(t, input, OPERATOR)
		})
	}

	t.Run("AtMostTwoCharacters", func(t *testing.T) {
		tokens, err := Tokenize("<==")
		assert.NoError(t, err)
		assert.Equal(t, []string{"<=", "="}, texts(tokens))
		assert.Equal(t, []TokenKind{OPERATOR, OPERATOR}, kinds(tokens))
	})

	t.Run("PlusDoesNotCombine", func(t *testing.T) {
		tokens, err := Tokenize("+=")
		assert.NoError(t, err)
		assert.Equal(t, []string{"+", "="}, texts(tokens))
	})
}

func TestLexerStrings(t *testing.T) {
	tests := []string{
		`"test"`,
		`'test'`,
		"'test\n'",
		`'test  test'`,
		`'test\'test'`,
		`'a\'b'`,
		`"with \"quotes\""`,
		`'it"s'`,
		`"it's"`,
		`''`,
		`'trailing backslash\\'`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			requireSingleToken(t, input, STRING)
		})
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		col   int
	}{
		{"NoClosingQuote", "'abc", 1, 1},
		{"MismatchedQuote", `'abc"`, 1, 1},
		{"EscapedClosingQuote", `'abc\'`, 1, 1},
		{"BackslashAtEnd", `'abc\`, 1, 1},
		{"AfterOtherTokens", "SELECT a,\n  \"b", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.Error(t, err)
			assert.Equal(t, 0, len(tokens))
			assert.True(t, errors.Is(err, ErrUnterminatedString))

			var strErr *UnterminatedStringError
			assert.True(t, errors.As(err, &strErr))
			assert.Equal(t, tt.line, strErr.Pos.Line)
			assert.Equal(t, tt.col, strErr.Pos.Column)
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1", 1},
		{"42", 42},
		{"1.0", 1.0},
		{".01", 0.01},
		{"1.", 1},
		{"1e4", 1e4},
		{"2E3", 2e3},
		{"1.e2", 100},
		{"0x1", 1},
		{"0x1A", 26},
		{"0xabcdef", 0xabcdef},
		{"0XABCDEF", 0xabcdef},
		{"007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := requireSingleToken(t, tt.input, NUMBER)
			assert.Equal(t, tt.want, tok.Value)
		})
	}

	t.Run("Overflow", func(t *testing.T) {
		tok := requireSingleToken(t, "1e999", NUMBER)
		assert.True(t, math.IsInf(tok.Value, 1))
	})
}

func TestLexerNumberBoundaries(t *testing.T) {
	tests := []struct {
		input     string
		wantKinds []TokenKind
		wantTexts []string
	}{
		{"1.5e3", []TokenKind{NUMBER, IDENTIFIER}, []string{"1.5", "e3"}},
		{"1e", []TokenKind{NUMBER, IDENTIFIER}, []string{"1", "e"}},
		{"1e+4", []TokenKind{NUMBER, IDENTIFIER, OPERATOR, NUMBER}, []string{"1", "e", "+", "4"}},
		{"0x", []TokenKind{NUMBER, IDENTIFIER}, []string{"0", "x"}},
		{"0xg", []TokenKind{NUMBER, IDENTIFIER}, []string{"0", "xg"}},
		{"0x1.5", []TokenKind{NUMBER, NUMBER}, []string{"0x1", ".5"}},
		{"1.2.3", []TokenKind{NUMBER, NUMBER}, []string{"1.2", ".3"}},
		{"a.b", []TokenKind{IDENTIFIER, DOT, IDENTIFIER}, []string{"a", ".", "b"}},
		{"a.1", []TokenKind{IDENTIFIER, NUMBER}, []string{"a", ".1"}},
		{"12abc", []TokenKind{NUMBER, IDENTIFIER}, []string{"12", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKinds, kinds(tokens))
			assert.Equal(t, tt.wantTexts, texts(tokens))
		})
	}
}

func TestLexerUnknown(t *testing.T) {
	tests := []string{"@", "#", "$", "\r", "é", "日", "[", "]"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			requireSingleToken(t, input, UNKNOWN)
		})
	}

	t.Run("DoesNotStopScanning", func(t *testing.T) {
		tokens, err := Tokenize("a @ b")
		assert.NoError(t, err)
		assert.Equal(t, []TokenKind{IDENTIFIER, UNKNOWN, IDENTIFIER}, kinds(tokens))
	})
}

func TestLexerPhrases(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{"SELECT * FROM c", []TokenKind{SELECT, STAR, FROM, IDENTIFIER}},
		{"SELECT a, 1, 'x' FROM people", []TokenKind{SELECT, IDENTIFIER, COMMA, NUMBER, COMMA, STRING, FROM, IDENTIFIER}},
		{"SELECT c.name FROM c WHERE c.age >= 18;", []TokenKind{
			SELECT, IDENTIFIER, DOT, IDENTIFIER, FROM, IDENTIFIER,
			WHERE, IDENTIFIER, DOT, IDENTIFIER, OPERATOR, NUMBER, SEMICOLON,
		}},
		{"select{a}(b)", []TokenKind{SELECT, LEFT_BRACE, IDENTIFIER, RIGHT_BRACE, LEFT_PAREN, IDENTIFIER, RIGHT_PAREN}},
		{"x IN (1,2) ORDER GROUP OFFSET LIMIT JOIN", []TokenKind{
			IDENTIFIER, IN, LEFT_PAREN, NUMBER, COMMA, NUMBER, RIGHT_PAREN,
			ORDER, GROUP, OFFSET, LIMIT, JOIN,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestLexerIsDeterministic(t *testing.T) {
	input := "SELECT a, 0x1F, \"s\" FROM c WHERE a != 'b'"

	first, err := Tokenize(input)
	assert.NoError(t, err)
	second, err := Tokenize(input)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestKeywords(t *testing.T) {
	want := []string{"FROM", "GROUP", "IN", "JOIN", "LIMIT", "OFFSET", "ORDER", "SELECT", "WHERE"}
	assert.Equal(t, want, Keywords())
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, "LEFT_PAREN", LEFT_PAREN.String())
	assert.Equal(t, "IDENTIFIER", IDENTIFIER.String())
	assert.Equal(t, "UNKNOWN", UNKNOWN.String())
	assert.Equal(t, "UNKNOWN", TokenKind(200).String())
	assert.True(t, strings.EqualFold("select", SELECT.String()))
}
