package parser

// Lexer implements a single-pass scanner for query text.
//
// The scanner keeps one cursor and never backtracks. Whitespace is skipped,
// everything else becomes a token, so the tokens in order (with the skipped
// whitespace put back between them) reproduce the source exactly.

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/cosmosql/ast"
)

// Lexer tokenizes query source text.
type Lexer struct {
	source   string  // Source text
	filename string  // Filename for error reporting
	pos      int     // Current byte position
	line     int     // Current line (1-indexed)
	column   int     // Current column (1-indexed)
	tokens   []Token // Token buffer
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		column:   1,
		tokens:   make([]Token, 0, len(source)/4+1),
	}
}

// Tokenize scans text and returns all of its tokens.
// The only failure is an unterminated string literal.
func Tokenize(text string) ([]Token, error) {
	return NewLexer(text, "").ScanAll()
}

// Keywords returns the clause keywords recognized by the lexer, sorted.
func Keywords() []string {
	words := maps.Keys(keywords)
	slices.Sort(words)
	return words
}

// ScanAll lexes the entire source and returns all tokens.
// On error no tokens are returned; the whole input is rejected.
func (l *Lexer) ScanAll() ([]Token, error) {
	for {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}

	return l.tokens, nil
}

// scanToken scans the next token from the current position.
func (l *Lexer) scanToken() (Token, error) {
	start := l.pos
	startLine := l.line
	startCol := l.column

	ch := l.peek()

	// Numbers come first so ".5" is not read as DOT.
	if isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))) {
		return l.scanNumber(start, startLine, startCol), nil
	}

	if kind, ok := singleCharTokens[ch]; ok {
		l.advance()
		return l.token(kind, start, startLine, startCol), nil
	}

	switch {
	// < > ! = with an optional trailing =
	case ch == '<' || ch == '>' || ch == '!' || ch == '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
		}
		return l.token(OPERATOR, start, startLine, startCol), nil

	case ch == '+' || ch == '-' || ch == '/':
		l.advance()
		return l.token(OPERATOR, start, startLine, startCol), nil

	case ch == '"' || ch == '\'':
		return l.scanString(ch, start, startLine, startCol)

	case isIdentStart(ch):
		return l.scanKeywordOrIdent(start, startLine, startCol), nil

	default:
		// Consume a whole rune so multi-byte characters stay in one token.
		_, size := utf8.DecodeRuneInString(l.source[l.pos:])
		for i := 0; i < size; i++ {
			l.advance()
		}
		return l.token(UNKNOWN, start, startLine, startCol), nil
	}
}

// scanNumber scans a number: 0[xX][0-9a-fA-F]+ or [0-9]*\.?([eE](?=[0-9]))?[0-9]*
func (l *Lexer) scanNumber(start, line, col int) Token {
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') && isHexDigit(l.peekAt(2)) {
		l.advance() // 0
		l.advance() // x
		for isHexDigit(l.peek()) {
			l.advance()
		}

		tok := l.token(NUMBER, start, line, col)
		tok.Value = parseHex(tok.Text[2:])
		return tok
	}

	// Integer part
	for isDigit(l.peek()) {
		l.advance()
	}

	// Optional decimal point
	if l.peek() == '.' {
		l.advance()
	}

	// Exponent marker, but only if a digit follows it
	if (l.peek() == 'e' || l.peek() == 'E') && isDigit(l.peekAt(1)) {
		l.advance()
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	tok := l.token(NUMBER, start, line, col)
	value, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		value = math.NaN()
	}
	tok.Value = value
	return tok
}

// scanString scans a quoted string that ends at the next unescaped quote of
// the same kind. A backslash skips the byte after it; no escapes are decoded.
func (l *Lexer) scanString(quote byte, start, line, col int) (Token, error) {
	l.advance() // opening quote

	for {
		if l.pos >= len(l.source) {
			return Token{}, &UnterminatedStringError{
				Pos: ast.Position{
					Filename: l.filename,
					Offset:   start,
					Line:     line,
					Column:   col,
				},
				Quote: quote,
			}
		}

		ch := l.peek()
		if ch == quote {
			break
		}
		if ch == '\\' {
			l.advance()
		}
		l.advance()
	}

	l.advance() // closing quote

	return l.token(STRING, start, line, col), nil
}

// scanKeywordOrIdent scans a word and classifies it as a keyword or identifier.
func (l *Lexer) scanKeywordOrIdent(start, line, col int) Token {
	for isIdentInner(l.peek()) {
		l.advance()
	}

	tok := l.token(IDENTIFIER, start, line, col)
	if kind, ok := keywords[strings.ToUpper(tok.Text)]; ok {
		tok.Kind = kind
	}
	return tok
}

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.peek()) {
		l.advance()
	}
}

// Helper methods

func (l *Lexer) token(kind TokenKind, start, line, col int) Token {
	return Token{
		Kind:   kind,
		Text:   l.source[start:l.pos],
		Start:  start,
		End:    l.pos,
		Line:   line,
		Column: col,
	}
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentInner(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// parseHex converts hex digits to a float64. Literals wider than 53 bits
// round like any other float; ast.Number.Decimal keeps the exact value.
func parseHex(digits string) float64 {
	var v float64
	for i := 0; i < len(digits); i++ {
		ch := digits[i]
		var d byte
		switch {
		case ch >= '0' && ch <= '9':
			d = ch - '0'
		case ch >= 'a' && ch <= 'f':
			d = ch - 'a' + 10
		default:
			d = ch - 'A' + 10
		}
		v = v*16 + float64(d)
	}
	return v
}
