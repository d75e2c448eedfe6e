package parser

import (
	"strings"

	"github.com/robinvdvleuten/cosmosql/ast"
)

// Cursor helpers. The parser reads the token slice strictly forward; none of
// these methods move the cursor backwards.

// peek returns the current token, or the end-of-input sentinel once the
// tokens are exhausted.
func (p *Parser) peek() Token {
	return p.peekAhead(0)
}

func (p *Parser) peekAhead(n int) Token {
	pos := p.pos + n
	if pos >= len(p.tokens) {
		return p.endOfInput()
	}
	return p.tokens[pos]
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) check(kind TokenKind) bool {
	return !p.isAtEnd() && p.tokens[p.pos].Kind == kind
}

// advance returns the current token and moves past it.
func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// match consumes the current token only if it has the given kind.
func (p *Parser) match(kind TokenKind) (Token, bool) {
	if !p.check(kind) {
		return Token{}, false
	}
	return p.advance(), true
}

// expect behaves like match but fails with a ParseError on mismatch.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	if tok, ok := p.match(kind); ok {
		return tok, nil
	}
	return Token{}, p.errorAtToken(p.peek(), kind.String())
}

// endOfInput builds the sentinel returned past the last token. It sits
// directly after the final token so errors point at the end of the query.
func (p *Parser) endOfInput() Token {
	tok := Token{Kind: UNKNOWN, Text: EndOfInput, Line: 1, Column: 1}
	if len(p.tokens) == 0 {
		return tok
	}

	last := p.tokens[len(p.tokens)-1]
	tok.Start = last.End
	tok.End = last.End
	tok.Line = last.Line
	tok.Column = last.Column + last.Len()
	if n := strings.Count(last.Text, "\n"); n > 0 {
		tok.Line += n
		tok.Column = len(last.Text) - strings.LastIndexByte(last.Text, '\n')
	}
	return tok
}

// Error helpers

func (p *Parser) errorAtToken(tok Token, expected string) error {
	return &ParseError{
		Pos:      tokenPosition(tok, p.filename),
		Expected: expected,
		Got:      tok.Text,
	}
}

// tokenPosition extracts position information from a token.
func tokenPosition(tok Token, filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}
