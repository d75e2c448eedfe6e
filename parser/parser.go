// Package parser turns query text into an AST.
//
// Parsing happens in two eager passes. The Lexer scans the whole source into
// a token slice, then the Parser walks that slice with a forward-only cursor
// and builds an *ast.Select:
//
//	Select   := SELECT ProjList FROM IDENTIFIER
//	ProjList := [ Proj ( "," Proj )* ]
//	Proj     := "*" | Path | Primary
//	Path     := IDENTIFIER ( "." IDENTIFIER )+
//	Primary  := NUMBER | STRING | IDENTIFIER
//
// Only the SELECT ... FROM shape is supported. WHERE, ORDER, GROUP, LIMIT and
// JOIN are recognized by the lexer but never consumed by the parser.
//
// Neither pass shares state between calls, so independent parses may run
// concurrently.
package parser

import (
	"context"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/telemetry"
)

// projectionStart lists the token kinds that can begin a projection.
var projectionStart = []TokenKind{STAR, NUMBER, STRING, IDENTIFIER}

// Parser builds an AST from a token slice.
type Parser struct {
	tokens   []Token
	pos      int
	filename string
}

// NewParser creates a parser over tokens. The filename is only used in error
// positions and may be empty.
func NewParser(tokens []Token, filename string) *Parser {
	return &Parser{
		tokens:   tokens,
		filename: filename,
	}
}

// ParseSelect tokenizes and parses text. It returns an
// *UnterminatedStringError from the lexer or a *ParseError from the parser.
func ParseSelect(text string) (*ast.Select, error) {
	return ParseSelectContext(context.Background(), "", text)
}

// ParseSelectContext is ParseSelect with a filename for error positions and
// telemetry timers taken from ctx.
func ParseSelectContext(ctx context.Context, filename, text string) (*ast.Select, error) {
	sel, _, err := ParseSelectPartial(ctx, filename, text)
	return sel, err
}

// ParseSelectPartial parses the leading SELECT statement of text and also
// returns the tokens that follow it, such as a WHERE clause.
func ParseSelectPartial(ctx context.Context, filename, text string) (*ast.Select, []Token, error) {
	timer := telemetry.StartTimer(ctx, "tokenize")
	tokens, err := NewLexer(text, filename).ScanAll()
	timer.End()
	if err != nil {
		return nil, nil, err
	}

	timer = telemetry.StartTimer(ctx, "parse")
	defer timer.End()

	p := NewParser(tokens, filename)
	sel, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return sel, p.Remaining(), nil
}

// Parse parses a SELECT statement from the token stream.
// Tokens following the FROM source are left unconsumed; see Remaining.
func (p *Parser) Parse() (*ast.Select, error) {
	return p.parseSelect()
}

// Remaining returns the tokens the parser has not consumed.
func (p *Parser) Remaining() []Token {
	return p.tokens[p.pos:]
}

func (p *Parser) parseSelect() (*ast.Select, error) {
	selectTok, err := p.expect(SELECT)
	if err != nil {
		return nil, err
	}

	projections, err := p.parseProjections()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(FROM); err != nil {
		return nil, err
	}

	from, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	return &ast.Select{
		Pos:         tokenPosition(selectTok, p.filename),
		Projections: projections,
		From:        from.Text,
		Span:        ast.Span{Start: selectTok.Start, End: from.End},
	}, nil
}

// parseProjections parses projections until the current token cannot start
// one. Running out of projections is not an error; whatever follows is
// checked by the caller. A missing comma also ends the list.
func (p *Parser) parseProjections() ([]ast.Projection, error) {
	var projections []ast.Projection

	for slices.Contains(projectionStart, p.peek().Kind) {
		proj, err := p.parseProjection()
		if err != nil {
			return nil, err
		}
		projections = append(projections, proj)

		if _, ok := p.match(COMMA); !ok {
			break
		}
	}

	return projections, nil
}

func (p *Parser) parseProjection() (ast.Projection, error) {
	switch p.peek().Kind {
	case STAR:
		p.advance()
		return ast.NewStar(), nil
	case IDENTIFIER:
		if p.peekAhead(1).Kind == DOT {
			return p.parsePath()
		}
	}
	return p.parsePrimary()
}

// parsePath parses a dotted member-access chain: c.address.city
func (p *Parser) parsePath() (ast.Projection, error) {
	head := p.advance()
	path := &ast.PathExpr{
		Segments: []ast.PathSegment{ast.NameSegment(head.Text)},
	}

	for p.check(DOT) {
		p.advance()
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, ast.NameSegment(name.Text))
	}

	return path, nil
}

func (p *Parser) parsePrimary() (ast.Primary, error) {
	tok := p.peek()

	var primary ast.Primary
	switch tok.Kind {
	case NUMBER:
		primary = ast.NewNumberWithRaw(tok.Value, tok.Text)
	case STRING:
		primary = ast.NewString(tok.Text)
	case IDENTIFIER:
		primary = ast.NewIdentifier(tok.Text)
	default:
		return nil, p.errorAtToken(tok, "NUMBER, STRING or IDENTIFIER")
	}

	p.advance()
	return primary, nil
}
