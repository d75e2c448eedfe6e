package parser

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/telemetry"
)

func TestParseSelect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ast.Select
	}{
		{
			name:  "Wildcard",
			input: "SELECT * FROM c",
			want:  ast.NewSelect("c", ast.NewStar()),
		},
		{
			name:  "PrimaryList",
			input: "SELECT a, 1, 'x' FROM people",
			want: ast.NewSelect("people",
				ast.NewIdentifier("a"),
				ast.NewNumberWithRaw(1, "1"),
				ast.NewString("'x'"),
			),
		},
		{
			name:  "LowerCaseKeywords",
			input: "select name from Families",
			want:  ast.NewSelect("Families", ast.NewIdentifier("name")),
		},
		{
			name:  "NumbersKeepRawText",
			input: "SELECT 0x1A, .5, 1e4 FROM c",
			want: ast.NewSelect("c",
				ast.NewNumberWithRaw(26, "0x1A"),
				ast.NewNumberWithRaw(0.5, ".5"),
				ast.NewNumberWithRaw(1e4, "1e4"),
			),
		},
		{
			name:  "DoubleQuotedStringKeepsQuotes",
			input: `SELECT "it's" FROM c`,
			want:  ast.NewSelect("c", ast.NewString(`"it's"`)),
		},
		{
			name:  "PathExpressions",
			input: "SELECT c.address.city, c.id FROM c",
			want: ast.NewSelect("c",
				ast.NewPath("c", "address", "city"),
				ast.NewPath("c", "id"),
			),
		},
		{
			name:  "StarMixedWithPrimaries",
			input: "SELECT *, a FROM c",
			want:  ast.NewSelect("c", ast.NewStar(), ast.NewIdentifier("a")),
		},
		{
			name:  "TrailingComma",
			input: "SELECT a, FROM c",
			want:  ast.NewSelect("c", ast.NewIdentifier("a")),
		},
		{
			name:  "EmptyProjectionList",
			input: "SELECT FROM x",
			want:  ast.NewSelect("x"),
		},
		{
			name:  "MultiLine",
			input: "SELECT\n\ta,\n\tb\nFROM\n\tc",
			want:  ast.NewSelect("c", ast.NewIdentifier("a"), ast.NewIdentifier("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelect(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.From, got.From)
			assert.Equal(t, tt.want.Projections, got.Projections, "got %s", repr.String(got.Projections))
		})
	}
}

func TestParseSelectNodeMetadata(t *testing.T) {
	source := "  SELECT * FROM c WHERE c.a = 1"

	sel, err := ParseSelect(source)
	assert.NoError(t, err)

	assert.Equal(t, ast.Position{Offset: 2, Line: 1, Column: 3}, sel.Pos)
	assert.Equal(t, ast.Span{Start: 2, End: 17}, sel.Span)
	assert.Equal(t, "SELECT * FROM c", sel.Span.Text(source))
	assert.Equal(t, "SELECT * FROM c", sel.String())
}

func TestParseSelectIdentifierIsNotString(t *testing.T) {
	sel, err := ParseSelect("SELECT name FROM c")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(sel.Projections))

	_, isIdent := sel.Projections[0].(*ast.Identifier)
	_, isString := sel.Projections[0].(*ast.String)
	assert.True(t, isIdent)
	assert.False(t, isString)
}

func TestParseSelectErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		got      string
		column   int
	}{
		{"MissingFrom", "SELECT *", "FROM", EndOfInput, 9},
		{"EmptyInput", "", "SELECT", EndOfInput, 1},
		{"DoesNotStartWithSelect", "FROM c", "SELECT", "FROM", 1},
		{"MissingSource", "SELECT * FROM", "IDENTIFIER", EndOfInput, 14},
		{"SourceIsKeyword", "SELECT * FROM where", "IDENTIFIER", "where", 15},
		{"SourceIsString", "SELECT * FROM 'c'", "IDENTIFIER", "'c'", 15},
		{"MissingComma", "SELECT a b FROM c", "FROM", "b", 10},
		{"WhereBeforeFrom", "SELECT a WHERE a FROM c", "FROM", "WHERE", 10},
		{"UnknownToken", "SELECT @ FROM c", "FROM", "@", 8},
		{"OperatorProjection", "SELECT a + 1 FROM c", "FROM", "+", 10},
		{"DanglingDot", "SELECT c. FROM c", "IDENTIFIER", "FROM", 11},
		{"DotThenNumber", "SELECT c.1 FROM c", "FROM", ".1", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelect(tt.input)
			assert.Error(t, err)
			assert.True(t, sel == nil)
			assert.True(t, errors.Is(err, ErrParse))

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.expected, parseErr.Expected)
			assert.Equal(t, tt.got, parseErr.Got)
			assert.Equal(t, 1, parseErr.Pos.Line)
			assert.Equal(t, tt.column, parseErr.Pos.Column)
		})
	}
}

func TestParseSelectSurfacesLexerErrors(t *testing.T) {
	_, err := ParseSelect("SELECT 'abc FROM c")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnterminatedString))
	assert.False(t, errors.Is(err, ErrParse))
}

func TestParserPrimaryAlternatives(t *testing.T) {
	tokens, err := Tokenize(",")
	assert.NoError(t, err)

	p := NewParser(tokens, "")
	_, err = p.parsePrimary()

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "NUMBER, STRING or IDENTIFIER", parseErr.Expected)
	assert.Equal(t, ",", parseErr.Got)
	assert.Equal(t, 0, p.pos)
}

func TestParserLeavesTrailingClausesUnconsumed(t *testing.T) {
	tokens, err := Tokenize("SELECT * FROM c WHERE c.a = 1;")
	assert.NoError(t, err)

	p := NewParser(tokens, "")
	sel, err := p.Parse()
	assert.NoError(t, err)
	assert.Equal(t, "c", sel.From)

	remaining := p.Remaining()
	assert.Equal(t, []TokenKind{WHERE, IDENTIFIER, DOT, IDENTIFIER, OPERATOR, NUMBER, SEMICOLON}, kinds(remaining))

	t.Run("SourceIsNotAPath", func(t *testing.T) {
		tokens, err := Tokenize("SELECT * FROM c.d")
		assert.NoError(t, err)

		p := NewParser(tokens, "")
		sel, err := p.Parse()
		assert.NoError(t, err)
		assert.Equal(t, "c", sel.From)
		assert.Equal(t, []string{".", "d"}, texts(p.Remaining()))
	})
}

func TestParseSelectPartial(t *testing.T) {
	sel, rest, err := ParseSelectPartial(context.Background(), "", "SELECT a FROM c ORDER c.a")
	assert.NoError(t, err)
	assert.Equal(t, "SELECT a FROM c", sel.String())
	assert.Equal(t, []string{"ORDER", "c", ".", "a"}, texts(rest))

	sel, rest, err = ParseSelectPartial(context.Background(), "", "SELECT a FROM c")
	assert.NoError(t, err)
	assert.Equal(t, "c", sel.From)
	assert.Equal(t, 0, len(rest))

	_, rest, err = ParseSelectPartial(context.Background(), "", "SELECT a")
	assert.Error(t, err)
	assert.True(t, rest == nil)
}

func TestParserCursor(t *testing.T) {
	tokens, err := Tokenize("SELECT a")
	assert.NoError(t, err)
	p := NewParser(tokens, "")

	_, ok := p.match(FROM)
	assert.False(t, ok)
	assert.Equal(t, 0, p.pos)

	tok, ok := p.match(SELECT)
	assert.True(t, ok)
	assert.Equal(t, "SELECT", tok.Text)
	assert.Equal(t, 1, p.pos)

	_, err = p.expect(STAR)
	assert.Error(t, err)
	assert.Equal(t, 1, p.pos)

	assert.Equal(t, "a", p.advance().Text)
	assert.True(t, p.isAtEnd())
	assert.Equal(t, EndOfInput, p.advance().Text)
	assert.Equal(t, 2, p.pos)
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseSelectContext(context.Background(), "query.sql", "SELECT *")
	assert.EqualError(t, err, "query.sql:1:9: expected FROM, got <end of input>")

	_, err = ParseSelect("SELECT a b FROM c")
	assert.EqualError(t, err, `1:10: expected FROM, got "b"`)

	_, err = ParseSelect("SELECT 'abc")
	assert.EqualError(t, err, "1:8: unterminated string literal, missing closing '")
}

func TestParseSelectContextTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	root := collector.Start("parse query.sql")
	ctx = telemetry.WithRootTimer(ctx, root)

	_, err := ParseSelectContext(ctx, "query.sql", "SELECT * FROM c")
	assert.NoError(t, err)
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Contains(t, buf.String(), "├─ tokenize: ")
	assert.Contains(t, buf.String(), "└─ parse: ")
}

func TestParseSelectConcurrent(t *testing.T) {
	queries := []string{
		"SELECT * FROM c",
		"SELECT a, 1, 'x' FROM people",
		"SELECT c.address.city FROM c",
		"SELECT FROM x",
	}

	var wg sync.WaitGroup
	results := make([]string, len(queries)*8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sel, err := ParseSelect(queries[i%len(queries)])
			if err == nil {
				results[i] = sel.String()
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		want, err := ParseSelect(queries[i%len(queries)])
		assert.NoError(t, err)
		assert.Equal(t, want.String(), got)
	}
}
