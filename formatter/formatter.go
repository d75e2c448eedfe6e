// Package formatter prints parsed queries in a canonical layout.
package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/cosmosql/ast"
	"github.com/robinvdvleuten/cosmosql/telemetry"
)

const (
	// DefaultIndentation is the indentation of projections in the multi-line
	// layout.
	DefaultIndentation = 2

	// DefaultLineWidth is the display width above which a query is split
	// over multiple lines.
	DefaultLineWidth = 80
)

// KeywordCase controls how SELECT and FROM are written.
type KeywordCase int

const (
	UpperCase KeywordCase = iota
	LowerCase
)

// Formatter handles formatting of queries.
type Formatter struct {
	// Indentation is the number of spaces before each projection when the
	// query is split over multiple lines.
	Indentation int

	// LineWidth is the maximum display width of the single-line layout.
	// Zero always uses the multi-line layout.
	LineWidth int

	KeywordCase KeywordCase
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithIndentation sets the projection indentation.
func WithIndentation(n int) Option {
	return func(f *Formatter) {
		f.Indentation = n
	}
}

// WithLineWidth sets the width at which queries are split over lines.
func WithLineWidth(width int) Option {
	return func(f *Formatter) {
		f.LineWidth = width
	}
}

// WithKeywordCase sets the keyword case.
func WithKeywordCase(c KeywordCase) Option {
	return func(f *Formatter) {
		f.KeywordCase = c
	}
}

// New creates a new formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Indentation: DefaultIndentation,
		LineWidth:   DefaultLineWidth,
		KeywordCase: UpperCase,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format writes sel to w followed by a newline.
func (f *Formatter) Format(ctx context.Context, sel *ast.Select, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "format")
	defer timer.End()

	_, err := io.WriteString(w, f.FormatString(sel)+"\n")
	return err
}

// FormatString returns the formatted query without a trailing newline.
//
// A query that fits LineWidth stays on one line. Otherwise each projection
// gets its own line:
//
//	SELECT
//	  c.name,
//	  c.address.city
//	FROM c
func (f *Formatter) FormatString(sel *ast.Select) string {
	selectKw, fromKw := f.keyword("SELECT"), f.keyword("FROM")

	projections := make([]string, 0, len(sel.Projections))
	for _, p := range sel.Projections {
		projections = append(projections, p.String())
	}

	if len(projections) == 0 {
		return selectKw + " " + fromKw + " " + sel.From
	}

	line := selectKw + " " + strings.Join(projections, ", ") + " " + fromKw + " " + sel.From
	if runewidth.StringWidth(line) <= f.LineWidth {
		return line
	}

	indent := strings.Repeat(" ", max(f.Indentation, 0))

	var buf strings.Builder
	buf.WriteString(selectKw)
	buf.WriteByte('\n')
	for i, p := range projections {
		buf.WriteString(indent)
		buf.WriteString(p)
		if i < len(projections)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(fromKw)
	buf.WriteByte(' ')
	buf.WriteString(sel.From)

	return buf.String()
}

func (f *Formatter) keyword(kw string) string {
	if f.KeywordCase == LowerCase {
		return strings.ToLower(kw)
	}
	return kw
}
