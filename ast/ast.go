// Package ast declares the types used to represent syntax trees for queries.
//
// A query is a single SELECT clause: a list of projections followed by a FROM
// clause naming one source. The AST can be created by parsing query text with
// the parser package, or constructed programmatically with the builders in
// this package.
//
// Projections and primaries are closed sum types. Every variant implements an
// unexported marker method, so only the types declared here satisfy them and
// a type switch over the variants is exhaustive.
package ast

import (
	"strconv"
	"strings"
)

// Projection is one column requested by a SELECT clause: *Star, a Primary,
// or *PathExpr.
type Projection interface {
	projection()
	String() string
}

// Primary is a scalar literal or identifier reference: *Number, *String or
// *Identifier.
type Primary interface {
	Projection
	primary()
}

// Star is the wildcard projection `*`.
type Star struct{}

func (*Star) projection()    {}
func (*Star) String() string { return "*" }

// Number is a numeric literal. Value holds the parsed float64; Raw keeps the
// literal as written (decimal or 0x-prefixed hexadecimal).
type Number struct {
	Value float64
	Raw   string
}

func (*Number) projection() {}
func (*Number) primary()    {}

func (n *Number) String() string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// String is a string literal. Value is the token text including the
// surrounding quotes; escape sequences are not decoded.
type String struct {
	Value string
}

func (*String) projection()      {}
func (*String) primary()         {}
func (s *String) String() string { return s.Value }

// Identifier is a bare name reference.
type Identifier struct {
	Name string
}

func (*Identifier) projection()      {}
func (*Identifier) primary()         {}
func (i *Identifier) String() string { return i.Name }

// PathSegment is one step of a path expression: NameSegment or IndexSegment.
type PathSegment interface {
	segment()
	String() string
}

// NameSegment accesses a member by name.
type NameSegment string

func (NameSegment) segment()         {}
func (s NameSegment) String() string { return string(s) }

// IndexSegment accesses an array element by position.
// The parser does not produce these yet; bracket indexing is not part of the
// grammar.
type IndexSegment uint

func (IndexSegment) segment()         {}
func (s IndexSegment) String() string { return "[" + strconv.FormatUint(uint64(s), 10) + "]" }

// PathExpr is a member-access chain such as `c.address.city`.
type PathExpr struct {
	Segments []PathSegment
}

func (*PathExpr) projection() {}

func (p *PathExpr) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if _, ok := seg.(IndexSegment); !ok && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Select is the root of a parsed query.
type Select struct {
	Pos         Position     // Position of the SELECT keyword
	Projections []Projection // May be empty
	From        string       // Always a syntactically valid identifier
	Span        Span         // Source range from SELECT to the FROM source
}

// String renders the query in canonical form: upper-case keywords, single
// spaces, comma-separated projections.
func (s *Select) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, p := range s.Projections {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	if len(s.Projections) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString("FROM ")
	b.WriteString(s.From)
	return b.String()
}

var (
	_ Projection = &Star{}
	_ Primary    = &Number{}
	_ Primary    = &String{}
	_ Primary    = &Identifier{}
	_ Projection = &PathExpr{}

	_ PathSegment = NameSegment("")
	_ PathSegment = IndexSegment(0)
)
