package ast

import "strconv"

// NewStar creates a wildcard projection.
func NewStar() *Star {
	return &Star{}
}

// NewNumber creates a Number from a float64. The raw text is the shortest
// decimal representation of the value.
//
// Example:
//
//	n := ast.NewNumber(1.5)
func NewNumber(value float64) *Number {
	return &Number{
		Value: value,
		Raw:   strconv.FormatFloat(value, 'g', -1, 64),
	}
}

// NewNumberWithRaw creates a Number that preserves the literal as written.
// Use this in the parser, where the token text is available.
//
// Example:
//
//	n := ast.NewNumberWithRaw(26, "0x1A")
func NewNumberWithRaw(value float64, raw string) *Number {
	return &Number{Value: value, Raw: raw}
}

// NewString creates a String literal. The value must include its quotes.
//
// Example:
//
//	s := ast.NewString("'x'")
func NewString(value string) *String {
	return &String{Value: value}
}

// NewIdentifier creates an identifier reference.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewPath creates a dotted path expression from member names.
//
// Example:
//
//	p := ast.NewPath("c", "address", "city")
func NewPath(names ...string) *PathExpr {
	segments := make([]PathSegment, 0, len(names))
	for _, name := range names {
		segments = append(segments, NameSegment(name))
	}
	return &PathExpr{Segments: segments}
}

// NewSelect creates a Select node.
func NewSelect(from string, projections ...Projection) *Select {
	return &Select{
		Projections: projections,
		From:        from,
	}
}
