package ast

import "fmt"

// Position represents a location in the query source.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed, in bytes)
}

// Span represents a half-open byte range [Start, End) in the query source.
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text extracts the source text for this span.
// Returns empty string if span is invalid or zero.
func (s Span) Text(source string) string {
	if s.IsZero() || s.Start < 0 || s.End <= s.Start || s.End > len(source) {
		return ""
	}
	return source[s.Start:s.End]
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}
